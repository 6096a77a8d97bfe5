package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pmorozov/signalmesh/internal/model"
)

// RemoteSource speaks to one external scraping service over its JSON API.
// The services own everything the core does not: markup extraction,
// anti-bot handling, proxies, retries. This adapter only normalizes their
// output into canonical evidence records.
type RemoteSource struct {
	name    string
	baseURL string
	client  *Client
}

// remoteItem is the wire shape one scraper service returns per result.
type remoteItem struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Engagement int64  `json:"engagement"`
	Snippet    string `json:"snippet"`
}

// searchResponse is the scraper service's search envelope.
type searchResponse struct {
	Query   string       `json:"query"`
	Results []remoteItem `json:"results"`
}

// NewRemote creates an adapter for the scraper service at baseURL.
func NewRemote(name, baseURL string, client *Client) *RemoteSource {
	return &RemoteSource{name: name, baseURL: baseURL, client: client}
}

// Name returns the platform id.
func (s *RemoteSource) Name() string {
	return s.name
}

// FetchEvidence queries the scraper service for a topic and normalizes the
// results.
func (s *RemoteSource) FetchEvidence(ctx context.Context, topic string, timeout time.Duration) ([]model.EvidenceItem, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/search?query=%s", s.baseURL, url.QueryEscape(topic))

	var resp searchResponse
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%s search: %w", s.name, err)
	}
	return s.normalize(resp.Results), nil
}

// FetchTrending asks the scraper service what is trending in a region.
func (s *RemoteSource) FetchTrending(ctx context.Context, region string) ([]model.EvidenceItem, error) {
	endpoint := fmt.Sprintf("%s/api/trending?region=%s", s.baseURL, url.QueryEscape(region))

	var resp searchResponse
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%s trending: %w", s.name, err)
	}
	return s.normalize(resp.Results), nil
}

func (s *RemoteSource) normalize(raw []remoteItem) []model.EvidenceItem {
	items := make([]model.EvidenceItem, 0, len(raw))
	for _, r := range raw {
		if item, ok := normalizeItem(s.name, r); ok {
			items = append(items, item)
		}
	}
	return items
}
