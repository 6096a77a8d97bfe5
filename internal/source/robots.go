package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/pmorozov/signalmesh/internal/cache"
)

const robotsPolicyTTL = 30 * time.Minute

// RobotsGate checks robots.txt compliance before a fetch. Policies are held
// in a TTL cache keyed by host; only the policy is cached, never fetched
// content.
type RobotsGate struct {
	policies   *cache.MemoryCache
	httpClient *http.Client
	userAgent  string
}

// NewRobotsGate creates a robots.txt gate.
func NewRobotsGate(userAgent string, timeout time.Duration) *RobotsGate {
	return &RobotsGate{
		policies:   cache.NewMemoryCache(robotsPolicyTTL, 10*time.Minute),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// CanFetch reports whether rawURL may be fetched under the host's
// robots.txt. An unreachable or unparseable robots.txt allows the fetch.
func (g *RobotsGate) CanFetch(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	data, err := g.policy(ctx, parsed)
	if err != nil {
		// Allow by default when robots.txt cannot be fetched.
		return true, nil
	}
	return data.TestAgent(parsed.Path, g.userAgent), nil
}

func (g *RobotsGate) policy(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	if cached, ok := g.policies.Get(u.Host); ok {
		return cached.(*robotstxt.RobotsData), nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.policies.Set(u.Host, data)
	return data, nil
}
