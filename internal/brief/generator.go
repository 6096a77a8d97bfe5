// Package brief renders an optional LLM-written digest of a research report.
// The brief is strictly decorative: it is generated after synthesis finishes
// and can never alter patterns, sentiment, or signals. Citations are checked
// against the report's evidence URLs so the model cannot smuggle in sources
// the collection pass never saw.
package brief

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pmorozov/signalmesh/internal/model"
)

const (
	defaultModel     = openai.GPT4oMini
	defaultMaxTokens = 1200
	requestTimeout   = 30 * time.Second
	maxPromptURLs    = 20
)

// Generator produces research briefs through an OpenAI-compatible endpoint.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// New creates a brief generator from configuration. It returns nil with no
// error when the provider is empty, which disables briefs entirely.
func New(cfg model.BriefConfig) (*Generator, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported brief provider %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("brief provider requires an API key")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	mdl := cfg.Model
	if mdl == "" {
		mdl = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     mdl,
		maxTokens: maxTokens,
	}, nil
}

// Generate writes a markdown brief for the report. Any URL the model cites
// outside the report's evidence is reported as a warning rather than failing
// the call.
func (g *Generator) Generate(ctx context.Context, report model.ResearchReport) (*model.Brief, error) {
	allowed := evidenceURLs(report)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize cross-platform research reports. Cite only URLs from the allowed list and describe what the evidence shows, never what is true.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(report, allowed),
			},
		},
		MaxTokens:   g.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("brief completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("brief completion: empty response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)

	var warnings []string
	for _, cited := range extractURLs(text) {
		if !containsURL(allowed, cited) {
			warnings = append(warnings, fmt.Sprintf("cited URL outside evidence: %s", cited))
		}
	}

	return &model.Brief{
		Provider: "openai",
		Model:    g.model,
		BriefMD:  text,
		Warnings: warnings,
	}, nil
}

// BuildPrompt renders the report into the user prompt. The allowed URL list
// is embedded verbatim so the citation constraint is visible to the model.
func BuildPrompt(report model.ResearchReport, allowed []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Research topic: %s (window %s)\n\n", report.Topic, report.Timeframe)
	fmt.Fprintf(&b, "Allowed citation URLs:%s\n\n", joinURLs(allowed))
	fmt.Fprintf(&b, "Overall sentiment: %s (positive %.2f, negative %.2f)\n\n",
		report.Sentiment.Overall, report.Sentiment.Score.Positive, report.Sentiment.Score.Negative)

	if len(report.Patterns) > 0 {
		b.WriteString("Patterns:\n")
		for _, p := range report.Patterns {
			fmt.Fprintf(&b, "- %q (%s, sources: %s)\n", p.Keyword, p.Strength, strings.Join(p.Sources, ", "))
		}
		b.WriteString("\n")
	}

	if len(report.EmergingTopics) > 0 {
		fmt.Fprintf(&b, "Emerging topics: %s\n\n", strings.Join(report.EmergingTopics, ", "))
	}

	if len(report.Meta.FailedSources) > 0 {
		var names []string
		for _, f := range report.Meta.FailedSources {
			names = append(names, f.Source)
		}
		fmt.Fprintf(&b, "Note: sources %s failed during collection; coverage is partial.\n\n", strings.Join(names, ", "))
	}

	b.WriteString("Write a 3-5 sentence markdown brief of what the evidence shows. Cite only allowed URLs. If evidence is thin, say so.")

	return b.String()
}

func evidenceURLs(report model.ResearchReport) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}
	for _, p := range report.Patterns {
		for _, e := range p.Evidence {
			add(e.URL)
		}
	}
	for _, d := range report.TopDiscussions {
		add(d.URL)
	}
	return urls
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return " (none)"
	}
	var b strings.Builder
	for i, url := range urls {
		if i >= maxPromptURLs {
			fmt.Fprintf(&b, "\n... and %d more", len(urls)-maxPromptURLs)
			break
		}
		fmt.Fprintf(&b, "\n- %s", url)
	}
	return b.String()
}

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

func extractURLs(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, url := range urlPattern.FindAllString(text, -1) {
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}
	return unique
}

func containsURL(urls []string, url string) bool {
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}
