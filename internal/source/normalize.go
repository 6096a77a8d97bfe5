package source

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/pmorozov/signalmesh/internal/model"
)

// StripMarkup flattens any HTML markup embedded in adapter text down to its
// visible text. Scraper services occasionally pass through fragments of the
// pages they parsed; the canonical evidence record carries plain text only.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}

// normalizeItem maps one raw adapter record onto the canonical evidence
// shape. Records without a URL are dropped (the URL is the identity key);
// negative engagement is clamped to zero.
func normalizeItem(platform string, raw remoteItem) (model.EvidenceItem, bool) {
	if raw.URL == "" {
		return model.EvidenceItem{}, false
	}

	engagement := raw.Engagement
	if engagement < 0 {
		engagement = 0
	}

	return model.EvidenceItem{
		Platform:   platform,
		Title:      StripMarkup(raw.Title),
		URL:        raw.URL,
		Engagement: engagement,
		Snippet:    StripMarkup(raw.Snippet),
	}, true
}
