package scrapers

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// serplyResult carries Serply's own result shape, which reports the true
// SERP position under realPosition.
type serplyResult struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	RealPosition int    `json:"realPosition"`
}

// Serply is the api.serply.io adapter. Country targeting travels in headers
// (X-Proxy-Location) rather than the query string.
var Serply = &Adapter{
	ID:        "serply",
	Name:      "Serply.io",
	Website:   "serply.io",
	ResultKey: "results",
	Headers: func(kw keywords.Keyword, s *settings.Settings) map[string]string {
		device := "desktop"
		if kw.Device == "mobile" {
			device = "mobile"
		}
		return map[string]string{
			"Content-Type":     "application/json",
			"X-Api-Key":        s.ScrapingAPI,
			"X-User-Agent":     device,
			"X-Proxy-Location": locale.ResolveCountryCode(kw.Country, nil, ""),
		}
	},
	ScrapeURL: func(kw keywords.Keyword, s *settings.Settings) string {
		return fmt.Sprintf(
			"https://api.serply.io/v1/search?q=%s&num=100&hl=%s",
			url.QueryEscape(kw.Keyword), kw.Country,
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		var entries []serplyResult

		switch raw := in.Result.(type) {
		case string:
			if err := json.Unmarshal([]byte(raw), &entries); err != nil {
				return ExtractedSERP{}, fmt.Errorf("invalid JSON response for Serply.io: %w", err)
			}
		case []any:
			for _, item := range raw {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				var entry serplyResult
				entry.Title, _ = m["title"].(string)
				entry.Link, _ = m["link"].(string)
				if p, ok := m["realPosition"].(float64); ok {
					entry.RealPosition = int(p)
				}
				entries = append(entries, entry)
			}
		}

		results := make([]keywords.SearchResult, 0, len(entries))
		for _, entry := range entries {
			if entry.Title != "" && entry.Link != "" {
				results = append(results, keywords.SearchResult{
					Title:    entry.Title,
					URL:      entry.Link,
					Position: entry.RealPosition,
				})
			}
		}
		return ExtractedSERP{Organic: results}, nil
	},
}
