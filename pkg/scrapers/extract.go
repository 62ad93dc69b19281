package scrapers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rankwatch/rankwatch/pkg/keywords"
)

// organicEntry is the common shape of one organic result across the JSON
// providers: a title, a link and the provider-assigned position.
type organicEntry struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

// decodeOrganic turns an extractor input into organic entries. A JSON string
// must parse or the provider response is considered malformed; an absent
// result key yields an empty list without error.
func decodeOrganic(provider string, in ExtractorInput, key string) ([]organicEntry, error) {
	switch raw := in.Result.(type) {
	case string:
		var entries []organicEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, fmt.Errorf("invalid JSON response for %s: %w", provider, err)
		}
		return entries, nil
	case []any:
		return decodeEntries(raw), nil
	}

	if arr, ok := in.Response[key].([]any); ok {
		return decodeEntries(arr), nil
	}
	return nil, nil
}

func decodeEntries(arr []any) []organicEntry {
	entries := make([]organicEntry, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var entry organicEntry
		entry.Title, _ = m["title"].(string)
		entry.Link, _ = m["link"].(string)
		if p, ok := m["position"].(float64); ok {
			entry.Position = int(p)
		}
		entries = append(entries, entry)
	}
	return entries
}

// filterOrganic keeps only entries carrying both a title and a link.
func filterOrganic(entries []organicEntry) []keywords.SearchResult {
	results := make([]keywords.SearchResult, 0, len(entries))
	for _, entry := range entries {
		if entry.Title != "" && entry.Link != "" {
			results = append(results, keywords.SearchResult{
				Title:    entry.Title,
				URL:      entry.Link,
				Position: entry.Position,
			})
		}
	}
	return results
}

// joinLocation assembles the provider location parameter from the non-empty
// parts of a city/state/country triple.
func joinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ",")
}
