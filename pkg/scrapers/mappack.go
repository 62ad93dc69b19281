package scrapers

import (
	"net/url"
	"strings"
)

// localPackKeys are the response fields providers use for the local-business
// result block, in lookup order.
var localPackKeys = []string{"local_results", "local_pack", "local_map", "places"}

// ComputeMapPackTop3 inspects a full parsed provider response for a
// local-pack block and reports whether the tracked domain appears among its
// top 3 entries. Adapters that cannot report the signal must not call this.
func ComputeMapPackTop3(domain string, response map[string]any) bool {
	if domain == "" || len(response) == 0 {
		return false
	}

	entries := localPackEntries(response)
	if len(entries) == 0 {
		return false
	}

	target := normalizeHost(domain)
	limit := len(entries)
	if limit > 3 {
		limit = 3
	}

	for _, entry := range entries[:limit] {
		place, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if placeMatchesDomain(place, target) {
			return true
		}
	}
	return false
}

// localPackEntries finds the first local-pack array in the response, looking
// through both bare arrays and {places: [...]} wrappers.
func localPackEntries(response map[string]any) []any {
	for _, key := range localPackKeys {
		switch block := response[key].(type) {
		case []any:
			return block
		case map[string]any:
			if places, ok := block["places"].([]any); ok {
				return places
			}
		}
	}
	return nil
}

func placeMatchesDomain(place map[string]any, target string) bool {
	for _, field := range []string{"website", "link", "url"} {
		raw, ok := place[field].(string)
		if !ok || raw == "" {
			continue
		}
		if parsed, err := url.Parse(raw); err == nil && parsed.Hostname() != "" {
			if normalizeHost(parsed.Hostname()) == target {
				return true
			}
		} else if normalizeHost(raw) == target {
			return true
		}
	}
	if raw, ok := place["domain"].(string); ok && normalizeHost(raw) == target {
		return true
	}
	return false
}

// normalizeHost lower-cases a hostname and strips the www prefix so domain
// comparisons are insensitive to both.
func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}
