// Package keywords owns the tracked-keyword domain model: the canonical
// in-memory representation, the normalization of legacy persisted shapes,
// and the gorm-backed store.
package keywords

// History is the per-keyword day-keyed time series of observed positions.
// Keys are unpadded local calendar dates ("2026-8-31").
type History map[string]int

// SearchResult is one organic entry of a provider response, bounded to what
// the provider returned.
type SearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// UpdateError records the last failed refresh attempt of a keyword.
type UpdateError struct {
	Date    string `json:"date"`
	Error   string `json:"error"`
	Scraper string `json:"scraper"`
}

// Keyword is the canonical view of a tracked keyword. Every field has been
// normalized at the persistence boundary: history is always a map, flags are
// native booleans, lastResult is always a list.
type Keyword struct {
	ID              uint
	Keyword         string
	Device          string
	Country         string
	Location        string
	Domain          string
	Position        int
	URL             string
	History         History
	LastResult      []SearchResult
	Tags            []string
	Volume          int
	Sticky          bool
	Updating        bool
	LastUpdated     string
	Added           string
	LastUpdateError *UpdateError
	MapPackTop3     bool
}

// NoErrorSentinel is the persisted value of lastUpdateError when the last
// refresh succeeded.
const NoErrorSentinel = "false"
