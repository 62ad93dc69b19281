// Package scrapers contains the provider adapter set and the HTTP dispatch
// client of the refresh engine. Each SERP provider is described by an
// Adapter: a capability bundle of plain function values rather than a type
// hierarchy, so providers differ only in the three functions they plug in.
package scrapers

import (
	"fmt"
	"sort"
	"time"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// ExtractorInput carries one provider response into an adapter's Extract
// function. Result holds the provider's named result value (a JSON string,
// an already-decoded array, or nil when the key is absent); Response is the
// full parsed body for adapters that need to look beyond their result key.
type ExtractorInput struct {
	Result   any
	Response map[string]any
	Keyword  keywords.Keyword
}

// ExtractedSERP is the canonical output of an adapter: the ordered organic
// results plus the local map-pack signal. MapPackTop3 is nil when the
// provider cannot report the signal.
type ExtractedSERP struct {
	Organic     []keywords.SearchResult
	MapPackTop3 *bool
}

// Adapter describes one SERP provider: identity, capabilities and the three
// functions that build a request and extract a canonical result from its
// response.
type Adapter struct {
	// ID is the provider id stored in settings and error records
	ID string
	// Name is the human-readable provider name used in messages
	Name string
	// Website is the provider's homepage, for display
	Website string
	// AllowsCity reports whether the provider accepts city-level targeting
	AllowsCity bool
	// SupportsMapPack reports whether the provider can detect local-pack
	// membership; adapters with false here never assert the signal
	SupportsMapPack bool
	// ParallelSafe marks providers that tolerate concurrent dispatch of a
	// whole batch
	ParallelSafe bool
	// Timeout overrides the default per-request timeout when non-zero
	Timeout time.Duration
	// ResultKey names the response field holding the provider's result array
	ResultKey string

	Headers   func(kw keywords.Keyword, s *settings.Settings) map[string]string
	ScrapeURL func(kw keywords.Keyword, s *settings.Settings) string
	Extract   func(in ExtractorInput) (ExtractedSERP, error)
}

// RefreshResult is the transient outcome of one refresh attempt for one
// keyword. Error is nil on success; a zero Position means the domain was not
// found among the organic results.
type RefreshResult struct {
	ID          uint
	Position    int
	URL         string
	Result      []keywords.SearchResult
	MapPackTop3 *bool
	Error       error
}

var registry = map[string]*Adapter{
	SerpAPI.ID:       SerpAPI,
	SearchAPI.ID:     SearchAPI,
	Serper.ID:        Serper,
	ValueSerp.ID:     ValueSerp,
	HasData.ID:       HasData,
	ScrapingRobot.ID: ScrapingRobot,
	Serply.ID:        Serply,
}

// Get returns the adapter registered under the given provider id.
func Get(id string) (*Adapter, error) {
	adapter, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("scrapers: unknown provider %q", id)
	}
	return adapter, nil
}

// IDs lists the registered provider ids in stable order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
