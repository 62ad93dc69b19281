package scrapers

import (
	"fmt"
	"net/url"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// SerpAPI is the serpapi.com adapter.
var SerpAPI = &Adapter{
	ID:           "serpapi",
	Name:         "SerpApi.com",
	Website:      "serpapi.com",
	AllowsCity:   true,
	ParallelSafe: true,
	ResultKey:    "organic_results",
	Headers: func(kw keywords.Keyword, s *settings.Settings) map[string]string {
		return map[string]string{
			"Content-Type": "application/json",
			"X-API-Key":    s.ScrapingAPI,
		}
	},
	ScrapeURL: func(kw keywords.Keyword, s *settings.Settings) string {
		country := locale.ResolveCountryCode(kw.Country, nil, "")
		city, state := locale.ParseLocation(kw.Location)
		location := ""
		if city != "" || state != "" {
			location = "&location=" + url.QueryEscape(joinLocation(city, state, locale.DisplayName(country)))
		}
		return fmt.Sprintf(
			"https://serpapi.com/search?q=%s&num=100&gl=%s&device=%s%s&api_key=%s",
			url.QueryEscape(kw.Keyword), country, kw.Device, location, s.ScrapingAPI,
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		entries, err := decodeOrganic("SerpApi.com", in, "organic_results")
		if err != nil {
			return ExtractedSERP{}, err
		}
		return ExtractedSERP{Organic: filterOrganic(entries)}, nil
	},
}
