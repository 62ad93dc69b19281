package scrapers

import (
	"fmt"
	"net/url"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// SearchAPI is the searchapi.io adapter.
var SearchAPI = &Adapter{
	ID:           "searchapi",
	Name:         "SearchApi.io",
	Website:      "searchapi.io",
	AllowsCity:   true,
	ParallelSafe: true,
	ResultKey:    "organic_results",
	Headers: func(kw keywords.Keyword, s *settings.Settings) map[string]string {
		return map[string]string{
			"Content-Type":  "application/json",
			"Authorization": fmt.Sprintf("Bearer %s", s.ScrapingAPI),
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
			"https://www.searchapi.io/api/v1/search?engine=google&q=%s&num=100&gl=%s&device=%s%s",
			url.QueryEscape(kw.Keyword), country, kw.Device, location,
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		entries, err := decodeOrganic("SearchApi.io", in, "organic_results")
		if err != nil {
			return ExtractedSERP{}, err
		}
		return ExtractedSERP{Organic: filterOrganic(entries)}, nil
	},
}
