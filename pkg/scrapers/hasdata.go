package scrapers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// HasData is the api.scrape-it.cloud adapter.
var HasData = &Adapter{
	ID:         "hasdata",
	Name:       "HasData",
	Website:    "hasdata.com",
	AllowsCity: true,
	ResultKey:  "organicResults",
	Headers: func(kw keywords.Keyword, s *settings.Settings) map[string]string {
		return map[string]string{
			"Content-Type": "application/json",
			"x-api-key":    s.ScrapingAPI,
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
			"https://api.scrape-it.cloud/scrape/google/serp?q=%s%s&num=100&gl=%s&deviceType=%s",
			url.QueryEscape(kw.Keyword), location, strings.ToLower(country), kw.Device,
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		entries, err := decodeOrganic("HasData", in, "organicResults")
		if err != nil {
			return ExtractedSERP{}, err
		}
		return ExtractedSERP{Organic: filterOrganic(entries)}, nil
	},
}
