package scrapers

import (
	"net/url"
	"strings"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// Serper is the google.serper.dev adapter. The provider expects
// plus-separated terms in its query and location parameters.
var Serper = &Adapter{
	ID:              "serper",
	Name:            "Serper.dev",
	Website:         "serper.dev",
	AllowsCity:      true,
	SupportsMapPack: false,
	ResultKey:       "organic",
	ScrapeURL: func(kw keywords.Keyword, s *settings.Settings) string {
		country := locale.ResolveCountryCode(kw.Country, nil, "")
		city, state := locale.ParseLocation(kw.Location)

		params := url.Values{}
		params.Set("q", plusEncode(kw.Keyword))
		if city != "" || state != "" {
			parts := []string{plusEncode(city), plusEncode(state), plusEncode(locale.DisplayName(country))}
			params.Set("location", joinLocation(parts...))
		}
		params.Set("gl", country)
		params.Set("hl", locale.Lang(country))
		params.Set("apiKey", s.ScrapingAPI)
		return "https://google.serper.dev/search?" + params.Encode()
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		entries, err := decodeOrganic("Serper.dev", in, "organic")
		if err != nil {
			return ExtractedSERP{}, err
		}
		return ExtractedSERP{Organic: filterOrganic(entries)}, nil
	},
}

// plusEncode joins the words of a term with '+', decoding any pre-encoded
// input first so terms are never double-encoded.
func plusEncode(term string) string {
	if decoded, err := url.QueryUnescape(term); err == nil {
		term = decoded
	}
	return strings.ReplaceAll(term, " ", "+")
}
