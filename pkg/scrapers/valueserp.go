package scrapers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// ValueSerp is the api.valueserp.com adapter. It is the only provider in the
// set that reports the local map-pack block alongside organic results.
var ValueSerp = &Adapter{
	ID:              "valueserp",
	Name:            "Value Serp",
	Website:         "valueserp.com",
	AllowsCity:      true,
	SupportsMapPack: true,
	Timeout:         90 * time.Second,
	ResultKey:       "organic_results",
	ScrapeURL: func(kw keywords.Keyword, s *settings.Settings) string {
		country := locale.ResolveCountryCode(kw.Country, nil, "")
		city, state := locale.ParseLocation(kw.Location)
		location := ""
		if city != "" || state != "" {
			location = "&location=" + url.QueryEscape(joinLocation(city, state, locale.DisplayName(country)))
		}
		device := ""
		if kw.Device == "mobile" {
			device = "&device=mobile"
		}
		return fmt.Sprintf(
			"https://api.valueserp.com/search?api_key=%s&q=%s&gl=%s&hl=%s%s%s&output=json&include_answer_box=false&include_advertiser_info=false",
			s.ScrapingAPI, url.QueryEscape(kw.Keyword), country, locale.Lang(country), device, location,
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		entries, err := decodeOrganic("Value Serp", in, "organic_results")
		if err != nil {
			return ExtractedSERP{}, err
		}
		mapPack := ComputeMapPackTop3(in.Keyword.Domain, in.Response)
		return ExtractedSERP{Organic: filterOrganic(entries), MapPackTop3: &mapPack}, nil
	},
}
