package scrapers

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/locale"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

var (
	// resultAnchorPattern matches a Google result anchor followed by its h3
	// title inside the rendered page ScrapingRobot returns.
	resultAnchorPattern = regexp.MustCompile(`(?s)<a[^>]+href="(https?://[^"]+)"[^>]*>.{0,600}?<h3[^>]*>(.*?)</h3>`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// ScrapingRobot is the api.scrapingrobot.com adapter. Unlike the SERP APIs
// it proxies a raw Google search and returns the rendered page, so its
// extractor walks the page text for result anchors.
var ScrapingRobot = &Adapter{
	ID:        "scrapingrobot",
	Name:      "Scraping Robot",
	Website:   "scrapingrobot.com",
	Timeout:   120 * time.Second,
	ResultKey: "result",
	ScrapeURL: func(kw keywords.Keyword, s *settings.Settings) string {
		country := locale.ResolveCountryCode(kw.Country, nil, "")
		googleURL := fmt.Sprintf(
			"https://www.google.com/search?num=100&hl=%s&gl=%s&q=%s",
			locale.Lang(country), country, url.QueryEscape(kw.Keyword),
		)
		mobile := ""
		if kw.Device == "mobile" {
			mobile = "&mobile=true"
		}
		return fmt.Sprintf(
			"https://api.scrapingrobot.com/?token=%s&proxyCountry=%s&render=false%s&url=%s",
			s.ScrapingAPI, country, mobile, url.QueryEscape(googleURL),
		)
	},
	Extract: func(in ExtractorInput) (ExtractedSERP, error) {
		page, ok := in.Result.(string)
		if !ok {
			if wrapper, isMap := in.Result.(map[string]any); isMap {
				page, _ = wrapper["content"].(string)
			}
		}
		if page == "" {
			return ExtractedSERP{Organic: []keywords.SearchResult{}}, nil
		}

		results := []keywords.SearchResult{}
		for _, match := range resultAnchorPattern.FindAllStringSubmatch(page, -1) {
			link := html.UnescapeString(match[1])
			title := strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(match[2], "")))
			if title == "" || link == "" {
				continue
			}
			if parsed, err := url.Parse(link); err != nil || strings.Contains(parsed.Hostname(), "google.") {
				continue
			}
			results = append(results, keywords.SearchResult{
				Title:    title,
				URL:      link,
				Position: len(results) + 1,
			})
		}
		return ExtractedSERP{Organic: results}, nil
	},
}
