package scrapers_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

func testKeyword() keywords.Keyword {
	return keywords.Keyword{
		ID:      1,
		Keyword: "compression socks",
		Device:  "desktop",
		Country: "US",
		Domain:  "example.com",
	}
}

func testSettings(scraperType string) *settings.Settings {
	return &settings.Settings{
		ScraperType: scraperType,
		ScrapingAPI: "test-key",
		Concurrency: settings.DefaultConcurrency,
	}
}

var _ = Describe("Registry", func() {
	It("knows every provider", func() {
		Expect(scrapers.IDs()).To(Equal([]string{
			"hasdata", "scrapingrobot", "searchapi", "serpapi", "serper", "serply", "valueserp",
		}))
	})

	It("rejects unknown provider ids", func() {
		_, err := scrapers.Get("nosuchprovider")
		Expect(err).To(HaveOccurred())
	})

	It("only marks the concurrency-tolerant providers parallel safe", func() {
		for _, id := range scrapers.IDs() {
			adapter, err := scrapers.Get(id)
			Expect(err).NotTo(HaveOccurred())
			expected := id == "serpapi" || id == "searchapi"
			Expect(adapter.ParallelSafe).To(Equal(expected), "provider %s", id)
		}
	})

	It("only lets valueserp assert the map pack signal", func() {
		for _, id := range scrapers.IDs() {
			adapter, err := scrapers.Get(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(adapter.SupportsMapPack).To(Equal(id == "valueserp"), "provider %s", id)
		}
	})
})

var _ = Describe("SerpAPI adapter", func() {
	It("builds the search URL with country, device and credential", func() {
		u := scrapers.SerpAPI.ScrapeURL(testKeyword(), testSettings("serpapi"))
		Expect(u).To(Equal("https://serpapi.com/search?q=compression+socks&num=100&gl=US&device=desktop&api_key=test-key"))
	})

	It("adds a location parameter for city-targeted keywords", func() {
		kw := testKeyword()
		kw.Location = "Berlin,BE,DE"
		kw.Country = "DE"
		u := scrapers.SerpAPI.ScrapeURL(kw, testSettings("serpapi"))
		Expect(u).To(ContainSubstring("&location=Berlin%2CBE%2CGermany"))
	})

	It("sends the credential in the X-API-Key header", func() {
		headers := scrapers.SerpAPI.Headers(testKeyword(), testSettings("serpapi"))
		Expect(headers["X-API-Key"]).To(Equal("test-key"))
	})
})

var _ = Describe("SearchAPI adapter", func() {
	It("builds the google engine URL", func() {
		u := scrapers.SearchAPI.ScrapeURL(testKeyword(), testSettings("searchapi"))
		Expect(u).To(Equal("https://www.searchapi.io/api/v1/search?engine=google&q=compression+socks&num=100&gl=US&device=desktop"))
	})

	It("authenticates with a bearer token", func() {
		headers := scrapers.SearchAPI.Headers(testKeyword(), testSettings("searchapi"))
		Expect(headers["Authorization"]).To(Equal("Bearer test-key"))
	})
})

var _ = Describe("Serply adapter", func() {
	It("targets the country through request headers", func() {
		kw := testKeyword()
		kw.Country = "DE"
		kw.Device = "mobile"
		headers := scrapers.Serply.Headers(kw, testSettings("serply"))
		Expect(headers["X-Api-Key"]).To(Equal("test-key"))
		Expect(headers["X-User-Agent"]).To(Equal("mobile"))
		Expect(headers["X-Proxy-Location"]).To(Equal("DE"))
	})

	It("builds the search URL with the raw country as interface language", func() {
		u := scrapers.Serply.ScrapeURL(testKeyword(), testSettings("serply"))
		Expect(u).To(Equal("https://api.serply.io/v1/search?q=compression+socks&num=100&hl=US"))
	})

	It("reads positions from realPosition", func() {
		in := scrapers.ExtractorInput{
			Result: []any{
				map[string]any{"title": "Example", "link": "https://example.com/", "realPosition": float64(7)},
				map[string]any{"title": "", "link": "https://skipped.com/"},
			},
			Keyword: testKeyword(),
		}
		extracted, err := scrapers.Serply.Extract(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.Organic).To(HaveLen(1))
		Expect(extracted.Organic[0].Position).To(Equal(7))
	})
})

var _ = Describe("ScrapingRobot adapter", func() {
	It("proxies an encoded google search URL", func() {
		kw := testKeyword()
		kw.Country = "DE"
		u := scrapers.ScrapingRobot.ScrapeURL(kw, testSettings("scrapingrobot"))
		Expect(u).To(HavePrefix("https://api.scrapingrobot.com/?token=test-key&proxyCountry=DE&render=false&url="))
		Expect(u).To(ContainSubstring("url=https%3A%2F%2Fwww.google.com%2Fsearch%3Fnum%3D100%26hl%3Dde%26gl%3DDE%26q%3Dcompression%2Bsocks"))
	})

	It("requests the mobile rendering for mobile keywords", func() {
		kw := testKeyword()
		kw.Device = "mobile"
		u := scrapers.ScrapingRobot.ScrapeURL(kw, testSettings("scrapingrobot"))
		Expect(u).To(ContainSubstring("&mobile=true&url="))
	})

	It("extracts result anchors from the rendered page", func() {
		page := `<div><a href="https://www.google.com/maps"><h3>Maps</h3></a>` +
			`<a href="https://example.com/socks"><h3>Best <b>Socks</b></h3></a>` +
			`<a href="https://other.com/"><h3>Other</h3></a></div>`
		extracted, err := scrapers.ScrapingRobot.Extract(scrapers.ExtractorInput{
			Result:  page,
			Keyword: testKeyword(),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.Organic).To(HaveLen(2))
		Expect(extracted.Organic[0].Title).To(Equal("Best Socks"))
		Expect(extracted.Organic[0].URL).To(Equal("https://example.com/socks"))
		Expect(extracted.Organic[0].Position).To(Equal(1))
		Expect(extracted.Organic[1].Position).To(Equal(2))
	})
})

var _ = Describe("ValueSerp adapter", func() {
	It("builds the search URL with language and output options", func() {
		u := scrapers.ValueSerp.ScrapeURL(testKeyword(), testSettings("valueserp"))
		Expect(u).To(Equal("https://api.valueserp.com/search?api_key=test-key&q=compression+socks&gl=US&hl=en&output=json&include_answer_box=false&include_advertiser_info=false"))
	})

	It("reports the map pack signal from the response", func() {
		in := scrapers.ExtractorInput{
			Result: []any{
				map[string]any{"title": "Example", "link": "https://example.com/", "position": float64(1)},
			},
			Response: map[string]any{
				"local_results": []any{
					map[string]any{"website": "https://www.example.com/"},
				},
			},
			Keyword: testKeyword(),
		}
		extracted, err := scrapers.ValueSerp.Extract(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.MapPackTop3).NotTo(BeNil())
		Expect(*extracted.MapPackTop3).To(BeTrue())
	})
})

var _ = Describe("Serper adapter", func() {
	It("plus-encodes the query terms", func() {
		u := scrapers.Serper.ScrapeURL(testKeyword(), testSettings("serper"))
		Expect(u).To(ContainSubstring("q=compression%2Bsocks"))
		Expect(u).To(ContainSubstring("gl=US"))
		Expect(u).To(ContainSubstring("hl=en"))
		Expect(u).To(ContainSubstring("apiKey=test-key"))
	})
})

var _ = Describe("HasData adapter", func() {
	It("lowercases the country in the search URL", func() {
		kw := testKeyword()
		kw.Country = "DE"
		u := scrapers.HasData.ScrapeURL(kw, testSettings("hasdata"))
		Expect(u).To(Equal("https://api.scrape-it.cloud/scrape/google/serp?q=compression+socks&num=100&gl=de&deviceType=desktop"))
	})
})

var _ = Describe("Extractors", func() {
	It("decode a JSON string result value", func() {
		raw := `[{"title":"Example","link":"https://example.com/","position":3}]`
		extracted, err := scrapers.SerpAPI.Extract(scrapers.ExtractorInput{Result: raw, Keyword: testKeyword()})
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.Organic).To(HaveLen(1))
		Expect(extracted.Organic[0].Position).To(Equal(3))
	})

	It("reject malformed JSON string results", func() {
		_, err := scrapers.SerpAPI.Extract(scrapers.ExtractorInput{Result: "<html>", Keyword: testKeyword()})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("invalid JSON response"))
	})

	It("treat an absent result key as an empty SERP", func() {
		extracted, err := scrapers.SerpAPI.Extract(scrapers.ExtractorInput{Result: nil, Keyword: testKeyword()})
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.Organic).To(BeEmpty())
	})

	It("drop entries without a title or link", func() {
		extracted, err := scrapers.SerpAPI.Extract(scrapers.ExtractorInput{
			Result: []any{
				map[string]any{"title": "Kept", "link": "https://example.com/", "position": float64(1)},
				map[string]any{"title": "", "link": "https://example.com/no-title"},
				map[string]any{"title": "No Link", "link": ""},
			},
			Keyword: testKeyword(),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(extracted.Organic).To(HaveLen(1))
		Expect(extracted.Organic[0].Title).To(Equal("Kept"))
	})
})

var _ = Describe("LocateDomain", func() {
	organic := []keywords.SearchResult{
		{Title: "Other", URL: "https://other.com/", Position: 1},
		{Title: "Example", URL: "https://www.example.com/page", Position: 2},
	}

	It("finds the tracked domain regardless of a www prefix", func() {
		position, rankingURL := scrapers.LocateDomain("example.com", organic)
		Expect(position).To(Equal(2))
		Expect(rankingURL).To(Equal("https://www.example.com/page"))
	})

	It("returns zero when the domain is absent", func() {
		position, rankingURL := scrapers.LocateDomain("missing.com", organic)
		Expect(position).To(Equal(0))
		Expect(rankingURL).To(Equal(""))
	})

	It("falls back to the list index when the entry has no position", func() {
		results := []keywords.SearchResult{
			{Title: "Other", URL: "https://other.com/"},
			{Title: "Example", URL: "https://example.com/"},
		}
		position, _ := scrapers.LocateDomain("example.com", results)
		Expect(position).To(Equal(2))
	})
})

var _ = Describe("ComputeMapPackTop3", func() {
	It("matches the domain within the top three places", func() {
		response := map[string]any{
			"local_results": []any{
				map[string]any{"website": "https://first.com/"},
				map[string]any{"website": "https://www.example.com/"},
				map[string]any{"website": "https://third.com/"},
			},
		}
		Expect(scrapers.ComputeMapPackTop3("example.com", response)).To(BeTrue())
	})

	It("ignores matches below the third place", func() {
		response := map[string]any{
			"local_results": []any{
				map[string]any{"website": "https://a.com/"},
				map[string]any{"website": "https://b.com/"},
				map[string]any{"website": "https://c.com/"},
				map[string]any{"website": "https://example.com/"},
			},
		}
		Expect(scrapers.ComputeMapPackTop3("example.com", response)).To(BeFalse())
	})

	It("reads places wrapped in a local pack object", func() {
		response := map[string]any{
			"local_pack": map[string]any{
				"places": []any{
					map[string]any{"domain": "example.com"},
				},
			},
		}
		Expect(scrapers.ComputeMapPackTop3("example.com", response)).To(BeTrue())
	})

	It("is false without a local pack block", func() {
		Expect(scrapers.ComputeMapPackTop3("example.com", map[string]any{"organic_results": []any{}})).To(BeFalse())
	})
})
