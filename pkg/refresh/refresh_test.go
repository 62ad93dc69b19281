package refresh_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/refresh"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

func todayKey() string {
	now := time.Now()
	return fmt.Sprintf("%d-%d-%d", now.Year(), int(now.Month()), now.Day())
}

var _ = Describe("RefreshAndUpdateKeywords", func() {
	var (
		ctx          context.Context
		keywordStore *fakeKeywordStore
		domainStore  *fakeDomainStore
		queue        *fakeQueue
		scraper      *fakeScraper
		refresher    *refresh.Refresher
		active       *settings.Settings
	)

	keywordFixture := func(id uint, domain string) keywords.Keyword {
		return keywords.Keyword{
			ID:         id,
			Keyword:    fmt.Sprintf("keyword %d", id),
			Device:     "desktop",
			Country:    "US",
			Domain:     domain,
			History:    keywords.History{},
			LastResult: []keywords.SearchResult{},
			Updating:   true,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		keywordStore = newFakeKeywordStore()
		domainStore = &fakeDomainStore{permissions: map[string]bool{}}
		queue = &fakeQueue{}
		scraper = &fakeScraper{}

		logger := logrus.New()
		logger.SetOutput(GinkgoWriter)
		refresher = refresh.New(keywordStore, domainStore, queue, scraper, logger)

		active = &settings.Settings{
			ScraperType: "serper",
			ScrapingAPI: "test-key",
			ScrapeRetry: false,
			Concurrency: 4,
		}
	})

	It("returns an empty slice for an empty batch", func() {
		updated, err := refresher.RefreshAndUpdateKeywords(ctx, nil, active)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated).To(BeEmpty())
		Expect(domainStore.queried).To(BeEmpty())
	})

	Context("domain eligibility", func() {
		It("never dispatches keywords of scrape-disabled domains", func() {
			domainStore.permissions = map[string]bool{"disabled.com": false, "enabled.com": true}
			batch := []keywords.Keyword{
				keywordFixture(1, "disabled.com"),
				keywordFixture(2, "enabled.com"),
				keywordFixture(3, "disabled.com"),
			}

			updated, err := refresher.RefreshAndUpdateKeywords(ctx, batch, active)
			Expect(err).NotTo(HaveOccurred())

			Expect(scraper.dispatched).To(Equal([]uint{2}))
			Expect(updated).To(HaveLen(1))
			Expect(updated[0].ID).To(Equal(uint(2)))

			Expect(keywordStore.clearedBatches).To(Equal([][]uint{{1, 3}}))
			Expect(queue.removedBatches).To(Equal([][]uint{{1, 3}}))
		})

		It("attempts keywords whose domain has no stored permission", func() {
			domainStore.permissions = map[string]bool{}
			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "unknown.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(scraper.dispatched).To(Equal([]uint{1}))
			Expect(updated).To(HaveLen(1))
		})

		It("looks every distinct domain up exactly once", func() {
			batch := []keywords.Keyword{
				keywordFixture(1, "a.com"),
				keywordFixture(2, "a.com"),
				keywordFixture(3, "b.com"),
			}
			_, err := refresher.RefreshAndUpdateKeywords(ctx, batch, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(domainStore.queried).To(Equal([][]string{{"a.com", "b.com"}}))
		})

		It("aborts the batch when the permission lookup fails", func() {
			domainStore.err = errors.New("connection refused")
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "a.com")}, active)
			Expect(err).To(HaveOccurred())
			Expect(scraper.dispatched).To(BeEmpty())
		})
	})

	Context("successful attempts", func() {
		BeforeEach(func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{
					ID:       kw.ID,
					Position: 3,
					URL:      "https://example.com/page",
					Result: []keywords.SearchResult{
						{Title: "Example", URL: "https://example.com/page", Position: 3},
					},
				}, nil
			}
		})

		It("persists the merged outcome and clears the in-flight flag", func() {
			kw := keywordFixture(1, "example.com")
			kw.History = keywords.History{"2026-8-30": 8}

			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{kw}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(HaveLen(1))

			saved, ok := keywordStore.saved[1]
			Expect(ok).To(BeTrue())
			Expect(saved.Position).To(Equal(3))
			Expect(saved.URL).NotTo(BeNil())
			Expect(*saved.URL).To(Equal("https://example.com/page"))
			Expect(saved.LastUpdated).NotTo(BeNil())
			Expect(saved.LastUpdateError).To(Equal(keywords.NoErrorSentinel))

			var history keywords.History
			Expect(json.Unmarshal([]byte(saved.History), &history)).To(Succeed())
			Expect(history).To(Equal(keywords.History{"2026-8-30": 8, todayKey(): 3}))

			view := updated[0]
			Expect(view.Updating).To(BeFalse())
			Expect(view.Position).To(Equal(3))
			Expect(view.URL).To(Equal("https://example.com/page"))
			Expect(view.LastUpdateError).To(BeNil())
			Expect(view.History).To(HaveKey(todayKey()))
		})

		It("dequeues the keyword from the retry queue", func() {
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue.removed).To(Equal([]uint{1}))
			Expect(queue.added).To(BeEmpty())
		})

		It("clears the in-flight flag in a separate fast write", func() {
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.clearedSingles).To(Equal([]uint{1}))
			Expect(keywordStore.errRecords[1]).To(Equal(""))
		})
	})

	Context("position fallback", func() {
		It("keeps the stored position when the domain was not found", func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID, Position: 0}, nil
			}
			kw := keywordFixture(1, "example.com")
			kw.Position = 5

			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{kw}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated[0].Position).To(Equal(5))
			Expect(keywordStore.saved[1].Position).To(Equal(5))
		})

		It("bottoms out at zero when nothing was ever stored", func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID}, errors.New("provider down")
			}
			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated[0].Position).To(Equal(0))
			Expect(keywordStore.saved[1].Position).To(Equal(0))
		})
	})

	Context("failed attempts", func() {
		BeforeEach(func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{}, errors.New("[429] rate limited")
			}
		})

		It("records the failure without touching the success timestamp", func() {
			kw := keywordFixture(1, "example.com")
			kw.LastUpdated = "2026-08-01T00:00:00.000Z"

			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{kw}, active)
			Expect(err).NotTo(HaveOccurred())

			saved := keywordStore.saved[1]
			Expect(saved.LastUpdated).To(BeNil())

			var record keywords.UpdateError
			Expect(json.Unmarshal([]byte(saved.LastUpdateError), &record)).To(Succeed())
			Expect(record.Error).To(Equal("[429] rate limited"))
			Expect(record.Scraper).To(Equal("serper"))
			Expect(record.Date).NotTo(BeEmpty())

			view := updated[0]
			Expect(view.LastUpdated).To(Equal("2026-08-01T00:00:00.000Z"))
			Expect(view.LastUpdateError).NotTo(BeNil())
			Expect(view.LastUpdateError.Error).To(Equal("[429] rate limited"))
			Expect(view.Updating).To(BeFalse())
		})

		It("still records today's position in the history", func() {
			kw := keywordFixture(1, "example.com")
			kw.Position = 7

			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{kw}, active)
			Expect(err).NotTo(HaveOccurred())

			var history keywords.History
			Expect(json.Unmarshal([]byte(keywordStore.saved[1].History), &history)).To(Succeed())
			Expect(history[todayKey()]).To(Equal(7))
		})

		It("writes the error record in the fast clear as well", func() {
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.errRecords[1]).To(ContainSubstring("[429] rate limited"))
		})

		It("queues the keyword for retry when retries are enabled", func() {
			active.ScrapeRetry = true
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue.added).To(Equal([]uint{1}))
			Expect(queue.removed).To(BeEmpty())
		})

		It("dequeues the keyword when retries are disabled", func() {
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(queue.added).To(BeEmpty())
			Expect(queue.removed).To(Equal([]uint{1}))
		})
	})

	Context("result payload normalization", func() {
		It("persists an empty result list as an empty JSON array", func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID}, nil
			}
			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.saved[1].LastResult).To(Equal("[]"))
			Expect(updated[0].LastResult).NotTo(BeNil())
			Expect(updated[0].LastResult).To(BeEmpty())
		})

		It("erases the ranking URL when the domain was not found", func() {
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID}, nil
			}
			_, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.saved[1].URL).To(BeNil())
		})

		It("persists the map pack signal only when asserted", func() {
			asserted := true
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID, MapPackTop3: &asserted}, nil
			}
			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.saved[1].MapPackTop3).To(BeTrue())
			Expect(updated[0].MapPackTop3).To(BeTrue())

			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID}, nil
			}
			updated, err = refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(2, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(keywordStore.saved[2].MapPackTop3).To(BeFalse())
			Expect(updated[0].MapPackTop3).To(BeFalse())
		})
	})

	Context("persistence failures", func() {
		It("swallows a failed save and still returns the merged view", func() {
			keywordStore.saveErr = errors.New("disk full")
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				return scrapers.RefreshResult{ID: kw.ID, Position: 4}, nil
			}
			updated, err := refresher.RefreshAndUpdateKeywords(ctx, []keywords.Keyword{keywordFixture(1, "example.com")}, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(HaveLen(1))
			Expect(updated[0].Position).To(Equal(4))
		})
	})

	Context("parallel dispatch", func() {
		BeforeEach(func() {
			active.ScraperType = "serpapi"
			scraper.refresh = func(kw keywords.Keyword) (scrapers.RefreshResult, error) {
				if kw.ID == 2 {
					return scrapers.RefreshResult{}, errors.New("provider down")
				}
				return scrapers.RefreshResult{ID: kw.ID, Position: int(kw.ID) * 10}, nil
			}
		})

		It("returns results in input order and isolates failures", func() {
			batch := []keywords.Keyword{
				keywordFixture(1, "example.com"),
				keywordFixture(2, "example.com"),
				keywordFixture(3, "example.com"),
			}

			updated, err := refresher.RefreshAndUpdateKeywords(ctx, batch, active)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(HaveLen(3))

			Expect(updated[0].ID).To(Equal(uint(1)))
			Expect(updated[0].Position).To(Equal(10))
			Expect(updated[1].ID).To(Equal(uint(2)))
			Expect(updated[1].LastUpdateError).NotTo(BeNil())
			Expect(updated[2].ID).To(Equal(uint(3)))
			Expect(updated[2].Position).To(Equal(30))

			Expect(scraper.dispatched).To(ConsistOf(uint(1), uint(2), uint(3)))
		})
	})
})
