// Package refresh implements the keyword position refresh engine: it decides
// which keywords are eligible, dispatches provider requests either
// concurrently or sequentially, merges every result into persistent keyword
// state and reconciles the durable retry queue.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/serialize"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// KeywordStore is the narrow persistence surface the engine mutates keywords
// through.
type KeywordStore interface {
	// ClearUpdating resets the in-flight flag for a batch of keywords in one
	// update.
	ClearUpdating(ctx context.Context, ids []uint) error
	// ClearUpdatingWithError resets the in-flight flag for one keyword and,
	// when errRecord is non-empty, records it as the last update error. This
	// is the fast safety write that runs before normalization.
	ClearUpdatingWithError(ctx context.Context, id uint, errRecord string) error
	// SaveRefresh persists the outcome of one refresh attempt.
	SaveRefresh(ctx context.Context, id uint, update keywords.RefreshUpdate) error
}

// DomainStore resolves which domains still allow scraping.
type DomainStore interface {
	ScrapePermissions(ctx context.Context, names []string) (map[string]bool, error)
}

// RetryQueue is the durable set of keyword IDs pending a re-attempt.
type RetryQueue interface {
	Add(id uint) error
	Remove(id uint) error
	RemoveMany(ids []uint) error
}

// Scraper dispatches one refresh request to the active provider.
type Scraper interface {
	Refresh(ctx context.Context, kw keywords.Keyword, s *settings.Settings) (scrapers.RefreshResult, error)
}

// Refresher orchestrates refresh batches.
type Refresher struct {
	keywords KeywordStore
	domains  DomainStore
	queue    RetryQueue
	scraper  Scraper
	logger   *logrus.Logger
}

// New creates a Refresher wired to its collaborators.
func New(keywordStore KeywordStore, domainStore DomainStore, queue RetryQueue, scraper Scraper, logger *logrus.Logger) *Refresher {
	return &Refresher{
		keywords: keywordStore,
		domains:  domainStore,
		queue:    queue,
		scraper:  scraper,
		logger:   logger,
	}
}

// RefreshAndUpdateKeywords refreshes the positions of the given keywords and
// returns the normalized keywords actually attempted, in processing order.
//
// Keywords whose domain has scraping disabled are skipped: their in-flight
// flag is cleared in one batched update and their IDs are removed from the
// retry queue in one store call. The remaining keywords are dispatched
// concurrently when the active provider tolerates it, sequentially with the
// configured delay otherwise. A single keyword's failure never aborts the
// batch; only the domain-eligibility lookup can.
func (r *Refresher) RefreshAndUpdateKeywords(ctx context.Context, kws []keywords.Keyword, s *settings.Settings) ([]keywords.Keyword, error) {
	if len(kws) == 0 {
		return []keywords.Keyword{}, nil
	}

	log := r.logger.WithField("batch_id", uuid.New().String())

	permissions, err := r.scrapePermissions(ctx, kws)
	if err != nil {
		// Eligibility cannot be assumed, so this is the one failure that
		// aborts the whole batch.
		return nil, fmt.Errorf("failed to load domain scrape permissions: %w", err)
	}

	var skipped, eligible []keywords.Keyword
	for _, kw := range kws {
		if enabled, known := permissions[kw.Domain]; known && !enabled {
			skipped = append(skipped, kw)
			continue
		}
		eligible = append(eligible, kw)
	}

	if len(skipped) > 0 {
		skippedIDs := make([]uint, len(skipped))
		for i, kw := range skipped {
			skippedIDs[i] = kw.ID
		}
		if err := r.keywords.ClearUpdating(ctx, skippedIDs); err != nil {
			log.WithError(err).Error("Failed to clear updating flag for skipped keywords")
		}
		if err := r.queue.RemoveMany(skippedIDs); err != nil {
			log.WithError(err).Error("Failed to remove skipped keywords from retry queue")
		}
		log.WithField("skipped", len(skipped)).Info("Skipped keywords of scrape-disabled domains")
	}

	if len(eligible) == 0 {
		return []keywords.Keyword{}, nil
	}

	start := time.Now()
	updated := make([]keywords.Keyword, 0, len(eligible))

	if parallelSafe(s.ScraperType) {
		results := r.dispatchParallel(ctx, eligible, s)
		for i, kw := range eligible {
			updated = append(updated, r.updateKeywordPosition(ctx, kw, results[i], s))
		}
	} else {
		limiter := sequentialLimiter(s.ScrapeDelayMs)
		for _, kw := range eligible {
			log.WithFields(logrus.Fields{
				"keyword_id": kw.ID,
				"keyword":    kw.Keyword,
			}).Info("Starting keyword refresh")
			updated = append(updated, r.refreshAndUpdateKeyword(ctx, kw, s))

			if err := limiter.Wait(ctx); err != nil {
				log.WithError(err).Warn("Scrape delay interrupted")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"keywords": len(eligible),
		"elapsed":  time.Since(start).String(),
	}).Info("Refresh batch completed")

	return updated, nil
}

// refreshAndUpdateKeyword runs one sequential attempt: scrape, clear the
// in-flight flag in a separate fast update so a crash during normalization
// cannot leave the row stuck, then normalize and persist the result.
func (r *Refresher) refreshAndUpdateKeyword(ctx context.Context, kw keywords.Keyword, s *settings.Settings) keywords.Keyword {
	result, err := r.scraper.Refresh(ctx, kw, s)
	if err != nil {
		result = scrapers.RefreshResult{ID: kw.ID, Error: err}
		r.logger.WithFields(logrus.Fields{
			"keyword_id": kw.ID,
			"keyword":    kw.Keyword,
			"error":      serialize.Error(err),
		}).Error("Scraper failed for keyword")
	}

	errRecord := ""
	if result.Error != nil {
		errRecord, _ = errorRecord(time.Now(), serialize.Error(result.Error), s.ScraperType)
	}
	if err := r.keywords.ClearUpdatingWithError(ctx, kw.ID, errRecord); err != nil {
		r.logger.WithError(err).WithField("keyword_id", kw.ID).Error("Failed to clear keyword updating status")
	}

	return r.updateKeywordPosition(ctx, kw, result, s)
}

// scrapePermissions resolves the scrape_enabled flag for the distinct set of
// owning domains in one batched lookup.
func (r *Refresher) scrapePermissions(ctx context.Context, kws []keywords.Keyword) (map[string]bool, error) {
	seen := make(map[string]bool)
	var names []string
	for _, kw := range kws {
		if kw.Domain != "" && !seen[kw.Domain] {
			seen[kw.Domain] = true
			names = append(names, kw.Domain)
		}
	}
	if len(names) == 0 {
		return map[string]bool{}, nil
	}
	return r.domains.ScrapePermissions(ctx, names)
}

// parallelSafe reports whether the active provider declares it tolerates
// concurrent dispatch of a whole batch.
func parallelSafe(scraperType string) bool {
	adapter, err := scrapers.Get(scraperType)
	if err != nil {
		return false
	}
	return adapter.ParallelSafe
}

// sequentialLimiter paces sequential dispatch. The limiter starts with a
// full bucket, so the delay applies between requests only, never before the
// first. Delays are capped at 30 seconds to keep a misconfigured value from
// stalling the batch.
func sequentialLimiter(delayMs int) *rate.Limiter {
	if delayMs <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if delayMs > settings.MaxScrapeDelayMs {
		delayMs = settings.MaxScrapeDelayMs
	}
	return rate.NewLimiter(rate.Every(time.Duration(delayMs)*time.Millisecond), 1)
}
