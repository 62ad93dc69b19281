package refresh

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// dispatchParallel fans a batch out over a bounded worker pool and returns
// one result per keyword, indexed to match the input order. Worker failures
// become error results; they never abort the pool.
func (r *Refresher) dispatchParallel(ctx context.Context, kws []keywords.Keyword, s *settings.Settings) []scrapers.RefreshResult {
	type job struct {
		index int
		kw    keywords.Keyword
	}

	workers := s.Concurrency
	if workers < 1 {
		workers = settings.DefaultConcurrency
	}
	if workers > len(kws) {
		workers = len(kws)
	}

	results := make([]scrapers.RefreshResult, len(kws))
	jobs := make(chan job, len(kws))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range jobs {
				result, err := r.scraper.Refresh(ctx, j.kw, s)
				if err != nil {
					result = scrapers.RefreshResult{ID: j.kw.ID, Error: err}
					r.logger.WithFields(logrus.Fields{
						"worker":     worker,
						"keyword_id": j.kw.ID,
						"keyword":    j.kw.Keyword,
					}).WithError(err).Error("Scraper failed for keyword")
				}
				results[j.index] = result
			}
		}(w)
	}

	for i, kw := range kws {
		jobs <- job{index: i, kw: kw}
	}
	close(jobs)
	wg.Wait()

	return results
}
