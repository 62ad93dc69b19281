package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/scrapers"
	"github.com/rankwatch/rankwatch/pkg/serialize"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// timestampLayout is the millisecond-precision timestamp persisted in
// lastUpdated on a successful refresh.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// updateKeywordPosition merges one refresh result into the keyword's
// persistent state and returns the normalized keyword. Persistence failures
// are logged and swallowed; the caller always receives the merged view.
func (r *Refresher) updateKeywordPosition(ctx context.Context, kw keywords.Keyword, result scrapers.RefreshResult, s *settings.Settings) keywords.Keyword {
	now := time.Now()

	// A zero result position means the domain was not found (or the attempt
	// failed), so the previously stored position carries over.
	position := result.Position
	if position == 0 {
		position = kw.Position
	}

	history := make(keywords.History, len(kw.History)+1)
	for day, pos := range kw.History {
		history[day] = pos
	}
	history[dayKey(now)] = position

	lastResult := result.Result
	if lastResult == nil {
		lastResult = []keywords.SearchResult{}
	}

	update := keywords.RefreshUpdate{
		Position:        position,
		URL:             nullableURL(result.URL),
		LastResult:      marshalJSON(lastResult, "[]"),
		History:         marshalJSON(history, "{}"),
		LastUpdateError: keywords.NoErrorSentinel,
		MapPackTop3:     result.MapPackTop3 != nil && *result.MapPackTop3,
	}

	lastUpdated := kw.LastUpdated
	var updateErr *keywords.UpdateError
	if result.Error != nil {
		record, parsed := errorRecord(now, serialize.Error(result.Error), s.ScraperType)
		update.LastUpdateError = record
		updateErr = &parsed
	} else {
		ts := now.UTC().Format(timestampLayout)
		update.LastUpdated = &ts
		lastUpdated = ts
	}

	r.reconcileRetryQueue(kw.ID, result.Error != nil, s)

	if err := r.keywords.SaveRefresh(ctx, kw.ID, update); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"keyword_id": kw.ID,
			"keyword":    kw.Keyword,
		}).Error("Failed to persist keyword refresh")
	} else {
		r.logger.WithFields(logrus.Fields{
			"keyword_id": kw.ID,
			"keyword":    kw.Keyword,
			"position":   position,
		}).Info("Keyword position updated")
	}

	updated := kw
	updated.Position = position
	updated.Updating = false
	updated.URL = result.URL
	updated.History = history
	updated.LastResult = lastResult
	updated.LastUpdated = lastUpdated
	updated.LastUpdateError = updateErr
	updated.MapPackTop3 = update.MapPackTop3
	return updated
}

// reconcileRetryQueue queues the keyword for a later re-attempt when retries
// are enabled and the attempt failed, and dequeues it in every other case.
// Queue failures never affect the refresh outcome.
func (r *Refresher) reconcileRetryQueue(id uint, failed bool, s *settings.Settings) {
	if failed && s.ScrapeRetry {
		if err := r.queue.Add(id); err != nil {
			r.logger.WithError(err).WithField("keyword_id", id).Error("Failed to queue keyword for retry")
		}
		return
	}
	if err := r.queue.Remove(id); err != nil {
		r.logger.WithError(err).WithField("keyword_id", id).Error("Failed to dequeue keyword retry")
	}
}

// dayKey builds the unpadded local calendar key history entries are stored
// under, e.g. "2026-8-31".
func dayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// errorRecord builds both the persisted JSON error record and its parsed
// form.
func errorRecord(t time.Time, message, scraperType string) (string, keywords.UpdateError) {
	record := keywords.UpdateError{
		Date:    t.UTC().Format(timestampLayout),
		Error:   message,
		Scraper: scraperType,
	}
	return marshalJSON(record, keywords.NoErrorSentinel), record
}

// nullableURL maps the empty string to SQL NULL so a not-found result erases
// any stale ranking URL.
func nullableURL(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}

func marshalJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}
