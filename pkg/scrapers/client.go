package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rankwatch/rankwatch/pkg/keywords"
	"github.com/rankwatch/rankwatch/pkg/settings"
)

// DefaultTimeout applies to providers that declare no timeout of their own.
const DefaultTimeout = 60 * time.Second

// Client dispatches refresh requests to the active provider adapter and
// normalizes the raw response into a RefreshResult. It owns the HTTP
// lifecycle; adapters only build requests and extract results.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a dispatch client. Per-request timeouts come from the
// adapter (or DefaultTimeout), so the underlying http.Client carries none.
func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Refresh queries the active provider for one keyword and returns the
// canonical result: resolved position, ranking URL, ordered organic results
// and the map-pack signal. HTTP-level and parse failures are returned as
// errors for the orchestrator to record against the keyword.
func (c *Client) Refresh(ctx context.Context, kw keywords.Keyword, s *settings.Settings) (RefreshResult, error) {
	adapter, err := Get(s.ScraperType)
	if err != nil {
		return RefreshResult{ID: kw.ID}, err
	}

	timeout := adapter.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scrapeURL := adapter.ScrapeURL(kw, s)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scrapeURL, nil)
	if err != nil {
		return RefreshResult{ID: kw.ID}, fmt.Errorf("error creating request: %w", err)
	}
	if adapter.Headers != nil {
		for key, value := range adapter.Headers(kw, s) {
			req.Header.Set(key, value)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"keyword_id": kw.ID,
		"keyword":    kw.Keyword,
		"scraper":    adapter.ID,
		"device":     kw.Device,
		"country":    kw.Country,
	}).Debug("Dispatching refresh request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"keyword_id": kw.ID,
			"scraper":    adapter.ID,
		}).Error("Provider request failed")
		return RefreshResult{ID: kw.ID}, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RefreshResult{ID: kw.ID}, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == StatusRateLimit {
		c.logger.WithFields(logrus.Fields{
			"keyword_id": kw.ID,
			"scraper":    adapter.ID,
		}).Warn("Provider rate limit exceeded")
		return RefreshResult{ID: kw.ID}, NewRateLimitError(0, "")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return RefreshResult{ID: kw.ID}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    snippet(body),
		}
	}

	// Providers occasionally serve HTML error pages with a 200; those must
	// surface as parse failures, not panics downstream.
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return RefreshResult{ID: kw.ID}, fmt.Errorf("invalid JSON response for %s: %w", adapter.Name, err)
	}

	extracted, err := adapter.Extract(ExtractorInput{
		Result:   parsed[adapter.ResultKey],
		Response: parsed,
		Keyword:  kw,
	})
	if err != nil {
		return RefreshResult{ID: kw.ID}, err
	}

	position, rankingURL := LocateDomain(kw.Domain, extracted.Organic)

	mapPack := extracted.MapPackTop3
	if !adapter.SupportsMapPack {
		mapPack = nil
	}

	c.logger.WithFields(logrus.Fields{
		"keyword_id": kw.ID,
		"keyword":    kw.Keyword,
		"scraper":    adapter.ID,
		"position":   position,
		"results":    len(extracted.Organic),
	}).Debug("Refresh request completed")

	return RefreshResult{
		ID:          kw.ID,
		Position:    position,
		URL:         rankingURL,
		Result:      extracted.Organic,
		MapPackTop3: mapPack,
	}, nil
}

// LocateDomain finds the tracked domain among the organic results and
// returns its position and landing URL. Position 0 means not found. The
// match is hostname-based and insensitive to case and a www prefix.
func LocateDomain(domain string, organic []keywords.SearchResult) (int, string) {
	target := normalizeHost(domain)
	if target == "" {
		return 0, ""
	}
	for i, entry := range organic {
		parsed, err := url.Parse(entry.URL)
		if err != nil || parsed.Hostname() == "" {
			continue
		}
		if normalizeHost(parsed.Hostname()) == target {
			position := entry.Position
			if position == 0 {
				position = i + 1
			}
			return position, entry.URL
		}
	}
	return 0, ""
}

// snippet bounds an error body for inclusion in an APIError message.
func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		text = "empty response body"
	}
	return text
}
