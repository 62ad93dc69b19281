package keywords

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rankwatch/rankwatch/pkg/db/models"
)

// NormalizeHistory canonicalizes a decoded history value into a day-keyed
// position map. Legacy rows persisted the history as a JSON array; those and
// any other non-mapping shapes normalize to an empty map. Values that fail
// numeric coercion are dropped.
func NormalizeHistory(raw any) History {
	history := History{}
	m, ok := raw.(map[string]any)
	if !ok {
		return history
	}
	for key, value := range m {
		if key == "" {
			continue
		}
		switch v := value.(type) {
		case float64:
			history[key] = int(v)
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				history[key] = int(n)
			}
		}
	}
	return history
}

// NormalizeBoolean coerces the boolean shapes older installations persisted
// (0/1, "true"/"false", "yes"/"no") into a native bool.
func NormalizeBoolean(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	case nil:
		return false
	default:
		return true
	}
}

// ParseKeyword converts a persisted keyword row into the canonical in-memory
// view. All legacy shape coercion happens here, once, so the refresh engine
// never re-implements it.
func ParseKeyword(row models.Keyword) Keyword {
	var rawHistory any
	if err := json.Unmarshal([]byte(row.History), &rawHistory); err != nil {
		rawHistory = nil
	}
	history := NormalizeHistory(rawHistory)

	var lastResult []SearchResult
	if err := json.Unmarshal([]byte(row.LastResult), &lastResult); err != nil || lastResult == nil {
		lastResult = []SearchResult{}
	}

	var lastUpdateError *UpdateError
	if row.LastUpdateError != NoErrorSentinel && strings.Contains(row.LastUpdateError, "{") {
		var parsed UpdateError
		if err := json.Unmarshal([]byte(row.LastUpdateError), &parsed); err == nil {
			lastUpdateError = &parsed
		} else {
			lastUpdateError = &UpdateError{}
		}
	}

	url := ""
	if row.URL != nil {
		url = *row.URL
	}

	tags := []string(row.Tags)
	if tags == nil {
		tags = []string{}
	}

	return Keyword{
		ID:              row.ID,
		Keyword:         row.Keyword,
		Device:          row.Device,
		Country:         row.Country,
		Location:        row.Location,
		Domain:          row.Domain,
		Position:        row.Position,
		URL:             url,
		History:         history,
		LastResult:      lastResult,
		Tags:            tags,
		Volume:          row.Volume,
		Sticky:          row.Sticky,
		Updating:        row.Updating,
		LastUpdated:     row.LastUpdated,
		Added:           row.Added,
		LastUpdateError: lastUpdateError,
		MapPackTop3:     row.MapPackTop3,
	}
}

// ParseKeywords converts a batch of persisted rows.
func ParseKeywords(rows []models.Keyword) []Keyword {
	parsed := make([]Keyword, len(rows))
	for i, row := range rows {
		parsed[i] = ParseKeyword(row)
	}
	return parsed
}
