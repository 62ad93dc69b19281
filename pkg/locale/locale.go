// Package locale resolves keyword targeting data (country codes, display
// names, interface languages and free-text locations) into values the SERP
// providers accept.
package locale

import "strings"

// DefaultCountry is used whenever a requested country code cannot be resolved.
const DefaultCountry = "US"

// placeholder entries exist in the table for display purposes only and are
// never considered valid targeting codes.
const placeholderCode = "ZZ"

// IsSupported reports whether the given code maps to a real country entry.
// The comparison is case-insensitive; the placeholder entry never matches.
func IsSupported(code string) bool {
	upper := strings.ToUpper(code)
	if upper == placeholderCode {
		return false
	}
	_, ok := Countries[upper]
	return ok
}

// ResolveCountryCode validates a requested country code and falls back
// deterministically when it cannot be used.
//
// With no allow-list, a supported code is returned with its original casing
// and anything else resolves to the fallback. With an allow-list, the
// requested code must be both supported and allowed; otherwise the fallback
// wins if it is supported and allowed, then the first supported entry of the
// allow-list, then the fallback. An empty fallback argument means "US".
// The function is total: it never fails, whatever the inputs.
func ResolveCountryCode(country string, allowed []string, fallback string) string {
	if fallback == "" {
		fallback = DefaultCountry
	}
	fallback = strings.ToUpper(fallback)

	if country == "" {
		return fallback
	}

	if len(allowed) > 0 {
		allowedSet := make(map[string]bool, len(allowed))
		for _, code := range allowed {
			allowedSet[strings.ToUpper(code)] = true
		}
		if IsSupported(country) && allowedSet[strings.ToUpper(country)] {
			return country
		}
		if IsSupported(fallback) && allowedSet[fallback] {
			return fallback
		}
		for _, code := range allowed {
			if IsSupported(code) {
				return strings.ToUpper(code)
			}
		}
		return fallback
	}

	if IsSupported(country) {
		return country
	}
	return fallback
}

// ParseLocation splits a free-text keyword location ("city,state,countryCode")
// into its city and state segments, tolerating missing parts.
func ParseLocation(location string) (city, state string) {
	if location == "" {
		return "", ""
	}
	parts := strings.Split(location, ",")
	if len(parts) > 0 {
		city = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		state = strings.TrimSpace(parts[1])
	}
	return city, state
}

// DisplayName returns the human-readable country name for a code, resolving
// unknown codes through ResolveCountryCode first.
func DisplayName(code string) string {
	resolved := ResolveCountryCode(code, nil, DefaultCountry)
	if country, ok := Countries[strings.ToUpper(resolved)]; ok {
		return country.Name
	}
	return Countries[DefaultCountry].Name
}

// Lang returns the Google interface language associated with a country code,
// defaulting to English when the code is unknown.
func Lang(code string) string {
	if country, ok := Countries[strings.ToUpper(code)]; ok && country.Lang != "" {
		return country.Lang
	}
	return "en"
}
