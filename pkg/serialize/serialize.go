// Package serialize turns arbitrary failure values (native errors, provider
// error payloads, plain values) into a single human-readable string.
package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UnserializableError is returned when a value cannot be rendered as JSON,
// typically because it contains a cycle.
const UnserializableError = "Unserializable error object"

// UnknownError is returned for nil values and empty strings.
const UnknownError = "Unknown error"

// Error converts any value into a descriptive string. It never panics:
// whatever shape the providers or the runtime hand us, the caller always
// gets something loggable back.
//
// Native errors contribute their message plus the message of their unwrapped
// cause. Provider payloads exposing status/error fields and a nested
// request_info.error.message flatten to "[<status>] <error> <message>".
// Everything else renders as JSON, with a fixed sentinel when rendering
// fails.
func Error(v any) string {
	if v == nil {
		return UnknownError
	}

	if err, ok := v.(error); ok {
		msg := err.Error()
		if cause := errors.Unwrap(err); cause != nil {
			msg = msg + ": " + cause.Error()
		}
		if msg == "" {
			return UnknownError
		}
		return msg
	}

	switch val := v.(type) {
	case string:
		if val == "" {
			return UnknownError
		}
		return val
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprintf("%v", val)
	}

	if m, ok := v.(map[string]any); ok {
		if msg := fromPayload(m); msg != "" {
			return msg
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return UnserializableError
	}

	// Structs carrying provider error fields flatten the same way maps do.
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		if msg := fromPayload(m); msg != "" {
			return msg
		}
	}

	return string(data)
}

// fromPayload flattens a provider error payload into a readable line, or
// returns "" when the payload exposes no recognizable fields.
func fromPayload(m map[string]any) string {
	var parts []string

	if status, ok := asNumber(m["status"]); ok {
		parts = append(parts, fmt.Sprintf("[%v]", status))
	}

	switch errVal := m["error"].(type) {
	case string:
		if errVal != "" {
			parts = append(parts, errVal)
		}
	case float64:
		if len(parts) == 0 {
			parts = append(parts, fmt.Sprintf("[%v]", formatNumber(errVal)))
		} else {
			parts = append(parts, formatNumber(errVal))
		}
	case map[string]any:
		if msg, ok := errVal["message"].(string); ok && msg != "" {
			parts = append(parts, msg)
		}
	}

	if msg, ok := m["message"].(string); ok && msg != "" {
		parts = append(parts, msg)
	}

	if info, ok := m["request_info"].(map[string]any); ok {
		switch nested := info["error"].(type) {
		case string:
			if nested != "" {
				parts = append(parts, nested)
			}
		case map[string]any:
			if msg, ok := nested["message"].(string); ok && msg != "" {
				parts = append(parts, msg)
			}
		}
	}

	return strings.Join(parts, " ")
}

func asNumber(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return n, true
	case float64:
		return formatNumber(n), true
	default:
		return nil, false
	}
}

// formatNumber keeps JSON-decoded integers free of a trailing ".0".
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", f)
}
