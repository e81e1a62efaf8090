// Package jsonutil provides small helpers for the loosely typed JSON values
// that travel through dialogo as opaque view content.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalLine unmarshals a single JSON line (string) into v.
// Returns an error if the line is empty or cannot be parsed.
func UnmarshalLine(line string, v any) error {
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("empty JSON line")
	}
	return json.Unmarshal([]byte(line), v)
}

// UnmarshalLineSafe unmarshals a single JSON line (string) into v.
// Returns false if the line is empty or cannot be parsed, true on success.
func UnmarshalLineSafe(line string, v any) bool {
	return UnmarshalLine(line, v) == nil
}

// GetString safely extracts a string value from a map[string]any.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]any, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// ToString converts a decoded JSON value to a one-line string.
// Handles string, float64 (formatted as integer when whole), bool, nil,
// and falls back to compact JSON for objects and arrays.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}
