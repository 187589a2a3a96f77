// Package domain defines the records shown by the dashboard and the helpers
// that turn their raw JSON values into display text.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is a single entity (activity, user, team, workout or leaderboard
// entry) exactly as the API returned it. Numbers are kept as json.Number so
// they display the way the server wrote them.
type Record map[string]any

// Lookup returns the first key present with a non-null value.
func (r Record) Lookup(keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := r[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

// Text returns the display text of the first present key, or "" when none is.
func (r Record) Text(keys ...string) string {
	value, ok := r.Lookup(keys...)
	if !ok {
		return ""
	}
	return FormatValue(value)
}

// TextOr is Text with a placeholder for absent or falsy values.
func (r Record) TextOr(placeholder string, keys ...string) string {
	value, ok := r.Lookup(keys...)
	if !ok || !Truthy(value) {
		return placeholder
	}
	return FormatValue(value)
}

// Has reports whether the first present key holds a truthy value.
func (r Record) Has(keys ...string) bool {
	value, ok := r.Lookup(keys...)
	return ok && Truthy(value)
}

// Date formats the first present key as a calendar date.
func (r Record) Date(keys ...string) string {
	value, ok := r.Lookup(keys...)
	if !ok {
		return Placeholder
	}
	return FormatDate(FormatValue(value))
}

// Placeholder is shown for a missing optional value.
const Placeholder = "N/A"

// InvalidDate is shown for a date value that cannot be parsed.
const InvalidDate = "Invalid Date"

// FormatValue renders a decoded JSON value as plain text.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Truthy follows the API consumers' notion of a present value: empty strings,
// zero, false and null are absent.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatDate renders a timestamp as M/D/YYYY in UTC.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC().Format("1/2/2006")
		}
	}
	return InvalidDate
}
