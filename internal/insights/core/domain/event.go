package domain

import (
	"strconv"
	"strings"
	"time"
)

// RawEvent is one row as returned by the data source: a loose bag of
// view-specific fields. Which field plays which role is decided by the
// FieldMapping of the active view.
type RawEvent map[string]any

// Role is the binary classification of an event's originator.
type Role string

const (
	RoleHuman     Role = "HUMAN"
	RoleAutomated Role = "AUTOMATED"
)

// FieldMapping names the source fields of a view's rows. Empty field names
// mean the view does not carry that attribute.
type FieldMapping struct {
	SessionKey  string `yaml:"session_key"`
	Timestamp   string `yaml:"timestamp"`
	Role        string `yaml:"role"`
	Text        string `yaml:"text"`
	Score       string `yaml:"score"`
	Participant string `yaml:"participant"`
	TypeTag     string `yaml:"type_tag"`
	Unit        string `yaml:"unit"`

	// FallbackType labels rows whose TypeTag field is absent or empty.
	FallbackType string `yaml:"fallback_type"`
	// ExcludeType drops rows whose TypeTag equals it before any processing.
	// Empty means no pre-filter.
	ExcludeType string `yaml:"exclude_type"`
}

// NormalizedEvent is a RawEvent after field mapping and cleanup. Index is the
// position in the source slice and breaks ties between equal timestamps.
type NormalizedEvent struct {
	SessionKey  string
	Role        Role
	Text        string
	Score       *float64
	Timestamp   time.Time
	HasTime     bool
	TypeTag     string
	Participant string
	Unit        string
	Index       int
	Raw         RawEvent
}

// StringField reads a field as a string, tolerating non-string values the
// backend may hand back.
func (e RawEvent) StringField(name string) string {
	if name == "" {
		return ""
	}
	v, ok := e[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// NumericField coerces a field to a number. Missing, nil, empty-string and
// unparseable values all mean "no score".
func (e RawEvent) NumericField(name string) *float64 {
	if name == "" {
		return nil
	}
	v, ok := e[name]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// TimeField parses a field as a timestamp. The second return reports whether
// a usable time was found; rows without one are kept but excluded from
// min/max widening.
func (e RawEvent) TimeField(name string) (time.Time, bool) {
	if name == "" {
		return time.Time{}, false
	}
	v, ok := e[name]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		return parseTimestamp(t)
	default:
		return time.Time{}, false
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
