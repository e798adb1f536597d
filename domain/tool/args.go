package tool

import (
	"regexp"
	"strings"
	"time"
)

// Args holds the raw arguments of one tool invocation. Values arrive as
// decoded JSON, so numbers are float64 unless the caller passed a Go int.
type Args map[string]any

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// String returns a trimmed string argument and whether it was present and
// non-empty.
func (a Args) String(key string) (string, bool) {
	raw, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Int returns an integer argument, substituting def when the argument is
// absent or not numeric.
func (a Args) Int(key string, def int) int {
	raw, ok := a[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Has reports whether key was supplied at all.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
