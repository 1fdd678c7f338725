// internal/domain/normalize/normalize.go
package normalize

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates ("2006-01-02").
// Zero-padded ISO, so lexicographic comparison equals chronological order.
const DateLayout = "2006-01-02"

// accentFold maps the accented runes that appear in vendor data to their
// base letters. The set is closed (Spanish labels only).
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a', 'ã': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

// Fold lowercases and strips diacritics. Total: returns "" for empty input.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if base, ok := accentFold[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseDate parses a YYYY-MM-DD string as a local calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysUntil computes the whole-day difference between a YYYY-MM-DD string and
// a reference date, both taken as local calendar days. The second return is
// false when the date string is absent or malformed; callers must not treat
// that case as "due today".
func DaysUntil(dateStr string, ref time.Time) (int, bool) {
	d, ok := ParseDate(dateStr)
	if !ok {
		return 0, false
	}
	// Compare as UTC midnights built from the calendar components so that
	// DST transitions cannot skew the division.
	a := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b) / (24 * time.Hour)), true
}

// AddToDate shifts a YYYY-MM-DD string by calendar months and days, with
// Go's AddDate normalization for month-end overflow. Returns false for
// absent/malformed input.
func AddToDate(dateStr string, months, days int) (string, bool) {
	d, ok := ParseDate(dateStr)
	if !ok {
		return "", false
	}
	return d.AddDate(0, months, days).Format(DateLayout), true
}

// DateInRange reports whether dateStr falls inside [from, to] inclusive.
// Empty bounds match everything on that side; an empty dateStr only matches
// when both bounds are empty.
func DateInRange(dateStr, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	if dateStr == "" {
		return false
	}
	if from != "" && dateStr < from {
		return false
	}
	if to != "" && dateStr > to {
		return false
	}
	return true
}

// FirstWord returns the first whitespace-separated token of s.
func FirstWord(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
