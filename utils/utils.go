package utils

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var nameFolder = cases.Fold()

// NormalizeName case-folds and whitespace-collapses a game or player name
// so "Catan", "catan " and "CATAN" consolidate into one leaderboard row.
func NormalizeName(name string) string {
	folded := nameFolder.String(strings.TrimSpace(name))
	return strings.Join(strings.Fields(folded), " ")
}

// DisplayName trims a raw name for display without changing its casing.
func DisplayName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ParseDate accepts the wire date format used by the web client.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
