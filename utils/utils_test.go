package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Catan", "catan"},
		{"catan ", "catan"},
		{"CATAN", "catan"},
		{"  Ticket   to  Ride ", "ticket to ride"},
		{"José", "josé"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeNameConsolidatesVariants(t *testing.T) {
	variants := []string{"Catan", "catan", "CATAN ", " caTAN"}
	for _, v := range variants {
		assert.Equal(t, NormalizeName(variants[0]), NormalizeName(v))
	}
}

func TestDisplayNameKeepsCasing(t *testing.T) {
	assert.Equal(t, "Ticket to Ride", DisplayName("  Ticket   to Ride "))
	assert.Equal(t, "CATAN", DisplayName("CATAN"))
}

func TestDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, "2026-08-01", FormatDate(parsed))

	_, err = ParseDate("01/08/2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}
