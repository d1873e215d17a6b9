package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatImportID(t *testing.T) {
	tests := []struct {
		amount     int64
		date       string
		occurrence int
		want       string
	}{
		{-2500, "2023-01-07", 1, "YNAB:-2500:2023-01-07:1"},
		{10000, "2023-01-06", 2, "YNAB:10000:2023-01-06:2"},
		{0, "2023-12-31", 1, "YNAB:0:2023-12-31:1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatImportID(tt.amount, tt.date, tt.occurrence))
	}
}

func TestFormatImportID_Truncates(t *testing.T) {
	got := FormatImportID(-123456789012345, "2023-01-07T00:00:00Z", 1)
	assert.Len(t, got, maxImportIDLen)
}

func TestParseImportID(t *testing.T) {
	amount, date, occ, err := ParseImportID("YNAB:-2500:2023-01-07:3")
	require.NoError(t, err)
	assert.Equal(t, int64(-2500), amount)
	assert.Equal(t, "2023-01-07", date)
	assert.Equal(t, 3, occ)
}

func TestParseImportID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"bad",
		"YNAB:abc:2023-01-07:1",
		"YNAB:100:2023-01-07:x",
		"XNAB:100:2023-01-07:1",
	}
	for _, s := range tests {
		_, _, _, err := ParseImportID(s)
		assert.Error(t, err, "ParseImportID(%q) should fail", s)
	}
}

func TestSequencer(t *testing.T) {
	s := NewSequencer()
	assert.Equal(t, "YNAB:-2500:2023-01-07:1", s.Next(-2500, "2023-01-07"))
	assert.Equal(t, "YNAB:-2500:2023-01-07:2", s.Next(-2500, "2023-01-07"))
	assert.Equal(t, "YNAB:-2500:2023-01-08:1", s.Next(-2500, "2023-01-08"))
	assert.Equal(t, "YNAB:-2400:2023-01-07:1", s.Next(-2400, "2023-01-07"))
}
