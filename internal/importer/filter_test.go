package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynab-import/ynab-import/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFilterAfter_StrictDay(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2023-01-05", PayeeName: "same day"},
		{Date: "2023-01-06", PayeeName: "next day"},
	}

	got, err := FilterAfter(txns, day("2023-01-05"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "next day", got[0].PayeeName)
}

func TestFilterAfter_BoundaryTimeIgnored(t *testing.T) {
	txns := []model.Transaction{{Date: "2023-01-06"}}
	boundary := time.Date(2023, 1, 5, 23, 59, 0, 0, time.UTC)

	got, err := FilterAfter(txns, boundary)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFilterAfter_BadDate(t *testing.T) {
	_, err := FilterAfter([]model.Transaction{{Date: "yesterday"}}, day("2023-01-05"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestFilterAfter_AllOlder(t *testing.T) {
	got, err := FilterAfter([]model.Transaction{{Date: "2022-12-31"}}, day("2023-01-05"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLatestDate_UnorderedServer(t *testing.T) {
	remote := []model.RemoteTransaction{
		{ID: "a", Date: "2023-01-05"},
		{ID: "b", Date: "2023-01-09"},
		{ID: "c", Date: "2023-01-02"},
	}
	latest, ok, err := LatestDate(remote)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, day("2023-01-09"), latest)
}

func TestLatestDate_IgnoresDeleted(t *testing.T) {
	remote := []model.RemoteTransaction{
		{ID: "a", Date: "2023-01-05"},
		{ID: "b", Date: "2023-02-01", Deleted: true},
	}
	latest, ok, err := LatestDate(remote)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, day("2023-01-05"), latest)
}

func TestLatestDate_Empty(t *testing.T) {
	_, ok, err := LatestDate(nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestDate_BadRemoteDate(t *testing.T) {
	_, _, err := LatestDate([]model.RemoteTransaction{{ID: "x", Date: "soon"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote transaction x")
}

func TestParseDay(t *testing.T) {
	tests := []string{
		"2023-01-05",
		"2023-01-05T18:30:00Z",
		"2023-01-05 18:30:00",
		" 2023-01-05 ",
	}
	for _, s := range tests {
		got, err := ParseDay(s)
		require.NoError(t, err, "ParseDay(%q)", s)
		assert.Equal(t, day("2023-01-05"), got, "ParseDay(%q)", s)
	}
}

func TestParseDay_RejectsSlashDates(t *testing.T) {
	for _, s := range []string{"05/01/2023", "01/05/2023", "5/1/2023"} {
		_, err := ParseDay(s)
		require.Error(t, err, "ParseDay(%q)", s)
		assert.Contains(t, err.Error(), "parsing date")
	}
}

func TestFilterAfter_SlashDateFails(t *testing.T) {
	_, err := FilterAfter([]model.Transaction{{Date: "05/01/2023"}}, day("2023-01-04"))
	require.Error(t, err)
}
