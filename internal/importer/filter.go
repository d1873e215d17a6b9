package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ynab-import/ynab-import/internal/model"
)

// Slash dates are left out: 05/01/2023 is May 1st in some exports and
// January 5th in others.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDay parses a transaction date and truncates it to midnight UTC.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return dateOnly(t), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parsing date %q: %w", s, lastErr)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LatestDate returns the day of the most recent non-deleted remote
// transaction. ok is false when there is none. Server order is not assumed.
func LatestDate(remote []model.RemoteTransaction) (latest time.Time, ok bool, err error) {
	for _, r := range remote {
		if r.Deleted {
			continue
		}
		day, err := ParseDay(r.Date)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("remote transaction %s: %w", r.ID, err)
		}
		if !ok || day.After(latest) {
			latest = day
			ok = true
		}
	}
	return latest, ok, nil
}

// FilterAfter keeps transactions dated strictly after boundary, compared by day.
func FilterAfter(txns []model.Transaction, boundary time.Time) ([]model.Transaction, error) {
	boundary = dateOnly(boundary)
	out := make([]model.Transaction, 0, len(txns))
	for i, txn := range txns {
		day, err := ParseDay(txn.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		if day.After(boundary) {
			out = append(out, txn)
		}
	}
	return out, nil
}
