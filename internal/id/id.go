package id

import (
	"fmt"
	"strconv"
	"strings"
)

// maxImportIDLen is the longest import_id the service accepts.
const maxImportIDLen = 36

// FormatImportID returns an import id like "YNAB:-2500:2023-01-07:1".
// occurrence starts at 1 and counts identical amount/date pairs.
func FormatImportID(amount int64, date string, occurrence int) string {
	s := fmt.Sprintf("YNAB:%d:%s:%d", amount, date, occurrence)
	if len(s) > maxImportIDLen {
		s = s[:maxImportIDLen]
	}
	return s
}

// ParseImportID parses "YNAB:-2500:2023-01-07:1" into its parts.
func ParseImportID(importID string) (amount int64, date string, occurrence int, err error) {
	parts := strings.Split(importID, ":")
	if len(parts) != 4 || parts[0] != "YNAB" {
		return 0, "", 0, fmt.Errorf("invalid import ID format: %q", importID)
	}

	amount, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", 0, fmt.Errorf("invalid amount in import ID %q: %w", importID, err)
	}

	occurrence, err = strconv.Atoi(parts[3])
	if err != nil {
		return 0, "", 0, fmt.Errorf("invalid occurrence in import ID %q: %w", importID, err)
	}

	return amount, parts[2], occurrence, nil
}

// Sequencer hands out occurrence numbers per amount/date pair.
type Sequencer struct {
	seen map[string]int
}

// NewSequencer creates an empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{seen: make(map[string]int)}
}

// Next returns the import id for the next transaction with this amount and date.
func (s *Sequencer) Next(amount int64, date string) string {
	key := strconv.FormatInt(amount, 10) + ":" + date
	s.seen[key]++
	return FormatImportID(amount, date, s.seen[key])
}
