package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ynab-import/ynab-import/internal/id"
	"github.com/ynab-import/ynab-import/internal/model"
)

// Positions of the columns the transformer reads. Header names at these
// positions vary between exports.
const (
	colDate   = 0
	colDebit  = 4
	colCredit = 5
	colPayee  = 6
	minFields = 7
)

var (
	milliunits = decimal.NewFromInt(1000)
	half       = decimal.New(5, -1)

	// grouped matches amounts with comma thousands separators, e.g. 1,234.56.
	grouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// ErrAmbiguousComma is returned for amounts whose comma is not a thousands
// separator, such as the decimal comma in "2,50".
var ErrAmbiguousComma = errors.New("comma is not a thousands separator")

// Transformer maps raw CSV records onto service transactions.
type Transformer struct {
	AccountID        string
	IncomeCategoryID string
	// FallbackCategoryID is assigned to outflows and zero amounts. Empty
	// leaves them uncategorized.
	FallbackCategoryID string
	FlagColor          string
	ImportIDs          bool
}

// Transform converts records in order. The first bad row aborts the batch and
// is reported by its line in the CSV block, counting the header as line 1.
func (t *Transformer) Transform(fields []string, records []model.Record) ([]model.Transaction, error) {
	if len(fields) < minFields {
		return nil, fmt.Errorf("expected at least %d columns, got %d", minFields, len(fields))
	}

	var seq *id.Sequencer
	if t.ImportIDs {
		seq = id.NewSequencer()
	}

	txns := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		txn, err := t.transformRecord(fields, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.Line, err)
		}
		if seq != nil {
			txn.ImportID = seq.Next(txn.Amount, txn.Date)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (t *Transformer) transformRecord(fields []string, rec model.Record) (model.Transaction, error) {
	debit, err := parseAmount(rec.At(colDebit))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing %s %q: %w", fields[colDebit], rec.At(colDebit), err)
	}
	credit, err := parseAmount(rec.At(colCredit))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing %s %q: %w", fields[colCredit], rec.At(colCredit), err)
	}

	amount := Milliunits(credit.Sub(debit))

	return model.Transaction{
		AccountID:  t.AccountID,
		Date:       strings.TrimSpace(rec.At(colDate)),
		Amount:     amount,
		PayeeName:  strings.TrimSpace(rec.At(colPayee)),
		CategoryID: t.categoryFor(amount),
		Cleared:    model.ClearedStatusUncleared,
		Approved:   false,
		FlagColor:  t.FlagColor,
	}, nil
}

func (t *Transformer) categoryFor(amount int64) *string {
	if amount > 0 {
		c := t.IncomeCategoryID
		return &c
	}
	if t.FallbackCategoryID == "" {
		return nil
	}
	c := t.FallbackCategoryID
	return &c
}

// parseAmount reads a debit or credit cell. Blank cells are zero. Commas are
// accepted only as thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		if !grouped.MatchString(s) {
			return decimal.Zero, ErrAmbiguousComma
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	return decimal.NewFromString(s)
}

// Milliunits scales d by 1000 and rounds half toward positive infinity.
func Milliunits(d decimal.Decimal) int64 {
	return d.Mul(milliunits).Add(half).Floor().IntPart()
}
