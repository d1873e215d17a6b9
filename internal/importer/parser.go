package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ynab-import/ynab-import/internal/model"
)

// ParseCSV splits a CSV block into its header fields and one Record per row.
// Blank lines are skipped. Values are returned as-is; trimming is left to
// the caller. Header names may repeat; rows are read by position.
func ParseCSV(text string) ([]string, []model.Record, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("reading CSV header: no header row")
		}
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	fields := append([]string(nil), header...)

	// csv.Reader pins FieldsPerRecord to the header width after the first read,
	// so short and long rows surface as csv.ErrFieldCount with their line.
	var records []model.Record
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parsing CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, model.Record{
			Line:   line,
			Fields: fields,
			Values: rec,
		})
	}
	return fields, records, nil
}
