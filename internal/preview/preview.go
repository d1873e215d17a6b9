package preview

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ynab-import/ynab-import/internal/model"
)

// Header is the CSV header of a batch preview.
const Header = "date,payee,amount,milliunits,category_id,flag_color,import_id"

const (
	numFields     = 7
	colDate       = 0
	colPayee      = 1
	colAmount     = 2
	colMilliunits = 3
	colCategory   = 4
	colFlag       = 5
	colImportID   = 6
)

// MarshalTransaction converts a Transaction to a preview row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date
	row[colPayee] = txn.PayeeName
	row[colAmount] = decimal.New(txn.Amount, -3).StringFixed(2)
	row[colMilliunits] = strconv.FormatInt(txn.Amount, 10)
	if txn.CategoryID != nil {
		row[colCategory] = *txn.CategoryID
	}
	row[colFlag] = txn.FlagColor
	row[colImportID] = txn.ImportID
	return row
}

// Write renders batch as CSV, header first.
func Write(w io.Writer, batch model.Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range batch.Transactions {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
