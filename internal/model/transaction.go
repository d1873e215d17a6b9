package model

// ClearedStatus is the reconciliation state the service tracks per transaction.
type ClearedStatus string

const (
	ClearedStatusUncleared  ClearedStatus = "uncleared"
	ClearedStatusCleared    ClearedStatus = "cleared"
	ClearedStatusReconciled ClearedStatus = "reconciled"
)

// Record is one parsed CSV row. Values are raw and positional, so repeated
// or blank header names do not hide columns.
type Record struct {
	Line   int      // line of the row within the CSV block, header = 1
	Fields []string // header names, shared by every record of a parse
	Values []string
}

// At returns the value in column i, or "" when the row is shorter.
func (r Record) At(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Get returns the value of the first column named name.
func (r Record) Get(name string) (string, bool) {
	for i, f := range r.Fields {
		if f == name {
			return r.At(i), true
		}
	}
	return "", false
}

// Transaction is a single transaction as sent to the budgeting service.
type Transaction struct {
	AccountID  string        `json:"account_id"`
	Date       string        `json:"date"`   // as exported by the bank, trimmed
	Amount     int64         `json:"amount"` // milliunits
	PayeeName  string        `json:"payee_name"`
	CategoryID *string       `json:"category_id"`
	Cleared    ClearedStatus `json:"cleared"`
	Approved   bool          `json:"approved"`
	FlagColor  string        `json:"flag_color,omitempty"`
	ImportID   string        `json:"import_id,omitempty"`
}

// Batch is the payload of a bulk create request.
type Batch struct {
	BudgetID     string        `json:"budget_id"`
	Transactions []Transaction `json:"transactions"`
}

// Len returns the number of transactions in the batch.
func (b Batch) Len() int { return len(b.Transactions) }

// RemoteTransaction is the subset of a service-side transaction the
// incremental filter needs.
type RemoteTransaction struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"`
	PayeeName string `json:"payee_name"`
	Deleted   bool   `json:"deleted"`
}
