package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynab-import/ynab-import/internal/model"
)

func TestMarshalTransaction(t *testing.T) {
	cat := "62e38839-ff0f-4812-a253-aef130da1691"
	row := MarshalTransaction(model.Transaction{
		Date:       "2023-01-06",
		PayeeName:  "EMPLOYER",
		Amount:     1200000,
		CategoryID: &cat,
		FlagColor:  "blue",
	})
	assert.Equal(t, []string{"2023-01-06", "EMPLOYER", "1200.00", "1200000", cat, "blue", ""}, row)
}

func TestMarshalTransaction_Negative(t *testing.T) {
	row := MarshalTransaction(model.Transaction{Date: "2023-01-07", Amount: -2500})
	assert.Equal(t, "-2.50", row[colAmount])
	assert.Equal(t, "-2500", row[colMilliunits])
	assert.Empty(t, row[colCategory])
}

func TestWrite(t *testing.T) {
	batch := model.Batch{Transactions: []model.Transaction{
		{Date: "2023-01-06", PayeeName: "SHOP, INC", Amount: -62170, ImportID: "YNAB:-62170:2023-01-06:1"},
		{Date: "2023-01-07", PayeeName: "REFUND", Amount: 10000},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, batch))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, `2023-01-06,"SHOP, INC",-62.17,-62170,,,YNAB:-62170:2023-01-06:1`, lines[1])
	assert.Equal(t, "2023-01-07,REFUND,10.00,10000,,,", lines[2])
}
