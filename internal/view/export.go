package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// ExportHeaders are the CSV columns written by WriteTransactionsCSV.
var ExportHeaders = []string{"Tx Hash", "Chain", "Asset", "Amount", "USD Value", "Date", "Risk Level", "Status"}

// WriteTransactionsCSV writes txs as CSV with a header row.
func WriteTransactionsCSV(w io.Writer, txs []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		record := []string{
			t.Hash,
			string(t.Chain),
			string(t.Asset),
			t.Amount.String(),
			t.USDValue.String(),
			t.Timestamp.UTC().Format(time.RFC3339Nano),
			string(t.RiskLevel),
			string(t.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
