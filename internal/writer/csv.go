// Package writer serializes parsed transactions into downloadable formats.
package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/ledgerlift/statement-converter/internal/models"
)

// csvRow is the flat CSV representation of a transaction. Amounts are
// rendered with two decimal places and absent amounts as empty cells.
type csvRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	Balance     string `csv:"Balance"`
}

// CSVWriter writes transactions as CSV. With BOM set, a UTF-8 byte order
// mark is prepended so Excel opens the file with the right encoding.
type CSVWriter struct {
	BOM bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, txns)
}

// Write writes transactions in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	if w.BOM {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	rows := make([]csvRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, csvRow{
			Date:        t.Date,
			Description: t.Description,
			Debit:       amountCell(t.Debit),
			Credit:      amountCell(t.Credit),
			Balance:     amountCell(t.Balance),
		})
	}
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("marshal CSV: %w", err)
	}
	return nil
}

func amountCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
