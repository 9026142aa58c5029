package writer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerlift/statement-converter/internal/models"
)

const (
	sheetTransactions = "Transactions"
	sheetSummary      = "Summary"

	headerFill = "366092"
	altRowFill = "F8F9FA"
)

var currencyFormat = "£#,##0.00"

// XLSXWriter writes transactions as a styled Excel workbook with a
// transactions sheet and a summary sheet.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := w.build(txns)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, txns []models.Transaction) error {
	f, err := w.build(txns)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(txns []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetTransactions); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &currencyFormat,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}
	amountAltStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &currencyFormat,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{altRowFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("amount alt style: %w", err)
	}
	textAltStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{altRowFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("text alt style: %w", err)
	}

	headers := []string{"Date", "Description", "Debit", "Credit", "Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetTransactions, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetTransactions, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, t := range txns {
		row := i + 2
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheetTransactions, cellA, t.Date)
		f.SetCellValue(sheetTransactions, cellB, t.Description)
		setAmountCell(f, 3, row, t.Debit)
		setAmountCell(f, 4, row, t.Credit)
		setAmountCell(f, 5, row, t.Balance)

		cellC, _ := excelize.CoordinatesToCellName(3, row)
		cellE, _ := excelize.CoordinatesToCellName(5, row)
		alt := row%2 == 0
		if alt {
			f.SetCellStyle(sheetTransactions, cellA, cellB, textAltStyle)
			f.SetCellStyle(sheetTransactions, cellC, cellE, amountAltStyle)
		} else {
			f.SetCellStyle(sheetTransactions, cellC, cellE, amountStyle)
		}
	}

	f.SetColWidth(sheetTransactions, "A", "A", 12)
	f.SetColWidth(sheetTransactions, "B", "B", 40)
	f.SetColWidth(sheetTransactions, "C", "E", 15)
	if err := f.SetPanes(sheetTransactions, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header row: %w", err)
	}

	if err := w.writeSummary(f, txns, headerStyle, amountStyle); err != nil {
		return nil, err
	}
	return f, nil
}

func setAmountCell(f *excelize.File, col, row int, d *decimal.Decimal) {
	if d == nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(col, row)
	v, _ := d.Float64()
	f.SetCellValue(sheetTransactions, cell, v)
}

// writeSummary adds a sheet with headline figures for the statement.
func (w *XLSXWriter) writeSummary(f *excelize.File, txns []models.Transaction, headerStyle, amountStyle int) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	debits, credits := Totals(txns)
	dateRange := ""
	if len(txns) > 0 {
		dateRange = txns[0].Date
		if last := txns[len(txns)-1].Date; last != dateRange {
			dateRange += " to " + last
		}
	}

	rows := []struct {
		label string
		value any
	}{
		{"Transactions", len(txns)},
		{"Date range", dateRange},
		{"Total debits", amountValue(debits)},
		{"Total credits", amountValue(credits)},
		{"Net movement", amountValue(credits.Sub(debits))},
	}
	for i, r := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		f.SetCellValue(sheetSummary, labelCell, r.label)
		f.SetCellValue(sheetSummary, valueCell, r.value)
	}
	f.SetCellStyle(sheetSummary, "A1", "A5", headerStyle)
	f.SetCellStyle(sheetSummary, "B3", "B5", amountStyle)
	f.SetColWidth(sheetSummary, "A", "A", 18)
	f.SetColWidth(sheetSummary, "B", "B", 24)
	return nil
}

func amountValue(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// Totals sums the debit and credit columns across all transactions.
func Totals(txns []models.Transaction) (debits, credits decimal.Decimal) {
	for _, t := range txns {
		if t.Debit != nil {
			debits = debits.Add(*t.Debit)
		}
		if t.Credit != nil {
			credits = credits.Add(*t.Credit)
		}
	}
	return debits, credits
}
