package writer

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	w := &XLSXWriter{}
	if err := w.WriteToFile(path, sampleTransactions()); err != nil {
		t.Fatalf("WriteToFile() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetTransactions {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	header, err := f.GetCellValue(sheetTransactions, "A1")
	if err != nil || header != "Date" {
		t.Errorf("A1 = %q, err = %v, want \"Date\"", header, err)
	}
	desc, _ := f.GetCellValue(sheetTransactions, "B2")
	if desc != "CARD PAYMENT TESCO" {
		t.Errorf("B2 = %q, want description of first transaction", desc)
	}
	credit, _ := f.GetCellValue(sheetTransactions, "D3")
	if credit == "" {
		t.Error("D3 empty, want credit amount")
	}
	debit, _ := f.GetCellValue(sheetTransactions, "C3")
	if debit != "" {
		t.Errorf("C3 = %q, want empty cell for absent debit", debit)
	}
}

func TestXLSXWriter_SummarySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	w := &XLSXWriter{}
	if err := w.WriteToFile(path, sampleTransactions()); err != nil {
		t.Fatalf("WriteToFile() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	count, _ := f.GetCellValue(sheetSummary, "B1")
	if count != "2" {
		t.Errorf("summary transaction count = %q, want \"2\"", count)
	}
	rng, _ := f.GetCellValue(sheetSummary, "B2")
	if rng != "2024-01-12 to 2024-01-15" {
		t.Errorf("summary date range = %q", rng)
	}
}

func TestTotals(t *testing.T) {
	debits, credits := Totals(sampleTransactions())
	if debits.StringFixed(2) != "25.99" {
		t.Errorf("debits = %s, want 25.99", debits)
	}
	if credits.StringFixed(2) != "2500.00" {
		t.Errorf("credits = %s, want 2500.00", credits)
	}

	debits, credits = Totals(nil)
	if !debits.IsZero() || !credits.IsZero() {
		t.Errorf("empty totals = %s / %s, want zero", debits, credits)
	}
}
