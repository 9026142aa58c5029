package parser

import (
	"regexp"
	"strings"

	"github.com/ledgerlift/statement-converter/internal/models"
)

// tableStrategy handles statements that keep a real column layout: it finds
// a header row naming the columns, records the character offset of each
// recognized column name, and slices every following line at those offsets.
type tableStrategy struct {
	dates      DateInterpreter
	vocab      Vocabulary
	classifier classifier
}

func (s *tableStrategy) Name() string { return "table" }

// columnSpan is the ephemeral column-position map entry: a recognized
// column role and the character offset its header word starts at. The map
// is derived once per document and discarded with the strategy run.
type columnSpan struct {
	role  string
	start int
}

var headerWordPattern = regexp.MustCompile(`\S+`)

func (s *tableStrategy) Extract(text string) []models.Transaction {
	lines := strings.Split(text, "\n")

	headerIdx := -1
	var columns []columnSpan
	for i, line := range lines {
		if cols, ok := s.detectHeader(line); ok {
			headerIdx = i
			columns = cols
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var txns []models.Transaction
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if txn, ok := s.parseRow(line, columns); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// detectHeader recognizes a header row: it must name at least a date-like
// column and one amount-like column. Returns the recognized columns in
// left-to-right order.
func (s *tableStrategy) detectHeader(line string) ([]columnSpan, bool) {
	var columns []columnSpan
	seen := map[string]bool{}
	for _, loc := range headerWordPattern.FindAllStringIndex(line, -1) {
		role, ok := s.vocab.columnRole(line[loc[0]:loc[1]])
		if !ok || seen[role] {
			continue
		}
		seen[role] = true
		columns = append(columns, columnSpan{role: role, start: loc[0]})
	}
	if !seen[colDate] {
		return nil, false
	}
	if !seen[colAmount] && !seen[colDebit] && !seen[colCredit] && !seen[colBalance] {
		return nil, false
	}
	return columns, true
}

// parseRow slices a data line at the header offsets. Each column's text runs
// from its own start to the next column's start, or to end of line for the
// last column. Rows without a parseable date are discarded.
func (s *tableStrategy) parseRow(line string, columns []columnSpan) (models.Transaction, bool) {
	cells := map[string]string{}
	for i, col := range columns {
		start := col.start
		if start > len(line) {
			break
		}
		end := len(line)
		if i+1 < len(columns) && columns[i+1].start < end {
			end = columns[i+1].start
		}
		cells[col.role] = strings.TrimSpace(line[start:end])
	}

	iso, ok := s.dates.Interpret(cells[colDate])
	if !ok {
		return models.Transaction{}, false
	}

	txn := models.Transaction{
		Date:        iso,
		Description: cells[colDescription],
	}
	if v, ok := parseCurrency(cells[colDebit]); ok {
		txn.Debit = ref(v.Abs())
	}
	if v, ok := parseCurrency(cells[colCredit]); ok {
		txn.Credit = ref(v.Abs())
	}
	if v, ok := parseCurrency(cells[colBalance]); ok {
		txn.Balance = ref(v.Abs())
	}
	// A generic amount column carries direction in its sign.
	if v, ok := parseCurrency(cells[colAmount]); ok && txn.Debit == nil && txn.Credit == nil {
		debit, credit := s.classifier.classifySingle(v, line)
		txn.Debit = debit
		txn.Credit = credit
	}
	return txn, true
}
