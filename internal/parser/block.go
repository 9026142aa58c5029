package parser

import (
	"regexp"
	"strings"

	"github.com/ledgerlift/statement-converter/internal/models"
)

// blockStrategy handles OCR-shaped output where one transaction arrives as a
// blank-line-delimited chunk of short lines. Each qualifying block becomes a
// single transaction: the first dated line supplies the date, amounts are
// pooled across every line, and whatever text remains is the description.
type blockStrategy struct {
	dates      DateInterpreter
	classifier classifier
}

func (s *blockStrategy) Name() string { return "block" }

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

func (s *blockStrategy) Extract(text string) []models.Transaction {
	var txns []models.Transaction
	for _, block := range blankLinePattern.Split(text, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if txn, ok := s.parseBlock(block); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

func (s *blockStrategy) parseBlock(block string) (models.Transaction, bool) {
	// Blocks without any date-like substring are excluded entirely.
	if _, _, ok := findDate(block); !ok {
		return models.Transaction{}, false
	}

	lines := strings.Split(block, "\n")

	// The first line with an interpretable date supplies the block's date.
	var iso string
	for _, line := range lines {
		token, _, ok := findDate(line)
		if !ok {
			continue
		}
		if parsed, ok := s.dates.Interpret(token); ok {
			iso = parsed
			break
		}
	}
	if iso == "" {
		return models.Transaction{}, false
	}

	var pooled []amountToken
	var fragments []string
	for _, line := range lines {
		dateSpans := findDateSpans(line)
		amounts := extractAmounts(line, dateSpans...)
		pooled = append(pooled, amounts...)

		// Residual description text: the line with its date and amount
		// substrings removed.
		spans := make([][2]int, 0, len(amounts)+len(dateSpans))
		spans = append(spans, dateSpans...)
		for _, a := range amounts {
			spans = append(spans, [2]int{a.start, a.end})
		}
		if frag := removeSpans(line, spans); frag != "" {
			fragments = append(fragments, frag)
		}
	}

	if len(pooled) == 0 {
		return models.Transaction{}, false
	}

	debit, credit, balance := s.classifier.classifyPooled(pooled, block)
	return models.Transaction{
		Date:        iso,
		Description: strings.Join(fragments, " "),
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
	}, true
}

// removeSpans returns the text outside the given spans, tidied the same way
// line descriptions are.
func removeSpans(line string, spans [][2]int) string {
	if len(spans) == 0 {
		return describeBetween(line, 0, len(line))
	}
	keep := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		if overlapsAny(i, i+1, spans) {
			continue
		}
		keep = append(keep, line[i])
	}
	return strings.Trim(strings.Join(strings.Fields(string(keep)), " "), " -–—.,:;|·")
}
