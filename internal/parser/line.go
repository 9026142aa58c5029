package parser

import (
	"strings"

	"github.com/ledgerlift/statement-converter/internal/models"
)

// lineStrategy scans cleaned text line by line: find a date, hand the rest
// of the line to the amount extractor, and take the text between the date
// and the first amount as the description. A line whose amounts wrapped onto
// the next line is merged with it before re-attempting.
type lineStrategy struct {
	dates      DateInterpreter
	classifier classifier
}

func (s *lineStrategy) Name() string { return "line" }

// Descriptions shorter than this trigger recovery from the text between the
// first and second amounts.
const shortDescriptionLen = 3

func (s *lineStrategy) Extract(text string) []models.Transaction {
	lines := strings.Split(text, "\n")
	var txns []models.Transaction

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		token, span, ok := findDate(line)
		if !ok {
			continue
		}
		iso, ok := s.dates.Interpret(token)
		if !ok {
			continue
		}

		amounts := extractAmounts(line, findDateSpans(line)...)
		if len(amounts) == 0 {
			// Wrapped row: the amounts may be on the next line. Merge only
			// when the next line has amounts but no date of its own, and
			// never reprocess a consumed line.
			merged, ok := s.mergeWrapped(line, lines, i)
			if !ok {
				continue
			}
			line = merged
			amounts = extractAmounts(line, findDateSpans(line)...)
			if len(amounts) == 0 {
				continue
			}
			i++
		}

		desc := describeBetween(line, span[1], amounts[0].start)
		if len(desc) < shortDescriptionLen && len(amounts) >= 2 {
			if longer := describeBetween(line, amounts[0].end, amounts[1].start); len(longer) > len(desc) {
				desc = longer
			}
		}

		debit, credit, balance := s.classifier.classify(amounts, line)
		txns = append(txns, models.Transaction{
			Date:        iso,
			Description: desc,
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}

	return txns
}

func (s *lineStrategy) mergeWrapped(line string, lines []string, i int) (string, bool) {
	if i+1 >= len(lines) {
		return "", false
	}
	next := strings.TrimSpace(lines[i+1])
	if next == "" {
		return "", false
	}
	if _, _, hasDate := findDate(next); hasDate {
		return "", false
	}
	if len(extractAmounts(next, findDateSpans(next)...)) == 0 {
		return "", false
	}
	return line + " " + next, true
}

// describeBetween extracts and tidies the description text between two
// character offsets: whitespace collapsed, boundary punctuation stripped.
func describeBetween(line string, start, end int) string {
	if start < 0 || end > len(line) || start >= end {
		return ""
	}
	desc := strings.Join(strings.Fields(line[start:end]), " ")
	return strings.Trim(desc, " -–—.,:;|·")
}
