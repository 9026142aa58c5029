// Package parser turns noisy statement text into normalized transaction
// records. Three heuristic extraction strategies run in a fixed cascade and
// the orchestrator keeps whichever found the most evidence of real
// transactions; no single strategy is reliable across arbitrary layouts.
package parser

import "github.com/ledgerlift/statement-converter/internal/models"

// Strategy is one self-contained heuristic for extracting candidate
// transactions from cleaned text.
type Strategy interface {
	Name() string
	Extract(text string) []models.Transaction
}

// MinLineResults is the early-exit threshold: when the line strategy already
// found this many candidates, the slower fallback passes are skipped.
const MinLineResults = 5

// Parser runs the strategy cascade. It holds no cross-call state, so a
// single Parser is safe to use concurrently for independent documents.
type Parser struct {
	Dates      DateInterpreter
	Vocab      Vocabulary
	strategies []Strategy
}

// New returns a Parser with the default UK vocabulary and year pivot.
func New() *Parser {
	return NewWithDates(DateInterpreter{})
}

// NewWithDates returns a Parser using the given date policy (e.g. a custom
// two-digit-year pivot for historical statements).
func NewWithDates(dates DateInterpreter) *Parser {
	vocab := DefaultVocabulary()
	cls := newClassifier(vocab)
	return &Parser{
		Dates: dates,
		Vocab: vocab,
		strategies: []Strategy{
			&lineStrategy{dates: dates, classifier: cls},
			&tableStrategy{dates: dates, vocab: vocab, classifier: cls},
			&blockStrategy{dates: dates, classifier: cls},
		},
	}
}

// Parse converts raw extracted text into an ordered transaction table.
// Per-line and per-block failures are recovered by skipping; the only
// failure the caller sees is an empty result, and the report says which
// strategy won and how many candidates each produced.
func (p *Parser) Parse(raw string) ([]models.Transaction, *models.ParseReport) {
	text := Normalize(raw)

	report := &models.ParseReport{StrategyCounts: map[string]int{}}

	var best []models.Transaction
	bestName := ""
	for i, strat := range p.strategies {
		candidates := strat.Extract(text)
		report.StrategyCounts[strat.Name()] = len(candidates)

		if len(candidates) > len(best) {
			best = candidates
			bestName = strat.Name()
		}
		// Threshold-gated early exit applies only at the first stage; after
		// that every remaining strategy runs and the most records win.
		if i == 0 && len(best) >= MinLineResults {
			break
		}
	}

	cleaned := cleanRecords(best)
	report.Total = len(cleaned)
	if report.Total > 0 {
		report.Strategy = bestName
	}
	return cleaned, report
}

// Parse is the package-level convenience entry point with default policy.
func Parse(raw string) ([]models.Transaction, *models.ParseReport) {
	return New().Parse(raw)
}
