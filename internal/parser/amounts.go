package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountToken is one monetary candidate located in a line or block, with the
// character span it was matched at. Tokens are always position-ordered.
type amountToken struct {
	value decimal.Decimal
	start int
	end   int
}

// Optional minus, optional currency symbol, digits with optional thousands
// separators, optional 0-2 decimal digits.
var amountPattern = regexp.MustCompile(`-?[£$€]?\d+(?:,\d{3})*(?:\.\d{1,2})?`)

// Bare integers below this are treated as noise (page numbers, sheet counts)
// unless they carry a decimal point.
var integerNoiseCeiling = decimal.NewFromInt(100)

// extractAmounts scans text for monetary tokens, skipping any match that
// overlaps one of the excluded spans (typically the span the date consumed).
func extractAmounts(text string, exclude ...[2]int) []amountToken {
	matches := amountPattern.FindAllStringIndex(text, -1)
	var tokens []amountToken
	for _, loc := range matches {
		if overlapsAny(loc[0], loc[1], exclude) {
			continue
		}
		raw := text[loc[0]:loc[1]]
		value, ok := parseCurrency(raw)
		if !ok {
			continue
		}
		if !strings.Contains(raw, ".") && value.Abs().LessThan(integerNoiseCeiling) {
			continue
		}
		tokens = append(tokens, amountToken{value: value, start: loc[0], end: loc[1]})
	}
	return tokens
}

func overlapsAny(start, end int, spans [][2]int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// parseCurrency coerces a monetary token to a decimal, stripping currency
// symbols, separators and stray whitespace. The boolean is false when the
// token is empty or malformed; the field is then treated as absent.
func parseCurrency(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	for _, sym := range []string{"£", "$", "€", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	if s == "" || s == "-" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// classifier assigns extracted amounts to the debit, credit and balance
// fields. It is a positional and magnitude heuristic, not a ledger
// reconciliation: the resulting balance column is never guaranteed to equal
// the running sum of debits and credits.
type classifier struct {
	debitWords *regexp.Regexp
}

func newClassifier(v Vocabulary) classifier {
	return classifier{debitWords: v.debitMatcher()}
}

var two = decimal.NewFromInt(2)

// classify applies the per-line policy:
//
//	0 amounts  → no transaction
//	1 amount   → debit when the context carries debit vocabulary or the
//	             amount is negative; credit otherwise
//	2 amounts  → second is the balance when its magnitude is more than
//	             double the first; otherwise the pair splits by sign
//	3+ amounts → last is the balance; among the rest the first negative or
//	             debit-flagged amount is the debit, the first positive one
//	             the credit (first match wins, nothing is summed)
func (c classifier) classify(tokens []amountToken, context string) (debit, credit, balance *decimal.Decimal) {
	switch len(tokens) {
	case 0:
		return nil, nil, nil
	case 1:
		debit, credit = c.classifySingle(tokens[0].value, context)
		return debit, credit, nil
	case 2:
		first, second := tokens[0].value, tokens[1].value
		if second.Abs().GreaterThan(first.Abs().Mul(two)) {
			debit, credit = c.classifySingle(first, context)
			return debit, credit, ref(second)
		}
		debit, credit = c.classifySingle(first, context)
		secondAbs := second.Abs()
		if debit == nil {
			debit = ref(secondAbs)
		} else {
			credit = ref(secondAbs)
		}
		return debit, credit, nil
	default:
		balance = ref(tokens[len(tokens)-1].value)
		flagged := c.debitWords.MatchString(context)
		for _, tok := range tokens[:len(tokens)-1] {
			if debit == nil && (tok.value.IsNegative() || flagged) {
				debit = ref(tok.value.Abs())
				continue
			}
			if credit == nil && !tok.value.IsNegative() {
				credit = ref(tok.value)
			}
		}
		return debit, credit, balance
	}
}

// classifyPooled is the block-strategy variant: with two or more pooled
// amounts the last one is always the balance, regardless of magnitude.
func (c classifier) classifyPooled(tokens []amountToken, context string) (debit, credit, balance *decimal.Decimal) {
	switch len(tokens) {
	case 0:
		return nil, nil, nil
	case 1:
		debit, credit = c.classifySingle(tokens[0].value, context)
		return debit, credit, nil
	case 2:
		debit, credit = c.classifySingle(tokens[0].value, context)
		return debit, credit, ref(tokens[1].value)
	default:
		return c.classify(tokens, context)
	}
}

// classifySingle resolves the lone-amount ambiguity with one consistent
// policy: a negative amount is always a debit; otherwise debit vocabulary in
// the surrounding text decides, defaulting to credit.
func (c classifier) classifySingle(value decimal.Decimal, context string) (debit, credit *decimal.Decimal) {
	if value.IsNegative() || c.debitWords.MatchString(context) {
		return ref(value.Abs()), nil
	}
	return nil, ref(value)
}

func ref(d decimal.Decimal) *decimal.Decimal {
	return &d
}
