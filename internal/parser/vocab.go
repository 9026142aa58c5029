package parser

import (
	"regexp"
	"strings"
)

// Vocabulary holds the trigger-word lists the parsing heuristics key on.
// These are plain data so they can be tuned and tested independently of
// the strategies that consume them.
type Vocabulary struct {
	// DebitTerms mark a line as money-out when a lone amount is ambiguous.
	DebitTerms []string
	// Columns maps a column role to the header words that name it.
	Columns map[string][]string
}

// Column roles recognized by the table strategy.
const (
	colDate        = "date"
	colDescription = "description"
	colDebit       = "debit"
	colCredit      = "credit"
	colBalance     = "balance"
	colAmount      = "amount"
)

// DefaultVocabulary returns the UK bank statement vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		DebitTerms: []string{
			"debit", "withdrawal", "payment", "purchase", "dr",
			"standing order", "fee", "charge", "transfer out", "atm", "pos",
		},
		Columns: map[string][]string{
			colDate:        {"date"},
			colDescription: {"description", "details", "particulars", "narrative"},
			colDebit:       {"debit", "debits", "withdrawal", "withdrawals"},
			colCredit:      {"credit", "credits", "deposit", "deposits"},
			colBalance:     {"balance"},
			colAmount:      {"amount"},
		},
	}
}

// debitMatcher compiles DebitTerms into a single word-boundary pattern so
// that short codes like "dr" do not fire inside ordinary words.
func (v Vocabulary) debitMatcher() *regexp.Regexp {
	quoted := make([]string, len(v.DebitTerms))
	for i, term := range v.DebitTerms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// columnRole returns the role a header word names, if any.
func (v Vocabulary) columnRole(word string) (string, bool) {
	word = strings.ToLower(strings.Trim(word, ":"))
	for role, names := range v.Columns {
		for _, name := range names {
			if word == name {
				return role, true
			}
		}
	}
	return "", false
}
