package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestExtractAmounts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		exclude  [][2]int
		expected []string
	}{
		{
			name:     "plain amounts",
			input:    "TESCO 25.99 1,234.56",
			expected: []string{"25.99", "1234.56"},
		},
		{
			name:     "currency symbols and negatives",
			input:    "£3.50 then -45.00 and €1,000.00",
			expected: []string{"3.5", "-45", "1000"},
		},
		{
			name:     "date span excluded",
			input:    "15/01/2024 COFFEE 3.50",
			exclude:  [][2]int{{0, 10}},
			expected: []string{"3.5"},
		},
		{
			name:     "small integers are page-number noise",
			input:    "Page 3 of 12",
			expected: nil,
		},
		{
			name:     "small decimal kept",
			input:    "FEE 0.50",
			expected: []string{"0.5"},
		},
		{
			name:     "large integer kept",
			input:    "TRANSFER 1500",
			expected: []string{"1500"},
		},
		{
			name:     "no amounts",
			input:    "BALANCE BROUGHT FORWARD",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAmounts(tt.input, tt.exclude...)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %+v", len(got), len(tt.expected), got)
			}
			for i, tok := range got {
				if tok.value.String() != tt.expected[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.value.String(), tt.expected[i])
				}
				if tok.start >= tok.end {
					t.Errorf("token %d: invalid span [%d,%d)", i, tok.start, tok.end)
				}
			}
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"25.99", "25.99", true},
		{"£1,234.56", "1234.56", true},
		{"-45.00", "-45", true},
		{"€ 99.00", "99", true},
		{"", "", false},
		{"-", "", false},
		{"n/a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseCurrency(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseCurrency(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.String() != tt.expected {
				t.Errorf("parseCurrency(%q): got %s, want %s", tt.input, got.String(), tt.expected)
			}
		})
	}
}

func tokens(values ...string) []amountToken {
	out := make([]amountToken, len(values))
	for i, v := range values {
		out[i] = amountToken{value: decimal.RequireFromString(v), start: i * 10, end: i*10 + 5}
	}
	return out
}

func amtString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func TestClassify(t *testing.T) {
	c := newClassifier(DefaultVocabulary())

	tests := []struct {
		name    string
		amounts []string
		context string
		debit   string
		credit  string
		balance string
	}{
		{
			name:    "no amounts",
			amounts: nil,
			context: "nothing here",
		},
		{
			name:    "single amount without debit vocabulary is credit",
			amounts: []string{"3.50"},
			context: "12/01/2024 COFFEE SHOP £3.50",
			credit:  "3.5",
		},
		{
			name:    "single amount with debit vocabulary",
			amounts: []string{"45.00"},
			context: "CARD PAYMENT TESCO 45.00",
			debit:   "45",
		},
		{
			name:    "negative single amount forces debit",
			amounts: []string{"-12.00"},
			context: "REFUND ADJUSTMENT -12.00",
			debit:   "12",
		},
		{
			name:    "dr code matches on word boundary only",
			amounts: []string{"20.00"},
			context: "HAIRDRESSER 20.00",
			credit:  "20",
		},
		{
			name:    "second much larger becomes balance",
			amounts: []string{"45.00", "1200.00"},
			context: "DIRECT DEBIT UTILITY CO 45.00 1200.00",
			debit:   "45",
			balance: "1200",
		},
		{
			name:    "comparable pair has no balance",
			amounts: []string{"-30.00", "40.00"},
			context: "TRANSFER -30.00 40.00",
			debit:   "30",
			credit:  "40",
		},
		{
			name:    "three amounts take last as balance",
			amounts: []string{"45.00", "200.00", "1200.00"},
			context: "SALARY AND THINGS 45.00 200.00 1200.00",
			credit:  "45",
			balance: "1200",
		},
		{
			name:    "three amounts with debit flag",
			amounts: []string{"45.00", "200.00", "1200.00"},
			context: "DIRECT DEBIT 45.00 200.00 1200.00",
			debit:   "45",
			credit:  "200",
			balance: "1200",
		},
		{
			name:    "negative first of three",
			amounts: []string{"-45.00", "200.00", "1200.00"},
			context: "MIXED -45.00 200.00 1200.00",
			debit:   "45",
			credit:  "200",
			balance: "1200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit, balance := c.classify(tokens(tt.amounts...), tt.context)
			if got := amtString(debit); got != tt.debit {
				t.Errorf("debit: got %q, want %q", got, tt.debit)
			}
			if got := amtString(credit); got != tt.credit {
				t.Errorf("credit: got %q, want %q", got, tt.credit)
			}
			if got := amtString(balance); got != tt.balance {
				t.Errorf("balance: got %q, want %q", got, tt.balance)
			}
		})
	}
}

func TestClassifyPooled(t *testing.T) {
	c := newClassifier(DefaultVocabulary())

	// Two pooled amounts: the last is always the balance, even when the
	// magnitudes are comparable.
	debit, credit, balance := c.classifyPooled(tokens("40.00", "45.00"), "CASH WITHDRAWAL 40.00 45.00")
	if got := amtString(debit); got != "40" {
		t.Errorf("debit: got %q, want 40", got)
	}
	if credit != nil {
		t.Errorf("credit: got %s, want nil", credit.String())
	}
	if got := amtString(balance); got != "45" {
		t.Errorf("balance: got %q, want 45", got)
	}
}
