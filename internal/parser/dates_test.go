package parser

import "testing"

func TestInterpret(t *testing.T) {
	d := DateInterpreter{}

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"15/01/2024", "2024-01-15", true},
		{"1/1/24", "2024-01-01", true},
		{"15-01-2024", "2024-01-15", true},
		{"15 Jan 2024", "2024-01-15", true},
		{"15 January 2024", "2024-01-15", true},
		{"15 JAN 24", "2024-01-15", true},
		{"15-Jan-2024", "2024-01-15", true},
		{"01Jan2024", "2024-01-01", true},
		{"2024-01-15", "2024-01-15", true},
		{"30/06/30", "2030-06-30", true},
		{"05/05/99", "1999-05-05", true},
		{"not a date", "", false},
		{"32/01/2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := d.Interpret(tt.input)
			if ok != tt.ok {
				t.Fatalf("Interpret(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("Interpret(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInterpretYearPivot(t *testing.T) {
	tests := []struct {
		pivot    int
		input    string
		expected string
	}{
		// Default pivot 50: below 50 is 2000s, else 1900s.
		{0, "01/01/30", "2030-01-01"},
		{0, "01/01/99", "1999-01-01"},
		{0, "01/01/49", "2049-01-01"},
		{0, "01/01/50", "1950-01-01"},
		// Custom pivot for historical statements.
		{30, "01/01/29", "2029-01-01"},
		{30, "01/01/35", "1935-01-01"},
	}

	for _, tt := range tests {
		d := DateInterpreter{YearPivot: tt.pivot}
		got, ok := d.Interpret(tt.input)
		if !ok {
			t.Fatalf("pivot %d: Interpret(%q) failed", tt.pivot, tt.input)
		}
		if got != tt.expected {
			t.Errorf("pivot %d: Interpret(%q) = %q, want %q", tt.pivot, tt.input, got, tt.expected)
		}
	}
}

func TestInterpretWithHint(t *testing.T) {
	d := DateInterpreter{}

	// American-style hint flips day and month.
	got, ok := d.InterpretWithHint("01/15/2024", "1/2/2006")
	if !ok || got != "2024-01-15" {
		t.Errorf("hinted parse: got %q (ok=%v), want 2024-01-15", got, ok)
	}

	// Token not matching the hint falls back to the known-format list.
	got, ok = d.InterpretWithHint("15 Jan 2024", "1/2/2006")
	if !ok || got != "2024-01-15" {
		t.Errorf("fallback parse: got %q (ok=%v), want 2024-01-15", got, ok)
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		input     string
		wantToken string
		wantOK    bool
	}{
		{"15/01/2024 CARD PAYMENT", "15/01/2024", true},
		{"CARD PAYMENT 15 Jan 2024 TESCO", "15 Jan 2024", true},
		{"15-Jan-2024 PAYMENT", "15-Jan-2024", true},
		{"ref 01Jan2024", "01Jan2024", true},
		{"no date here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			token, span, ok := findDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("findDate(%q): ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if token != tt.wantToken {
				t.Errorf("findDate(%q): token = %q, want %q", tt.input, token, tt.wantToken)
			}
			if ok && tt.input[span[0]:span[1]] != token {
				t.Errorf("span %v does not cover token %q", span, token)
			}
		})
	}
}
