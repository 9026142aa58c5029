package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultYearPivot is the two-digit-year cutoff: values below it map to the
// 2000s, values at or above it to the 1900s.
const DefaultYearPivot = 50

// DateInterpreter turns heterogeneous statement date tokens into canonical
// ISO dates. Formats are tried in a fixed priority order; the first match
// wins and no further disambiguation is attempted.
type DateInterpreter struct {
	// YearPivot overrides DefaultYearPivot when non-zero. Statements may be
	// historical, so the pivot is policy rather than current-century math.
	YearPivot int
}

type dateLayout struct {
	layout    string
	shortYear bool
}

// Known layouts in priority order. Four-digit years come first so that a
// two-digit layout never truncates a four-digit token.
var knownDateLayouts = []dateLayout{
	{"2/1/2006", false},
	{"2-1-2006", false},
	{"2/1/06", true},
	{"2-1-06", true},
	{"2 January 2006", false},
	{"2 Jan 2006", false},
	{"2 Jan 06", true},
	{"2-Jan-2006", false},
	{"2-Jan-06", true},
	{"2Jan2006", false},
	{"2Jan06", true},
	{"2006-01-02", false},
	{"2006/01/02", false},
}

// Date token shapes, in the priority order strategies scan with.
var datePatterns = []*regexp.Regexp{
	// DD/MM/YYYY, DD-MM-YYYY and two-digit-year variants
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	// DD Mon YYYY / DD Month YYYY
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}\b`),
	// DD-Mon-YYYY
	regexp.MustCompile(`(?i)\b\d{1,2}-(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*-\d{2,4}\b`),
	// Compact DDMonYYYY (e.g. 01Jan2024)
	regexp.MustCompile(`(?i)\b\d{1,2}(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\d{2,4}\b`),
}

// findDate locates the first date-like token in text, trying each pattern in
// priority order. It returns the token, its character span, and whether one
// was found.
func findDate(text string) (string, [2]int, bool) {
	for _, pat := range datePatterns {
		if loc := pat.FindStringIndex(text); loc != nil {
			return text[loc[0]:loc[1]], [2]int{loc[0], loc[1]}, true
		}
	}
	return "", [2]int{}, false
}

// findDateSpans returns the spans of every date-like token in text, so the
// amount extractor never mistakes date digits for money.
func findDateSpans(text string) [][2]int {
	var spans [][2]int
	for _, pat := range datePatterns {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			spans = append(spans, [2]int{loc[0], loc[1]})
		}
	}
	return spans
}

// Interpret parses a date token into ISO YYYY-MM-DD form. The boolean is
// false when the token matches no known format; the caller drops the
// candidate rather than treating this as an error.
func (d DateInterpreter) Interpret(token string) (string, bool) {
	token = canonicalDateToken(token)
	if token == "" {
		return "", false
	}
	for _, l := range knownDateLayouts {
		t, err := time.Parse(l.layout, token)
		if err != nil {
			continue
		}
		year := t.Year()
		if l.shortYear {
			year = d.resolveCentury(year % 100)
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, t.Month(), t.Day()), true
	}
	return "", false
}

// InterpretWithHint tries the hint layout before the known-format list.
func (d DateInterpreter) InterpretWithHint(token, hint string) (string, bool) {
	canon := canonicalDateToken(token)
	if canon != "" && hint != "" {
		if t, err := time.Parse(hint, canon); err == nil {
			year := t.Year()
			if strings.Contains(hint, "06") && !strings.Contains(hint, "2006") {
				year = d.resolveCentury(year % 100)
			}
			return fmt.Sprintf("%04d-%02d-%02d", year, t.Month(), t.Day()), true
		}
	}
	return d.Interpret(token)
}

func (d DateInterpreter) resolveCentury(yy int) int {
	pivot := d.YearPivot
	if pivot == 0 {
		pivot = DefaultYearPivot
	}
	if yy < pivot {
		return 2000 + yy
	}
	return 1900 + yy
}

var alphaRunPattern = regexp.MustCompile(`[A-Za-z]+`)

// canonicalDateToken collapses whitespace and normalizes month-name case so
// that "15  JAN 24" parses with the "2 Jan 06" layout.
func canonicalDateToken(token string) string {
	token = strings.Join(strings.Fields(strings.TrimSpace(token)), " ")
	return alphaRunPattern.ReplaceAllStringFunc(token, func(run string) string {
		return strings.ToUpper(run[:1]) + strings.ToLower(run[1:])
	})
}
