package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// OCR engines routinely confuse look-alike glyphs next to digits and insert
// whitespace around currency symbols and separators. Each rule below is a
// global rewrite; order matters because later rules assume digit-shaped
// characters have already been repaired.
type rewriteRule struct {
	pattern *regexp.Regexp
	repl    string
}

var normalizeRules = []rewriteRule{
	// Glyph confusion: I, l, | next to a digit are a misread 1.
	{regexp.MustCompile(`[Il|](\d)`), "1$1"},
	{regexp.MustCompile(`(\d)[Il|]`), "${1}1"},
	// O and o next to a digit are a misread 0.
	{regexp.MustCompile(`[Oo](\d)`), "0$1"},
	{regexp.MustCompile(`(\d)[Oo]`), "${1}0"},
	// Semicolons between digits are misread decimal points.
	{regexp.MustCompile(`(\d);\s*(\d)`), "$1.$2"},
	// Whitespace after a currency symbol.
	{regexp.MustCompile(`([£$€])\s+`), "$1"},
	// Whitespace around a decimal point: "123 . 45" → "123.45".
	{regexp.MustCompile(`(\d)\s+\.\s*(\d)`), "$1.$2"},
	{regexp.MustCompile(`(\d)\.\s+(\d)`), "$1.$2"},
	// Whitespace around a thousands separator: "1 ,234" → "1,234".
	{regexp.MustCompile(`(\d)\s+,\s*(\d)`), "$1,$2"},
	{regexp.MustCompile(`(\d),\s+(\d)`), "$1,$2"},
}

var crlfPattern = regexp.MustCompile(`\r\n?`)

// Colons between digits are usually misread decimal points, but statements
// also print posting times next to dates. A token that parses as a plausible
// clock time (hours 0-23, minutes 00-59) is left alone.
var colonDigitsPattern = regexp.MustCompile(`(\d{1,3}):(\d{2})`)

func repairColonDecimals(text string) string {
	return colonDigitsPattern.ReplaceAllStringFunc(text, func(m string) string {
		i := strings.IndexByte(m, ':')
		hh, mm := m[:i], m[i+1:]
		if len(hh) <= 2 {
			h, _ := strconv.Atoi(hh)
			min, _ := strconv.Atoi(mm)
			if h <= 23 && min <= 59 {
				return m
			}
		}
		return hh + "." + mm
	})
}

// Normalize repairs common OCR artifacts in raw extracted text before any
// strategy sees it. An empty input yields an empty output.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	text := crlfPattern.ReplaceAllString(raw, "\n")
	for _, rule := range normalizeRules {
		text = rule.pattern.ReplaceAllString(text, rule.repl)
	}
	return repairColonDecimals(text)
}
