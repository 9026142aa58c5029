package extractor

import (
	"strings"
	"unicode"
)

// minReadableChars and minQuality gate extraction output: anything shorter or
// noisier than this is rejected so a later method gets a chance.
const (
	minReadableChars = 50
	minQuality       = 0.6
)

// statementWords are terms found in virtually every bank statement. Extracted
// text containing none of them is almost certainly mis-decoded.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "sort code",
	"money", "paid", "opening", "closing", "transfer", "direct",
	"number", "page", "period",
}

// Readable reports whether pages look like genuine statement text: long
// enough, mostly plain ASCII, and containing at least one expected word.
func Readable(pages []string) bool {
	if textLen(pages) <= minReadableChars {
		return false
	}
	if asciiRatio(pages) <= minQuality {
		return false
	}
	return hasStatementWords(pages)
}

// asciiRatio returns the fraction of characters that are plain ASCII letters,
// digits, whitespace, or punctuation common in statements. A strict ASCII
// check is deliberate: unicode.IsLetter matches the accented glyphs that
// identity-encoded fonts emit as garbage.
func asciiRatio(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				readable++
			case unicode.IsSpace(r):
				readable++
			case strings.ContainsRune(`.,-/:;()'"£$€%&@#!?+=*`, r):
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func hasStatementWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, w := range statementWords {
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}

func textLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
