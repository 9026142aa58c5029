// Package extractor pulls text out of bank statement PDFs. Statements in
// the wild range from clean digitally-generated files to photocopied scans,
// so extraction cascades through progressively more expensive methods until
// one produces readable text: the ledongthuc/pdf library first, then the
// external pdftotext tool, then full OCR via pdftoppm and tesseract.
package extractor

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Method names reported in Result.Method so callers can surface which
// extraction path actually produced the text.
const (
	MethodRows      = "pdf-rows"
	MethodContent   = "pdf-content"
	MethodPlainText = "pdf-plaintext"
	MethodPdftotext = "pdftotext"
	MethodOCR       = "ocr"
)

// Result holds the per-page text of a statement along with the name of the
// extraction method that produced it.
type Result struct {
	Pages  []string
	Method string
}

// Text joins all pages into a single string with page breaks between them.
func (r *Result) Text() string {
	return strings.Join(r.Pages, "\n\n")
}

// Extract reads a PDF and returns its pages as text. Each method's output is
// checked for readability before being accepted; garbage from identity-encoded
// fonts is never returned. When nothing yields a text layer the file is
// treated as a scan and handed to OCR.
func Extract(path string) (*Result, error) {
	res, libErr := extractWithLibrary(path)
	if libErr == nil && res != nil {
		return res, nil
	}

	pages, popplerErr := extractWithPdftotext(path)
	if popplerErr == nil && Readable(pages) {
		return &Result{Pages: pages, Method: MethodPdftotext}, nil
	}

	if OCRAvailable() {
		slog.Info("no text layer found, falling back to OCR", "path", path)
		pages, ocrErr := extractWithOCR(path)
		if ocrErr == nil && Readable(pages) {
			return &Result{Pages: pages, Method: MethodOCR}, nil
		}
		if ocrErr != nil {
			slog.Warn("OCR fallback failed", "error", ocrErr)
		}
	}

	if libErr != nil {
		return nil, fmt.Errorf("text extraction failed: %w; the PDF may use custom font encodings or be a scanned image", libErr)
	}
	return nil, fmt.Errorf("no readable text could be extracted; the PDF appears to be image-based and OCR produced nothing usable")
}

// extractWithLibrary runs the ledongthuc/pdf methods in order of layout
// fidelity. The library panics on some malformed files, so the whole attempt
// is wrapped in a recover.
func extractWithLibrary(path string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := r.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	if pages := pagesByRow(r, n); Readable(pages) {
		return &Result{Pages: pages, Method: MethodRows}, nil
	}
	if pages := pagesByContent(r, n); Readable(pages) {
		return &Result{Pages: pages, Method: MethodContent}, nil
	}
	if pages := pagesByPlainText(r, n); Readable(pages) {
		return &Result{Pages: pages, Method: MethodPlainText}, nil
	}
	if text := documentPlainText(r); Readable([]string{text}) {
		return &Result{Pages: []string{text}, Method: MethodPlainText}, nil
	}
	return nil, fmt.Errorf("pdf library produced no readable text")
}

// pagesByRow uses GetTextByRow, which preserves layout best when it works.
func pagesByRow(r *pdf.Reader, n int) []string {
	var pages []string
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var words []string
			for _, w := range row.Content {
				words = append(words, w.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// columnGap is the horizontal distance, in PDF units, beyond which two text
// fragments on the same row are treated as separate columns.
const columnGap = 15

// pagesByContent reads raw positioned text fragments and rebuilds rows by
// grouping on the Y coordinate, then ordering each row left to right. Gaps
// wider than columnGap get extra spacing so tabular layouts survive.
func pagesByContent(r *pdf.Reader, n int) []string {
	var pages []string
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type fragment struct {
			x float64
			s string
		}
		rows := make(map[int][]fragment)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rows[y] = append(rows[y], fragment{x: t.X, s: t.S})
		}

		// PDF Y runs bottom to top, so rows are emitted in descending Y order.
		ys := make([]int, 0, len(rows))
		for y := range rows {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			frags := rows[y]
			sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

			var sb strings.Builder
			var prevX float64
			for j, frag := range frags {
				if j > 0 && frag.x-prevX > columnGap {
					sb.WriteString("  ")
				}
				sb.WriteString(frag.s)
				prevX = frag.x
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// pagesByPlainText uses per-page GetPlainText with the page's font map.
func pagesByPlainText(r *pdf.Reader, n int) []string {
	var pages []string
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// documentPlainText is the whole-document extraction path, which decodes some
// files the per-page methods cannot.
func documentPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// extractWithPdftotext shells out to poppler's pdftotext with -layout, page by
// page so page boundaries are preserved.
func extractWithPdftotext(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	n := pageCount(path)
	if n == 0 {
		n = 1
	}

	var pages []string
	for i := 1; i <= n; i++ {
		p := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", p, "-l", p, path, "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) > 0 {
		return pages, nil
	}

	// Per-page extraction produced nothing, try the whole document at once.
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	if text := strings.TrimSpace(string(out)); text != "" {
		return []string{text}, nil
	}
	return nil, fmt.Errorf("pdftotext produced no output")
}

// pageCount asks pdfinfo for the page count, returning 0 when unavailable.
func pageCount(path string) int {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
