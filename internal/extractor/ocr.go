package extractor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ocrDPI is the render resolution for page images. 300 DPI is the sweet spot
// for tesseract accuracy on statement-sized type.
const ocrDPI = "300"

// ocrCharWhitelist restricts tesseract to the characters that actually occur
// in statements, which cuts down on stray symbol misreads.
const ocrCharWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,/-:£$€ \n"

// OCRAvailable reports whether the external tools needed for the OCR path
// (poppler-utils and tesseract-ocr) are installed.
func OCRAvailable() bool {
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	return err1 == nil && err2 == nil
}

// extractWithOCR renders each PDF page to a PNG and runs tesseract over it.
// This is the path of last resort for scanned statements with no text layer.
func extractWithOCR(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "statement-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", ocrDPI, "-png", path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, out)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("read temp dir: %w", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		outBase := strings.TrimSuffix(img, ".png")
		// PSM 6 treats the page as a single uniform block of text, which
		// handles statement tables better than full auto segmentation.
		cmd := exec.Command("tesseract", img, outBase,
			"-l", "eng", "--oem", "3", "--psm", "6",
			"-c", "tessedit_char_whitelist="+ocrCharWhitelist)
		if out, err := cmd.CombinedOutput(); err != nil {
			slog.Warn("tesseract failed on page", "image", filepath.Base(img), "error", err, "output", string(out))
			continue
		}
		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("OCR produced no text from %d page images", len(images))
	}
	return pages, nil
}
