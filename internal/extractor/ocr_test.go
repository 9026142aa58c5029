package extractor

import (
	"os/exec"
	"testing"
)

func TestOCRAvailable(t *testing.T) {
	// The result depends on the machine; verify it agrees with direct checks.
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	expected := err1 == nil && err2 == nil
	if got := OCRAvailable(); got != expected {
		t.Errorf("OCRAvailable() = %v, but direct check says %v", got, expected)
	}
}

func TestExtractWithOCR_NonexistentFile(t *testing.T) {
	if !OCRAvailable() {
		t.Skip("OCR tools not installed")
	}
	if _, err := extractWithOCR("/tmp/nonexistent-statement-12345.pdf"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestPageCount_NonexistentFile(t *testing.T) {
	if n := pageCount("/tmp/nonexistent-statement-12345.pdf"); n != 0 {
		t.Errorf("pageCount() = %d for nonexistent file, want 0", n)
	}
}

func TestExtract_NonexistentFile(t *testing.T) {
	if _, err := Extract("/tmp/nonexistent-statement-12345.pdf"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
