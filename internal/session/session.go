// Package session manages the temporary files produced for each conversion.
// Every upload gets a UUID session under a scratch directory; converted
// output lives there until it is downloaded or aged out.
package session

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxAge is how long session files are kept before CleanupOld
// removes them.
const DefaultMaxAge = time.Hour

// MaxUploadBytes caps upload size at 50MB, far beyond any real statement.
const MaxUploadBytes = 50 << 20

var pdfMagic = []byte("%PDF-")

// Store tracks session files inside a single scratch directory.
type Store struct {
	Dir    string
	MaxAge time.Duration
}

// NewStore creates the scratch directory if needed and returns a store
// over it. A zero maxAge falls back to DefaultMaxAge.
func NewStore(dir string, maxAge time.Duration) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "statement-converter")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir %q: %w", dir, err)
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Store{Dir: dir, MaxAge: maxAge}, nil
}

// NewID returns a fresh session identifier.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Path returns the session file path for the given suffix, such as ".pdf"
// or ".csv".
func (s *Store) Path(id, suffix string) string {
	return filepath.Join(s.Dir, id+suffix)
}

// Cleanup removes every file belonging to the session.
func (s *Store) Cleanup(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid session id %q: %w", id, err)
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, id+"*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %q: %w", m, err)
		}
	}
	return nil
}

// CleanupOld removes session files older than MaxAge and returns how many
// were deleted. Errors on individual files are logged, not fatal.
func (s *Store) CleanupOld() int {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		slog.Warn("session cleanup scan failed", "dir", s.Dir, "error", err)
		return 0
	}
	cutoff := time.Now().Add(-s.MaxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.Dir, e.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("session cleanup remove failed", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		slog.Info("removed expired session files", "count", removed)
	}
	return removed
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeFilename strips any path components from an uploaded filename and
// replaces characters outside a conservative allowlist.
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "statement.pdf"
	}
	return name
}

// ValidatePDF checks that uploaded bytes look like a PDF and fit the size
// cap before anything is written to disk.
func ValidatePDF(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty upload")
	}
	if len(data) > MaxUploadBytes {
		return fmt.Errorf("upload exceeds %d byte limit", MaxUploadBytes)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("not a PDF file (missing %%PDF- header)")
	}
	return nil
}
