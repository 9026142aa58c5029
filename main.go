package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerlift/statement-converter/internal/api"
	"github.com/ledgerlift/statement-converter/internal/config"
	"github.com/ledgerlift/statement-converter/internal/extractor"
	"github.com/ledgerlift/statement-converter/internal/parser"
	"github.com/ledgerlift/statement-converter/internal/session"
	"github.com/ledgerlift/statement-converter/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP conversion service instead of converting files")
	addrFlag := flag.String("addr", "", "Listen address for -serve (overrides ADDR)")
	formatFlag := flag.String("format", "csv", "Output format: csv, xlsx, or both")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	pivotFlag := flag.Int("pivot", parser.DefaultYearPivot, "Two-digit year pivot: values below it become 20xx, others 19xx")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Converter

Extracts transactions from bank statement PDFs of any layout and writes
them as CSV or styled XLSX files.

Usage:
  statement-converter [flags] <input.pdf> [input2.pdf ...]
  statement-converter -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement to CSV
  statement-converter statement.pdf

  # Styled spreadsheet with a summary sheet
  statement-converter -format=xlsx statement.pdf

  # Statements with two-digit years from the 1990s
  statement-converter -pivot=30 old-statement.pdf

  # Run as an HTTP service
  statement-converter -serve -addr=:8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-converter v%s\n", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *serveFlag {
		serve(*addrFlag)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	format := strings.ToLower(*formatFlag)
	switch format {
	case "csv", "xlsx", "both":
	default:
		fatalf("Unknown format %q. Supported: csv, xlsx, both\n", *formatFlag)
	}

	p := parser.NewWithDates(parser.DateInterpreter{YearPivot: *pivotFlag})
	for _, inputPath := range flag.Args() {
		if err := processFile(p, inputPath, format, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(addr string) {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if addr == "" {
		addr = cfg.Addr
	}

	store, err := session.NewStore(cfg.TempDir, cfg.MaxAge)
	if err != nil {
		fatalf("session store: %v\n", err)
	}
	p := parser.NewWithDates(parser.DateInterpreter{YearPivot: cfg.YearPivot})
	app := api.NewApp(api.New(store, p, slog.Default()))

	slog.Info("starting conversion service", "addr", addr, "tempDir", store.Dir)
	if err := app.Listen(addr); err != nil {
		fatalf("server: %v\n", err)
	}
}

func processFile(p *parser.Parser, inputPath, format, outputPath string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	res, err := extractor.Extract(inputPath)
	if err != nil {
		return fmt.Errorf("PDF extraction failed: %w", err)
	}
	fmt.Printf("  Extracted %d page(s) via %s\n", len(res.Pages), res.Method)

	txns, report := p.Parse(res.Text())
	fmt.Printf("  Found %d transaction(s) using the %s strategy\n", report.Total, report.Strategy)
	if report.Total == 0 {
		fmt.Println("  Warning: no transactions found. The statement may be image-based or use an unusual layout.")
	}

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if format == "csv" || format == "both" {
		outPath := outputFor(outputPath, base, ".csv", format)
		w := &writer.CSVWriter{BOM: true}
		if err := w.WriteToFile(outPath, txns); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  Output: %s\n", outPath)
	}
	if format == "xlsx" || format == "both" {
		outPath := outputFor(outputPath, base, ".xlsx", format)
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, txns); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
		fmt.Printf("  Output: %s\n", outPath)
	}

	debits, credits := writer.Totals(txns)
	fmt.Printf("  Total debits: %s  Total credits: %s\n", debits.StringFixed(2), credits.StringFixed(2))
	fmt.Println("  Done.")
	return nil
}

// outputFor resolves the output path. An explicit -output only applies when
// a single format was requested; with -format=both each file keeps the
// input's base name.
func outputFor(explicit, base, ext, format string) string {
	if explicit != "" && format != "both" {
		return explicit
	}
	return base + ext
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
