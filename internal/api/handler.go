// Package api exposes the conversion service over HTTP.
package api

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/ledgerlift/statement-converter/internal/extractor"
	"github.com/ledgerlift/statement-converter/internal/parser"
	"github.com/ledgerlift/statement-converter/internal/session"
	"github.com/ledgerlift/statement-converter/internal/writer"
)

// Handler holds the dependencies shared by all routes.
type Handler struct {
	Store  *session.Store
	Parser *parser.Parser
	Log    *slog.Logger
}

// New returns a handler using the given store and parser. A nil logger
// falls back to slog's default.
func New(store *session.Store, p *parser.Parser, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Store: store, Parser: p, Log: log}
}

// NewApp builds the fiber application with middleware and all routes
// registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: session.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	h.Register(app)
	return app
}

// Register attaches all routes to the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/convert", h.Convert)
	app.Get("/api/download/:session/:format", h.Download)
	app.Delete("/api/cleanup/:session", h.CleanupSession)
}

// ConvertResponse describes a completed conversion.
type ConvertResponse struct {
	SessionID        string            `json:"sessionId"`
	TransactionCount int               `json:"transactionCount"`
	Strategy         string            `json:"strategy"`
	ExtractionMethod string            `json:"extractionMethod"`
	TotalDebits      string            `json:"totalDebits"`
	TotalCredits     string            `json:"totalCredits"`
	Downloads        map[string]string `json:"downloads"`
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": "fiber"})
}

// Convert accepts a statement PDF (multipart field "file") or already
// extracted text (form field "extractedText"), parses it, and writes CSV
// and XLSX outputs into a new session.
func (h *Handler) Convert(c *fiber.Ctx) error {
	h.Store.CleanupOld()

	id := h.Store.NewID()
	text, method, err := h.statementText(c, id)
	if err != nil {
		return badRequest(c, err.Error())
	}

	txns, report := h.Parser.Parse(text)
	h.Log.Info("statement converted",
		"session", id,
		"method", method,
		"strategy", report.Strategy,
		"transactions", report.Total)

	csvW := &writer.CSVWriter{BOM: true}
	if err := csvW.WriteToFile(h.Store.Path(id, ".csv"), txns); err != nil {
		return serverError(c, h.Log, "writing CSV output", err)
	}
	xlsxW := &writer.XLSXWriter{}
	if err := xlsxW.WriteToFile(h.Store.Path(id, ".xlsx"), txns); err != nil {
		return serverError(c, h.Log, "writing XLSX output", err)
	}

	debits, credits := writer.Totals(txns)
	return c.JSON(ConvertResponse{
		SessionID:        id,
		TransactionCount: report.Total,
		Strategy:         report.Strategy,
		ExtractionMethod: method,
		TotalDebits:      debits.StringFixed(2),
		TotalCredits:     credits.StringFixed(2),
		Downloads: map[string]string{
			"csv":  fmt.Sprintf("/api/download/%s/csv", id),
			"xlsx": fmt.Sprintf("/api/download/%s/xlsx", id),
		},
	})
}

// statementText resolves the text to parse, either by extracting an
// uploaded PDF or from a pasted-text form field.
func (h *Handler) statementText(c *fiber.Ctx, id string) (text, method string, err error) {
	if pasted := strings.TrimSpace(c.FormValue("extractedText")); pasted != "" {
		return pasted, "manual", nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("provide a PDF in the %q field or text in %q", "file", "extractedText")
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	if err := session.ValidatePDF(data); err != nil {
		return "", "", err
	}

	pdfPath := h.Store.Path(id, ".pdf")
	if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("store upload: %w", err)
	}
	// The sanitized upload name is kept alongside the session files so
	// downloads can carry a recognizable filename.
	name := session.SafeFilename(fh.Filename)
	if err := os.WriteFile(h.Store.Path(id, ".name"), []byte(name), 0o644); err != nil {
		h.Log.Warn("could not record upload filename", "error", err)
	}

	res, err := extractor.Extract(pdfPath)
	if err != nil {
		return "", "", err
	}
	return res.Text(), res.Method, nil
}

// Download streams a converted file back to the client.
func (h *Handler) Download(c *fiber.Ctx) error {
	id := c.Params("session")
	if _, err := uuid.Parse(id); err != nil {
		return badRequest(c, "invalid session id")
	}
	format := c.Params("format")
	if format != "csv" && format != "xlsx" {
		return badRequest(c, "format must be csv or xlsx")
	}

	path := h.Store.Path(id, "."+format)
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no converted file for this session"})
	}
	return c.Download(path, h.downloadName(id, format))
}

// downloadName derives the attachment filename from the uploaded file's
// recorded name when the session has one, defaulting to "transactions".
func (h *Handler) downloadName(id, format string) string {
	base := "transactions"
	if data, err := os.ReadFile(h.Store.Path(id, ".name")); err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			base = strings.TrimSuffix(name, filepath.Ext(name))
		}
	}
	return base + "." + format
}

// CleanupSession deletes all files belonging to a session.
func (h *Handler) CleanupSession(c *fiber.Ctx) error {
	id := c.Params("session")
	if _, err := uuid.Parse(id); err != nil {
		return badRequest(c, "invalid session id")
	}
	if err := h.Store.Cleanup(id); err != nil {
		return serverError(c, h.Log, "session cleanup", err)
	}
	return c.JSON(fiber.Map{"status": "cleaned", "sessionId": id})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func serverError(c *fiber.Ctx, log *slog.Logger, op string, err error) error {
	log.Error(op+" failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": op + " failed"})
}
