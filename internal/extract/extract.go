// Package extract turns uploaded statement files into tabular text:
// one line per detected row, cells joined with tabs.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/statement-analyzer/constants"
)

var (
	// ErrUnsupportedFileType means the upload is neither a PDF nor a workbook.
	ErrUnsupportedFileType = errors.New("unsupported file type: upload a PDF or Excel workbook")

	// ErrInvalidPassword means an encrypted PDF rejected the supplied password.
	ErrInvalidPassword = errors.New("invalid password for the PDF")

	// ErrEmptyExtraction means the file opened fine but produced no tabular text.
	ErrEmptyExtraction = errors.New("could not extract tabular data from the file")
)

// Extractor produces the normalized text blob the prompt builder consumes.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract parses data according to contentType and returns tab-joined rows,
// newline-separated, in document order. password is only consulted for
// encrypted PDFs and may be empty. ctx cancels mid-document: parsing stops
// between pages or sheets.
func (e *Extractor) Extract(ctx context.Context, data []byte, contentType, password string) (string, error) {
	start := time.Now()

	var (
		text string
		err  error
	)
	switch {
	case constants.IsPDF(contentType):
		text, err = e.extractPDF(ctx, data, password)
	case constants.IsWorkbook(contentType):
		text, err = e.extractWorkbook(ctx, data)
	default:
		e.logger.Warn("extract.unsupported_type", "content_type", contentType)
		return "", fmt.Errorf("%w (got %q)", ErrUnsupportedFileType, contentType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Warn("extract.empty",
			"content_type", contentType,
			"bytes", len(data),
		)
		return "", ErrEmptyExtraction
	}

	e.logger.Info("extract.ok",
		"content_type", contentType,
		"bytes", len(data),
		"text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
