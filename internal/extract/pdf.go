package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Cell boundaries inside a PDF row are inferred from horizontal gaps between
// text fragments. The reader reports only the X origin of each fragment, no
// glyph widths, so a fragment's right edge is estimated from its rune count
// at approxGlyphWidth points per glyph. A gap wider than columnGap starts a
// new cell; smaller gaps above wordGap separate words within a cell.
const (
	approxGlyphWidth = 6.0
	columnGap        = 12.0
	wordGap          = 1.0
)

func (e *Extractor) extractPDF(ctx context.Context, data []byte, password string) (text string, err error) {
	// The pdf package panics on malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	asked := false
	reader, err := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), func() string {
		if asked {
			return "" // one attempt only; an empty answer stops the retry loop
		}
		asked = true
		return password
	})
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", ErrInvalidPassword
		}
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	rowCount := 0
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// A page without extractable rows contributes nothing.
			e.logger.Warn("extract.pdf.page_skipped", "page", i, "error", err)
			continue
		}
		for _, row := range rows {
			cells := groupCells(row.Content)
			if len(cells) == 0 {
				continue
			}
			b.WriteString(strings.Join(cells, "\t"))
			b.WriteByte('\n')
			rowCount++
		}
	}

	e.logger.Info("extract.pdf.ok", "pages", pages, "rows", rowCount)
	return b.String(), nil
}

// groupCells splits one row of positioned text fragments into table cells.
// Fragments arrive sorted by X. Positioning-only fragments carry no text and
// are skipped. Fragments starting at or before the previous fragment's
// estimated right edge are pieces of the same word and concatenate directly.
func groupCells(row pdf.TextHorizontal) []string {
	var cells []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}

	prevEnd := 0.0
	started := false
	for _, t := range row {
		if t.S == "" {
			continue
		}
		if started {
			gap := t.X - prevEnd
			switch {
			case gap > columnGap:
				flush()
			case gap > wordGap && cur.Len() > 0:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		if end := t.X + approxGlyphWidth*float64(len([]rune(t.S))); end > prevEnd {
			prevEnd = end
		}
		started = true
	}
	flush()
	return cells
}
