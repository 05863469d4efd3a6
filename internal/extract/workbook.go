package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func (e *Extractor) extractWorkbook(ctx context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.workbook.close_error", "error", cerr)
		}
	}()

	var b strings.Builder
	rowCount := 0
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// Raw rows, no header assumption. GetRows drops trailing empty
		// cells, so every row is padded back out to the sheet's widest row
		// to keep column order intact.
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		for _, row := range rows {
			for len(row) < width {
				row = append(row, "")
			}
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
			rowCount++
		}
	}

	e.logger.Info("extract.workbook.ok", "sheets", len(sheets), "rows", rowCount)
	return b.String(), nil
}
