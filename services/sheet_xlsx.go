package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetTextFromXLSX converts the first worksheet of an uploaded .xlsx file
// into the delimited text form the table parsers consume, so spreadsheet
// uploads and published CSV exports share one ingestion path.
func SheetTextFromXLSX(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("read xlsx sheet: %w", err)
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(cell))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// quoteField wraps a cell in double quotes when it contains a delimiter,
// matching what the quote-aware splitter expects.
func quoteField(cell string) string {
	if strings.ContainsAny(cell, ",;\"") {
		return `"` + strings.ReplaceAll(cell, `"`, "'") + `"`
	}
	return cell
}
