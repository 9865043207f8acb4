package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates an Excel file from a saved estimate and returns
// the file contents as a byte slice.
func GenerateQuoteExcel(data QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Label
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Preventivo"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C"}
	widths := []float64{18, 60, 16}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		NumFmt: 4,
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	noteStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 9, Italic: true, Color: "#666666"},
	})
	if err != nil {
		return nil, fmt.Errorf("create note style: %w", err)
	}

	// ── Title block ─────────────────────────────────────────────────────

	f.SetCellValue(sheetName, "A1", "Preventivo "+data.Label)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Modello: %s | Posti: %d | Provincia: %s", data.Model, data.Spots, data.Province))
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Inizio: %s | Durata: %.1f giorni | Logistica: %s", data.StartDate, data.Duration, data.Result.LogisticsMethod))
	f.SetCellStyle(sheetName, "A2", "A3", subtitleStyle)

	// ── Breakdown table ─────────────────────────────────────────────────

	rowNum := 5
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), "Categoria")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), "Descrizione")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), "Importo (EUR)")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("C%d", rowNum), headerStyle)

	for _, item := range data.Result.Items {
		rowNum++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), string(item.Category))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), item.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), item.Amount)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("B%d", rowNum), itemStyle)
		f.SetCellStyle(sheetName, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum), amountStyle)
	}

	// ── Totals ──────────────────────────────────────────────────────────

	rowNum += 2
	totals := []struct {
		label string
		value float64
	}{
		{"Costo totale", data.Result.TotalCost},
		{"Margine", data.Result.MarginAmount},
		{"Prezzo di vendita", data.Result.SalesPrice},
	}
	for _, tr := range totals {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), tr.label)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), tr.value)
		f.SetCellStyle(sheetName, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("C%d", rowNum), totalStyle)
		rowNum++
	}

	// ── Derivation notes ────────────────────────────────────────────────

	if len(data.Result.Explanations) > 0 {
		rowNum++
		subjects := make([]string, 0, len(data.Result.Explanations))
		for subject := range data.Result.Explanations {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)

		for _, subject := range subjects {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s: %s", subject, data.Result.Explanations[subject]))
			f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), noteStyle)
			rowNum++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write quote workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// thinBorders returns a thin black border on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
