package services

import (
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates a PDF document for a saved estimate using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} di {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteJobBlock(m, data)
	addQuoteBreakdownTable(m, data)
	addQuoteTotals(m, data)
	addQuoteExplanations(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the company name, "PREVENTIVO" title and reference.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("PREVENTIVO", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(data.Label, props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Rif: %s | %s", data.Reference, data.CreatedDate), props.Text{
					Size:  8,
					Align: align.Right,
				}),
			),
		),
		row.New(3),
	)
}

// addQuoteJobBlock adds the job summary: model, spots, destination, dates.
func addQuoteJobBlock(m core.Maroto, data QuoteExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(3).Add(text.New("MODELLO", labelStyle)),
			col.New(3).Add(text.New("POSTI AUTO", labelStyle)),
			col.New(3).Add(text.New("DESTINAZIONE", labelStyle)),
			col.New(3).Add(text.New("INIZIO / DURATA", labelStyle)),
		),
		row.New(7).Add(
			col.New(3).Add(text.New(data.Model, valueStyle)),
			col.New(3).Add(text.New(fmt.Sprintf("%d", data.Spots), valueStyle)),
			col.New(3).Add(text.New(data.Province, valueStyle)),
			col.New(3).Add(text.New(fmt.Sprintf("%s / %.1f gg", data.StartDate, data.Duration), valueStyle)),
		),
		row.New(6).Add(
			col.New(6).Add(text.New("LOGISTICA", labelStyle)),
			col.New(6).Add(text.New("ORE / PESO", labelStyle)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.Result.LogisticsMethod, valueStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("%.2f ore | %.0f kg", data.Result.TotalHours, data.Result.TotalWeightKg), valueStyle)),
		),
		row.New(4),
	)
}

// addQuoteBreakdownTable renders the categorized cost items.
func addQuoteBreakdownTable(m core.Maroto, data QuoteExportData) {
	headerStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerBg := &props.Cell{BackgroundColor: &props.Color{Red: 51, Green: 51, Blue: 51}}

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New("Categoria", headerStyle)).WithStyle(headerBg),
			col.New(6).Add(text.New("Descrizione", headerStyle)).WithStyle(headerBg),
			col.New(3).Add(text.New("Importo", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			})).WithStyle(headerBg),
		),
	)

	cellStyle := props.Text{Size: 8, Align: align.Left}
	amountStyle := props.Text{Size: 8, Align: align.Right}

	for _, item := range data.Result.Items {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(string(item.Category), cellStyle)),
				col.New(6).Add(text.New(item.Description, cellStyle)),
				col.New(3).Add(text.New(FormatEUR(item.Amount), amountStyle)),
			),
		)
	}
	m.AddRows(row.New(3))
}

// addQuoteTotals renders total cost, margin and sales price.
func addQuoteTotals(m core.Maroto, data QuoteExportData) {
	labelStyle := props.Text{Size: 9, Align: align.Right}
	valueStyle := props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}

	type totalRow struct {
		label string
		value string
	}
	rows := []totalRow{
		{"Costo totale", FormatEUR(data.Result.TotalCost)},
		{"Margine", FormatEUR(data.Result.MarginAmount)},
	}
	if data.Result.DiscountPercent > 0 {
		rows = append(rows, totalRow{"Sconto volume applicato", fmt.Sprintf("%.1f%%", data.Result.DiscountPercent)})
	}

	for _, r := range rows {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(text.New(r.label, labelStyle)),
				col.New(3).Add(text.New(r.value, valueStyle)),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("PREZZO DI VENDITA", props.Text{
				Size:  11,
				Align: align.Right,
				Style: fontstyle.Bold,
			})),
			col.New(3).Add(text.New(FormatEUR(data.Result.SalesPrice), props.Text{
				Size:  11,
				Align: align.Right,
				Style: fontstyle.Bold,
			})),
		),
		row.New(4),
	)
}

// addQuoteExplanations renders the derivation notes so a reviewer can tell
// tabulated values from estimated fallbacks.
func addQuoteExplanations(m core.Maroto, data QuoteExportData) {
	if len(data.Result.Explanations) == 0 {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("NOTE DI CALCOLO", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
	)

	subjects := make([]string, 0, len(data.Result.Explanations))
	for subject := range data.Result.Explanations {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(fmt.Sprintf("%s: %s", subject, data.Result.Explanations[subject]), props.Text{
					Size:  7,
					Align: align.Left,
				})),
			),
		)
	}
}
