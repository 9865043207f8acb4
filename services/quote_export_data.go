package services

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// QuoteExportData holds everything the PDF and Excel exporters need to
// render one saved estimate.
type QuoteExportData struct {
	CompanyName string
	Reference   string
	Label       string
	CreatedDate string

	Model     string
	Spots     int
	Province  string
	StartDate string
	Duration  float64

	Result EstimateResult
}

// BuildQuoteExportData loads a saved estimate record and unmarshals its
// stored inputs and result for export.
func BuildQuoteExportData(app *pocketbase.PocketBase, estimateID string) (QuoteExportData, error) {
	record, err := app.FindRecordById("estimates", estimateID)
	if err != nil {
		return QuoteExportData{}, fmt.Errorf("estimate not found: %w", err)
	}

	var spec JobSpecification
	if raw := record.GetString("inputs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			return QuoteExportData{}, fmt.Errorf("decode estimate inputs: %w", err)
		}
	}

	var result EstimateResult
	if raw := record.GetString("result"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return QuoteExportData{}, fmt.Errorf("decode estimate result: %w", err)
		}
	}

	return QuoteExportData{
		CompanyName: "FieldQuote",
		Reference:   record.Id,
		Label:       record.GetString("label"),
		CreatedDate: record.GetDateTime("created").Time().Format("02/01/2006"),
		Model:       spec.ModelQuery,
		Spots:       spec.Spots,
		Province:    spec.Province,
		StartDate:   spec.StartDate,
		Duration:    spec.DurationDays,
		Result:      result,
	}, nil
}
