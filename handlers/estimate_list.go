package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// estimateSummary is the list representation of a saved estimate.
type estimateSummary struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Model      string  `json:"model"`
	Spots      float64 `json:"spots"`
	Province   string  `json:"province"`
	TotalCost  float64 `json:"totalCost"`
	SalesPrice float64 `json:"salesPrice"`
	Created    string  `json:"created"`
}

// HandleEstimateList returns the saved estimates, newest first.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("estimates", "id != ''", "-created", 200, 0)
		if err != nil {
			log.Printf("estimate_list: could not query estimates: %v", err)
			records = nil
		}

		summaries := make([]estimateSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, estimateSummary{
				ID:         rec.Id,
				Label:      rec.GetString("label"),
				Model:      rec.GetString("model"),
				Spots:      rec.GetFloat("spots"),
				Province:   rec.GetString("province"),
				TotalCost:  rec.GetFloat("total_cost"),
				SalesPrice: rec.GetFloat("sales_price"),
				Created:    rec.GetDateTime("created").String(),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"estimates": summaries})
	}
}
