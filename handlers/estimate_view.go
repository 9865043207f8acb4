package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/services"
)

// HandleEstimateView returns one saved estimate with its full inputs and
// computed result.
func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "estimate not found"})
		}

		var spec services.JobSpecification
		if err := json.Unmarshal([]byte(record.GetString("inputs")), &spec); err != nil {
			log.Printf("estimate_view: corrupt inputs on %s: %v", id, err)
		}
		var result services.EstimateResult
		if err := json.Unmarshal([]byte(record.GetString("result")), &result); err != nil {
			log.Printf("estimate_view: corrupt result on %s: %v", id, err)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":      record.Id,
			"label":   record.GetString("label"),
			"created": record.GetDateTime("created").String(),
			"inputs":  spec,
			"result":  result,
		})
	}
}

// HandleEstimateDelete removes a saved estimate.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("estimates", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "estimate not found"})
		}
		if err := app.Delete(record); err != nil {
			log.Printf("estimate_view: could not delete %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "could not delete estimate"})
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
