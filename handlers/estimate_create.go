package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/services"
)

// HandleEstimateCreate computes an estimate from a posted JobSpecification,
// stores it and returns the saved record id with the full result.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var spec services.JobSpecification
		if err := json.NewDecoder(e.Request.Body).Decode(&spec); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		}

		cfg := services.LoadConfigSet(app)

		result, err := services.ComputeEstimate(spec, cfg)
		if err != nil {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
		}

		record, err := saveEstimate(app, spec, result)
		if err != nil {
			log.Printf("estimate_create: could not save estimate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "could not save estimate"})
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":     record.Id,
			"result": result,
		})
	}
}

// saveEstimate persists the inputs and computed result on one record.
func saveEstimate(app *pocketbase.PocketBase, spec services.JobSpecification, result services.EstimateResult) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return nil, fmt.Errorf("estimates collection not found: %w", err)
	}

	inputsJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encode inputs: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	label := spec.ModelQuery
	if label == "" {
		label = "Preventivo"
	}
	label = fmt.Sprintf("%s x%d %s", label, spec.Spots, spec.Province)

	record := core.NewRecord(col)
	record.Set("label", label)
	record.Set("model", spec.ModelQuery)
	record.Set("spots", spec.Spots)
	record.Set("province", spec.Province)
	record.Set("inputs", string(inputsJSON))
	record.Set("result", string(resultJSON))
	record.Set("total_cost", result.TotalCost)
	record.Set("sales_price", result.SalesPrice)

	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save estimate: %w", err)
	}
	return record, nil
}
