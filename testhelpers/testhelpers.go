// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/collections"
	"fieldquote/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SetConfigSource stores raw sheet text for one config kind, creating the
// record if needed.
func SetConfigSource(t *testing.T, app *pocketbase.PocketBase, kind, rawText string) {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("config_sources")
	if err != nil {
		t.Fatalf("failed to find config_sources collection: %v", err)
	}

	records, err := app.FindRecordsByFilter(col, "kind = {:kind}", "", 1, 0, map[string]any{"kind": kind})
	var record *core.Record
	if err == nil && len(records) > 0 {
		record = records[0]
	} else {
		record = core.NewRecord(col)
		record.Set("kind", kind)
	}
	record.Set("raw_text", rawText)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save config source %s: %v", kind, err)
	}
}

// SetAppSetting stores one operator setting, creating the record if needed.
func SetAppSetting(t *testing.T, app *pocketbase.PocketBase, key string, value float64) {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		t.Fatalf("failed to find app_settings collection: %v", err)
	}

	records, err := app.FindRecordsByFilter(col, "key = {:key}", "", 1, 0, map[string]any{"key": key})
	var record *core.Record
	if err == nil && len(records) > 0 {
		record = records[0]
	} else {
		record = core.NewRecord(col)
		record.Set("key", key)
	}
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save app setting %s: %v", key, err)
	}
}

// CreateTestEstimate saves an estimate record from a spec and result pair.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, spec services.JobSpecification, result services.EstimateResult) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	inputsJSON, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("failed to encode inputs: %v", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to encode result: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("label", "Preventivo di test")
	record.Set("model", spec.ModelQuery)
	record.Set("spots", spec.Spots)
	record.Set("province", spec.Province)
	record.Set("inputs", string(inputsJSON))
	record.Set("result", string(resultJSON))
	record.Set("total_cost", result.TotalCost)
	record.Set("sales_price", result.SalesPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}
	return record
}
