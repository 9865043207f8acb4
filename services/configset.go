package services

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// Config source kinds stored in the config_sources collection.
const (
	SourceModels     = "models"
	SourceLogistics  = "logistics"
	SourceParameters = "parameters"
	SourceDiscounts  = "discounts"
)

// LoadConfigSet builds a ConfigSet from the sheet text cached in the
// config_sources collection. A missing or empty source degrades to an
// empty table or to defaults; the pipeline never depends on an ambient
// fetch having happened.
//
// Cost parameters layer in precedence order: compile-time defaults, then
// the stored app_settings records, then the published parameter sheet.
func LoadConfigSet(app *pocketbase.PocketBase) ConfigSet {
	texts := make(map[string]string)

	records, err := app.FindRecordsByFilter("config_sources", "id != ''", "", 0, 0)
	if err != nil {
		log.Printf("configset: LoadConfigSet: could not query config_sources: %v", err)
	}
	for _, rec := range records {
		texts[rec.GetString("kind")] = rec.GetString("raw_text")
	}

	base, defaultMargin := loadSettings(app)

	cfg := BuildConfigSet(
		texts[SourceModels],
		texts[SourceLogistics],
		texts[SourceParameters],
		texts[SourceDiscounts],
	)
	cfg.Params = ParseParamSetWith(base, texts[SourceParameters])
	cfg.DefaultMarginPercent = defaultMargin
	return cfg
}

// loadSettings overlays the stored app_settings records onto the default
// cost parameters and extracts the default margin. Zero-valued and unknown
// keys are skipped.
func loadSettings(app *pocketbase.PocketBase) (CostParams, float64) {
	base := DefaultCostParams()
	var defaultMargin float64

	records, err := app.FindRecordsByFilter("app_settings", "id != ''", "", 0, 0)
	if err != nil {
		log.Printf("configset: loadSettings: could not query app_settings: %v", err)
		return base, 0
	}
	for _, rec := range records {
		key := rec.GetString("key")
		value := rec.GetFloat("value")
		if value == 0 {
			continue
		}
		if key == "default_margin" {
			defaultMargin = value
			continue
		}
		if !ApplySetting(&base, key, value) {
			log.Printf("configset: loadSettings: unknown setting key %q ignored", key)
		}
	}
	return base, defaultMargin
}

// RefreshConfigSources re-fetches every registered config source and caches
// the raw text on its record. Sources without a URL are skipped; a failed
// fetch keeps the previously cached text. Returns the number of refreshed
// sources and the first error encountered, if any.
func RefreshConfigSources(ctx context.Context, app *pocketbase.PocketBase) (int, error) {
	records, err := app.FindRecordsByFilter("config_sources", "id != ''", "", 0, 0)
	if err != nil {
		return 0, fmt.Errorf("query config_sources: %w", err)
	}

	var refreshed int
	var firstErr error
	for _, rec := range records {
		url := rec.GetString("url")
		if url == "" {
			continue
		}
		text, err := FetchSheet(ctx, url)
		if err != nil {
			log.Printf("configset: RefreshConfigSources: %s: %v", rec.GetString("kind"), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rec.Set("raw_text", text)
		if err := app.Save(rec); err != nil {
			log.Printf("configset: RefreshConfigSources: save %s: %v", rec.GetString("kind"), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		refreshed++
	}
	return refreshed, firstErr
}
