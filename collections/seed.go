package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/services"
)

type sourceDef struct {
	kind string
	url  string
}

type settingDef struct {
	key         string
	value       float64
	description string
}

// Published-sheet URLs of the operator-maintained configuration. The models
// and logistics documents are separate publications of the same workbook.
var defaultSources = []sourceDef{
	{services.SourceModels, "https://docs.google.com/spreadsheets/d/e/2PACX-1vR9RtPO7RSU2bQMuQLxtF44P0IT0ccAp4NgMAmSx6u-xGBNtSb2GPrN9YbVdLA7XQ/pub?output=csv"},
	{services.SourceLogistics, "https://docs.google.com/spreadsheets/d/e/2PACX-1vTL-4djiL6_Z8-PmHgKeJ2QmEHtZdChrJXEBIni0FyQ8Nu3dkm_6j5haSd6SElMNw/pub?output=csv"},
	{services.SourceParameters, "https://docs.google.com/spreadsheets/d/e/2PACX-1vTL-4djiL6_Z8-PmHgKeJ2QmEHtZdChrJXEBIni0FyQ8Nu3dkm_6j5haSd6SElMNw/pub?output=csv"},
	{services.SourceDiscounts, ""},
}

var defaultSettings = []settingDef{
	{"internal_hourly_rate", 20, "Costo orario tecnico interno, EUR"},
	{"external_hourly_rate", 37, "Costo orario tecnico esterno (tutto incluso), EUR"},
	{"per_diem", 50, "Diaria giornaliera per tecnico, EUR"},
	{"hotel_nightly", 80, "Costo medio hotel per notte per tecnico, EUR"},
	{"fuel_price", 1.85, "Prezzo carburante, EUR/litro"},
	{"km_per_liter", 12, "Consumo medio furgone, km/litro"},
	{"wear_per_km", 0.15, "Usura veicolo aziendale, EUR/km"},
	{"toll_per_km", 0.10, "Stima pedaggi autostradali, EUR/km"},
	{"default_margin", 30, "Margine obiettivo predefinito, percento del prezzo di vendita"},
}

// Seed inserts the default config sources and settings when their
// collections are empty. Existing records are never touched: operators own
// the configuration after first boot.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSources(app); err != nil {
		return err
	}
	return seedSettings(app)
}

func seedSources(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("config_sources")
	if err != nil {
		return fmt.Errorf("config_sources collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0)
	if err == nil && len(existing) > 0 {
		return nil
	}

	for _, def := range defaultSources {
		record := core.NewRecord(col)
		record.Set("kind", def.kind)
		record.Set("url", def.url)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed config source %s: %w", def.kind, err)
		}
	}
	return nil
}

func seedSettings(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return fmt.Errorf("app_settings collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0)
	if err == nil && len(existing) > 0 {
		return nil
	}

	for _, def := range defaultSettings {
		record := core.NewRecord(col)
		record.Set("key", def.key)
		record.Set("value", def.value)
		record.Set("description", def.description)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed setting %s: %w", def.key, err)
		}
	}
	return nil
}
