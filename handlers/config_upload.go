package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/services"
)

// HandleConfigUpload accepts a configuration sheet as a direct upload (.csv
// or .xlsx) instead of a published URL, and caches its text on the matching
// config_sources record.
func HandleConfigUpload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		kind := e.Request.FormValue("kind")
		switch kind {
		case services.SourceModels, services.SourceLogistics, services.SourceParameters, services.SourceDiscounts:
		default:
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "unknown config kind"})
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "missing file upload"})
		}
		defer file.Close()

		var text string
		lowerName := strings.ToLower(header.Filename)
		switch {
		case strings.HasSuffix(lowerName, ".xlsx"):
			text, err = services.SheetTextFromXLSX(file)
			if err != nil {
				log.Printf("config_upload: xlsx conversion failed: %v", err)
				return e.JSON(http.StatusBadRequest, map[string]any{"error": "could not read xlsx file"})
			}
		case strings.HasSuffix(lowerName, ".csv"), strings.HasSuffix(lowerName, ".txt"):
			raw, err := io.ReadAll(io.LimitReader(file, 8<<20))
			if err != nil {
				return e.JSON(http.StatusBadRequest, map[string]any{"error": "could not read file"})
			}
			text = string(raw)
		default:
			return e.JSON(http.StatusBadRequest, map[string]any{"error": "unsupported file format: must be .csv or .xlsx"})
		}

		records, err := app.FindRecordsByFilter("config_sources", "kind = {:kind}", "", 1, 0, map[string]any{"kind": kind})
		if err != nil || len(records) == 0 {
			return e.JSON(http.StatusNotFound, map[string]any{"error": "config source not registered"})
		}
		record := records[0]
		record.Set("raw_text", text)
		if err := app.Save(record); err != nil {
			log.Printf("config_upload: save %s: %v", kind, err)
			return e.JSON(http.StatusInternalServerError, map[string]any{"error": "could not save config source"})
		}

		cfg := services.LoadConfigSet(app)
		return e.JSON(http.StatusOK, map[string]any{
			"kind":      kind,
			"models":    cfg.Models.Len(),
			"provinces": cfg.Logistics.Len(),
		})
	}
}
