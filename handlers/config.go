package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/services"
)

// HandleConfigReload re-fetches every registered configuration sheet and
// reports how much data the parsers produced, so an operator can see at a
// glance whether a published sheet went missing.
func HandleConfigReload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		refreshed, err := services.RefreshConfigSources(e.Request.Context(), app)
		if err != nil {
			log.Printf("config: reload: %v", err)
		}

		cfg := services.LoadConfigSet(app)
		resp := map[string]any{
			"refreshed":     refreshed,
			"models":        cfg.Models.Len(),
			"provinces":     cfg.Logistics.Len(),
			"discountRules": len(cfg.Discounts),
		}
		if err != nil {
			resp["warning"] = err.Error()
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleModelCatalog returns the selectable model list derived from the
// loaded configuration table.
func HandleModelCatalog(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cfg := services.LoadConfigSet(app)
		return e.JSON(http.StatusOK, map[string]any{
			"models": services.ModelCatalog(cfg.Models),
		})
	}
}
