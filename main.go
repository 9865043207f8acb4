package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fieldquote/collections"
	"fieldquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed default configuration on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Estimates ────────────────────────────────────────────
		se.Router.POST("/api/fieldquote/estimates", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/fieldquote/estimates", handlers.HandleEstimateList(app))
		se.Router.GET("/api/fieldquote/estimates/{id}", handlers.HandleEstimateView(app))
		se.Router.DELETE("/api/fieldquote/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Quote exports ────────────────────────────────────────
		se.Router.GET("/api/fieldquote/estimates/{id}/export/pdf", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/api/fieldquote/estimates/{id}/export/excel", handlers.HandleQuoteExportExcel(app))

		// ── Configuration ────────────────────────────────────────
		se.Router.GET("/api/fieldquote/models", handlers.HandleModelCatalog(app))
		se.Router.POST("/api/fieldquote/config/reload", handlers.HandleConfigReload(app))
		se.Router.POST("/api/fieldquote/config/upload", handlers.HandleConfigUpload(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
