package main

import (
	"log"

	"vitrine/adapters/tabular"
	"vitrine/app"
	"vitrine/internal"
	"vitrine/internal/config"
	"vitrine/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.API.GinMode)

	logger := internal.DefaultLogger
	facts := app.NewFactService(tabular.NewReader(), appConfig.Cache.Enabled, logger)
	source := app.NewBoundSource(facts, appConfig.Data.Dir, appConfig.Data.EnrichedFile)
	reports := app.NewReportService(logger)

	api := ui.NewAPI(source, reports, logger)

	logger.Info("Starting JSON API on port %s", appConfig.API.Port)
	if err := api.Start(appConfig.API.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
