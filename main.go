package main

import (
	"context"
	"log"

	"vitrine/adapters/tabular"
	"vitrine/app"
	"vitrine/internal"
	"vitrine/internal/config"
	"vitrine/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger

	facts := app.NewFactService(tabular.NewReader(), appConfig.Cache.Enabled, logger)
	source := app.NewBoundSource(facts, appConfig.Data.Dir, appConfig.Data.EnrichedFile)
	reports := app.NewReportService(logger)

	// Build up front so a broken data directory fails the boot, not the
	// first request.
	table, err := source.FactTable(context.Background())
	if err != nil {
		log.Fatalf("Failed to build fact table: %v", err)
	}
	logger.Info("fact table loaded: %d rows (build %s)", table.Len(), table.BuildID)

	dashboard, err := ui.NewApp(ui.Config{
		Port:      appConfig.Server.Port,
		NotesFile: appConfig.Output.NotesFile,
	}, source, reports, logger)
	if err != nil {
		log.Fatalf("Failed to create dashboard app: %v", err)
	}

	log.Printf("Starting vitrine dashboard on port %s", appConfig.Server.Port)
	log.Fatal(dashboard.Start())
}
