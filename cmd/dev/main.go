package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vitrine/adapters/tabular"
	"vitrine/app"
	"vitrine/internal"
	"vitrine/internal/facttable"
	"vitrine/internal/testkit"
	"vitrine/ui"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vitrine-dev",
		Short: "Vitrine development tools",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var dir string
	var orders int
	var seed int64
	var enriched bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write synthetic Olist extracts for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seedExtracts(dir, orders, seed, enriched)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./data", "Target directory for the extracts")
	cmd.Flags().IntVar(&orders, "orders", 500, "Number of orders to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().BoolVar(&enriched, "enriched", false, "Also write the sentiment-enriched fact file")
	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Seed a temp directory, build the fact table and render one report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTest()
		},
	}
	return cmd
}

func seedExtracts(dir string, orders int, seed int64, enriched bool) error {
	fmt.Printf("Generating synthetic extracts (%d orders, seed %d)...\n", orders, seed)

	config := testkit.DefaultOlistConfig()
	config.OrderCount = orders
	config.Seed = seed
	kit := testkit.NewTestKitWithConfig(config)

	if err := kit.SeedDir(dir); err != nil {
		return fmt.Errorf("failed to write extracts: %w", err)
	}
	fmt.Printf("Extracts written to %s\n", dir)

	if enriched {
		path := filepath.Join(dir, "fact_orders_with_sentiment.csv")
		if err := kit.SeedEnriched(path); err != nil {
			return fmt.Errorf("failed to write enriched file: %w", err)
		}
		fmt.Printf("Enriched fact file written to %s\n", path)
	}

	fmt.Printf("Expect %d fact rows from the builder\n", kit.Data().FactRows)
	return nil
}

func runSmokeTest() error {
	fmt.Println("Running smoke test...")

	dir, err := os.MkdirTemp("", "vitrine-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	config := testkit.DefaultOlistConfig()
	config.OrderCount = 200
	kit := testkit.NewTestKitWithConfig(config)
	if err := kit.SeedDir(dir); err != nil {
		return fmt.Errorf("failed to seed extracts: %w", err)
	}
	fmt.Printf("  Seeded extracts in %s\n", dir)

	started := time.Now()
	table, err := facttable.BuildFromDir(tabular.NewReader(), dir)
	if err != nil {
		return fmt.Errorf("fact table build failed: %w", err)
	}
	fmt.Printf("  Built %d fact rows in %s\n", table.Len(), time.Since(started).Round(time.Millisecond))

	if table.Len() != kit.Data().FactRows {
		return fmt.Errorf("row count mismatch: built %d, generator expected %d", table.Len(), kit.Data().FactRows)
	}

	reports := app.NewReportService(internal.DefaultLogger)
	rep := reports.Build(table, nil)
	if rep.NoData {
		return fmt.Errorf("unfiltered report came back empty")
	}

	fmt.Printf("  Total orders:    %d\n", rep.KPIs.TotalOrders)
	fmt.Printf("  Total revenue:   %.2f\n", rep.KPIs.TotalRevenue)
	fmt.Printf("  Avg order value: %.2f\n", rep.KPIs.AvgOrderValue)
	if rep.KPIs.HasReview {
		fmt.Printf("  Avg review:      %.2f\n", rep.KPIs.AvgReview)
	}
	fmt.Printf("  Months charted:  %d\n", len(rep.OrdersPerMonth))
	fmt.Printf("  Top sellers:     %d\n", len(rep.TopSellers))

	renderer, err := ui.NewStaticRenderer(internal.DefaultLogger)
	if err != nil {
		return fmt.Errorf("renderer init failed: %w", err)
	}
	out := filepath.Join(dir, "dashboard.html")
	if err := renderer.Write(table, rep, "", out); err != nil {
		return fmt.Errorf("static render failed: %w", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Printf("  Rendered dashboard: %d bytes\n", info.Size())

	fmt.Println("Smoke test passed")
	return nil
}
