package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"vitrine/adapters/tabular"
	"vitrine/adapters/warehouse"
	"vitrine/app"
	"vitrine/domain/sales"
	"vitrine/internal"
	"vitrine/ports"
	"vitrine/ui"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vitrine-cli",
		Short: "Vitrine CLI for building the order fact table, rendering reports and exporting",
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newRenderCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceFlags selects where fact rows come from: the raw extract directory
// or a pre-joined enriched file that bypasses the builder.
type sourceFlags struct {
	dataDir  string
	enriched string
}

func (sf *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.dataDir, "data-dir", "./data", "Directory containing the raw Olist extracts")
	cmd.Flags().StringVar(&sf.enriched, "enriched", "", "Pre-joined fact file with sentiment labels (bypasses the builder)")
}

func (sf *sourceFlags) source() ports.FactSource {
	facts := app.NewFactService(tabular.NewReader(), false, nil)
	return app.NewBoundSource(facts, sf.dataDir, sf.enriched)
}

func (sf *sourceFlags) load(ctx context.Context) (*sales.Table, error) {
	return sf.source().FactTable(ctx)
}

func newBuildCmd() *cobra.Command {
	src := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the fact table and print its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			table, err := src.load(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(started).Round(time.Millisecond)

			opts := sales.ComputeFilterOptions(table.Rows)
			fmt.Printf("Build %s completed in %s\n", table.BuildID, elapsed)
			fmt.Printf("Fact rows: %d\n", table.Len())
			if len(opts.Years) > 0 {
				fmt.Printf("Order years: %d-%d\n", opts.YearMin, opts.YearMax)
			}
			fmt.Printf("Customer states: %d\n", len(opts.States))
			fmt.Printf("Category filter options: %d\n", len(opts.Categories))
			fmt.Printf("Payment range: %.2f-%.2f\n", opts.PaymentMin, opts.PaymentMax)
			if table.Enriched {
				fmt.Println("Sentiment labels: present")
			}
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	src := &sourceFlags{}
	var out, notes string
	var yearFrom, yearTo int
	var states, categories []string
	var payMin, payMax float64

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the static HTML dashboard for a filtered subset",
		Long: `Render the self-contained HTML dashboard to a file.

Filter flags narrow the subset the same way the interactive dashboard does;
omitted flags leave their dimension unconstrained.

Example: vitrine-cli render --data-dir ./data --year-from 2017 --state SP --state RJ --out dash.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := src.load(cmd.Context())
			if err != nil {
				return err
			}

			filter := filterFromFlags(cmd, table, yearFrom, yearTo, states, categories, payMin, payMax)

			reports := app.NewReportService(internal.DefaultLogger)
			rep := reports.Build(table, filter)
			if rep.NoData {
				fmt.Println("Filter matched no rows; writing the no-data notice")
			}

			renderer, err := ui.NewStaticRenderer(internal.DefaultLogger)
			if err != nil {
				return err
			}
			if err := renderer.Write(table, rep, notes, out); err != nil {
				return err
			}
			fmt.Printf("Dashboard written to %s (%d fact rows)\n", out, rep.RowCount)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&out, "out", "./dashboard/olist_business_dashboard.html", "Output HTML path")
	cmd.Flags().StringVar(&notes, "notes", "", "Markdown notes file appended to the report")
	cmd.Flags().IntVar(&yearFrom, "year-from", 0, "Keep orders from this year on (inclusive)")
	cmd.Flags().IntVar(&yearTo, "year-to", 0, "Keep orders up to this year (inclusive)")
	cmd.Flags().StringSliceVar(&states, "state", nil, "Customer states to keep (repeatable)")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "English category names to keep (repeatable)")
	cmd.Flags().Float64Var(&payMin, "pay-min", 0, "Keep orders paying at least this value")
	cmd.Flags().Float64Var(&payMax, "pay-max", 0, "Keep orders paying at most this value")

	return cmd
}

// filterFromFlags translates flag values into a filter. Range flags set only
// on one side borrow the other bound from the table itself.
func filterFromFlags(cmd *cobra.Command, table *sales.Table, yearFrom, yearTo int, states, categories []string, payMin, payMax float64) *sales.Filter {
	opts := sales.ComputeFilterOptions(table.Rows)
	filter := &sales.Filter{}

	if cmd.Flags().Changed("year-from") || cmd.Flags().Changed("year-to") {
		years := sales.IntRange{Min: opts.YearMin, Max: opts.YearMax}
		if cmd.Flags().Changed("year-from") {
			years.Min = yearFrom
		}
		if cmd.Flags().Changed("year-to") {
			years.Max = yearTo
		}
		filter.Years = &years
	}
	if len(states) > 0 {
		filter.States = sales.NewSelection(states)
	}
	if len(categories) > 0 {
		filter.Categories = sales.NewSelection(categories)
	}
	if cmd.Flags().Changed("pay-min") || cmd.Flags().Changed("pay-max") {
		payment := sales.FloatRange{Min: opts.PaymentMin, Max: opts.PaymentMax}
		if cmd.Flags().Changed("pay-min") {
			payment.Min = payMin
		}
		if cmd.Flags().Changed("pay-max") {
			payment.Max = payMax
		}
		filter.Payment = &payment
	}

	return filter
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the fact table to an external sink",
	}

	cmd.AddCommand(
		newExportXLSXCmd(),
		newExportPostgresCmd(),
	)

	return cmd
}

func newExportXLSXCmd() *cobra.Command {
	src := &sourceFlags{}
	var out string

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write the fact table to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			exports := app.NewExportService(src.source(), internal.DefaultLogger)
			table, err := exports.Export(cmd.Context(), tabular.NewXLSXSink(out))
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d fact rows to %s\n", table.Len(), out)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&out, "out", "./dashboard/fact_orders.xlsx", "Output workbook path")
	return cmd
}

func newExportPostgresCmd() *cobra.Command {
	src := &sourceFlags{}
	var databaseURL string
	var batchSize int

	cmd := &cobra.Command{
		Use:   "postgres",
		Short: "Load the fact table into a Postgres warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := databaseURL
			if url == "" {
				url = os.Getenv("DATABASE_URL")
			}
			if url == "" {
				return fmt.Errorf("no connection string: pass --database-url or set DATABASE_URL")
			}

			db, err := warehouse.Connect(url)
			if err != nil {
				return err
			}
			defer db.Close()

			exporter := warehouse.NewExporter(db, batchSize, internal.DefaultLogger)
			if err := exporter.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			exports := app.NewExportService(src.source(), internal.DefaultLogger)
			table, err := exports.Export(cmd.Context(), exporter)
			if err != nil {
				return err
			}
			fmt.Printf("Loaded %d fact rows into fact_orders\n", table.Len())
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (falls back to DATABASE_URL)")
	cmd.Flags().IntVar(&batchSize, "batch", 500, "Rows per INSERT batch")
	return cmd
}
