package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/transitlab/carbonfleet/app"
	"github.com/transitlab/carbonfleet/config"
	"github.com/transitlab/carbonfleet/infra/plot"
	"github.com/transitlab/carbonfleet/pkg/export"
)

var (
	outDir  string
	summary bool
)

var rootCmd = &cobra.Command{
	Use:   "carbonfleet",
	Short: "Fleet competition and carbon emission simulation",
	Long: "Integrates the ride-sourcing versus cruise-taxi competition model, " +
		"derives the carbon emission trajectory and renders the diagnostic charts.",
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", ".", "directory receiving the chart files")
	rootCmd.PersistentFlags().BoolVar(&summary, "summary", false, "print a JSON run summary to stdout")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.SetDefaults()
	cfg.CarbonChartPath = filepath.Join(outDir, cfg.CarbonChartPath)
	cfg.ShareChartPath = filepath.Join(outDir, cfg.ShareChartPath)

	svc, err := app.New(cfg, plot.New())
	if err != nil {
		return err
	}
	res, err := svc.Run()
	if err != nil {
		return err
	}
	if summary {
		return export.WriteSummaryJSON(os.Stdout, res)
	}
	return nil
}
