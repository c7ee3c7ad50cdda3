// Package main provides the CLI entry point for owid-charts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/pipeline"
	"owid-charts/internal/store"
	"owid-charts/pkg/utils"
)

var (
	refresh    bool
	deathLines bool
)

func main() {
	cfg := config.Load()
	slog.SetDefault(utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogColor))

	if err := store.InitDB(cfg.DBPath); err != nil {
		slog.Warn("run history disabled", "error", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Chart the cached dataset in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd.Context(), cfg)
		},
	}
	showCmd.Flags().BoolVar(&refresh, "refresh", false, "Download the dataset before charting")

	rootCmd := &cobra.Command{
		Use:   "owid-charts",
		Short: "Interactive charts of the OWID COVID-19 dataset",
		Long: `owid-charts loads the Our World in Data COVID-19 dataset and shows
daily cases, daily deaths and a total deaths snapshot for a fixed set of
countries on one interactive page.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         showCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(showCmd.Flags())

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the dataset into the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return download(cmd.Context(), cfg)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the charts to HTML, PNG and xlsx files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := model.DefaultRunSpec()
			spec.DeathLines = deathLines
			result, _, err := pipeline.Export(cmd.Context(), cfg, spec, pipeline.RunOptions{Command: "export", Refresh: refresh})
			if err != nil {
				return err
			}
			fmt.Printf("🏁 Run %s exported %d charts\n", result.ID, len(result.Charts))
			return nil
		},
	}
	exportCmd.Flags().BoolVar(&refresh, "refresh", false, "Download the dataset before charting")
	exportCmd.Flags().BoolVar(&deathLines, "death-lines", false, "Add the new deaths line chart")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Show a fixed bar chart without loading the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := pipeline.OpenCharts(cmd.Context(), []model.Chart{pipeline.DemoBarChart()})
			return err
		},
	}

	rootCmd.AddCommand(showCmd, downloadCmd, exportCmd, demoCmd)
	return rootCmd
}

func download(ctx context.Context, cfg config.Config) error {
	if !pipeline.TryDownload(ctx, cfg) {
		return errors.Wrapf(pipeline.ErrDownloadFailed, "download of %s failed, cached file left in place", cfg.DataURL)
	}
	return nil
}

func show(ctx context.Context, cfg config.Config) error {
	_, err := pipeline.Show(ctx, cfg, model.DefaultRunSpec(), pipeline.RunOptions{Command: "show", Refresh: refresh})
	if err != nil {
		slog.ErrorContext(ctx, "cannot chart the dataset", "path", cfg.DataPath(), "error", err)
	}
	return err
}
