package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/store"
)

// RunOptions tunes one invocation.
type RunOptions struct {
	// Command names the caller in the run history.
	Command string
	// Refresh downloads the dataset before loading it.
	Refresh bool
}

// RunResult is the outcome of a run.
type RunResult struct {
	ID     string
	Table  *model.Table
	Charts []model.Chart
	// Refreshed is set when a download replaced the cached file.
	Refreshed bool
}

// BuildCharts builds the chart set of a run in display order: cases by
// countries, cases per single country, deaths per single country, the total
// deaths snapshot and, when asked for, the death lines.
func BuildCharts(t *model.Table, spec model.RunSpec) []model.Chart {
	charts := []model.Chart{BarCasesByCountries(t, spec.Countries)}
	for _, country := range spec.SingleCountries {
		charts = append(charts, BarCases(t, country))
	}
	for _, country := range spec.SingleCountries {
		charts = append(charts, BarDeaths(t, country))
	}
	charts = append(charts, BarTotalDeathsByCountries(t, spec.Countries, spec.SnapshotDate))
	if spec.DeathLines {
		charts = append(charts, LineDeathsByCountries(t, spec.Countries))
	}
	return charts
}

// ------------------- Run -------------------

// Run loads the cached dataset once and builds the charts for spec. A failed
// refresh is not an error; a failed load is.
func Run(ctx context.Context, cfg config.Config, spec model.RunSpec, opts RunOptions) (result *RunResult, err error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := slog.With("run_id", runID)
	fmt.Printf("🚀 Starting run %s\n", runID)

	if saveErr := store.SaveRun(runID, opts.Command); saveErr != nil {
		logger.WarnContext(ctx, "failed to record run", "error", saveErr)
	}
	defer func() {
		if err != nil {
			if storeErr := store.FailRun(runID, err); storeErr != nil {
				logger.WarnContext(ctx, "failed to record run failure", "error", storeErr)
			}
		}
	}()

	refreshed := false
	if opts.Refresh {
		refreshed = TryDownload(ctx, cfg)
	}

	table, err := LoadData(cfg.DataPath())
	if err != nil {
		return nil, err
	}
	fmt.Printf("📄 Loaded %d rows from %s\n", table.Len(), cfg.DataPath())

	charts := BuildCharts(table, spec)
	logger.DebugContext(ctx, "charts built", "charts", len(charts), "duration", time.Since(start))

	if storeErr := store.CompleteRun(runID, table.Len(), len(charts), ""); storeErr != nil {
		logger.WarnContext(ctx, "failed to record run completion", "error", storeErr)
	}

	return &RunResult{ID: runID, Table: table, Charts: charts, Refreshed: refreshed}, nil
}
