package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/pipeline"
	"owid-charts/internal/render"
	"owid-charts/internal/store"
)

// ChartHandler serves the charts of the latest successful run.
type ChartHandler struct {
	cfg  config.Config
	spec model.RunSpec

	mu     sync.RWMutex
	result *pipeline.RunResult
	// refreshing serialises POST /data/refresh.
	refreshing sync.Mutex
}

// NewChartHandler builds the initial charts from the cached dataset. A
// missing or malformed file is logged; the chart routes answer 503 until a
// refresh succeeds.
func NewChartHandler(ctx context.Context, cfg config.Config, spec model.RunSpec) *ChartHandler {
	h := &ChartHandler{cfg: cfg, spec: spec}
	result, err := pipeline.Run(ctx, cfg, spec, pipeline.RunOptions{Command: "serve"})
	if err != nil {
		slog.WarnContext(ctx, "no charts available until the dataset is refreshed", "error", err)
		return h
	}
	h.result = result
	return h
}

func (h *ChartHandler) current() *pipeline.RunResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.result
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

// GetPage renders the interactive chart page
// @Summary Chart page
// @Description Interactive page with every chart of the latest run, stacked vertically
// @Tags charts
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 503 {object} map[string]interface{} "No dataset loaded"
// @Router / [get]
func (h *ChartHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	result := h.current()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, result.Charts); err != nil {
		slog.ErrorContext(r.Context(), "failed to render chart page", "error", err)
	}
}

// ListCharts returns the chart specifications of the latest run
// @Summary List charts
// @Description Chart specifications with their plotted points
// @Tags charts
// @Produce json
// @Success 200 {object} map[string]interface{} "Charts"
// @Failure 503 {object} map[string]interface{} "No dataset loaded"
// @Router /charts [get]
func (h *ChartHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	result := h.current()
	if result == nil {
		writeError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": result.ID,
		"charts": result.Charts,
		"count":  len(result.Charts),
	})
}

// RefreshData downloads the dataset and rebuilds the charts
// @Summary Refresh dataset
// @Description Download the OWID dataset, reload it and rebuild every chart. A failed download keeps the cached file.
// @Tags data
// @Produce json
// @Success 200 {object} map[string]interface{} "Charts rebuilt"
// @Failure 500 {object} map[string]interface{} "Dataset could not be loaded"
// @Router /data/refresh [post]
func (h *ChartHandler) RefreshData(w http.ResponseWriter, r *http.Request) {
	h.refreshing.Lock()
	defer h.refreshing.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.DownloadTimeout+time.Minute)
	defer cancel()

	result, err := pipeline.Run(ctx, h.cfg, h.spec, pipeline.RunOptions{Command: "refresh", Refresh: true})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.mu.Lock()
	h.result = result
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":      result.ID,
		"refreshed":   result.Refreshed,
		"row_count":   result.Table.Len(),
		"chart_count": len(result.Charts),
	})
}

// ListRuns retrieves the run history
// @Summary List runs
// @Description Every recorded run, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} model.RunRecord "Runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch runs")
		return
	}
	if runs == nil {
		runs = []model.RunRecord{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun retrieves one run
// @Summary Get run
// @Description Details of one recorded run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.RunRecord "Run"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	prefix := "/api/v1/runs/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	runID := strings.Trim(r.URL.Path[len(prefix):], "/")
	if runID == "" {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	run, err := store.GetRun(runID)
	switch {
	case errors.Is(err, store.ErrRunNotFound):
		writeError(w, http.StatusNotFound, "run not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to fetch run")
	default:
		writeJSON(w, http.StatusOK, run)
	}
}

// ListAcquisitions retrieves recent download attempts
// @Summary List downloads
// @Description Most recent dataset download attempts first
// @Tags data
// @Produce json
// @Param limit query int false "Maximum number of attempts" default(20)
// @Success 200 {object} map[string]interface{} "Download attempts"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /data/acquisitions [get]
func ListAcquisitions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	attempts, err := store.ListAcquisitions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch download attempts")
		return
	}
	if attempts == nil {
		attempts = []model.Acquisition{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"acquisitions": attempts,
		"count":        len(attempts),
		"limit":        limit,
	})
}
