package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pkg/browser"

	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/render"
	"owid-charts/internal/store"
	"owid-charts/pkg/utils"
)

// Export file names inside a run directory.
const (
	PageFileName     = "charts.html"
	WorkbookFileName = "charts.xlsx"
	SpecsFileName    = "charts.json"
)

// ExportManager writes the charts of one run into its output directory.
type ExportManager struct {
	RunID   string
	Charts  []model.Chart
	Output  *utils.OutputManager
	Results []model.ExportResult

	failures []error
}

// NewExportManager prepares an export of result below outputDir.
func NewExportManager(outputDir string, result *RunResult) *ExportManager {
	return &ExportManager{
		RunID:  result.ID,
		Charts: result.Charts,
		Output: utils.NewOutputManager(outputDir),
	}
}

// ExportCharts writes the page, one PNG per chart, the workbook and the chart
// specs into <output>/<runID>/. A failed file is recorded in its result and
// does not stop the others; the error reports the first failure. A chart with
// nothing to draw gets no PNG and is not a failure.
func (em *ExportManager) ExportCharts(ctx context.Context) ([]model.ExportResult, error) {
	runDir, err := em.Output.CreateRunOutputDir(em.RunID)
	if err != nil {
		return nil, err
	}
	fmt.Printf("💾 Export: writing %d charts to %s\n", len(em.Charts), runDir)

	em.record(PageFileName, len(em.Charts), em.writePage)
	for i, c := range em.Charts {
		if ctx.Err() != nil {
			return em.Results, ctx.Err()
		}
		name := fmt.Sprintf("chart-%d.png", i+1)
		em.record(name, 1, func(path string) error {
			var buf bytes.Buffer
			if err := render.WritePNG(&buf, c); err != nil {
				return err
			}
			return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "write %s", path)
		})
	}
	em.record(WorkbookFileName, len(em.Charts), func(path string) error {
		return render.WriteWorkbook(path, em.Charts)
	})
	em.record(SpecsFileName, len(em.Charts), em.writeSpecs)

	written := 0
	for _, r := range em.Results {
		if r.Success {
			written++
		}
	}
	fmt.Printf("💾 Export Summary: %d of %d files written\n", written, len(em.Results))

	if err := store.SetRunOutput(em.RunID, runDir); err != nil {
		slog.WarnContext(ctx, "failed to record export directory", "run_id", em.RunID, "error", err)
	}
	if len(em.failures) > 0 {
		return em.Results, em.failures[0]
	}
	return em.Results, nil
}

func (em *ExportManager) record(fileName string, chartCount int, write func(path string) error) {
	result := model.ExportResult{
		Type:       em.Output.GetFileType(fileName),
		ChartCount: chartCount,
		Timestamp:  time.Now(),
	}

	path, err := em.Output.GetOutputFilePath(em.RunID, fileName)
	if err == nil {
		result.Path = path
		err = write(path)
	}

	result.Success = err == nil
	switch {
	case errors.Is(err, render.ErrNothingToDraw):
		result.Error = err.Error()
		fmt.Printf("⏭️  Skipped %s: %v\n", fileName, err)
	case err != nil:
		result.Error = err.Error()
		em.failures = append(em.failures, errors.Wrapf(err, "export %s", fileName))
		fmt.Printf("❌ Export of %s failed: %v\n", fileName, err)
	default:
		fmt.Printf("✅ Exported %s\n", path)
	}
	em.Results = append(em.Results, result)
}

func (em *ExportManager) writePage(path string) error {
	return writeFile(path, func(f *os.File) error { return render.WriteHTML(f, em.Charts) })
}

func (em *ExportManager) writeSpecs(path string) error {
	return writeFile(path, func(f *os.File) error {
		encoder := json.NewEncoder(f)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"export_info": map[string]interface{}{
				"run_id":      em.RunID,
				"exported_at": time.Now().UTC(),
				"chart_count": len(em.Charts),
			},
			"charts": em.Charts,
		})
	})
}

func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "close %s", path)
		}
	}()
	return write(f)
}

// Export runs the pipeline and writes its charts under cfg.OutputDir.
func Export(ctx context.Context, cfg config.Config, spec model.RunSpec, opts RunOptions) (*RunResult, []model.ExportResult, error) {
	result, err := Run(ctx, cfg, spec, opts)
	if err != nil {
		return nil, nil, err
	}
	results, err := NewExportManager(cfg.OutputDir, result).ExportCharts(ctx)
	return result, results, err
}

// ------------------- Show -------------------

// openFile is swapped in tests to keep the browser closed.
var openFile = browser.OpenFile

// Show runs the pipeline, writes the chart page to a temporary file and opens
// it in the default browser. It returns the page path.
func Show(ctx context.Context, cfg config.Config, spec model.RunSpec, opts RunOptions) (string, error) {
	result, err := Run(ctx, cfg, spec, opts)
	if err != nil {
		return "", err
	}
	return OpenCharts(ctx, result.Charts)
}

// OpenCharts writes charts to a page in a fresh temporary directory and opens
// it. Failing to reach a browser is only logged.
func OpenCharts(ctx context.Context, charts []model.Chart) (string, error) {
	dir, err := os.MkdirTemp("", "owid-charts-")
	if err != nil {
		return "", errors.Wrap(err, "create page directory")
	}
	path := filepath.Join(dir, PageFileName)
	if err := writeFile(path, func(f *os.File) error { return render.WriteHTML(f, charts) }); err != nil {
		return "", err
	}
	fmt.Printf("📊 Chart page written to %s\n", path)

	if err := openFile(path); err != nil {
		slog.WarnContext(ctx, "failed to open browser", "path", path, "error", err)
	}
	return path, nil
}
