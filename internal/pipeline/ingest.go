package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"owid-charts/internal/config"
	"owid-charts/internal/model"
	"owid-charts/internal/store"
	"owid-charts/pkg/utils"
)

// ------------------- Acquisition -------------------

// DownloadData fetches url into dir/owid-covid-data.csv. The body is written
// to a temporary file next to the target and renamed over it only once
// complete, so a failed download never touches the cached file.
func DownloadData(ctx context.Context, client *http.Client, url, dir string) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if dir == "" {
		dir = "."
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrapf(ErrDownloadFailed, "build request for %s: %v", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(ErrDownloadFailed, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := errors.Wrapf(ErrDownloadFailed, "GET %s: unexpected status %d", url, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			err = errors.Mark(err, errPermanent)
		}
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+config.DataFileName+".*.part")
	if err != nil {
		return 0, errors.Wrapf(ErrDownloadFailed, "create temporary file: %v", err)
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, errors.Wrapf(ErrDownloadFailed, "write %s: %v", tmpPath, err)
	}

	target := filepath.Join(dir, config.DataFileName)
	if err := os.Rename(tmpPath, target); err != nil {
		return n, errors.Wrapf(ErrDownloadFailed, "replace %s: %v", target, err)
	}
	return n, nil
}

// TryDownload refreshes the cached dataset and reports whether it did. Any
// failure is logged and swallowed; the caller proceeds with whatever file is
// already on disk.
func TryDownload(ctx context.Context, cfg config.Config) bool {
	ctx, cancel := context.WithTimeout(ctx, cfg.DownloadTimeout)
	defer cancel()

	client := &http.Client{Timeout: cfg.DownloadTimeout}
	start := time.Now()
	fmt.Printf("🌐 Downloading %s\n", cfg.DataURL)

	rc := DefaultRetryConfig
	rc.MaxAttempts = cfg.DownloadRetries

	var n int64
	err := withRetry(ctx, rc, func() error {
		var downloadErr error
		n, downloadErr = DownloadData(ctx, client, cfg.DataURL, cfg.DataDir)
		return downloadErr
	})

	acq := model.Acquisition{
		URL:      cfg.DataURL,
		Success:  err == nil,
		Bytes:    n,
		Duration: time.Since(start).Milliseconds(),
	}
	if err != nil {
		acq.Error = err.Error()
	}
	if storeErr := store.SaveAcquisition(acq); storeErr != nil {
		slog.WarnContext(ctx, "failed to record download attempt", "error", storeErr)
	}

	if err != nil {
		slog.WarnContext(ctx, "dataset download skipped", "url", cfg.DataURL, "error", err)
		return false
	}
	fmt.Printf("✅ Downloaded %d bytes to %s\n", n, cfg.DataPath())
	return true
}

// ------------------- Loading -------------------

// LoadData reads the cached dataset, parses the date index and keeps only
// model.RetainedColumns. Empty cells are missing values in every column.
func LoadData(path string) (*model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrDataFileMissing, "load %s: %v", path, err)
		}
		return nil, errors.Wrapf(err, "load %s", path)
	}
	defer file.Close()

	table, err := ReadTable(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return table, nil
}

// ReadTable parses a CSV stream into a table.
func ReadTable(r io.Reader) (*model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.ReuseRecord = true

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformedData, "empty file")
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedData, "read header: %v", err)
	}

	positions := make(map[string]int, len(model.RetainedColumns))
	for i, h := range headers {
		// Clean header names: trim whitespace, BOM and quotes
		name := strings.Trim(strings.TrimSpace(h), "\ufeff\"")
		for _, keep := range model.RetainedColumns {
			if name == keep {
				positions[name] = i
			}
		}
	}
	for _, keep := range model.RetainedColumns {
		if _, ok := positions[keep]; !ok {
			return nil, errors.Wrapf(ErrMalformedData, "missing column %q", keep)
		}
	}

	var rows []model.Row
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "read row: %v", err)
		}
		line, _ := csvReader.FieldPos(0)

		row, err := parseRow(record, positions)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "line %d: %v", line, err)
		}
		rows = append(rows, row)
	}

	slog.Debug("dataset parsed", "rows", len(rows), "source_columns", len(headers))
	return model.NewTable(model.RetainedColumns, rows), nil
}

func parseRow(record []string, positions map[string]int) (model.Row, error) {
	row := model.Row{Location: strings.TrimSpace(record[positions[model.ColumnLocation]])}

	if raw := strings.TrimSpace(record[positions[model.ColumnDate]]); raw != "" {
		date, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return row, errors.Wrapf(err, "column %s", model.ColumnDate)
		}
		row.Date = date
	}

	var err error
	if row.NewCases, err = parseCount(record, positions, model.ColumnNewCases); err != nil {
		return row, err
	}
	if row.NewDeaths, err = parseCount(record, positions, model.ColumnNewDeaths); err != nil {
		return row, err
	}
	if row.TotalDeaths, err = parseCount(record, positions, model.ColumnTotalDeaths); err != nil {
		return row, err
	}
	return row, nil
}

func parseCount(record []string, positions map[string]int, column string) (null.Float, error) {
	v, err := utils.ParseNullFloat(record[positions[column]])
	if err != nil {
		return v, errors.Wrapf(err, "column %s", column)
	}
	return v, nil
}
