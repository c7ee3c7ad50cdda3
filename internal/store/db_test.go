package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"owid-charts/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "history.db")))
	t.Cleanup(func() { Close() })
}

func TestRunLifecycle(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveRun("run-1", "show"))
	require.NoError(t, SaveRun("run-2", "export"))
	require.NoError(t, CompleteRun("run-1", 120, 6, ""))
	require.NoError(t, FailRun("run-2", errors.New("data file missing")))

	first, err := GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCompleted, first.Status)
	assert.Equal(t, 120, first.RowCount)
	assert.Equal(t, 6, first.ChartCount)

	second, err := GetRun("run-2")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, second.Status)
	assert.Equal(t, "data file missing", second.Error)

	runs, err := ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestGetRunUnknown(t *testing.T) {
	initTestDB(t)

	_, err := GetRun("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestAcquisitions(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveAcquisition(model.Acquisition{URL: "http://a", Success: false, Error: "timeout"}))
	require.NoError(t, SaveAcquisition(model.Acquisition{URL: "http://a", Success: true, Bytes: 42}))

	got, err := ListAcquisitions(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Success)
	assert.Equal(t, int64(42), got[0].Bytes)
	assert.Equal(t, "timeout", got[1].Error)
}

func TestWritesWithoutDBAreNoops(t *testing.T) {
	require.False(t, Enabled())

	assert.NoError(t, SaveRun("x", "show"))
	assert.NoError(t, SaveAcquisition(model.Acquisition{URL: "http://a"}))
	runs, err := ListRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
