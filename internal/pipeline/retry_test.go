package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	MaxJitter:    time.Millisecond,
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), fastRetry, func() error {
			calls++
			if calls < 3 {
				return errors.New("connection reset")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), fastRetry, func() error {
			calls++
			return errors.New("connection reset")
		})
		assert.EqualError(t, err, "connection reset")
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent failures stop at once", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), fastRetry, func() error {
			calls++
			return errors.Mark(errors.New("not found"), errPermanent)
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts still tries once", func(t *testing.T) {
		calls := 0
		_ = withRetry(context.Background(), RetryConfig{}, func() error {
			calls++
			return errors.New("boom")
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := fastRetry
		slow.InitialDelay = time.Hour
		slow.MaxDelay = time.Hour

		err := withRetry(ctx, slow, func() error {
			cancel()
			return errors.New("connection reset")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDownloadDataClientErrorIsPermanent(t *testing.T) {
	defer gock.Off()
	gock.New("https://data.example.test").
		Get("/owid-covid-data.csv").
		Reply(404)

	_, err := DownloadData(context.Background(), nil, testDataURL, t.TempDir())
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.True(t, errors.Is(err, errPermanent), "client errors are not retried")
}

func TestDownloadDataRetriesServerErrors(t *testing.T) {
	defer gock.Off()
	gock.New("https://data.example.test").
		Get("/owid-covid-data.csv").
		Reply(503)
	gock.New("https://data.example.test").
		Get("/owid-covid-data.csv").
		Reply(200).
		BodyString(fixtureCSV)

	dir := t.TempDir()
	err := withRetry(context.Background(), fastRetry, func() error {
		_, err := DownloadData(context.Background(), nil, testDataURL, dir)
		return err
	})
	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}
