package pipeline

import "github.com/cockroachdb/errors"

var (
	// ErrDataFileMissing means the cached dataset does not exist.
	ErrDataFileMissing = errors.New("data file missing")
	// ErrMalformedData means the dataset could not be parsed.
	ErrMalformedData = errors.New("malformed data file")
	// ErrDownloadFailed covers every acquisition failure.
	ErrDownloadFailed = errors.New("download failed")
)
