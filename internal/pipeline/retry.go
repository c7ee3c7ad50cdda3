package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
)

// RetryConfig defines how a failed download is retried. The delay doubles
// after every attempt up to MaxDelay.
type RetryConfig struct {
	MaxAttempts  int           `json:"max_attempts"`
	InitialDelay time.Duration `json:"initial_delay"`
	MaxDelay     time.Duration `json:"max_delay"`
	// MaxJitter adds up to this much random delay to every wait.
	MaxJitter time.Duration `json:"max_jitter"`
}

// DefaultRetryConfig is used for dataset downloads. MaxAttempts is replaced by
// the configured retry count.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 1 * time.Second,
	MaxDelay:     30 * time.Second,
	MaxJitter:    500 * time.Millisecond,
}

// errPermanent marks failures a retry cannot fix, such as a 4xx response.
var errPermanent = errors.New("permanent failure")

// withRetry runs op until it succeeds, fails permanently, the attempts run
// out or ctx is done. It returns the last error, or the context error when
// cancelled while waiting.
func withRetry(ctx context.Context, rc RetryConfig, op func() error) error {
	attempts := uint(max(rc.MaxAttempts, 1))

	delayType := retry.BackOffDelay
	if rc.MaxJitter > 0 {
		delayType = retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)
	}

	return retry.Do(op,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(rc.InitialDelay),
		retry.MaxDelay(rc.MaxDelay),
		retry.MaxJitter(rc.MaxJitter),
		retry.DelayType(delayType),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, errPermanent)
		}),
		retry.OnRetry(func(n uint, err error) {
			fmt.Printf("🔄 Attempt %d/%d failed: %v\n", n+1, attempts, err)
		}),
	)
}
