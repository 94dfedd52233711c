package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/missivelabs/missive/internal/classify"
	"github.com/sethvargo/go-retry"
)

// defaultRateLimitCooldown is long enough to clear a short-window quota.
const defaultRateLimitCooldown = 30 * time.Second

// CallWithRateLimitRetry invokes fn and, if it fails with the
// classification service's distinguished rate-limit condition, waits for
// the cooldown and retries exactly once. Any other failure propagates
// immediately, and a second rate-limit failure propagates as a normal
// failure — the executor's per-item isolation handles it from there.
//
// This is orthogonal to the executor's inter-batch delay: the delay paces
// request initiation, this wrapper absorbs throttling responses after the
// fact.
func CallWithRateLimitRetry[R any](
	ctx context.Context,
	cooldown time.Duration,
	fn func(ctx context.Context) (R, error),
) (R, error) {
	if cooldown <= 0 {
		cooldown = defaultRateLimitCooldown
	}

	var value R
	backoff := retry.WithMaxRetries(1, retry.NewConstant(cooldown))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			if errors.Is(err, classify.ErrRateLimited) {
				return retry.RetryableError(err)
			}
			return err
		}
		value = v
		return nil
	})

	if err != nil {
		var zero R
		return zero, err
	}
	return value, nil
}
