package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mcncl/jsonkit/internal/errors"
)

type boundedResult struct {
	out string
	err error
}

// runBounded runs fn on its own goroutine and waits for it until ctx is done
// or timeout elapses. A result that arrives after that is discarded; the
// processing packages have no cancellation of their own. A timeout of zero
// or less waits for as long as ctx allows.
func runBounded(ctx context.Context, timeout time.Duration, fn func() (string, error)) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan boundedResult, 1)
	go func() {
		out, err := fn()
		done <- boundedResult{out: out, err: err}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return "", errors.NewTimeoutError(fmt.Sprintf("gave up after %s", timeout), errors.ErrDeadlineExceeded)
	}
}
