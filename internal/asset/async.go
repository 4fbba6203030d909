package asset

import (
	"context"
	"fmt"
)

// Result is the outcome of an asynchronous load. Exactly one of Asset and
// Err is set.
type Result struct {
	Asset *Asset
	Err   error
}

// LoadAsync decodes path on its own goroutine. The returned channel is
// buffered and receives exactly one Result, so the loader never blocks on a
// consumer that stopped listening. Cancelling ctx before decoding finishes
// yields a Result carrying ctx's error.
func LoadAsync(ctx context.Context, path string, glow GlowStyle) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)

		a, err := Load(path, glow)
		if ctxErr := ctx.Err(); ctxErr != nil {
			out <- Result{Err: fmt.Errorf("%w: %s: %w", ErrAssetLoad, path, ctxErr)}
			return
		}
		if err != nil {
			out <- Result{Err: err}
			return
		}
		out <- Result{Asset: a}
	}()
	return out
}
