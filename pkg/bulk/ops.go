// Package bulk applies copy, delete, rename and flatten operations to lists
// of paths.
//
// Every operation processes its items in order and stops at the first
// failure. Effects already applied stay committed; the returned slice lists
// them alongside the error.
package bulk

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

// Ops carries the collaborators shared by the bulk operations. The zero
// value is ready to use.
type Ops struct {
	// Ctx is checked between items. Nil means context.Background.
	Ctx context.Context
	// Limiter, when set, is waited on before every mutation.
	Limiter *rate.Limiter
	// Logger receives per-item debug records and non-fatal warnings.
	// Nil means slog.Default.
	Logger *slog.Logger
	// Verify compares SHA-256 digests of every copied file.
	Verify bool
	// OnItem is called after each item completes with the bytes written.
	OnItem func(path string, bytes int64)
}

func (o Ops) ctx() context.Context {
	if o.Ctx == nil {
		return context.Background()
	}
	return o.Ctx
}

func (o Ops) log() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// before blocks until the next mutation may start.
func (o Ops) before() error {
	ctx := o.ctx()
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.Limiter != nil {
		if err := o.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}
	return nil
}

func (o Ops) done(path string, n int64) {
	if o.OnItem != nil {
		o.OnItem(path, n)
	}
}
