// Package runner implements the filetidy commands. Each Run function writes
// its report to AppConfig.Out, diagnostics to AppConfig.Err, and returns the
// process exit code.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/time/rate"

	"github.com/nethoundsh/filetidy/pkg/bulk"
	"github.com/nethoundsh/filetidy/pkg/config"
)

// Exit codes: 0 = success, 1 = validation or filesystem error.

type AppConfig struct {
	Ctx          context.Context
	Out          io.Writer
	Err          io.Writer
	Output       string
	ShowProgress bool
	Logger       *slog.Logger
	Limiter      *rate.Limiter
	Settings     config.Config
	// ConfigPath is the settings file in effect, loaded or not.
	ConfigPath string
}

func (app AppConfig) ctx() context.Context {
	if app.Ctx == nil {
		return context.Background()
	}
	return app.Ctx
}

func (app AppConfig) log() *slog.Logger {
	if app.Logger == nil {
		return slog.Default()
	}
	return app.Logger
}

// fail reports err and returns the error exit code. A canceled context is
// reported as an interruption instead.
func (app AppConfig) fail(err error) int {
	if app.ctx().Err() != nil {
		fmt.Fprintln(app.Err, "\nInterrupted")
	} else {
		fmt.Fprintln(app.Err, "Error:", err)
	}
	return 1
}

// wait honors cancellation and the throttle before a mutation that does not
// go through bulk.Ops.
func (app AppConfig) wait() error {
	ctx := app.ctx()
	if err := ctx.Err(); err != nil {
		return err
	}
	if app.Limiter != nil {
		return app.Limiter.Wait(ctx)
	}
	return nil
}

func (app AppConfig) warn(a ...any) {
	fmt.Fprintln(app.Err, append([]any{"Warning:"}, a...)...)
}

// tally accumulates what a bulk operation reports through Ops.OnItem.
type tally struct {
	count int
	bytes int64
}

// ops wires the shared collaborators into a bulk.Ops. Items are counted in
// t and advance bar when one is shown.
func (app AppConfig) ops(t *tally, bar *progressBar) bulk.Ops {
	return bulk.Ops{
		Ctx:     app.ctx(),
		Limiter: app.Limiter,
		Logger:  app.log(),
		OnItem: func(_ string, n int64) {
			t.count++
			t.bytes += n
			bar.increment()
		},
	}
}

type progressBar struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// newProgressBar returns nil unless progress is enabled. A total of 0 means
// the number of items is not known up front.
func (app AppConfig) newProgressBar(label string, total int) *progressBar {
	if !app.ShowProgress {
		return nil
	}
	p := mpb.NewWithContext(app.ctx(), mpb.WithOutput(app.Err))
	b := p.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		mpb.PrependDecorators(decor.Name(label+" ")),
		mpb.AppendDecorators(
			decor.CountersNoUnit(" %d / %d "),
			decor.AverageETA(decor.ET_STYLE_MMSS),
		),
		mpb.BarRemoveOnComplete(),
	)
	return &progressBar{p: p, bar: b}
}

func (pb *progressBar) increment() {
	if pb != nil {
		pb.bar.Increment()
	}
}

// wait removes the bar and blocks until it has been redrawn for the last
// time, so later output is not interleaved with it.
func (pb *progressBar) wait() {
	if pb == nil {
		return
	}
	if !pb.bar.Completed() {
		pb.bar.Abort(true)
	}
	pb.p.Wait()
}
