// filetidy is a CLI for bulk file housekeeping. It lists directory trees
// through chainable filters, renames entries with composable name stages,
// copies, deletes and flattens batches of files, and cleans up numbered
// duplicates such as "report (1).pdf".
//
// Global flags go before the command:
//
//	filetidy [--config FILE] [-o text|json] [--throttle N] <command> [flags] [args]
//
// Settings are read from ~/.config/filetidy/config.json (JSON with comments
// allowed) and overridden by flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/nethoundsh/filetidy/internal/runner"
	"github.com/nethoundsh/filetidy/pkg/config"
)

// version can be overridden at build time with:
//
//	go build -ldflags "-X main.version=v1.2.3"
var version = "dev"

type globalOptions struct {
	configPath  string
	output      string
	noColor     bool
	noProgress  bool
	throttle    int
	verbose     bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var g globalOptions
	fs := flag.NewFlagSet("filetidy", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.StringVar(&g.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/filetidy/config.json)")
	fs.StringVarP(&g.output, "output", "o", "text", "output format: text or json")
	fs.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&g.noProgress, "no-progress", false, "disable progress bars")
	fs.IntVar(&g.throttle, "throttle", 0, "max filesystem changes per second (0 = no limit)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "log every filesystem change to stderr")
	fs.BoolVar(&g.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout, fs)
			return 0
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		printUsage(os.Stderr, fs)
		return 1
	}
	if g.showVersion {
		fmt.Println("filetidy", version)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(os.Stderr, fs)
		return 1
	}
	if rest[0] == "help" {
		printUsage(os.Stdout, fs)
		return 0
	}
	cmd := findCommand(rest[0])
	if cmd == nil {
		fmt.Fprintln(os.Stderr, "Error: unknown command:", rest[0])
		printUsage(os.Stderr, fs)
		return 1
	}

	app, stop, err := newApp(g, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer stop()

	return cmd.Run(app, rest[1:])
}

// newApp resolves settings (defaults, then the config file, then flags) and
// builds the shared runtime: signal context, logger, throttle and progress.
func newApp(g globalOptions, fs *flag.FlagSet) (runner.AppConfig, func(), error) {
	path := g.configPath
	if path == "" {
		p, err := config.FilePath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: using default settings:", err)
		}
		path = p
	}

	settings := config.Default()
	if path != "" {
		loaded, _, err := config.Load(path)
		if err != nil {
			return runner.AppConfig{}, nil, err
		}
		settings = loaded
	}

	if fs.Changed("output") {
		settings.Output = g.output
	}
	if fs.Changed("throttle") {
		settings.Throttle = g.throttle
	}
	if g.noColor {
		settings.Color = "never"
	}
	if err := settings.Validate(); err != nil {
		return runner.AppConfig{}, nil, err
	}

	switch {
	case settings.Output == "json", settings.Color == "never":
		color.NoColor = true
	case settings.Color == "always":
		color.NoColor = false
	}

	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var limiter *rate.Limiter
	if settings.Throttle > 0 {
		limiter = rate.NewLimiter(rate.Limit(settings.Throttle), 1)
		fmt.Fprintf(os.Stderr, "Throttling: %d changes/sec\n", settings.Throttle)
	}

	// Progress bars: text output only, on a real terminal (not piped).
	showProgress := settings.Output == "text" && !g.noProgress &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

	// Cancelled on Ctrl+C so batches stop between items.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	return runner.AppConfig{
		Ctx:          ctx,
		Out:          os.Stdout,
		Err:          os.Stderr,
		Output:       settings.Output,
		ShowProgress: showProgress,
		Logger:       logger,
		Limiter:      limiter,
		Settings:     settings,
		ConfigPath:   path,
	}, stop, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: filetidy [global flags] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintln(w, c.HelpLine())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "filetidy <command> --help" for command flags.`)
}
