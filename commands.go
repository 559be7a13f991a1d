package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/nethoundsh/filetidy/internal/runner"
	"github.com/nethoundsh/filetidy/pkg/filter"
	"github.com/nethoundsh/filetidy/pkg/fspath"
)

// Command is one filetidy subcommand with its own flags.
type Command struct {
	Flags *flag.FlagSet
	// Usage is shown after "filetidy" in help, starting with the name.
	Usage string
	Short string
	// Args is the minimum number of positional arguments.
	Args int
	Exec func(app runner.AppConfig, args []string) int
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-36s %s", c.Usage, c.Short)
}

func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: filetidy", c.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.Short)
	if c.Flags.HasFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fmt.Fprint(w, c.Flags.FlagUsages())
	}
}

// Run parses flags and executes the command. Returns exit code.
func (c *Command) Run(app runner.AppConfig, args []string) int {
	c.Flags.SetOutput(io.Discard)
	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(app.Out)
			return 0
		}
		fmt.Fprintln(app.Err, "Error:", err)
		fmt.Fprintln(app.Err)
		c.PrintHelp(app.Err)
		return 1
	}
	if c.Flags.NArg() < c.Args {
		fmt.Fprintln(app.Err, "Error: missing arguments")
		fmt.Fprintln(app.Err)
		c.PrintHelp(app.Err)
		return 1
	}
	return c.Exec(app, c.Flags.Args())
}

func findCommand(name string) *Command {
	for _, c := range commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// commands builds a fresh set of commands so flag state never leaks
// between runs.
func commands() []*Command {
	return []*Command{
		lsCmd(),
		renameCmd(),
		renameMapCmd(),
		copyCmd(),
		deleteCmd(),
		flattenCmd(),
		dedupeCmd(),
		touchCmd(),
		configCmd(),
	}
}

// depthOr returns the --depth flag when set, else the configured default.
func depthOr(fs *flag.FlagSet, depth int, app runner.AppConfig) int {
	if fs.Changed("depth") {
		return depth
	}
	return app.Settings.MaxDepth
}

func lsCmd() *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	depth := fs.IntP("depth", "d", 0, "descend this many directory levels below <dir>")
	ext := fs.String("ext", "", "keep entries with this extension (e.g. \".pdf\")")
	notExt := fs.String("not-ext", "", "drop entries with this extension")
	match := fs.String("match", "", "keep names matching this regex at the start")
	search := fs.String("search", "", "keep names matching this regex anywhere")
	names := fs.StringSlice("name", nil, "keep entries with exactly these names (comma-separated)")
	include := fs.StringSlice("include", nil, "keep names matching these globs (e.g. \"*.mp3,*.wav\")")
	exclude := fs.StringSlice("exclude", nil, "drop names matching these globs")
	minSize := fs.String("min-size", "", "minimum file size with units (e.g. \"1KB\", \"10MB\")")
	maxSize := fs.String("max-size", "", "maximum file size with units (e.g. \"100MB\", \"1GB\")")
	filesOnly := fs.Bool("files-only", false, "drop directories listed at the depth limit")
	sortNumeric := fs.BoolP("sort-numeric", "n", false, "order by the first number in each name")
	long := fs.BoolP("long", "l", false, "show permissions, size and modification time")

	return &Command{
		Flags: fs,
		Usage: "ls <dir> [flags]",
		Short: "List entries under a directory through filters",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			if err := filter.ValidatePatterns(append(append([]string(nil), *include...), *exclude...)); err != nil {
				fmt.Fprintln(app.Err, "Error:", err)
				return 1
			}
			minBytes, maxBytes, err := filter.ParseSizeRange(*minSize, *maxSize)
			if err != nil {
				fmt.Fprintln(app.Err, "Error:", err)
				return 1
			}
			return runner.RunList(app, args[0], runner.ListOptions{
				Filter: filter.Config{
					MaxDepth:         depthOr(fs, *depth, app),
					Extension:        *ext,
					ExcludeExtension: *notExt,
					Match:            *match,
					Search:           *search,
					Names:            *names,
					Includes:         *include,
					Excludes:         *exclude,
					MinSize:          minBytes,
					MaxSize:          maxBytes,
					FilesOnly:        *filesOnly,
				},
				SortNumeric: *sortNumeric,
				Long:        *long,
			})
		},
	}
}

func renameCmd() *Command {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	contains := fs.String("contains", "", "only rename entries whose name contains this text")
	notContains := fs.String("not-contains", "", "only rename entries whose name lacks this text")
	keepAfter := fs.String("keep-after", "", "keep the text after the first occurrence of this separator")
	replace := fs.StringArray("replace", nil, "replace text, as old=new (repeatable)")
	normalize := fs.Bool("normalize", false, "collapse whitespace and lowercase")
	dashAfter := fs.Bool("dash-after", false, "add \" -\" after the configured keywords")
	title := fs.Bool("title", false, "title-case, keeping acronyms and small words")
	exceptions := fs.StringSlice("exceptions", nil, "words kept lowercase by --title (default from config)")
	apply := fs.Bool("apply", false, "perform the renames instead of previewing them")

	return &Command{
		Flags: fs,
		Usage: "rename <dir> [flags]",
		Short: "Preview or apply name transformations to a directory's entries",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			if *contains != "" && *notContains != "" {
				fmt.Fprintln(app.Err, "Error: --contains and --not-contains are mutually exclusive")
				return 1
			}
			opts := runner.RenameOptions{
				Filter:     *contains,
				KeepAfter:  *keepAfter,
				Replace:    *replace,
				Normalize:  *normalize,
				DashAfter:  *dashAfter,
				Title:      *title,
				Exceptions: *exceptions,
				Apply:      *apply,
			}
			if *notContains != "" {
				opts.Filter, opts.InvertMatch = *notContains, true
			}
			return runner.RunRename(app, args[0], opts)
		},
	}
}

func renameMapCmd() *Command {
	fs := flag.NewFlagSet("rename-map", flag.ContinueOnError)
	return &Command{
		Flags: fs,
		Usage: "rename-map <mapping.json> <paths...>",
		Short: "Rename paths by a JSON object of old name to new name",
		Args:  2,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunRenameMap(app, args[0], args[1:])
		},
	}
}

func copyCmd() *Command {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	verify := fs.Bool("verify", false, "compare SHA-256 of every copied file with its source")
	return &Command{
		Flags: fs,
		Usage: "copy <target-dir> <paths...> [flags]",
		Short: "Copy files and directory trees into a directory",
		Args:  2,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunCopy(app, args[0], args[1:], *verify)
		},
	}
}

func deleteCmd() *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	return &Command{
		Flags: fs,
		Usage: "delete <paths...>",
		Short: "Delete files (missing paths are ignored, directories refused)",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunDelete(app, args)
		},
	}
}

func flattenCmd() *Command {
	fs := flag.NewFlagSet("flatten", flag.ContinueOnError)
	pattern := fs.StringP("pattern", "p", "*", "glob for the file names to copy up")
	return &Command{
		Flags: fs,
		Usage: "flatten <base> [flags]",
		Short: "Copy nested files up into <base> without overwriting",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunFlatten(app, args[0], *pattern)
		},
	}
}

func dedupeCmd() *Command {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	depth := fs.IntP("depth", "d", 0, "descend this many directory levels below <dir>")
	dryRun := fs.Bool("dry-run", false, "report what would change without touching files")
	return &Command{
		Flags: fs,
		Usage: "dedupe <dir> [flags]",
		Short: "Delete \"name (N)\" copies and strip the counter from orphans",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunDedupe(app, args[0], depthOr(fs, *depth, app), *dryRun)
		},
	}
}

func touchCmd() *Command {
	fs := flag.NewFlagSet("touch", flag.ContinueOnError)
	return &Command{
		Flags: fs,
		Usage: "touch <dir> <names...>",
		Short: "Create empty files, or bump the time of existing ones",
		Args:  2,
		Exec: func(app runner.AppConfig, args []string) int {
			return runner.RunTouch(app, args[0], args[1:])
		},
	}
}

func configCmd() *Command {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	force := fs.Bool("force", false, "overwrite an existing file on init")
	return &Command{
		Flags: fs,
		Usage: "config <path|show|init> [flags]",
		Short: "Show the settings file location or contents, or write defaults",
		Args:  1,
		Exec: func(app runner.AppConfig, args []string) int {
			if app.ConfigPath == "" {
				fmt.Fprintln(app.Err, "Error:", fmt.Errorf("%w: no config path; pass --config", fspath.ErrInvalidArgument))
				return 1
			}
			return runner.RunConfig(app, args[0], *force)
		},
	}
}
