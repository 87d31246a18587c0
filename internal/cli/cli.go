// Package cli is the jsonkit command-line harness: it reads documents from
// files or stdin, hands them to the processing packages and writes the
// result.
package cli

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/parser"
)

// Version information
const (
	Version = "0.1.0"
)

// Globals are the flags shared by every command
type Globals struct {
	Input       string           `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string           `help:"Path to config file. Defaults to the nearest .jsonkit.yml." short:"c" type:"path"`
	Debug       bool             `help:"Enable debug logging." short:"d"`
	Timeout     time.Duration    `help:"Abandon the command if it runs longer than this (e.g. 5s)."`
	Interactive bool             `help:"Read JSON typed at the terminal until Ctrl+D." short:"I"`
	Version     kong.VersionFlag `help:"Show version information." short:"v"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Validate ValidateCmd `cmd:"" help:"Check JSON syntax and report diagnostics with suggestions."`
	Stats    StatsCmd    `cmd:"" help:"Count the values of a document by type and report its depth."`
	Diff     DiffCmd     `cmd:"" help:"List the keys added, removed or modified between two documents."`
	Query    QueryCmd    `cmd:"" help:"Select values with a JSONPath expression such as $.store.book[*].title."`
	Schema   SchemaCmd   `cmd:"" help:"Infer a JSON Schema from a sample document."`
	Format   FormatCmd   `cmd:"" help:"Pretty-print a document."`
	Minify   MinifyCmd   `cmd:"" help:"Remove all insignificant whitespace from a document."`
	Convert  ConvertCmd  `cmd:"" help:"Convert a document to CSV, XML, YAML or a TypeScript interface."`
}

// exitSignal carries the code passed to kong's exit hook so that help and
// version output return from Execute instead of ending the process.
type exitSignal int

// Execute parses args, runs the selected command and returns the process
// exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsonkit"),
		kong.Description("A toolkit for validating, querying, diffing and converting JSON"),
		kong.Vars{"version": fmt.Sprintf("jsonkit version %s", Version)},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitSignal(c)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exitSignal)
			if !ok {
				panic(r)
			}
			code = int(sig)
		}
	}()

	ctx, err := app.Parse(args)
	if err != nil {
		app.Errorf("%s", err)
		var parseErr *kong.ParseError
		if stderrors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return 1
	}

	rt, err := newRuntime(&cli.Globals, stdin, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	rt.Logger.Debug("running command", "command", ctx.Command(), "timeout", rt.Config.Runtime.Timeout)
	if err := ctx.Run(rt); err != nil {
		rt.Logger.Debug("command failed", "command", ctx.Command(), "error", err)
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	return 0
}

// Runtime is what every command's Run method receives
type Runtime struct {
	Config *config.Config
	Logger *slog.Logger

	ctx     context.Context
	globals *Globals
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newRuntime(g *Globals, stdin io.Reader, stdout, stderr io.Writer) (*Runtime, error) {
	configPath := g.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Timeout: g.Timeout,
		Debug:   g.Debug,
	})
	if err != nil {
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			err = errors.NewConfigError(fmt.Sprintf("failed to load '%s'", configPath), err)
		}
		return nil, err
	}

	logger := newLogger(stderr, cfg.Dev)
	if configPath != "" {
		logger.Debug("loaded config file", "path", configPath)
	}

	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		ctx:     context.Background(),
		globals: g,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

func newLogger(w io.Writer, dev config.DevConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if dev.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if dev.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// run executes fn within the configured timeout and writes its output
func (rt *Runtime) run(command string, fn func() (string, error)) error {
	start := time.Now()
	out, err := runBounded(rt.ctx, rt.Config.Runtime.Timeout, fn)
	rt.Logger.Debug("command finished", "command", command, "duration", time.Since(start), "ok", err == nil)
	if err != nil {
		return err
	}
	return rt.writeOutput(out)
}

// readInput reads JSON text from the input file or stdin
func (rt *Runtime) readInput() (string, error) {
	if rt.globals.Input != "" {
		rt.Logger.Debug("reading input file", "path", rt.globals.Input)
		return parser.ReadFile(rt.globals.Input)
	}

	if f, ok := rt.stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		// Terminal is interactive (not piped)
		if info.Mode()&os.ModeCharDevice != 0 {
			if rt.globals.Interactive {
				return rt.readInteractiveInput()
			}
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(rt.stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func (rt *Runtime) readInteractiveInput() (string, error) {
	fmt.Fprintln(rt.stderr, "jsonkit interactive mode")
	fmt.Fprintln(rt.stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(rt.stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	if jsonBuilder.Len() == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return jsonBuilder.String(), nil
}

// writeOutput writes the result to the output file or stdout
func (rt *Runtime) writeOutput(out string) error {
	if rt.globals.Output != "" {
		if err := os.WriteFile(rt.globals.Output, []byte(out+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", rt.globals.Output), err)
		}
		fmt.Fprintf(rt.stderr, "Output written to %s\n", rt.globals.Output)
		return nil
	}

	if _, err := fmt.Fprintln(rt.stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
