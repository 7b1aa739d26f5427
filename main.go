package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"devfmt/internal/config"
	"devfmt/internal/errors"
	"devfmt/internal/jsonfmt"
	"devfmt/internal/sqlfmt"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Mode        string `help:"Formatter to run: json, sql, mongo or postgres." short:"m"`
	Indent      int    `help:"Indent width for JSON output (2, 4 or 8 spaces)."`
	Compress    bool   `help:"Emit compressed JSON with no whitespace." short:"c"`
	Lowercase   bool   `help:"Lower-case SQL keywords instead of upper-casing them."`
	Gap         int    `help:"Blank lines between formatted SQL statements." default:"-1"`
	Fix         string `help:"Run the JSON repair pipeline with the given option (all, remove-bom, trim-whitespace, fix-escaped-json, fix-newlines, normalize-newlines, remove-empty-lines)." short:"f"`
	Config      string `help:"Path to a config file. Defaults to discovering .devfmt.yml upward from the working directory." type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *zap.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// Inputs above this size get a progress indicator around the format
// call; the work itself is still a single synchronous pass.
const progressThreshold = 1 << 20

func main() {
	parser := kong.Must(&CLI,
		kong.Name("devfmt"),
		kong.Description("A formatter for JSON documents and SQL/MongoDB queries"),
		kong.UsageOnError(),
	)

	// Default to interactive mode when invoked with no arguments on a
	// terminal.
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("devfmt version %s\n", Version)
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
	applyCLIOverrides(cfg)

	logger := newLogger(cfg.Dev.Debug)
	defer func() { _ = logger.Sync() }()

	if err := run(&Context{Config: cfg, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: devfmt --help\n")
		os.Exit(1)
	}
}

// applyCLIOverrides merges explicitly set flags over the loaded
// config. Flags left at their zero value defer to the config.
func applyCLIOverrides(cfg *config.Config) {
	if CLI.Mode != "" {
		cfg.Mode = CLI.Mode
	}
	if CLI.Indent != 0 {
		cfg.JSON.Indent = CLI.Indent
	}
	if CLI.Compress {
		cfg.JSON.Compress = true
	}
	if CLI.Lowercase {
		cfg.SQL.Uppercase = false
	}
	if CLI.Gap >= 0 {
		cfg.SQL.StatementGap = CLI.Gap
	}
	if CLI.Debug {
		cfg.Dev.Debug = true
	}
}

func newLogger(debug bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// run executes the main program logic
func run(ctx *Context) error {
	input, err := readInput()
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(input) > progressThreshold {
		bar = progressbar.Default(1, "formatting")
	}

	start := time.Now()
	output, err := format(ctx, input)
	if bar != nil {
		_ = bar.Add(1)
		_ = bar.Finish()
	}
	ctx.Logger.Debug("format finished",
		zap.String("mode", ctx.Config.Mode),
		zap.Int("input_bytes", len(input)),
		zap.Int("output_bytes", len(output)),
		zap.Duration("elapsed", time.Since(start)))

	// The fix pipeline surfaces partial output even on failure.
	if output != "" {
		if werr := writeOutput(output); werr != nil {
			return werr
		}
	}
	return err
}

// format dispatches the input to the formatter selected by mode.
func format(ctx *Context, input string) (string, error) {
	cfg := ctx.Config
	switch cfg.Mode {
	case "json":
		if CLI.Fix != "" {
			return runFix(input, jsonfmt.FixOption(CLI.Fix))
		}
		value, err := jsonfmt.Parse(input)
		if err != nil {
			return "", err
		}
		if cfg.JSON.Compress {
			return jsonfmt.Compact(value), nil
		}
		return jsonfmt.Serialize(value, cfg.JSON.Indent)
	case "sql":
		return sqlfmt.Format(input, sqlfmt.Options{
			Uppercase:    cfg.SQL.Uppercase,
			StatementGap: cfg.SQL.StatementGap,
		})
	case "mongo":
		return sqlfmt.FormatMongo(input)
	case "postgres":
		return sqlfmt.FormatPostgres(input)
	default:
		return "", errors.NewInputError(fmt.Sprintf("unknown mode '%s' (expected json, sql, mongo or postgres)", cfg.Mode), nil)
	}
}

// runFix applies the repair pipeline and prints its step log to
// stderr. On validation failure the partially repaired text is still
// returned so the caller can write it out.
func runFix(input string, option jsonfmt.FixOption) (string, error) {
	if !validFixOption(option) {
		return "", errors.NewInputError(fmt.Sprintf("unknown fix option '%s'", option), nil)
	}
	fixed, log, err := jsonfmt.Fix(input, option)
	for _, line := range log {
		fmt.Fprintln(os.Stderr, line)
	}
	return fixed, err
}

func validFixOption(option jsonfmt.FixOption) bool {
	for _, o := range jsonfmt.FixOptions {
		if o == option {
			return true
		}
	}
	return false
}

// readInput reads from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrEmptyInput,
			)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes formatted text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Formatted output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Println(strings.TrimSpace(text)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets the user paste text directly and signal
// completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "devfmt Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your input below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	if builder.Len() == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing input...")
	return builder.String(), nil
}
