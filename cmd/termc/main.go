package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/zephyrtronium/termc"
)

// cli is the command line.
type cli struct {
	Config  string            `help:"Config file." short:"c" type:"path" default:"${config}"`
	In      string            `help:"Read inputs from a file, one per line. Use - for stdin." short:"i" placeholder:"FILE"`
	Given   map[string]string `help:"Define a constant before any input. May be repeated." short:"g" placeholder:"NAME=EXPR"`
	Format  string            `help:"Output format: dec, bin, oct, or hex. Overrides the config." short:"f" placeholder:"FMT"`
	Echo    bool              `help:"Print the parse tree of each expression before its value."`
	Verbose bool              `help:"Log debug records to stderr." short:"v"`
	NoColor bool              `help:"Disable colored output."`

	Inputs []string `arg:"" optional:"" help:"Expressions, definitions, and commands to execute in order. Without any inputs, start the interactive prompt."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("termc"),
		kong.Description("A calculator for complex numbers."),
		kong.UsageOnError(),
		kong.Vars{"config": defaultConfigPath()},
	)
	os.Exit(run(&c, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the parsed command line and returns the exit code.
func run(c *cli, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(stderr, "termc: %v\n", err)
		return 1
	}
	if c.Format != "" {
		if _, ok := formats[c.Format]; !ok {
			fmt.Fprintf(stderr, "termc: %v %q: must be one of dec, bin, oct, hex\n", errUnknownFormat, c.Format)
			return 1
		}
		cfg.Format = c.Format
	}
	if c.NoColor || !*cfg.Color {
		color.NoColor = true
	}
	logger := newLogger(stderr, cfg.LogLevel, c.Verbose)
	sess := termc.NewSession(termc.WithLogger(logger), termc.WithDepth(cfg.MaxDepth))
	logger.Debug("session started",
		slog.String("session_id", sess.ID),
		slog.String("config", c.Config),
		slog.String("format", cfg.Format),
		slog.Int("max_depth", cfg.MaxDepth),
	)

	a := newApp(sess, stdout, cfg.Format, cfg.Definitions)
	a.echo = c.Echo
	for _, name := range slices.Sorted(maps.Keys(c.Given)) {
		line := name + " = " + c.Given[name]
		if _, err := sess.Exec(line); err != nil {
			fmt.Fprintf(stdout, "In --given %s:\n", name)
			a.printError(line, err)
			return 1
		}
	}

	inputs := c.Inputs
	if c.In != "" {
		lines, err := readInputs(c.In, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "termc: %v\n", err)
			return 1
		}
		inputs = append(lines, inputs...)
	}
	if len(inputs) == 0 && c.In == "" {
		return a.repl(cfg.History)
	}
	return a.call(inputs)
}

// readInputs reads the non-blank lines of a file, or of stdin if name is -.
func readInputs(name string, stdin io.Reader) ([]string, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open inputs: %w", err)
		}
		defer f.Close()
		r = f
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return lines, nil
}

// newLogger creates the stderr logger. verbose forces debug records.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	l, err := parseLevel(level)
	if err != nil {
		l = slog.LevelWarn
	}
	if verbose {
		l = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
