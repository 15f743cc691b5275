package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/termc"
)

var (
	errUnknownFormat = errors.New("unknown format")
	errUsage         = errors.New("usage")
)

// formats are the output formats by name.
var formats = map[string]func(complex128) string{
	"dec": termc.FormatValue,
	"bin": func(v complex128) string { return termc.FormatBase(v, 2) },
	"oct": func(v complex128) string { return termc.FormatBase(v, 8) },
	"hex": func(v complex128) string { return termc.FormatBase(v, 16) },
}

// app executes input lines and commands against one session, for both the
// interactive prompt and call mode.
type app struct {
	sess *termc.Session
	out  io.Writer
	// format is the name of the current output format.
	format string
	// defs is the definitions file used by load and save without a path.
	defs string
	// echo prints the parse tree of each expression before its value.
	echo bool

	value *color.Color
	fail  *color.Color
	note  *color.Color
}

func newApp(sess *termc.Session, out io.Writer, format, defs string) *app {
	return &app{
		sess:   sess,
		out:    out,
		format: format,
		defs:   defs,
		value:  color.New(color.FgCyan),
		fail:   color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
}

// outcome is the result of one input line.
type outcome struct {
	// value is the formatted value of an expression, or empty.
	value string
	// note acknowledges a command or definition, or is empty.
	note string
	// exit is set by the exit command.
	exit bool
}

// step executes one line, which is either a command or an input for the
// session.
func (a *app) step(line string) (outcome, error) {
	if name, arg, ok := command(line); ok {
		return a.run(name, arg)
	}
	r, err := a.sess.Exec(line)
	if err != nil {
		return outcome{}, err
	}
	if r.Def != nil {
		return outcome{note: "defined " + r.Def.Name}, nil
	}
	v := formats[a.format](r.Value)
	if a.echo {
		v = r.Expr.String() + " : " + v
	}
	return outcome{value: v}, nil
}

// command splits a line into a command and its argument. A line that uses
// a command name as a constant or function, e.g. "save = 1", is not a
// command.
func command(line string) (name, arg string, ok bool) {
	name, arg, _ = strings.Cut(strings.TrimSpace(line), " ")
	switch name {
	case "exit", "load", "save", "format":
	default:
		return "", "", false
	}
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "=") || strings.HasPrefix(arg, "(") {
		return "", "", false
	}
	return name, arg, true
}

func (a *app) run(name, arg string) (outcome, error) {
	switch name {
	case "exit":
		return outcome{exit: true}, nil
	case "load":
		path := a.path(arg)
		doc, err := readDocument(path)
		if err != nil {
			return outcome{}, fmt.Errorf("load: %w", err)
		}
		if err := a.sess.Import(doc); err != nil {
			return outcome{}, fmt.Errorf("load %s: %w", path, err)
		}
		n := len(doc.Constants) + len(doc.Functions)
		return outcome{note: "loaded " + strconv.Itoa(n) + " definitions from " + path}, nil
	case "save":
		path := a.path(arg)
		doc := a.sess.Export()
		if err := writeDocument(path, doc); err != nil {
			return outcome{}, fmt.Errorf("save: %w", err)
		}
		n := len(doc.Constants) + len(doc.Functions)
		return outcome{note: "saved " + strconv.Itoa(n) + " definitions to " + path}, nil
	case "format":
		if arg == "" {
			return outcome{note: "format " + a.format}, nil
		}
		if _, ok := formats[arg]; !ok {
			return outcome{}, fmt.Errorf("%w %q: must be one of dec, bin, oct, hex", errUnknownFormat, arg)
		}
		a.format = arg
		return outcome{note: "format " + arg}, nil
	}
	return outcome{}, fmt.Errorf("%w: unknown command %q", errUsage, name)
}

func (a *app) path(arg string) string {
	if arg == "" {
		return a.defs
	}
	return arg
}

// call executes inputs in order, as given on the command line. It prints
// the values of the expressions joined by semicolons. The first failure
// stops execution and is reported as coming from its 1-based input number.
// call returns the process exit code.
func (a *app) call(inputs []string) int {
	var results []string
	code := 0
	for i, line := range inputs {
		line = strings.TrimSpace(line)
		o, err := a.step(line)
		if err != nil {
			fmt.Fprintf(a.out, "In input %d:\n", i+1)
			a.printError(line, err)
			code = 1
			break
		}
		if o.exit {
			break
		}
		if o.value != "" {
			results = append(results, o.value)
		}
	}
	if len(results) > 0 {
		fmt.Fprintln(a.out, a.value.Sprint(termc.FormatResults(results)))
	}
	return code
}

// printError prints an error. Diagnostics show the input line with the
// offending span marked.
func (a *app) printError(line string, err error) {
	var d *termc.Diagnostic
	if !errors.As(err, &d) {
		fmt.Fprintln(a.out, a.fail.Sprint("Error: "+err.Error()))
		return
	}
	fmt.Fprintln(a.out, a.fail.Sprint(d.Kind.String()+": "+d.Msg))
	fmt.Fprintln(a.out, termc.Render(d, line))
}
