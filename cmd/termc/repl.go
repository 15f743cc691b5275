package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	prompt    = ">>> "
	ansPrefix = "ans: "
)

// repl runs the interactive prompt until exit or end of input. History is
// read from and saved to the given file, best effort.
func (a *app) repl(history string) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C discards the current line.
			continue
		}
		if err != nil {
			fmt.Fprintln(a.out)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		o, err := a.step(line)
		if err != nil {
			a.printError(line, err)
			continue
		}
		if o.exit {
			break
		}
		a.print(o)
	}

	if err := os.MkdirAll(filepath.Dir(history), 0o755); err == nil {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return 0
}

// print shows the outcome of one interactive line.
func (a *app) print(o outcome) {
	switch {
	case o.value != "":
		fmt.Fprintln(a.out, a.value.Sprint(ansPrefix+o.value))
	case o.note != "":
		fmt.Fprintln(a.out, a.note.Sprint(o.note))
	}
}
