package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"ono"
	"ono/internal/diag"
	"ono/internal/lexer"
	"ono/internal/parser"
	"ono/internal/runtime"
	"ono/internal/types"
)

const version = "0.1.0"

const historyFile = ".ono_history"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	switch cmd {
	case "run":
		if err := cmdRun(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	case "repl":
		cmdRepl()
	case "help", "-h", "--help":
		usage()
	case "version", "-v", "--version":
		fmt.Println("ono", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`ono language CLI

Usage:
  ono run <file.ono>
  ono repl

Commands:
  run      Run an ono source file
  repl     Start an interactive session
  version  ono language version`)
}

// -------------- RUN --------------

func cmdRun(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("run: missing input file")
	}
	input := args[0]

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	source := string(src)
	if errs := ono.Run(source); len(errs) > 0 {
		ono.Annotate(errs, filepath.Base(input), source)
		printErrors(errs)
		os.Exit(1)
	}
	return nil
}

func printErrors(errs []*diag.Error) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
}

// -------------- REPL --------------

// cmdRepl keeps one checker and one interpreter alive for the whole
// session, so bindings from earlier lines stay visible.
func cmdRepl() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("ono %s. Ctrl+C cancels input, Ctrl+D exits.\n", version)

	checker := types.NewChecker()
	interp := runtime.New()

	for {
		line, err := ln.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		evalLine(checker, interp, line)
	}
}

func evalLine(checker *types.Checker, interp *runtime.Interpreter, line string) {
	tokens, errs := lexer.New(line).Tokenize()
	if len(errs) > 0 {
		reportLine(errs, line)
		return
	}

	stmts, errs := parser.New(tokens).Parse()
	if len(errs) > 0 {
		reportLine(errs, line)
		return
	}

	if errs := checker.Check(stmts); len(errs) > 0 {
		reportLine(errs, line)
		return
	}

	if errs := interp.Interpret(stmts); len(errs) > 0 {
		reportLine(errs, line)
	}
}

func reportLine(errs []*diag.Error, line string) {
	ono.Annotate(errs, "", line)
	printErrors(errs)
}
