package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/report"
	"github.com/openlessons/rteverify/pkg/validate"
)

const version = "0.1.0"

const usage = "Usage: rteverify <fragment.html ... | -> [--format=ckeditor|textangular] [--legacy-math] [--json <output.json | ->] [--version]"

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// Handle --version
	for _, arg := range args {
		if arg == "--version" {
			fmt.Printf("rteverify %s\n", version)
			os.Exit(0)
		}
	}

	var (
		paths      []string
		jsonOutput string
		opts       validate.Options
	)

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--json" && i+1 < len(args):
			jsonOutput = args[i+1]
			i++
		case strings.HasPrefix(args[i], "--format="):
			opts.Format = component.Format(strings.TrimPrefix(args[i], "--format="))
		case args[i] == "--legacy-math":
			opts.LegacyMath = true
		case strings.HasPrefix(args[i], "--"):
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n%s\n", args[i], usage)
			os.Exit(2)
		default:
			paths = append(paths, args[i])
		}
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if opts.Format != "" {
		if _, err := component.GrammarFor(opts.Format); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n%s\n", err, usage)
			os.Exit(2)
		}
	}

	r := report.NewReport()
	for _, path := range paths {
		var (
			fr  *report.Report
			err error
		)
		if path == "-" {
			fr, _, err = validate.ValidateReader(os.Stdin, opts)
		} else {
			fr, _, err = validate.ValidateWithOptions(path, opts)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
			os.Exit(2)
		}
		r.Merge(fr)
	}

	// Text output to stderr
	r.WriteText(os.Stderr)

	// JSON output: always write to stdout for tool interop, and to file if --json specified
	if err := r.WriteJSON(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		os.Exit(2)
	}
	if jsonOutput != "" && jsonOutput != "-" {
		if err := writeJSON(r, jsonOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(2)
		}
	}

	// Exit codes: 0=valid, 1=errors, 2=fatal
	if r.FatalCount() > 0 {
		os.Exit(2)
	}
	if r.ErrorCount() > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

func writeJSON(r *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteJSON(f)
}
