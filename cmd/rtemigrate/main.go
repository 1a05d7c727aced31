// Command rtemigrate runs the repair pipeline over stored rich-text
// fragment files: encoding repair, math schema migration and
// svgdiagram conversion, with a validation pass before and after.
// Migrated output is written next to the input (or over it with
// --in-place); files the pipeline leaves alone are not rewritten.
// Fragments migrate as one batch, so a malformed payload in any file
// aborts the run before anything is written.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/migrate"
)

const usage = "Usage: rtemigrate <fragment.html ... | asset.svg ...> [--format=ckeditor|textangular] [--in-place]"

func main() {
	args := os.Args[1:]

	var (
		paths   []string
		inPlace bool
		format  component.Format
	)
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--in-place":
			inPlace = true
		case strings.HasPrefix(args[i], "--format="):
			format = component.Format(strings.TrimPrefix(args[i], "--format="))
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

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	// SVG assets are repaired one at a time; fragments go through the
	// batch pipeline together.
	var (
		fragments []string
		fragPaths []string
		svgPaths  []string
	)
	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".svg") {
			svgPaths = append(svgPaths, path)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			os.Exit(2)
		}
		fragments = append(fragments, strings.TrimSpace(string(data)))
		fragPaths = append(fragPaths, path)
	}

	res, err := migrate.Repair(fragments, migrate.RepairOptions{
		Format: format,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "migration aborted, no files written: %v\n", err)
		os.Exit(1)
	}

	fixesByFragment := map[int][]migrate.Fix{}
	fixCounts := map[string]int{}
	for _, fix := range res.Fixes {
		fixesByFragment[fix.Fragment] = append(fixesByFragment[fix.Fragment], fix)
		fixCounts[fix.CheckID]++
	}
	totalFixes := len(res.Fixes)
	written := 0

	for i, path := range fragPaths {
		fixes := fixesByFragment[i]
		if len(fixes) == 0 {
			fmt.Printf("%s: unchanged\n", path)
			continue
		}
		out := outputPath(path, inPlace)
		if err := os.WriteFile(out, []byte(res.Fragments[i]+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", out, err)
			os.Exit(2)
		}
		written++
		ids := make([]string, len(fixes))
		for j, f := range fixes {
			ids[j] = f.CheckID
		}
		fmt.Printf("%s -> %s: %s\n", path, out, strings.Join(ids, ", "))
	}

	svgInvalidAfter := 0
	for _, path := range svgPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			os.Exit(2)
		}
		stripped, svgRes := migrate.RepairSVG(strings.TrimSpace(string(data)))
		if !svgRes.After.IsValid() {
			svgInvalidAfter++
		}
		if len(svgRes.Fixes) == 0 {
			fmt.Printf("%s: unchanged\n", path)
			continue
		}
		out := outputPath(path, inPlace)
		if err := os.WriteFile(out, []byte(stripped+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", out, err)
			os.Exit(2)
		}
		written++
		ids := make([]string, len(svgRes.Fixes))
		for j, f := range svgRes.Fixes {
			ids[j] = f.CheckID
			fixCounts[f.CheckID]++
		}
		totalFixes += len(svgRes.Fixes)
		fmt.Printf("%s -> %s: %s\n", path, out, strings.Join(ids, ", "))
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println("                   SUMMARY")
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("Files processed:     %d\n", len(paths))
	fmt.Printf("Files rewritten:     %d\n", written)
	fmt.Printf("Fixes applied:       %d\n", totalFixes)
	fmt.Printf("Fragment errors before: %d\n", res.Before.FatalCount()+res.Before.ErrorCount())
	fmt.Printf("Fragment errors after:  %d\n", res.After.FatalCount()+res.After.ErrorCount())

	if len(fixCounts) > 0 {
		fmt.Println()
		fmt.Println("Fix breakdown:")
		ids := make([]string, 0, len(fixCounts))
		for id := range fixCounts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Printf("  %-10s %d\n", id+":", fixCounts[id])
		}
	}

	// Exit 1 when content is still invalid after every applicable fix:
	// those fragments need manual attention.
	if !res.After.IsValid() || svgInvalidAfter > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

func outputPath(path string, inPlace bool) string {
	if inPlace {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".migrated" + ext
}
