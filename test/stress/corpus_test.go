package stress_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/validate"
)

// corpusFault and corpusEntry mirror the fuzz generator's manifest
// schema.
type corpusFault struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type corpusEntry struct {
	ID            int           `json:"id"`
	Format        string        `json:"format"`
	Faults        []corpusFault `json:"faults"`
	Filename      string        `json:"filename"`
	NumParagraphs int           `json:"num_paragraphs"`
}

func repoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// errorFaults are the injected faults that must make a fragment fail
// validation under the format it was generated for. Mojibake only
// warns, and svgdiagram tags are an error under textangular alone.
// Whitespace noise always warns (the literal tab is a known
// mis-encoding) but only errors when a newline separator lands
// between top-level sections, so it asserts neither way on errors.
var errorFaults = map[string]bool{
	"bare_top_level_text":       true,
	"disallowed_tag":            true,
	"image_in_paragraph":        true,
	"wrong_generation_markup":   true,
	"empty_collapsible_payload": true,
	"truncated_payload":         true,
	"broken_escape":             true,
	"tabs_entry_missing_title":  true,
	"extra_attribute":           true,
	"legacy_math":               true,
	"math_no_attrs":             true,
}

// TestFuzzCorpus cross-checks the generated fuzz corpus against the
// validator: every fragment's report must agree with the faults its
// manifest entry records.
func TestFuzzCorpus(t *testing.T) {
	corpusDir := filepath.Join(repoRoot(), "testdata", "corpus")
	manifestPath := filepath.Join(corpusDir, "manifest.json")

	data, err := os.ReadFile(manifestPath)
	if os.IsNotExist(err) {
		t.Skipf("no fuzz corpus found at %s (run rtefuzz first)", corpusDir)
	}
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}

	var entries []corpusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("manifest is empty")
	}

	for _, entry := range entries {
		entry := entry
		t.Run(fmt.Sprintf("%03d_%s", entry.ID, entry.Format), func(t *testing.T) {
			if entry.Filename != fmt.Sprintf("frag_%03d.html", entry.ID) {
				t.Errorf("unexpected filename %q for id %d", entry.Filename, entry.ID)
			}
			if entry.Format != string(component.FormatCKEditor) &&
				entry.Format != string(component.FormatTextAngular) {
				t.Fatalf("unknown format %q", entry.Format)
			}

			raw, err := os.ReadFile(filepath.Join(corpusDir, entry.Filename))
			if err != nil {
				t.Fatalf("reading fragment: %v", err)
			}

			r, _ := validate.ValidateFragment(strings.TrimSpace(string(raw)),
				validate.Options{Format: component.Format(entry.Format)})

			expectErrors := false
			expectWarnings := false
			maybeErrors := false
			for _, f := range entry.Faults {
				if errorFaults[f.Name] {
					expectErrors = true
				}
				if f.Name == "mojibake_text" || f.Name == "whitespace_noise" {
					expectWarnings = true
				}
				if f.Name == "whitespace_noise" {
					maybeErrors = true
				}
				if f.Name == "svgdiagram_tag" && entry.Format == string(component.FormatTextAngular) {
					expectErrors = true
				}
			}

			if expectErrors && r.IsValid() {
				t.Errorf("faults %v should produce errors, report is clean", faultNames(entry.Faults))
			}
			if !expectErrors && !maybeErrors && !r.IsValid() {
				t.Errorf("unexpected errors for faults %v:", faultNames(entry.Faults))
				for _, m := range r.Messages {
					t.Logf("  %s(%s): %.140s", m.Severity, m.CheckID, m.Message)
				}
			}
			if expectWarnings && r.WarningCount() == 0 {
				t.Errorf("faults %v should produce encoding warnings", faultNames(entry.Faults))
			}
			if len(entry.Faults) == 0 && (r.ErrorCount() != 0 || r.WarningCount() != 0) {
				t.Errorf("fault-free fragment should be clean, got %d errors, %d warnings",
					r.ErrorCount(), r.WarningCount())
			}
		})
	}
}

func faultNames(faults []corpusFault) []string {
	names := make([]string, len(faults))
	for i, f := range faults {
		names[i] = f.Name
	}
	return names
}
