package realworld

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openlessons/rteverify/pkg/report"
	"github.com/openlessons/rteverify/pkg/validate"
)

// knownInvalid lists samples that are genuinely invalid. These are
// kept in the corpus to verify we detect real errors, not just to
// check for false positives.
var knownInvalid = map[string]bool{
	"legacy-algebra.html": true, // pre-migration math payloads still on the raw_latex schema
	"broken-quiz.html":    true, // collapsible payload truncated by a bad export
}

// knownMojibake lists samples that validate but carry mis-encoded
// text from a cp-1252 bulk import. They must warn without failing.
var knownMojibake = map[string]bool{
	"scanned-import.html": true,
}

// TestRealWorldSamples validates lesson fragments captured from
// production-shaped content and checks for false positives. Samples
// not listed above are expected to be fully clean.
//
// Set REALWORLD_SAMPLES_DIR to point at a different fragment
// directory.
func TestRealWorldSamples(t *testing.T) {
	dir := os.Getenv("REALWORLD_SAMPLES_DIR")
	if dir == "" {
		dir = filepath.Join(findRepoRoot(t), "testdata", "realworld")
	}

	entries, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		t.Fatalf("globbing samples: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no sample fragments found in %s", dir)
	}

	for _, path := range entries {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading sample: %v", err)
			}
			rpt, _ := validate.ValidateFragment(strings.TrimSpace(string(data)), validate.Options{})

			if knownInvalid[name] {
				if rpt.IsValid() {
					t.Errorf("expected invalid (known-invalid sample), but got valid")
				}
				return
			}

			if knownMojibake[name] {
				if !rpt.IsValid() {
					t.Errorf("mojibake should warn, not fail; got %d errors", rpt.ErrorCount())
				}
				if rpt.WarningCount() == 0 {
					t.Error("expected encoding warnings")
				}
				return
			}

			if !rpt.IsValid() || rpt.WarningCount() != 0 {
				t.Errorf("expected clean, got errors=%d, warnings=%d",
					rpt.ErrorCount(), rpt.WarningCount())
				for _, m := range rpt.Messages {
					t.Logf("  %s(%s): %s", m.Severity, m.CheckID, m.Message)
				}
			}
		})
	}
}

// TestKnownInvalidExpectedErrors verifies that known-invalid samples
// produce specific expected error check IDs.
func TestKnownInvalidExpectedErrors(t *testing.T) {
	dir := os.Getenv("REALWORLD_SAMPLES_DIR")
	if dir == "" {
		dir = filepath.Join(findRepoRoot(t), "testdata", "realworld")
	}

	expectations := map[string][]string{
		"legacy-algebra.html": {"MTH-002", "CMP-002"},
		"broken-quiz.html":    {"GRM-004", "CMP-001"},
	}

	for name, expectedIDs := range expectations {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading sample %s: %v", name, err)
		}

		t.Run(name, func(t *testing.T) {
			rpt, _ := validate.ValidateFragment(strings.TrimSpace(string(data)), validate.Options{})

			foundIDs := make(map[string]bool)
			for _, m := range rpt.Messages {
				if m.Severity == report.Error {
					foundIDs[m.CheckID] = true
				}
			}

			for _, id := range expectedIDs {
				if !foundIDs[id] {
					t.Errorf("expected error %s not found in report", id)
				}
			}
		})
	}
}

// findRepoRoot walks up from the test file location to find the repo root.
func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repo root (no go.mod)")
		}
		dir = parent
	}
}
