package migrate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/report"
	"github.com/openlessons/rteverify/pkg/validate"
)

// Fix represents a single applied fix.
type Fix struct {
	CheckID     string
	Description string
	Fragment    int // index of the fragment that was modified
}

// RepairOptions control the batch pipeline. The zero value validates
// against the ckeditor grammar and applies every fix.
type RepairOptions struct {
	// Format selects the grammar for the before and after validation
	// passes. Empty means ckeditor.
	Format component.Format

	SkipEncodingRepair bool
	SkipMathMigration  bool
	SkipSvgConversion  bool

	// Logger receives migration diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Result holds the outcome of a batch repair run.
type Result struct {
	// Fragments are the repaired fragments, index-aligned with the
	// input.
	Fragments []string
	Fixes     []Fix
	Before    *report.Report
	After     *report.Report
}

// Repair runs the fix pipeline over a batch of fragments:
//  1. Validate every fragment to capture the before report
//  2. Apply encoding repair, math migration and svgdiagram conversion
//     per options, recording a Fix for each change
//  3. Re-validate the repaired fragments to confirm
//
// A payload that fails to decode in any fragment aborts the whole
// batch; partial migration output is worse than none.
func Repair(htmls []string, opts RepairOptions) (*Result, error) {
	if opts.Format == "" {
		opts.Format = component.FormatCKEditor
	}

	before := report.NewReport()
	for _, raw := range htmls {
		r, _ := validate.ValidateFragment(raw, validate.Options{Format: opts.Format})
		before.Merge(r)
	}

	fragments := make([]string, len(htmls))
	copy(fragments, htmls)
	var fixes []Fix

	for i := range fragments {
		if !opts.SkipEncodingRepair {
			repaired, err := RepairEncoding(fragments[i])
			if err != nil {
				return nil, fmt.Errorf("repairing encoding in fragment %d: %w", i, err)
			}
			if repaired != fragments[i] {
				fragments[i] = repaired
				fixes = append(fixes, Fix{
					CheckID:     "ENC-001",
					Description: "Repaired mis-encoded characters",
					Fragment:    i,
				})
			}
		}

		if !opts.SkipMathMigration {
			migrated, err := MigrateMathComponents(fragments[i], opts.Logger)
			if err != nil {
				return nil, fmt.Errorf("migrating math tags in fragment %d: %w", i, err)
			}
			if migrated != fragments[i] {
				fragments[i] = migrated
				fixes = append(fixes, Fix{
					CheckID:     "MTH-002",
					Description: "Migrated legacy math tags to the math_content schema",
					Fragment:    i,
				})
			}
		}

		if !opts.SkipSvgConversion {
			converted, err := ConvertSvgDiagramsToImages(fragments[i])
			if err != nil {
				return nil, fmt.Errorf("converting svgdiagram tags in fragment %d: %w", i, err)
			}
			if converted != fragments[i] {
				fragments[i] = converted
				fixes = append(fixes, Fix{
					CheckID:     "MIG-001",
					Description: "Converted svgdiagram tags to image tags",
					Fragment:    i,
				})
			}
		}
	}

	if len(fixes) == 0 {
		return &Result{
			Fragments: fragments,
			Before:    before,
			After:     before,
		}, nil
	}

	after := report.NewReport()
	for _, raw := range fragments {
		r, _ := validate.ValidateFragment(raw, validate.Options{Format: opts.Format})
		after.Merge(r)
	}

	return &Result{
		Fragments: fragments,
		Fixes:     fixes,
		Before:    before,
		After:     after,
	}, nil
}

// RepairSVG strips disallowed content from one SVG document and
// reports the before and after validation state. Fix entries are
// derived from the before report, one per stripping concern that was
// actually flagged; a byte difference with a clean before report is
// serialization normalization, not a fix. SVG assets are repaired one
// at a time, so fixes use index 0.
func RepairSVG(svg string) (string, *Result) {
	before := validate.ValidateSVG(svg)
	stripped := StripDisallowedSVGContent(svg)

	if stripped == svg {
		return svg, &Result{
			Fragments: []string{svg},
			Before:    before,
			After:     before,
		}
	}

	var fixes []Fix
	if reportHasCheck(before, "SVG-002") {
		fixes = append(fixes, Fix{
			CheckID:     "SVG-002",
			Description: "Stripped disallowed SVG elements",
		})
	}
	if reportHasCheck(before, "SVG-003") {
		fixes = append(fixes, Fix{
			CheckID:     "SVG-003",
			Description: "Stripped disallowed SVG attributes",
		})
	}

	return stripped, &Result{
		Fragments: []string{stripped},
		Fixes:     fixes,
		Before:    before,
		After:     validate.ValidateSVG(stripped),
	}
}

func reportHasCheck(r *report.Report, checkID string) bool {
	for _, m := range r.Messages {
		if m.CheckID == checkID {
			return true
		}
	}
	return false
}
