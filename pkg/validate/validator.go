// Package validate implements the content checks for authored
// rich-text fragments and for uploaded SVG assets.
//
// The bucket-level functions (ValidateRTEFormat,
// ValidateComponentAttributes, the math and SVG checks) mirror the
// audit jobs the content pipeline runs over stored fragments: they
// aggregate findings across many fragments and never fail on malformed
// content. ValidateFragment and ValidateSVG sit on top of them and
// fold everything into a report with per-check IDs for the command
// line tool.
package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
	"github.com/openlessons/rteverify/pkg/report"
)

// Options configures validation behavior.
type Options struct {
	// Format selects the grammar generation fragments are validated
	// against. Defaults to the ckeditor grammar, the format current
	// content is stored in.
	Format component.Format

	// LegacyMath switches the math checks to the legacy raw_latex
	// attribute schema. Used when validating content that predates the
	// math_content migration.
	LegacyMath bool

	// Assets, when set, enables the math SVG existence check against
	// the given asset store. EntityType and EntityID name the entity
	// whose image assets are consulted.
	Assets     component.AssetChecker
	EntityType string
	EntityID   string
}

// Validate runs all checks on a fragment file and returns a report.
// Files with a .svg extension are validated as SVG assets instead.
func Validate(path string) (*report.Report, error) {
	r, _, err := ValidateWithOptions(path, Options{})
	return r, err
}

// ValidateWithOptions runs validation on a file with the given
// options. For fragment files the grammar buckets are returned
// alongside the report; for .svg files they are nil.
func ValidateWithOptions(path string, opts Options) (*report.Report, *report.Buckets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return ValidateSVG(string(data)), nil, nil
	}
	r, b := ValidateFragment(strings.TrimSpace(string(data)), opts)
	return r, b, nil
}

// ValidateReader validates a single fragment read from r, typically
// standard input.
func ValidateReader(rd io.Reader, opts Options) (*report.Report, *report.Buckets, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, nil, fmt.Errorf("reading fragment: %w", err)
	}
	r, b := ValidateFragment(strings.TrimSpace(string(data)), opts)
	return r, b, nil
}

// ValidateFragment runs every fragment check on one HTML fragment and
// folds the findings into a report. The grammar buckets from the pass
// are returned as well so callers can surface the aggregate view.
func ValidateFragment(raw string, opts Options) (*report.Report, *report.Buckets) {
	if opts.Format == "" {
		opts.Format = component.FormatCKEditor
	}
	r := report.NewReport()

	// Phase 1: grammar walk, including composite payload descent.
	b, err := ValidateRTEFormat([]string{raw}, opts.Format)
	if err != nil {
		r.Add(report.Fatal, "CFG-001", err.Error())
		return r, report.NewBuckets()
	}
	grammarFindings := 0

	// GRM-001: bare text at the top level of the fragment.
	if root, err := fragment.Parse(raw); err == nil {
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				r.AddForFragment(report.Error, "GRM-001",
					"fragment has top-level text outside any element", raw)
				grammarFindings++
				break
			}
		}
	}

	// GRM-002: tags the format does not allow at all.
	for _, tag := range b.Values(report.KeyInvalidTags) {
		r.AddForFragment(report.Error, "GRM-002",
			fmt.Sprintf("tag is not allowed in the %s format: %s", opts.Format, tag), raw)
		grammarFindings++
	}

	// GRM-003: allowed tags under parents the format forbids.
	for _, key := range b.Keys() {
		if key == report.KeyStrings || key == report.KeyInvalidTags {
			continue
		}
		for _, parent := range b.Values(key) {
			r.AddForFragment(report.Error, "GRM-003",
				fmt.Sprintf("tag %s has disallowed parent %s", key, parent), raw)
			grammarFindings++
		}
	}

	// GRM-004: the fragment failed the pass without any of the above
	// firing, which means a composite payload was missing, empty or
	// undecodable.
	if b.Contains(report.KeyStrings, raw) && grammarFindings == 0 {
		r.AddForFragment(report.Error, "GRM-004",
			"composite component payload failed grammar validation", raw)
	}

	// Phase 2: component customization arguments. Math tags under the
	// legacy era keep the raw_latex schema, which the phase 3 legacy
	// check covers; running them through the registry here would flag
	// every tag the era considers fine.
	if root, err := fragment.Parse(raw); err == nil {
		seen := map[string]bool{}
		for _, name := range component.TagNames() {
			if opts.LegacyMath && name == component.TagMath {
				continue
			}
			for _, tag := range fragment.FindAll(root, name) {
				for _, msg := range componentTagErrors(tag) {
					if msg == "" || seen[msg] {
						continue
					}
					seen[msg] = true
					id := "CMP-002"
					if strings.HasPrefix(msg, "Invalid attribute payload") {
						id = "CMP-001"
					}
					r.AddForFragment(report.Error, id, msg, raw)
				}
			}
		}
	}

	// Phase 3: math schema checks for whichever schema era applies.
	if opts.LegacyMath {
		for _, tag := range ValidateMathTags(raw) {
			r.AddForFragment(report.Error, "MTH-001",
				"math tag has no valid raw_latex-with-value attribute", tag)
		}
	} else {
		flagged := make(map[string]bool)
		for _, tag := range ValidateMathTagsWithMathContent(raw) {
			flagged[tag] = true
			r.AddForFragment(report.Error, "MTH-002",
				"math tag has no valid math_content-with-value attribute", tag)
		}
		for _, bad := range ValidateMathContentAttributes(raw) {
			if flagged[bad.Tag] {
				continue
			}
			r.AddForFragment(report.Error, "MTH-004", bad.Error, bad.Tag)
		}
	}

	// Phase 4: math SVG asset existence, when an asset store is wired.
	if opts.Assets != nil {
		for _, tag := range ValidateMathSVGFilenames(opts.EntityType, opts.EntityID, raw, opts.Assets) {
			r.AddForFragment(report.Error, "MTH-003",
				"math tag references a missing or unnamed svg asset", tag)
		}
	}

	// Phase 5: leftover mis-encoded byte sequences.
	for _, seq := range CheckEncoding(raw) {
		r.AddForFragment(report.Warning, "ENC-001",
			"mis-encoded character sequence "+strconv.Quote(seq), raw)
	}

	return r, b
}

// ValidateSVG runs the SVG asset checks on an uploaded SVG string.
// The content checks run even when the XML parse fails, since they
// work off the permissive HTML parser and still produce usable
// findings.
func ValidateSVG(svg string) *report.Report {
	r := report.NewReport()

	if !IsParsableAsXML(svg) {
		r.Add(report.Fatal, "XML-001", "content is not parsable as XML")
	}

	if !SVGHasXMLNS(svg) {
		r.Add(report.Error, "SVG-001", "svg tag does not declare the xmlns attribute")
	}

	elements, attrs := InvalidSVGContent(svg, component.DefaultSVGAllowlist())
	for _, el := range elements {
		r.Add(report.Error, "SVG-002", "svg element is not allowed: "+el)
	}
	for _, attr := range attrs {
		r.Add(report.Error, "SVG-003", "svg attribute is not allowed: "+attr)
	}
	return r
}
