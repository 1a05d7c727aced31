package validate

import (
	"fmt"
	"testing"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
	"github.com/openlessons/rteverify/pkg/report"
)

func encodePayload(t *testing.T, v any) string {
	t.Helper()
	s, err := fragment.EncodePayload(v)
	if err != nil {
		t.Fatalf("EncodePayload(%v): %v", v, err)
	}
	return s
}

// collapsibleTag builds a serialized collapsible component whose
// content payload embeds the given fragment.
func collapsibleTag(t *testing.T, heading, content string) string {
	t.Helper()
	return fmt.Sprintf(
		`<oppia-noninteractive-collapsible content-with-value="%s" heading-with-value="%s"></oppia-noninteractive-collapsible>`,
		encodePayload(t, content), encodePayload(t, heading))
}

// tabsTag builds a serialized tabs component from title/content pairs.
func tabsTag(t *testing.T, entries []map[string]any) string {
	t.Helper()
	return fmt.Sprintf(
		`<oppia-noninteractive-tabs tab_contents-with-value="%s"></oppia-noninteractive-tabs>`,
		encodePayload(t, entries))
}

func mustValidateRTEFormat(t *testing.T, htmls []string, format component.Format) *report.Buckets {
	t.Helper()
	b, err := ValidateRTEFormat(htmls, format)
	if err != nil {
		t.Fatalf("ValidateRTEFormat: %v", err)
	}
	return b
}

func TestValidateRTEFormatValidFragments(t *testing.T) {
	htmls := []string{
		"<p>hello world</p>",
		"<ol><li>one</li><li>two</li></ol>",
		"<blockquote><p>quoted</p></blockquote>",
		"<pre>verbatim</pre>",
	}
	b := mustValidateRTEFormat(t, htmls, component.FormatCKEditor)
	if !b.Empty() {
		t.Errorf("valid fragments produced buckets: %v", b.Map())
	}
	if !b.Has(report.KeyStrings) {
		t.Error("strings bucket should always be present")
	}
}

func TestValidateRTEFormatDisallowedTag(t *testing.T) {
	in := "<center>stay centered</center>"
	b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)

	if !b.Contains(report.KeyInvalidTags, "center") {
		t.Errorf("invalidTags = %v, want center", b.Values(report.KeyInvalidTags))
	}
	if !b.Contains(report.KeyStrings, in) {
		t.Error("fragment missing from strings bucket")
	}
}

func TestValidateRTEFormatDisallowedParent(t *testing.T) {
	in := "<blockquote><blockquote><p>deep</p></blockquote></blockquote>"
	b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)

	if !b.Contains("blockquote", "blockquote") {
		t.Errorf("blockquote bucket = %v, want parent blockquote", b.Values("blockquote"))
	}
	if !b.Contains(report.KeyStrings, in) {
		t.Error("fragment missing from strings bucket")
	}
}

func TestValidateRTEFormatComponentUnderWrongParent(t *testing.T) {
	tabs := tabsTag(t, []map[string]any{{"title": "T", "content": "<p>ok</p>"}})
	in := "<p>" + tabs + "</p>"
	b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)

	if !b.Contains(component.TagTabs, "p") {
		t.Errorf("tabs bucket = %v, want parent p", b.Values(component.TagTabs))
	}
}

func TestValidateRTEFormatTopLevelText(t *testing.T) {
	in := "loose words<p>then a paragraph</p>"
	b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)

	if !b.Contains(report.KeyStrings, in) {
		t.Error("fragment with top-level text should be invalid")
	}
	if len(b.Values(report.KeyInvalidTags)) != 0 {
		t.Errorf("top-level text should not record invalid tags, got %v",
			b.Values(report.KeyInvalidTags))
	}
}

func TestValidateRTEFormatTextAngularDiffers(t *testing.T) {
	// b is textangular vocabulary; ckeditor uses strong instead.
	in := "<p><b>bold</b></p>"

	b := mustValidateRTEFormat(t, []string{in}, component.FormatTextAngular)
	if !b.Empty() {
		t.Errorf("textangular rejected %q: %v", in, b.Map())
	}

	b = mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)
	if !b.Contains(report.KeyInvalidTags, "b") {
		t.Errorf("ckeditor should reject b, got %v", b.Map())
	}
}

func TestValidateRTEFormatUnknownFormat(t *testing.T) {
	if _, err := ValidateRTEFormat(nil, component.Format("quill")); err == nil {
		t.Error("unknown format should return an error")
	}
}

func TestValidateRTEFormatCollapsibleContent(t *testing.T) {
	bad := collapsibleTag(t, "Heading", "<center>nested</center>")
	b := mustValidateRTEFormat(t, []string{bad}, component.FormatCKEditor)

	if !b.Contains(report.KeyInvalidTags, "center") {
		t.Errorf("nested invalid tag not reported: %v", b.Map())
	}
	if !b.Contains(report.KeyStrings, bad) {
		t.Error("outer fragment should be recorded for a nested failure")
	}

	good := collapsibleTag(t, "Heading", "<p>all fine</p>")
	b = mustValidateRTEFormat(t, []string{good}, component.FormatCKEditor)
	if !b.Empty() {
		t.Errorf("valid collapsible flagged: %v", b.Map())
	}
}

func TestValidateRTEFormatCollapsibleMissingContent(t *testing.T) {
	cases := []string{
		`<oppia-noninteractive-collapsible heading-with-value="&#34;H&#34;"></oppia-noninteractive-collapsible>`,
		`<oppia-noninteractive-collapsible content-with-value="" heading-with-value="&#34;H&#34;"></oppia-noninteractive-collapsible>`,
		`<oppia-noninteractive-collapsible content-with-value="not json" heading-with-value="&#34;H&#34;"></oppia-noninteractive-collapsible>`,
	}
	for _, in := range cases {
		b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)
		if !b.Contains(report.KeyStrings, in) {
			t.Errorf("collapsible %q should be invalid", in)
		}
	}
}

func TestValidateRTEFormatTabsContent(t *testing.T) {
	bad := tabsTag(t, []map[string]any{
		{"title": "One", "content": "<p>fine</p>"},
		{"title": "Two", "content": "<font>legacy</font>"},
	})
	b := mustValidateRTEFormat(t, []string{bad}, component.FormatCKEditor)

	if !b.Contains(report.KeyInvalidTags, "font") {
		t.Errorf("invalid tag inside tab content not reported: %v", b.Map())
	}
	if !b.Contains(report.KeyStrings, bad) {
		t.Error("outer fragment should be recorded for a tab failure")
	}
}

func TestValidateRTEFormatTabsMissingAttribute(t *testing.T) {
	in := `<oppia-noninteractive-tabs></oppia-noninteractive-tabs>`
	b := mustValidateRTEFormat(t, []string{in}, component.FormatCKEditor)
	if !b.Contains(report.KeyStrings, in) {
		t.Error("tabs without payload should be invalid")
	}
}

func TestValidateRTEFormatDeduplicates(t *testing.T) {
	in := "<center>a</center><center>b</center>"
	b := mustValidateRTEFormat(t, []string{in, in}, component.FormatCKEditor)

	if got := b.Values(report.KeyInvalidTags); len(got) != 1 {
		t.Errorf("invalidTags = %v, want a single center entry", got)
	}
	if got := b.Values(report.KeyStrings); len(got) != 1 {
		t.Errorf("strings = %d entries, want 1", len(got))
	}
}

func TestCheckGrammarReportsBothViolations(t *testing.T) {
	// A disallowed tag whose child is an allowed tag under a parent
	// that is not allowed for it: both findings must be recorded.
	g, err := component.GrammarFor(component.FormatCKEditor)
	if err != nil {
		t.Fatalf("GrammarFor: %v", err)
	}
	root, err := fragment.Parse("<center><pre>x</pre></center>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	b := report.NewBuckets()
	if !CheckGrammar(root, g, b) {
		t.Fatal("CheckGrammar = false, want true")
	}
	if !b.Contains(report.KeyInvalidTags, "center") {
		t.Errorf("invalidTags = %v", b.Values(report.KeyInvalidTags))
	}
	if !b.Contains("pre", "center") {
		t.Errorf("pre bucket = %v, want parent center", b.Values("pre"))
	}
}
