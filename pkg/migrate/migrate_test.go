package migrate

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

func encodePayload(t *testing.T, v any) string {
	t.Helper()
	s, err := fragment.EncodePayload(v)
	if err != nil {
		t.Fatalf("EncodePayload(%v): %v", v, err)
	}
	return s
}

func legacyMathTag(t *testing.T, latex string) string {
	t.Helper()
	return fmt.Sprintf(
		`<oppia-noninteractive-math raw_latex-with-value="%s"></oppia-noninteractive-math>`,
		encodePayload(t, latex))
}

func newMathTag(t *testing.T, latex, filename string) string {
	t.Helper()
	payload := map[string]any{"raw_latex": latex, "svg_filename": filename}
	return fmt.Sprintf(
		`<oppia-noninteractive-math math_content-with-value="%s"></oppia-noninteractive-math>`,
		encodePayload(t, payload))
}

func collapsibleTag(t *testing.T, heading, content string) string {
	t.Helper()
	return fmt.Sprintf(
		`<oppia-noninteractive-collapsible content-with-value="%s" heading-with-value="%s"></oppia-noninteractive-collapsible>`,
		encodePayload(t, content), encodePayload(t, heading))
}

func tabsTag(t *testing.T, entries []map[string]any) string {
	t.Helper()
	return fmt.Sprintf(
		`<oppia-noninteractive-tabs tab_contents-with-value="%s"></oppia-noninteractive-tabs>`,
		encodePayload(t, entries))
}

// findTag parses a serialized fragment and returns its first element
// with the given name.
func findTag(t *testing.T, raw, name string) *html.Node {
	t.Helper()
	root, err := fragment.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	tags := fragment.FindAll(root, name)
	if len(tags) == 0 {
		t.Fatalf("no %s tag in %q", name, raw)
	}
	return tags[0]
}

func decodeAttr(t *testing.T, n *html.Node, key string, v any) {
	t.Helper()
	val, ok := fragment.Attr(n, key)
	if !ok {
		t.Fatalf("attribute %s missing", key)
	}
	if err := fragment.DecodePayload(val, v); err != nil {
		t.Fatalf("DecodePayload(%s=%q): %v", key, val, err)
	}
}

func replaceTextTransform(old, new string) TransformFunc {
	return func(root *html.Node) error {
		fragment.Walk(root, func(n *html.Node) {
			if n.Type == html.TextNode {
				n.Data = strings.ReplaceAll(n.Data, old, new)
			}
		})
		return nil
	}
}

func TestApplyReachesAllNestingLevels(t *testing.T) {
	raw := collapsibleTag(t, "outer", "<p>nested</p>") +
		tabsTag(t, []map[string]any{
			{"title": "one", "content": "<p>first</p>"},
			{"title": "two", "content": "<p>second</p>"},
		}) +
		"<p>top</p>"

	calls := 0
	_, err := Apply(raw, func(root *html.Node) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// One call per collapsible content, per tab entry, plus the top
	// level.
	if calls != 4 {
		t.Errorf("transform ran %d times, want 4", calls)
	}
}

func TestApplyTransformsNestedContent(t *testing.T) {
	raw := collapsibleTag(t, "heading", "<p>target</p>") +
		tabsTag(t, []map[string]any{{"title": "tab", "content": "<p>target</p>"}}) +
		"<p>target</p>"

	out, err := Apply(raw, replaceTextTransform("target", "hit"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !strings.Contains(out, "<p>hit</p>") {
		t.Errorf("top-level text not transformed: %q", out)
	}

	var content string
	decodeAttr(t, findTag(t, out, component.TagCollapsible), component.AttrCollapsibleContent, &content)
	if content != "<p>hit</p>" {
		t.Errorf("collapsible content = %q, want %q", content, "<p>hit</p>")
	}

	var entries []map[string]any
	decodeAttr(t, findTag(t, out, component.TagTabs), component.AttrTabContents, &entries)
	if len(entries) != 1 || entries[0]["content"] != "<p>hit</p>" {
		t.Errorf("tab contents = %v, want one entry with %q", entries, "<p>hit</p>")
	}
}

func TestApplyRestoresLegacyBreaks(t *testing.T) {
	raw := "<p>a<br>b</p>"
	out, err := Apply(raw, func(root *html.Node) error { return nil })
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out != raw {
		t.Errorf("Apply(%q) = %q, want input unchanged", raw, out)
	}
}

func TestApplyMalformedCollapsiblePayload(t *testing.T) {
	raw := `<oppia-noninteractive-collapsible content-with-value="not json"></oppia-noninteractive-collapsible>`
	_, err := Apply(raw, func(root *html.Node) error { return nil })
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("Apply error = %v, want ErrMalformedPayload", err)
	}
}

func TestApplyCollapsibleWithoutContentSkipped(t *testing.T) {
	raw := `<oppia-noninteractive-collapsible heading-with-value="&#34;h&#34;"></oppia-noninteractive-collapsible>`
	out, err := Apply(raw, func(root *html.Node) error { return nil })
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !strings.Contains(out, component.TagCollapsible) {
		t.Errorf("collapsible dropped: %q", out)
	}
}

func TestApplyMalformedTabsPayload(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"undecodable", `<oppia-noninteractive-tabs tab_contents-with-value="{{{"></oppia-noninteractive-tabs>`},
		{"missing attribute", `<oppia-noninteractive-tabs></oppia-noninteractive-tabs>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Apply(tc.raw, func(root *html.Node) error { return nil })
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("Apply error = %v, want ErrMalformedPayload", err)
			}
		})
	}
}

func TestMigrateMathComponentsRoundTrip(t *testing.T) {
	raw := "<p>before</p>" + legacyMathTag(t, `\frac{x}{y}`)

	out, err := MigrateMathComponents(raw, nil)
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}

	tag := findTag(t, out, component.TagMath)
	if fragment.HasAttr(tag, component.AttrRawLatex) {
		t.Errorf("raw_latex attribute survived migration: %q", out)
	}
	var content map[string]any
	decodeAttr(t, tag, component.AttrMathContent, &content)
	if content["raw_latex"] != `\frac{x}{y}` {
		t.Errorf("raw_latex = %v, want \\frac{x}{y}", content["raw_latex"])
	}
	if content["svg_filename"] != "" {
		t.Errorf("svg_filename = %v, want empty string", content["svg_filename"])
	}

	again, err := MigrateMathComponents(out, nil)
	if err != nil {
		t.Fatalf("second MigrateMathComponents: %v", err)
	}
	if again != out {
		t.Errorf("migration not a no-op on migrated content:\nfirst  %q\nsecond %q", out, again)
	}
}

func TestMigrateMathComponentsCarriesSvgFilename(t *testing.T) {
	raw := fmt.Sprintf(
		`<oppia-noninteractive-math raw_latex-with-value="%s" svg_filename-with-value="%s"></oppia-noninteractive-math>`,
		encodePayload(t, "x+y"), encodePayload(t, "render.svg"))

	out, err := MigrateMathComponents(raw, zap.NewNop())
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}

	tag := findTag(t, out, component.TagMath)
	if fragment.HasAttr(tag, component.AttrSvgFilename) {
		t.Errorf("svg_filename attribute survived migration: %q", out)
	}
	var content map[string]any
	decodeAttr(t, tag, component.AttrMathContent, &content)
	if content["svg_filename"] != "render.svg" {
		t.Errorf("svg_filename = %v, want render.svg", content["svg_filename"])
	}
}

func TestMigrateMathComponentsDeletesBrokenTags(t *testing.T) {
	raw := "<p>keep</p><oppia-noninteractive-math></oppia-noninteractive-math>"
	out, err := MigrateMathComponents(raw, nil)
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}
	if strings.Contains(out, component.TagMath) {
		t.Errorf("broken math tag not deleted: %q", out)
	}
	if !strings.Contains(out, "<p>keep</p>") {
		t.Errorf("sibling content disturbed: %q", out)
	}
}

func TestMigrateMathComponentsDeletesEmptyLegacyValue(t *testing.T) {
	raw := `<oppia-noninteractive-math raw_latex-with-value=""></oppia-noninteractive-math>`
	out, err := MigrateMathComponents(raw, nil)
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}
	if strings.Contains(out, component.TagMath) {
		t.Errorf("empty legacy math tag not deleted: %q", out)
	}
}

func TestMigrateMathComponentsLeavesNewSchema(t *testing.T) {
	raw := newMathTag(t, "a^2", "sq.svg")
	out, err := MigrateMathComponents(raw, nil)
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}
	if out != raw {
		t.Errorf("migrated tag rewritten:\nin  %q\nout %q", raw, out)
	}
}

func TestMigrateMathComponentsMalformedPayloadFatal(t *testing.T) {
	raw := `<oppia-noninteractive-math raw_latex-with-value="{{{"></oppia-noninteractive-math>`
	_, err := MigrateMathComponents(raw, zap.NewNop())
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("MigrateMathComponents error = %v, want ErrMalformedPayload", err)
	}
}

func TestMigrateMathComponentsNonStringLatexFatal(t *testing.T) {
	raw := fmt.Sprintf(
		`<oppia-noninteractive-math raw_latex-with-value="%s"></oppia-noninteractive-math>`,
		encodePayload(t, 42))
	_, err := MigrateMathComponents(raw, nil)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("MigrateMathComponents error = %v, want ErrMalformedPayload", err)
	}
}

func TestMigrateMathComponentsInsideCollapsible(t *testing.T) {
	raw := collapsibleTag(t, "proofs", legacyMathTag(t, "e=mc^2"))

	out, err := MigrateMathComponents(raw, nil)
	if err != nil {
		t.Fatalf("MigrateMathComponents: %v", err)
	}

	var content string
	decodeAttr(t, findTag(t, out, component.TagCollapsible), component.AttrCollapsibleContent, &content)
	tag := findTag(t, content, component.TagMath)
	if fragment.HasAttr(tag, component.AttrRawLatex) {
		t.Errorf("nested raw_latex attribute survived migration: %q", content)
	}
	var mathContent map[string]any
	decodeAttr(t, tag, component.AttrMathContent, &mathContent)
	if mathContent["raw_latex"] != "e=mc^2" {
		t.Errorf("nested raw_latex = %v, want e=mc^2", mathContent["raw_latex"])
	}
}

func TestConvertSvgDiagramsToImages(t *testing.T) {
	raw := fmt.Sprintf(
		`<oppia-noninteractive-svgdiagram svg_filename-with-value="%s" alt-with-value="%s"></oppia-noninteractive-svgdiagram>`,
		encodePayload(t, "diagram.svg"), encodePayload(t, "a triangle"))

	out, err := ConvertSvgDiagramsToImages(raw)
	if err != nil {
		t.Fatalf("ConvertSvgDiagramsToImages: %v", err)
	}
	if strings.Contains(out, component.TagSvgdiagram) {
		t.Fatalf("svgdiagram tag survived conversion: %q", out)
	}

	tag := findTag(t, out, component.TagImage)
	var filepath, caption, alt string
	decodeAttr(t, tag, component.AttrImageFilepath, &filepath)
	if filepath != "diagram.svg" {
		t.Errorf("filepath = %q, want diagram.svg", filepath)
	}
	decodeAttr(t, tag, component.AttrImageCaption, &caption)
	if caption != "" {
		t.Errorf("caption = %q, want empty string", caption)
	}
	decodeAttr(t, tag, "alt-with-value", &alt)
	if alt != "a triangle" {
		t.Errorf("alt = %q, want a triangle", alt)
	}
}

func TestConvertSvgDiagramsMissingFilenameFatal(t *testing.T) {
	raw := `<oppia-noninteractive-svgdiagram alt-with-value="&#34;x&#34;"></oppia-noninteractive-svgdiagram>`
	_, err := ConvertSvgDiagramsToImages(raw)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("ConvertSvgDiagramsToImages error = %v, want ErrMalformedPayload", err)
	}
}

func TestExtractMathSVGFilenames(t *testing.T) {
	raw := newMathTag(t, "a", "first.svg") +
		newMathTag(t, "b", "") +
		legacyMathTag(t, "c") +
		newMathTag(t, "d", "second.svg")

	got := ExtractMathSVGFilenames(raw)
	want := []string{"first.svg", "second.svg"}
	if len(got) != len(want) {
		t.Fatalf("ExtractMathSVGFilenames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("filename %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestContainsSvgDiagram(t *testing.T) {
	with := fmt.Sprintf(
		`<p>x</p><oppia-noninteractive-svgdiagram svg_filename-with-value="%s" alt-with-value="%s"></oppia-noninteractive-svgdiagram>`,
		encodePayload(t, "d.svg"), encodePayload(t, "alt"))
	if !ContainsSvgDiagram(with) {
		t.Error("ContainsSvgDiagram = false for fragment with svgdiagram tag")
	}
	if ContainsSvgDiagram("<p>plain</p>") {
		t.Error("ContainsSvgDiagram = true for plain fragment")
	}
}
