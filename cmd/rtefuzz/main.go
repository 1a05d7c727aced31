// Command rtefuzz generates randomized rich-text fragment files with
// potential validation failures for testing rteverify and rtemigrate
// against real stored-content defects.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

// Fault describes a single mutation applied to a generated fragment.
type Fault struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FragmentSpec describes the parameters used to generate a fragment.
type FragmentSpec struct {
	ID            int     `json:"id"`
	Format        string  `json:"format"` // "ckeditor" or "textangular"
	Faults        []Fault `json:"faults"`
	Filename      string  `json:"filename"`
	NumParagraphs int     `json:"num_paragraphs"`
}

// faultFunc is a function that mutates a fragment builder to inject a fault.
type faultFunc struct {
	name        string
	description string
	apply       func(b *fragmentBuilder, rng *rand.Rand)
	weight      int // relative probability weight
}

var allFaults []faultFunc

func init() {
	allFaults = []faultFunc{
		// === Grammar faults ===
		{
			name:        "bare_top_level_text",
			description: "Leave text at the top level outside any element",
			weight:      3,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.bareTopLevelText = true
			},
		},
		{
			name:        "disallowed_tag",
			description: "Use a tag neither grammar generation allows",
			weight:      3,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				options := []string{"span", "table", "h1", "font", "center"}
				b.disallowedTag = options[rng.Intn(len(options))]
			},
		},
		{
			name:        "image_in_paragraph",
			description: "Put an image component inside a paragraph (ckeditor forbids it)",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeImage = true
				b.imageInParagraph = true
			},
		},
		{
			name:        "wrong_generation_markup",
			description: "Use the other editor generation's bold tag",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.wrongGenMarkup = true
			},
		},
		// === Payload faults ===
		{
			name:        "empty_collapsible_payload",
			description: "Give a collapsible an empty content payload",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeCollapsible = true
				b.emptyCollapsible = true
			},
		},
		{
			name:        "truncated_payload",
			description: "Cut a collapsible content payload off mid-escape",
			weight:      3,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeCollapsible = true
				b.truncatePayload = true
			},
		},
		{
			name:        "broken_escape",
			description: "Corrupt the closing entity of a collapsible payload",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeCollapsible = true
				b.breakEscape = true
			},
		},
		{
			name:        "tabs_entry_missing_title",
			description: "Drop the title key from one tabs entry",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeTabs = true
				b.tabsMissingTitle = true
			},
		},
		{
			name:        "extra_attribute",
			description: "Add an attribute the image schema does not define",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeImage = true
				b.extraAttr = true
			},
		},
		// === Math schema faults ===
		{
			name:        "legacy_math",
			description: "Use the legacy raw_latex math schema",
			weight:      4,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeMath = true
				b.legacyMath = true
			},
		},
		{
			name:        "math_no_attrs",
			description: "Emit a math tag with no payload attributes at all",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.includeMath = true
				b.mathNoAttrs = true
			},
		},
		// === Text faults ===
		{
			name:        "mojibake_text",
			description: "Inject mis-encoded character sequences into paragraph text",
			weight:      4,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.mojibake = true
			},
		},
		{
			name:        "whitespace_noise",
			description: "Inject literal tabs and newlines into the fragment",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.whitespaceNoise = true
			},
		},
		// === Migration-era content ===
		{
			name:        "svgdiagram_tag",
			description: "Include an svgdiagram tag: convertible under ckeditor, disallowed under textangular",
			weight:      2,
			apply: func(b *fragmentBuilder, rng *rand.Rand) {
				b.svgdiagramTag = true
			},
		},
	}
}

type fragmentBuilder struct {
	format        component.Format
	numParagraphs int

	// Structure picks
	includeList        bool
	includeMath        bool
	includeCollapsible bool
	includeTabs        bool
	includeImage       bool
	includeLink        bool

	// Grammar faults
	bareTopLevelText bool
	disallowedTag    string
	imageInParagraph bool
	wrongGenMarkup   bool

	// Payload faults
	emptyCollapsible bool
	truncatePayload  bool
	breakEscape      bool
	tabsMissingTitle bool
	extraAttr        bool

	// Math faults
	legacyMath  bool
	mathNoAttrs bool

	// Text faults
	mojibake        bool
	whitespaceNoise bool

	// Migration-era content
	svgdiagramTag bool
}

func newBuilder(format component.Format, numParagraphs int) *fragmentBuilder {
	return &fragmentBuilder{
		format:        format,
		numParagraphs: numParagraphs,
	}
}

var sentences = []string{
	"The fraction of the circle is shaded.",
	"Each bar in the chart shows one measurement.",
	"Carry the remainder into the next column.",
	"The pattern repeats after four steps.",
	"Angles on a straight line sum to two right angles.",
	"Round the result to the nearest whole number.",
}

func encode(v any) string {
	s, _ := fragment.EncodePayload(v)
	return s
}

// boldTag returns the bold tag of the builder's generation, or of the
// other generation when the wrong-markup fault is set.
func (b *fragmentBuilder) boldTag() string {
	ck := b.format == component.FormatCKEditor
	if b.wrongGenMarkup {
		ck = !ck
	}
	if ck {
		return "strong"
	}
	return "b"
}

func (b *fragmentBuilder) build() string {
	var sb strings.Builder
	sep := ""
	if b.whitespaceNoise {
		sep = "\n"
	}

	// 1. Paragraphs
	for i := 0; i < b.numParagraphs; i++ {
		text := sentences[i%len(sentences)]
		if i == 0 {
			if b.mojibake {
				text = "CafÃ© visitors say itâ€™s true. " + text
			}
			if b.whitespaceNoise {
				text = text + "\tand then some"
			}
			bold := b.boldTag()
			text = fmt.Sprintf("<%s>Note:</%s> %s", bold, bold, text)
		}
		sb.WriteString("<p>" + text + "</p>")
		sb.WriteString(sep)
		if i == 0 && b.bareTopLevelText {
			sb.WriteString("stray text outside any element")
		}
	}

	// 2. Disallowed tag at the top level
	if b.disallowedTag != "" {
		sb.WriteString(fmt.Sprintf("<%s>out of grammar</%s>", b.disallowedTag, b.disallowedTag))
	}

	// 3. List
	if b.includeList {
		sb.WriteString("<ul><li>first item</li><li>second item</li></ul>")
	}

	// 4. Math component, legal in a paragraph under both grammars
	if b.includeMath {
		var math string
		switch {
		case b.mathNoAttrs:
			math = "<oppia-noninteractive-math></oppia-noninteractive-math>"
		case b.legacyMath:
			math = fmt.Sprintf(
				`<oppia-noninteractive-math raw_latex-with-value="%s"></oppia-noninteractive-math>`,
				encode(`\frac{1}{2}`))
		default:
			math = fmt.Sprintf(
				`<oppia-noninteractive-math math_content-with-value="%s"></oppia-noninteractive-math>`,
				encode(map[string]any{"raw_latex": `\frac{1}{2}`, "svg_filename": "mathImg.svg"}))
		}
		sb.WriteString("<p>Consider " + math + " of the total.</p>")
	}

	// 5. Image. ckeditor only allows it at the top level; textangular
	// only inside inline context, so it goes in a paragraph there.
	if b.includeImage {
		extra := ""
		if b.extraAttr {
			extra = fmt.Sprintf(` bogus-with-value="%s"`, encode("unexpected"))
		}
		img := fmt.Sprintf(
			`<oppia-noninteractive-image filepath-with-value="%s" caption-with-value="%s" alt-with-value="%s"%s></oppia-noninteractive-image>`,
			encode("figure.png"), encode(""), encode("a figure"), extra)
		if b.format == component.FormatCKEditor && !b.imageInParagraph {
			sb.WriteString(img)
		} else {
			sb.WriteString("<p>" + img + "</p>")
		}
	}

	// 6. Link inside a paragraph
	if b.includeLink {
		link := fmt.Sprintf(
			`<oppia-noninteractive-link url-with-value="%s" text-with-value="%s"></oppia-noninteractive-link>`,
			encode("https://example.com/lesson"), encode("the lesson"))
		sb.WriteString("<p>See " + link + " for more.</p>")
	}

	// 7. Collapsible with a nested content payload
	if b.includeCollapsible {
		content := encode("<p>Hidden content.</p>")
		switch {
		case b.emptyCollapsible:
			content = ""
		case b.truncatePayload:
			content = content[:len(content)/2]
		case b.breakEscape:
			content = strings.TrimSuffix(content, "&#34;") + "&#3"
		}
		sb.WriteString(fmt.Sprintf(
			`<oppia-noninteractive-collapsible heading-with-value="%s" content-with-value="%s"></oppia-noninteractive-collapsible>`,
			encode("More details"), content))
	}

	// 8. Tabs with per-entry content payloads
	if b.includeTabs {
		entries := []any{
			map[string]any{"title": "Hint", "content": "<p>First hint.</p>"},
			map[string]any{"title": "Answer", "content": "<p>The answer.</p>"},
		}
		if b.tabsMissingTitle {
			entries[1] = map[string]any{"content": "<p>The answer.</p>"}
		}
		sb.WriteString(fmt.Sprintf(
			`<oppia-noninteractive-tabs tab_contents-with-value="%s"></oppia-noninteractive-tabs>`,
			encode(entries)))
	}

	// 9. svgdiagram at the top level
	if b.svgdiagramTag {
		sb.WriteString(fmt.Sprintf(
			`<oppia-noninteractive-svgdiagram svg_filename-with-value="%s" alt-with-value="%s"></oppia-noninteractive-svgdiagram>`,
			encode("diagram.svg"), encode("a diagram")))
	}

	return sb.String()
}

func generateFragment(id int, rng *rand.Rand) (*FragmentSpec, string) {
	// Pick format: 60% ckeditor, 40% textangular
	format := component.FormatCKEditor
	if rng.Float64() < 0.4 {
		format = component.FormatTextAngular
	}

	numParagraphs := 1 + rng.Intn(4) // 1-4 paragraphs

	b := newBuilder(format, numParagraphs)

	// Valid structure picks, independent of faults
	b.includeList = rng.Float64() < 0.3
	b.includeMath = rng.Float64() < 0.3
	b.includeCollapsible = rng.Float64() < 0.3
	b.includeTabs = rng.Float64() < 0.2
	b.includeImage = rng.Float64() < 0.3
	b.includeLink = rng.Float64() < 0.2

	// Decide how many faults to inject: 0-4
	// 15% valid (0 faults), 35% 1 fault, 30% 2 faults, 15% 3 faults, 5% 4 faults
	r := rng.Float64()
	var numFaults int
	switch {
	case r < 0.15:
		numFaults = 0
	case r < 0.50:
		numFaults = 1
	case r < 0.80:
		numFaults = 2
	case r < 0.95:
		numFaults = 3
	default:
		numFaults = 4
	}

	// Filter faults by format compatibility
	var applicable []faultFunc
	for _, f := range allFaults {
		// image-in-paragraph is legal textangular grammar, so the fault
		// only means something under ckeditor
		if format == component.FormatTextAngular && f.name == "image_in_paragraph" {
			continue
		}
		applicable = append(applicable, f)
	}

	spec := &FragmentSpec{
		ID:            id,
		Format:        string(format),
		NumParagraphs: numParagraphs,
	}

	usedFaults := map[string]bool{}
	for i := 0; i < numFaults && len(applicable) > 0; i++ {
		totalWeight := 0
		for _, f := range applicable {
			if !usedFaults[f.name] {
				totalWeight += f.weight
			}
		}
		if totalWeight == 0 {
			break
		}

		pick := rng.Intn(totalWeight)
		cumulative := 0
		for _, f := range applicable {
			if usedFaults[f.name] {
				continue
			}
			cumulative += f.weight
			if pick < cumulative {
				usedFaults[f.name] = true
				f.apply(b, rng)
				spec.Faults = append(spec.Faults, Fault{Name: f.name, Description: f.description})

				// Some faults are mutually exclusive with others
				switch f.name {
				case "empty_collapsible_payload":
					usedFaults["truncated_payload"] = true
					usedFaults["broken_escape"] = true
				case "truncated_payload":
					usedFaults["empty_collapsible_payload"] = true
					usedFaults["broken_escape"] = true
				case "broken_escape":
					usedFaults["empty_collapsible_payload"] = true
					usedFaults["truncated_payload"] = true
				case "legacy_math":
					usedFaults["math_no_attrs"] = true
				case "math_no_attrs":
					usedFaults["legacy_math"] = true
				}
				break
			}
		}
	}

	spec.Filename = fmt.Sprintf("frag_%03d.html", id)
	return spec, b.build()
}

func main() {
	count := 100
	outDir := "testdata/corpus"
	seed := int64(42)

	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))

	var specs []FragmentSpec

	for i := 1; i <= count; i++ {
		spec, data := generateFragment(i, rng)

		path := filepath.Join(outDir, spec.Filename)
		if err := os.WriteFile(path, []byte(data+"\n"), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}

		specs = append(specs, *spec)

		faultNames := make([]string, len(spec.Faults))
		for j, f := range spec.Faults {
			faultNames[j] = f.Name
		}
		faultStr := "valid (no faults)"
		if len(faultNames) > 0 {
			faultStr = strings.Join(faultNames, ", ")
		}
		fmt.Printf("[%3d] %s %s %dp: %s\n", i, spec.Filename, spec.Format, spec.NumParagraphs, faultStr)
	}

	// Write manifest
	manifestPath := filepath.Join(outDir, "manifest.json")
	manifestData, _ := json.MarshalIndent(specs, "", "  ")
	if err := os.WriteFile(manifestPath, manifestData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nGenerated %d fragments in %s\n", count, outDir)
	fmt.Printf("Manifest: %s\n", manifestPath)
}
