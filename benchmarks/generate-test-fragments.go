// generate-test-fragments.go creates rich-text fragment files of various sizes for benchmarking.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openlessons/rteverify/pkg/fragment"
)

func main() {
	dir := "benchmarks/corpus"
	os.MkdirAll(dir, 0755)

	sizes := []struct {
		name         string
		paragraphs   int
		collapsibles int
	}{
		{"tiny-10p", 10, 1},
		{"small-50p", 50, 3},
		{"medium-200p", 200, 10},
		{"large-1000p", 1000, 30},
		{"xlarge-5000p", 5000, 100},
	}

	for _, s := range sizes {
		path := filepath.Join(dir, s.name+".html")
		if err := generateFragment(path, s.paragraphs, s.collapsibles); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
		fi, _ := os.Stat(path)
		fmt.Printf("Generated %s (%d KB)\n", path, fi.Size()/1024)
	}
}

var loremParagraphs = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
	"Curabitur pretium tincidunt lacus. Nulla gravida orci a odio. Nullam varius, turpis et commodo pharetra, est eros bibendum elit, nec luctus magna felis sollicitudin mauris. Integer in mauris eu nibh euismod gravida.",
	"Praesent blandit dolor. Sed non quam. In vel mi sit amet augue congue elementum. Morbi in ipsum sit amet pede facilisis laoreet. Donec lacus nunc, viverra nec, blandit vel, egestas et, augue.",
	"Vestibulum tincidunt malesuada tellus. Ut ultrices ultrices enim. Curabitur sit amet mauris. Morbi in dui quis est pulvinar ullamcorper. Nulla facilisi. Integer lacinia sollicitudin massa.",
}

// generateFragment writes one ckeditor-grammar fragment with the given
// paragraph and collapsible counts. A slice of the paragraphs carry
// inline markup and math components so validation exercises more than
// the plain-text path, and every collapsible holds a full nested
// fragment in its content payload.
func generateFragment(path string, paragraphs, collapsibles int) error {
	var sb strings.Builder

	mathTag, err := mathComponent(`\frac{3}{4}`)
	if err != nil {
		return err
	}
	linkPayloadURL, err := fragment.EncodePayload("https://example.com/lesson")
	if err != nil {
		return err
	}
	linkPayloadText, err := fragment.EncodePayload("the worked example")
	if err != nil {
		return err
	}
	linkTag := fmt.Sprintf(
		`<oppia-noninteractive-link url-with-value="%s" text-with-value="%s"></oppia-noninteractive-link>`,
		linkPayloadURL, linkPayloadText)

	for j := 0; j < paragraphs; j++ {
		p := loremParagraphs[j%len(loremParagraphs)]
		switch {
		case j%7 == 0:
			sb.WriteString("<p>Consider " + mathTag + " here. " + p + "</p>")
		case j%11 == 0:
			sb.WriteString("<p>See " + linkTag + ". " + p + "</p>")
		case j%3 == 0:
			sb.WriteString("<p><em>" + p + "</em></p>")
		case j%5 == 0:
			sb.WriteString("<p><strong>" + p + "</strong></p>")
		default:
			sb.WriteString("<p>" + p + "</p>")
		}
	}

	inner := "<p>" + loremParagraphs[0] + "</p><p>Nested " + mathTag + " content.</p>"
	innerPayload, err := fragment.EncodePayload(inner)
	if err != nil {
		return err
	}
	headingPayload, err := fragment.EncodePayload("More details")
	if err != nil {
		return err
	}
	for j := 0; j < collapsibles; j++ {
		sb.WriteString(fmt.Sprintf(
			`<oppia-noninteractive-collapsible heading-with-value="%s" content-with-value="%s"></oppia-noninteractive-collapsible>`,
			headingPayload, innerPayload))
	}

	tabsPayload, err := fragment.EncodePayload([]any{
		map[string]any{"title": "Hint", "content": "<p>" + loremParagraphs[1] + "</p>"},
		map[string]any{"title": "Worked example", "content": inner},
		map[string]any{"title": "Answer", "content": "<p>" + loremParagraphs[2] + "</p>"},
	})
	if err != nil {
		return err
	}
	sb.WriteString(fmt.Sprintf(
		`<oppia-noninteractive-tabs tab_contents-with-value="%s"></oppia-noninteractive-tabs>`,
		tabsPayload))

	return os.WriteFile(path, []byte(sb.String()+"\n"), 0o644)
}

func mathComponent(latex string) (string, error) {
	payload, err := fragment.EncodePayload(map[string]any{
		"raw_latex":    latex,
		"svg_filename": "mathImg.svg",
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		`<oppia-noninteractive-math math_content-with-value="%s"></oppia-noninteractive-math>`,
		payload), nil
}
