package component

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Normalizers for decoded payload values. JSON decoding produces
// string, float64, bool, map[string]any and []any; each normalizer
// reports the first problem in the value it is handed.

func unicodeString(v any) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("Expected unicode string, received %v", v)
	}
	return nil
}

var imageSuffixes = []string{".gif", ".jpeg", ".jpg", ".png", ".svg", ".svgz"}

func imageFilename(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("Expected unicode string, received %v", v)
	}
	if s == "" {
		return fmt.Errorf("Image filename must not be empty")
	}
	lower := strings.ToLower(s)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return nil
		}
	}
	return fmt.Errorf("Invalid image filename: %s", s)
}

func svgFilename(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("Expected unicode string, received %v", v)
	}
	if s == "" {
		return fmt.Errorf("SVG filename must not be empty")
	}
	if !strings.HasSuffix(strings.ToLower(s), ".svg") {
		return fmt.Errorf("Invalid SVG filename: %s", s)
	}
	return nil
}

func sanitizedURL(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("Expected unicode string, received %v", v)
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf(
			"Invalid URL: Sanitized URL should start with 'http://' or 'https://'; received %s", s)
	}
	return nil
}

func boolean(v any) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("Expected bool, received %v", v)
	}
	return nil
}

func nonNegativeInt(v any) error {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 0 {
		return fmt.Errorf("Expected a non-negative int, received %v", v)
	}
	return nil
}

// MathContent normalizes a decoded math_content-with-value payload: a
// mapping with exactly the raw_latex and svg_filename keys, both
// strings. It is exported because the math validators re-check stored
// payloads outside full schema validation.
func MathContent(v any) error {
	dict, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("Expected dict, received %v", v)
	}
	if err := exactKeys(dict, "raw_latex", "svg_filename"); err != nil {
		return err
	}
	if err := unicodeString(dict["raw_latex"]); err != nil {
		return err
	}
	return unicodeString(dict["svg_filename"])
}

func tabContents(v any) error {
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("Expected list, received %v", v)
	}
	for _, item := range list {
		dict, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("Expected dict, received %v", item)
		}
		if err := exactKeys(dict, "content", "title"); err != nil {
			return err
		}
		if err := unicodeString(dict["title"]); err != nil {
			return err
		}
		if err := unicodeString(dict["content"]); err != nil {
			return err
		}
	}
	return nil
}

func exactKeys(dict map[string]any, want ...string) error {
	wanted := make(map[string]bool, len(want))
	for _, k := range want {
		wanted[k] = true
	}
	var missing, extra []string
	for _, k := range want {
		if _, ok := dict[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range dict {
		if !wanted[k] {
			extra = append(extra, k)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return fmt.Errorf("Missing keys: %s, Extra keys: %s",
			strings.Join(missing, ", "), strings.Join(extra, ", "))
	}
	return nil
}
