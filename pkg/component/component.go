// Package component defines the rich-text component registry: the
// closed set of custom tags an authored fragment may contain, the
// attribute schema validator for each, and the configuration tables
// the rest of the engine works from (the per-format grammars, the SVG
// allowlist, and the character repair table).
//
// Components are custom elements named oppia-noninteractive-<name>.
// Every component attribute carries a -with-value suffix and stores an
// entity-escaped JSON payload. Composite components (collapsible,
// tabs) embed nested HTML fragments inside their payloads; all others
// are simple.
package component

import (
	"fmt"
	"sort"
	"strings"
)

// TagPrefix starts every component tag name.
const TagPrefix = "oppia-noninteractive-"

// Component tag names.
const (
	TagCollapsible = TagPrefix + "collapsible"
	TagImage       = TagPrefix + "image"
	TagLink        = TagPrefix + "link"
	TagMath        = TagPrefix + "math"
	TagSkillreview = TagPrefix + "skillreview"
	TagSvgdiagram  = TagPrefix + "svgdiagram"
	TagTabs        = TagPrefix + "tabs"
	TagVideo       = TagPrefix + "video"
)

// Attribute names used by more than one call site.
const (
	AttrCollapsibleContent = "content-with-value"
	AttrImageCaption       = "caption-with-value"
	AttrImageFilepath      = "filepath-with-value"
	AttrMathContent        = "math_content-with-value"
	AttrRawLatex           = "raw_latex-with-value"
	AttrSvgFilename        = "svg_filename-with-value"
	AttrTabContents        = "tab_contents-with-value"
)

// Spec is one component's attribute schema: the exact set of required
// attributes and a normalizer per attribute.
type Spec struct {
	TagName   string
	Composite bool
	Args      map[string]Normalizer
}

// Normalizer checks one decoded attribute value, returning a
// description of the first problem found.
type Normalizer func(v any) error

// Validate checks a decoded attribute mapping against the schema: the
// attribute set must match exactly, and every value must normalize.
func (s *Spec) Validate(attrs map[string]any) error {
	var missing, extra []string
	for name := range s.Args {
		if _, ok := attrs[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range attrs {
		if _, ok := s.Args[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return fmt.Errorf("Missing attributes: %s, Extra attributes: %s",
			strings.Join(missing, ", "), strings.Join(extra, ", "))
	}
	names := make([]string, 0, len(s.Args))
	for name := range s.Args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.Args[name](attrs[name]); err != nil {
			return err
		}
	}
	return nil
}

// Registry resolves component tag names to their specs. It is built
// once at package load; lookups never allocate.
var registry = map[string]*Spec{
	TagCollapsible: {
		TagName:   TagCollapsible,
		Composite: true,
		Args: map[string]Normalizer{
			"heading-with-value":   unicodeString,
			AttrCollapsibleContent: unicodeString,
		},
	},
	TagImage: {
		TagName: TagImage,
		Args: map[string]Normalizer{
			AttrImageFilepath: imageFilename,
			AttrImageCaption:  unicodeString,
			"alt-with-value":  unicodeString,
		},
	},
	TagLink: {
		TagName: TagLink,
		Args: map[string]Normalizer{
			"url-with-value":  sanitizedURL,
			"text-with-value": unicodeString,
		},
	},
	TagMath: {
		TagName: TagMath,
		Args: map[string]Normalizer{
			AttrMathContent: MathContent,
		},
	},
	TagSkillreview: {
		TagName: TagSkillreview,
		Args: map[string]Normalizer{
			"skill_id-with-value": unicodeString,
			"text-with-value":     unicodeString,
		},
	},
	TagSvgdiagram: {
		TagName: TagSvgdiagram,
		Args: map[string]Normalizer{
			AttrSvgFilename:  svgFilename,
			"alt-with-value": unicodeString,
		},
	},
	TagTabs: {
		TagName:   TagTabs,
		Composite: true,
		Args: map[string]Normalizer{
			AttrTabContents: tabContents,
		},
	},
	TagVideo: {
		TagName: TagVideo,
		Args: map[string]Normalizer{
			"video_id-with-value": unicodeString,
			"start-with-value":    nonNegativeInt,
			"end-with-value":      nonNegativeInt,
			"autoplay-with-value": boolean,
		},
	},
}

// Lookup returns the spec for a component tag name.
func Lookup(tagName string) (*Spec, bool) {
	s, ok := registry[tagName]
	return s, ok
}

// IsComponent reports whether tagName names a registered component.
func IsComponent(tagName string) bool {
	_, ok := registry[tagName]
	return ok
}

// TagNames returns every registered component tag name, sorted.
func TagNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimpleTagNames returns the component tags with no nested HTML
// payload, sorted.
func SimpleTagNames() []string {
	var names []string
	for name, s := range registry {
		if !s.Composite {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
