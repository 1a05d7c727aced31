package migrate

import (
	"sort"

	"github.com/microcosm-cc/bluemonday"

	"github.com/openlessons/rteverify/pkg/component"
)

// svgPolicy is the repair counterpart of the SVG validator: it is
// built from the same allowlist the validator reports against, so
// everything InvalidSVGContent would flag is exactly what the policy
// strips.
var svgPolicy = newSVGPolicy(component.DefaultSVGAllowlist())

// StripDisallowedSVGContent removes every element and attribute the
// SVG allowlist rejects, returning the sanitized markup. Text inside
// removed elements is dropped with them.
func StripDisallowedSVGContent(svg string) string {
	return svgPolicy.Sanitize(svg)
}

func newSVGPolicy(allow component.SVGAllowlist) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	// The allowlist admits <style>, which bluemonday only emits with
	// the unsafe switch on. Scripts stay out: nothing else is allowed
	// beyond the listed elements.
	p.AllowUnsafe(true)

	elements := make([]string, 0, len(allow))
	for element := range allow {
		elements = append(elements, element)
	}
	sort.Strings(elements)

	for _, element := range elements {
		p.AllowElements(element)
		attrs := allow[element]
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		p.AllowAttrs(names...).OnElements(element)
	}
	return p
}
