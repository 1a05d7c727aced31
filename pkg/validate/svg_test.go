package validate

import (
	"reflect"
	"testing"

	"github.com/openlessons/rteverify/pkg/component"
)

const minimalDiagram = `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="40" viewBox="0 0 40 40"><circle cx="20" cy="20" r="10"></circle></svg>`

func TestSVGHasXMLNS(t *testing.T) {
	cases := []struct {
		name string
		svg  string
		want bool
	}{
		{"declared", minimalDiagram, true},
		{"missing", `<svg width="40" height="40"></svg>`, false},
		{"second svg missing", `<svg xmlns="http://www.w3.org/2000/svg"></svg><svg></svg>`, false},
		{"no svg element", `<p>not a diagram</p>`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SVGHasXMLNS(tc.svg); got != tc.want {
				t.Errorf("SVGHasXMLNS(%q) = %v, want %v", tc.svg, got, tc.want)
			}
		})
	}
}

func TestInvalidSVGContentClean(t *testing.T) {
	elements, attrs := InvalidSVGContent(minimalDiagram, component.DefaultSVGAllowlist())
	if len(elements) != 0 || len(attrs) != 0 {
		t.Errorf("clean diagram flagged: elements=%v attrs=%v", elements, attrs)
	}
}

func TestInvalidSVGContentUnknownElement(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script type="text/ecmascript">alert(1)</script></svg>`
	elements, attrs := InvalidSVGContent(svg, component.DefaultSVGAllowlist())
	if !reflect.DeepEqual(elements, []string{"script"}) {
		t.Errorf("elements = %v, want [script]", elements)
	}
	// The whole element is already reported, so its attributes are not.
	if len(attrs) != 0 {
		t.Errorf("attrs = %v, want none for an unknown element", attrs)
	}
}

func TestInvalidSVGContentDisallowedAttr(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle cx="5" cy="5" r="2" onclick="alert(1)"></circle></svg>`
	elements, attrs := InvalidSVGContent(svg, component.DefaultSVGAllowlist())
	if len(elements) != 0 {
		t.Errorf("elements = %v, want none", elements)
	}
	if !reflect.DeepEqual(attrs, []string{"circle:onclick"}) {
		t.Errorf("attrs = %v, want [circle:onclick]", attrs)
	}
}

func TestIsParsableAsXML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"well-formed", minimalDiagram, true},
		{"with declaration", `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`, true},
		{"unclosed element", `<svg xmlns="http://www.w3.org/2000/svg"><circle`, false},
		{"mismatched close", `<svg><circle></svg>`, false},
		{"empty", "", false},
		{"text only", "just text", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsParsableAsXML(tc.in); got != tc.want {
				t.Errorf("IsParsableAsXML(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
