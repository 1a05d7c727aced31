package validate

import (
	"strings"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

// SVGHasXMLNS reports whether every svg element in the string declares
// an xmlns attribute. SVGs are rendered standalone as image assets, so
// one without its namespace declaration will not display.
func SVGHasXMLNS(svg string) bool {
	root, err := fragment.Parse(svg)
	if err != nil {
		return false
	}
	for _, tag := range fragment.FindAll(root, "svg") {
		if !fragment.HasAttr(tag, "xmlns") {
			return false
		}
	}
	return true
}

// InvalidSVGContent scans an SVG string against an element and
// attribute allowlist. The first return value lists element names the
// allowlist does not know; the second lists disallowed attributes on
// known elements as element:attribute pairs. Attributes of unknown
// elements are not inspected, since the whole element is already
// reported. Names compare and report lower-cased.
func InvalidSVGContent(svg string, allow component.SVGAllowlist) (elements, attrs []string) {
	root, err := fragment.Parse(svg)
	if err != nil {
		return nil, nil
	}
	for _, tag := range fragment.Elements(root) {
		name := strings.ToLower(tag.Data)
		if !allow.AllowsElement(name) {
			elements = append(elements, name)
			continue
		}
		for _, a := range tag.Attr {
			attr := a.Key
			if a.Namespace != "" {
				attr = a.Namespace + ":" + a.Key
			}
			attr = strings.ToLower(attr)
			if !allow.AllowsAttr(name, attr) {
				attrs = append(attrs, name+":"+attr)
			}
		}
	}
	return elements, attrs
}
