package migrate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

// RepairEncoding rewrites text damaged by a cp-1252/UTF-8 double
// encode. Every rule in component.CharMappings runs over the
// serialized content in listed order, each rule's output feeding the
// next, followed by the trailing &nbsp;-to-space rule. Nested
// collapsible and tabs payloads are repaired in decoded form, so
// JSON-escaped whitespace inside them is caught too.
func RepairEncoding(raw string) (string, error) {
	return Apply(raw, repairEncodingTree)
}

// repairEncodingTree serializes the tree under root, repairs the
// string, and re-parses the result back under root. Repairs operate on
// the serialized form because the damaged sequences came from string
// storage, not from any particular node.
func repairEncodingTree(root *html.Node) error {
	repaired, err := fragment.Parse(repairSerialized(fragment.Serialize(root)))
	if err != nil {
		return err
	}
	for root.FirstChild != nil {
		root.RemoveChild(root.FirstChild)
	}
	for repaired.FirstChild != nil {
		c := repaired.FirstChild
		repaired.RemoveChild(c)
		root.AppendChild(c)
	}
	return nil
}

func repairSerialized(s string) string {
	for _, m := range component.CharMappings {
		s = strings.ReplaceAll(s, m.Bad, m.Good)
	}
	// Stored fragments recorded non-breaking spaces as either &nbsp; or
	// the bare rune; the table already collapsed the rune form.
	return strings.ReplaceAll(s, "&nbsp;", " ")
}
