package validate

import (
	"encoding/xml"
	"io"
	"strings"
)

// IsParsableAsXML reports whether the string is well-formed XML with at
// least one element. Uploaded SVG assets must survive a strict XML
// parse before any content check is worth running on them.
func IsParsableAsXML(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	seenElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return seenElement
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			seenElement = true
		}
	}
}
