package fragment

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Component attribute values hold JSON that has been HTML-entity
// escaped for storage inside an attribute. DecodePayload and
// EncodePayload are the two halves of that codec.

// DecodePayload unescapes an attribute value and JSON-decodes it into v.
func DecodePayload(escaped string, v any) error {
	return json.Unmarshal([]byte(html.UnescapeString(escaped)), v)
}

// EncodePayload JSON-encodes v and entity-escapes the result for
// storage in an attribute value. The encoding is compact and leaves
// HTML runes inside JSON strings alone, so nested markup survives the
// round trip unchanged. Map keys and struct fields marshal in sorted
// key order, keeping output deterministic.
func EncodePayload(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return html.EscapeString(strings.TrimSuffix(buf.String(), "\n")), nil
}

// EscapeString re-exports the HTML entity escaper used for payloads.
func EscapeString(s string) string { return html.EscapeString(s) }

// UnescapeString re-exports the HTML entity unescaper used for payloads.
func UnescapeString(s string) string { return html.UnescapeString(s) }
