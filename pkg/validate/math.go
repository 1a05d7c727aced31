package validate

import (
	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

// The math component has lived under two attribute schemas. The legacy
// schema stored a bare LaTeX string under raw_latex-with-value; the
// current one stores a dictionary with raw_latex and svg_filename
// fields under math_content-with-value. The checks below cover tags on
// either side of that migration.

// ValidateMathTags returns the serialized form of every math tag that
// is invalid under the legacy schema: tags with no decodable string
// payload in raw_latex-with-value. Tags already carrying the new
// math_content-with-value attribute are outside this check's scope and
// are skipped.
func ValidateMathTags(raw string) []string {
	root, err := fragment.Parse(raw)
	if err != nil {
		return nil
	}
	var invalid []string
	for _, tag := range fragment.FindAll(root, component.TagMath) {
		if fragment.HasAttr(tag, component.AttrMathContent) {
			continue
		}
		val, ok := fragment.Attr(tag, component.AttrRawLatex)
		if !ok {
			invalid = append(invalid, fragment.SerializeNode(tag))
			continue
		}
		var latex string
		if err := fragment.DecodePayload(val, &latex); err != nil {
			invalid = append(invalid, fragment.SerializeNode(tag))
		}
	}
	return invalid
}

// ValidateMathTagsWithMathContent returns the serialized form of every
// math tag that is invalid under the current schema: the
// math_content-with-value payload must decode to a dictionary carrying
// string raw_latex and svg_filename fields. Tags without the attribute
// at all are invalid too.
func ValidateMathTagsWithMathContent(raw string) []string {
	root, err := fragment.Parse(raw)
	if err != nil {
		return nil
	}
	var invalid []string
	for _, tag := range fragment.FindAll(root, component.TagMath) {
		if !mathContentWellFormed(tag) {
			invalid = append(invalid, fragment.SerializeNode(tag))
		}
	}
	return invalid
}

func mathContentWellFormed(tag *html.Node) bool {
	val, ok := fragment.Attr(tag, component.AttrMathContent)
	if !ok {
		return false
	}
	var content map[string]any
	if err := fragment.DecodePayload(val, &content); err != nil {
		return false
	}
	rawLatex, ok := content["raw_latex"]
	if !ok {
		return false
	}
	svgFilename, ok := content["svg_filename"]
	if !ok {
		return false
	}
	if _, ok := svgFilename.(string); !ok {
		return false
	}
	_, ok = rawLatex.(string)
	return ok
}

// ValidateMathSVGFilenames checks that every math tag in the fragment
// references an SVG asset that actually exists for the given entity.
// Tags whose payload names no filename, or names one the asset store
// does not have under image/, are returned serialized. Payloads that
// are missing or fail to decode count as invalid rather than stopping
// the scan.
func ValidateMathSVGFilenames(entityType, entityID, raw string, assets component.AssetChecker) []string {
	root, err := fragment.Parse(raw)
	if err != nil {
		return nil
	}
	var invalid []string
	for _, tag := range fragment.FindAll(root, component.TagMath) {
		filename, ok := mathSVGFilename(tag)
		if !ok || filename == "" {
			invalid = append(invalid, fragment.SerializeNode(tag))
			continue
		}
		if !assets.IsFile(entityType, entityID, "image/"+filename) {
			invalid = append(invalid, fragment.SerializeNode(tag))
		}
	}
	return invalid
}

func mathSVGFilename(tag *html.Node) (string, bool) {
	val, ok := fragment.Attr(tag, component.AttrMathContent)
	if !ok {
		return "", false
	}
	var content map[string]any
	if err := fragment.DecodePayload(val, &content); err != nil {
		return "", false
	}
	filename, ok := content["svg_filename"].(string)
	return filename, ok
}

// InvalidMathTag pairs a serialized math tag with the schema error its
// payload produced.
type InvalidMathTag struct {
	Tag   string `json:"invalid_tag"`
	Error string `json:"error"`
}

// ValidateMathContentAttributes runs the math component's full
// attribute schema over every math tag in the fragment and returns the
// tags that fail, each with the error describing the failure.
func ValidateMathContentAttributes(raw string) []InvalidMathTag {
	root, err := fragment.Parse(raw)
	if err != nil {
		return nil
	}
	spec, ok := component.Lookup(component.TagMath)
	if !ok {
		return nil
	}
	var invalid []InvalidMathTag
	for _, tag := range fragment.FindAll(root, component.TagMath) {
		val, ok := fragment.Attr(tag, component.AttrMathContent)
		if !ok {
			invalid = append(invalid, InvalidMathTag{
				Tag:   fragment.SerializeNode(tag),
				Error: "math tag has no math_content-with-value attribute",
			})
			continue
		}
		var content any
		if err := fragment.DecodePayload(val, &content); err != nil {
			invalid = append(invalid, InvalidMathTag{
				Tag:   fragment.SerializeNode(tag),
				Error: err.Error(),
			})
			continue
		}
		if err := spec.Validate(map[string]any{component.AttrMathContent: content}); err != nil {
			invalid = append(invalid, InvalidMathTag{
				Tag:   fragment.SerializeNode(tag),
				Error: err.Error(),
			})
		}
	}
	return invalid
}
