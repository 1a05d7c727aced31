// Package migrate applies forward schema migrations and mechanical
// repairs to rich-text fragments.
//
// The approach mirrors the validator's recursion but rewrites instead
// of reporting:
//  1. Parse the fragment
//  2. Decode every collapsible content payload and every tabs entry,
//     run the same migration on the nested fragment, re-encode
//  3. Apply the transform to the top-level tree
//  4. Reserialize, restoring the legacy <br> form
//
// Transforms built on that mechanism:
//   - RepairEncoding: applies the ordered character repair table to
//     content damaged by a cp-1252/UTF-8 double encode
//   - MigrateMathComponents: moves legacy raw_latex math tags to the
//     math_content schema, deleting structurally broken tags
//   - ConvertSvgDiagramsToImages: renames svgdiagram tags to image
//     tags, carrying the filename into filepath
//
// StripDisallowedSVGContent covers the separate SVG asset surface,
// removing everything the allowlist rejects.
//
// Repair chains the transforms over a batch of fragments doctor-style:
// validate, fix, revalidate, with a Fix record per applied change.
// Migrations run in controlled batch contexts, so a payload that fails
// to decode aborts the whole call instead of being skipped per tag.
package migrate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
)

// ErrMalformedPayload marks a component attribute payload that could
// not be decoded or did not have the shape its schema requires. Any
// transform that hits one fails the whole call with an error wrapping
// this sentinel.
var ErrMalformedPayload = errors.New("malformed component payload")

// TransformFunc rewrites one fragment tree in place. Apply calls it
// once per nesting level: once for each decoded collapsible content,
// once for each decoded tab entry, and once for the top-level tree.
type TransformFunc func(root *html.Node) error

// Apply parses a fragment, runs fn at every nesting level, and returns
// the reserialized result. Nested content inside collapsible and tabs
// payloads is decoded, transformed through a recursive Apply, and
// re-encoded before the top-level pass runs, so fn never has to know
// about payload encoding.
func Apply(raw string, fn TransformFunc) (string, error) {
	root, err := fragment.Parse(raw)
	if err != nil {
		return "", err
	}

	for _, col := range fragment.FindAll(root, component.TagCollapsible) {
		val, ok := fragment.Attr(col, component.AttrCollapsibleContent)
		if !ok {
			// Collapsibles without a content attribute are left for the
			// validator to flag.
			continue
		}
		var content string
		if err := fragment.DecodePayload(val, &content); err != nil {
			return "", fmt.Errorf("%w: collapsible content: %v", ErrMalformedPayload, err)
		}
		transformed, err := Apply(content, fn)
		if err != nil {
			return "", err
		}
		encoded, err := fragment.EncodePayload(transformed)
		if err != nil {
			return "", err
		}
		fragment.SetAttr(col, component.AttrCollapsibleContent, encoded)
	}

	for _, tabs := range fragment.FindAll(root, component.TagTabs) {
		val, ok := fragment.Attr(tabs, component.AttrTabContents)
		if !ok {
			return "", fmt.Errorf("%w: tabs tag missing %s", ErrMalformedPayload, component.AttrTabContents)
		}
		var entries []map[string]any
		if err := fragment.DecodePayload(val, &entries); err != nil {
			return "", fmt.Errorf("%w: tab contents: %v", ErrMalformedPayload, err)
		}
		for _, entry := range entries {
			content, ok := entry["content"].(string)
			if !ok {
				return "", fmt.Errorf("%w: tab entry without a content string", ErrMalformedPayload)
			}
			transformed, err := Apply(content, fn)
			if err != nil {
				return "", err
			}
			entry["content"] = transformed
		}
		encoded, err := fragment.EncodePayload(entries)
		if err != nil {
			return "", err
		}
		fragment.SetAttr(tabs, component.AttrTabContents, encoded)
	}

	if err := fn(root); err != nil {
		return "", err
	}
	return fragment.SerializeLegacy(root), nil
}

// MigrateMathComponents moves every legacy math tag to the
// math_content schema. Per tag:
//
//   - raw_latex present but empty: the tag is deleted
//   - raw_latex present with content: the payload is decoded, combined
//     with any svg_filename payload into a math_content value, and the
//     legacy attributes are removed
//   - math_content already present: left untouched
//   - neither attribute: the tag is unrecoverable legacy data and is
//     deleted outright
//
// A payload that fails to decode is logged and fails the whole call.
func MigrateMathComponents(raw string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Apply(raw, func(root *html.Node) error {
		for _, tag := range fragment.FindAll(root, component.TagMath) {
			switch {
			case fragment.HasAttr(tag, component.AttrRawLatex):
				if err := migrateLegacyMathTag(tag, logger); err != nil {
					return err
				}
			case fragment.HasAttr(tag, component.AttrMathContent):
				// Already on the new schema.
			default:
				fragment.Detach(tag)
			}
		}
		return nil
	})
}

func migrateLegacyMathTag(tag *html.Node, logger *zap.Logger) error {
	val, _ := fragment.Attr(tag, component.AttrRawLatex)
	if val == "" {
		// Empty legacy values shipped in old production snapshots and
		// carry nothing worth keeping.
		fragment.Detach(tag)
		return nil
	}

	var decoded any
	if err := fragment.DecodePayload(val, &decoded); err != nil {
		logger.Error("invalid raw_latex string found in math tag", zap.Error(err))
		return fmt.Errorf("%w: raw_latex: %v", ErrMalformedPayload, err)
	}
	rawLatex, ok := decoded.(string)
	if !ok {
		err := fmt.Errorf("Expected unicode string, received %v", decoded)
		logger.Error("invalid raw_latex string found in math tag", zap.Error(err))
		return fmt.Errorf("%w: raw_latex: %v", ErrMalformedPayload, err)
	}

	svgFilename := ""
	if enc, ok := fragment.Attr(tag, component.AttrSvgFilename); ok {
		var decoded any
		if err := fragment.DecodePayload(enc, &decoded); err != nil {
			return fmt.Errorf("%w: svg_filename: %v", ErrMalformedPayload, err)
		}
		s, ok := decoded.(string)
		if !ok {
			return fmt.Errorf("%w: svg_filename: Expected unicode string, received %v", ErrMalformedPayload, decoded)
		}
		svgFilename = s
		fragment.RemoveAttr(tag, component.AttrSvgFilename)
	}

	content := map[string]any{
		"raw_latex":    rawLatex,
		"svg_filename": svgFilename,
	}
	if err := component.MathContent(content); err != nil {
		return fmt.Errorf("%w: math_content: %v", ErrMalformedPayload, err)
	}
	encoded, err := fragment.EncodePayload(content)
	if err != nil {
		return err
	}
	fragment.SetAttr(tag, component.AttrMathContent, encoded)
	fragment.RemoveAttr(tag, component.AttrRawLatex)
	return nil
}

// ConvertSvgDiagramsToImages renames every svgdiagram tag to an image
// tag. The svg_filename payload moves to filepath unchanged, an empty
// caption payload is synthesized, and the alt payload is carried as
// is.
func ConvertSvgDiagramsToImages(raw string) (string, error) {
	return Apply(raw, convertSvgDiagramTags)
}

func convertSvgDiagramTags(root *html.Node) error {
	for _, tag := range fragment.FindAll(root, component.TagSvgdiagram) {
		filename, ok := fragment.Attr(tag, component.AttrSvgFilename)
		if !ok {
			return fmt.Errorf("%w: svgdiagram tag missing %s", ErrMalformedPayload, component.AttrSvgFilename)
		}
		fragment.RemoveAttr(tag, component.AttrSvgFilename)
		fragment.SetAttr(tag, component.AttrImageFilepath, filename)
		caption, err := fragment.EncodePayload("")
		if err != nil {
			return err
		}
		fragment.SetAttr(tag, component.AttrImageCaption, caption)
		tag.Data = component.TagImage
		tag.DataAtom = 0
	}
	return nil
}

// ExtractMathSVGFilenames returns the SVG filenames referenced by
// math_content payloads in the fragment, in document order. Legacy
// tags, undecodable payloads and empty filenames contribute nothing;
// the validators report those separately.
func ExtractMathSVGFilenames(raw string) []string {
	root, err := fragment.Parse(raw)
	if err != nil {
		return nil
	}
	var filenames []string
	for _, tag := range fragment.FindAll(root, component.TagMath) {
		val, ok := fragment.Attr(tag, component.AttrMathContent)
		if !ok {
			continue
		}
		var content map[string]any
		if err := fragment.DecodePayload(val, &content); err != nil {
			continue
		}
		if name, ok := content["svg_filename"].(string); ok && name != "" {
			filenames = append(filenames, name)
		}
	}
	return filenames
}

// ContainsSvgDiagram reports whether the fragment still carries any
// svgdiagram tags, i.e. whether ConvertSvgDiagramsToImages has work to
// do.
func ContainsSvgDiagram(raw string) bool {
	root, err := fragment.Parse(raw)
	if err != nil {
		return false
	}
	return len(fragment.FindAll(root, component.TagSvgdiagram)) > 0
}
