package validate

import (
	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
	"github.com/openlessons/rteverify/pkg/report"
)

// CheckGrammar walks a parsed fragment and records every grammar
// violation in b. Tags outside the format's allowlist go under
// report.KeyInvalidTags; an allowed tag sitting under a parent the
// grammar forbids gets the parent's name recorded in a bucket keyed by
// the tag itself. Text directly under the fragment root is a violation
// with no bucket entry of its own. Returns true if anything was found.
func CheckGrammar(root *html.Node, g *component.Grammar, b *report.Buckets) bool {
	invalid := false

	// Fragment content must live inside an element. Bare text at the
	// top level has nowhere legal to be.
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			invalid = true
		}
	}

	for _, tag := range fragment.Elements(root) {
		allowed := g.AllowedTags[tag.Data]
		if !allowed {
			b.Add(report.KeyInvalidTags, tag.Data)
			invalid = true
		}

		parent := component.DocumentParent
		if tag.Parent != nil && tag.Parent != root {
			parent = tag.Parent.Data
		}
		if allowed && !g.ParentAllowed(tag.Data, parent) {
			b.Add(tag.Data, parent)
			invalid = true
		}
	}
	return invalid
}

// ValidateRTEFormat checks a list of fragments against one format's
// grammar. Collapsible content and each tabs entry hold embedded
// fragments of their own, so both are decoded and walked with the same
// grammar. Any fragment that fails anywhere, including inside a
// payload, is collected under report.KeyStrings; the remaining buckets
// aggregate offending tag names and parent pairings across the list.
//
// Malformed payloads never abort the pass. A collapsible with a
// missing, empty or undecodable content payload and a tabs tag whose
// payload does not decode to the expected list both mark the fragment
// invalid and the walk moves on.
func ValidateRTEFormat(htmls []string, format component.Format) (*report.Buckets, error) {
	g, err := component.GrammarFor(format)
	if err != nil {
		return nil, err
	}

	b := report.NewBuckets()
	b.Ensure(report.KeyStrings)

	for _, raw := range htmls {
		root, err := fragment.Parse(raw)
		if err != nil {
			b.Add(report.KeyStrings, raw)
			continue
		}

		if CheckGrammar(root, g, b) {
			b.Add(report.KeyStrings, raw)
		}

		for _, col := range fragment.FindAll(root, component.TagCollapsible) {
			if collapsibleContentInvalid(col, g, b) {
				b.Add(report.KeyStrings, raw)
			}
		}

		for _, tabs := range fragment.FindAll(root, component.TagTabs) {
			val, ok := fragment.Attr(tabs, component.AttrTabContents)
			if !ok {
				b.Add(report.KeyStrings, raw)
				continue
			}
			var entries []map[string]any
			if err := fragment.DecodePayload(val, &entries); err != nil {
				b.Add(report.KeyStrings, raw)
				continue
			}
			for _, entry := range entries {
				content, ok := entry["content"].(string)
				if !ok {
					b.Add(report.KeyStrings, raw)
					continue
				}
				inner, err := fragment.Parse(content)
				if err != nil {
					b.Add(report.KeyStrings, raw)
					continue
				}
				if CheckGrammar(inner, g, b) {
					b.Add(report.KeyStrings, raw)
				}
			}
		}
	}
	return b, nil
}

// collapsibleContentInvalid validates the embedded fragment inside one
// collapsible tag. Missing and empty payloads count as invalid.
func collapsibleContentInvalid(col *html.Node, g *component.Grammar, b *report.Buckets) bool {
	val, ok := fragment.Attr(col, component.AttrCollapsibleContent)
	if !ok || val == "" {
		return true
	}
	var content string
	if err := fragment.DecodePayload(val, &content); err != nil {
		return true
	}
	inner, err := fragment.Parse(content)
	if err != nil {
		return true
	}
	return CheckGrammar(inner, g, b)
}
