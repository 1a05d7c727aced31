package validate

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/openlessons/rteverify/pkg/component"
	"github.com/openlessons/rteverify/pkg/fragment"
	"github.com/openlessons/rteverify/pkg/report"
)

// ValidateComponentAttributes checks the customization arguments of
// every component tag in a list of fragments. The returned buckets map
// each distinct error message to the original fragments containing a
// tag that produced it.
//
// Collapsible content and tabs entries are re-parsed and scanned for
// simple component tags, so a broken component buried inside a
// composite payload is still reported against the outer fragment. A
// payload that fails to decode contributes a decode-failure message
// instead of aborting the pass.
func ValidateComponentAttributes(htmls []string) *report.Buckets {
	b := report.NewBuckets()
	for _, raw := range htmls {
		root, err := fragment.Parse(raw)
		if err != nil {
			continue
		}
		for _, name := range component.TagNames() {
			for _, tag := range fragment.FindAll(root, name) {
				for _, msg := range componentTagErrors(tag) {
					if msg != "" {
						b.Add(msg, raw)
					}
				}
			}
		}
	}
	return b
}

// componentTagErrors validates one component tag and returns its error
// messages. For composite components the embedded fragments are
// scanned for simple component tags, whose errors are folded in.
func componentTagErrors(tag *html.Node) []string {
	spec, ok := component.Lookup(tag.Data)
	if !ok {
		return nil
	}

	values := make(map[string]any, len(tag.Attr))
	for _, a := range tag.Attr {
		var v any
		if err := fragment.DecodePayload(a.Val, &v); err != nil {
			return []string{fmt.Sprintf(
				"Invalid attribute payload for %s %s: %v", tag.Data, a.Key, err)}
		}
		values[a.Key] = v
	}

	if err := spec.Validate(values); err != nil {
		return []string{err.Error()}
	}

	// The schema passed, so composite payloads are known to have the
	// right shape and can be descended into.
	var msgs []string
	switch tag.Data {
	case component.TagCollapsible:
		content, ok := values[component.AttrCollapsibleContent].(string)
		if !ok {
			return msgs
		}
		msgs = append(msgs, nestedComponentErrors(content)...)
	case component.TagTabs:
		entries, ok := values[component.AttrTabContents].([]any)
		if !ok {
			return msgs
		}
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			content, ok := entry["content"].(string)
			if !ok {
				continue
			}
			msgs = append(msgs, nestedComponentErrors(content)...)
		}
	}
	return msgs
}

// nestedComponentErrors re-parses an embedded fragment and validates
// the simple component tags it contains.
func nestedComponentErrors(content string) []string {
	inner, err := fragment.Parse(content)
	if err != nil {
		return nil
	}
	var msgs []string
	for _, name := range component.SimpleTagNames() {
		for _, nested := range fragment.FindAll(inner, name) {
			msgs = append(msgs, componentTagErrors(nested)...)
		}
	}
	return msgs
}
