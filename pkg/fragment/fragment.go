// Package fragment parses and serializes rich-text HTML fragments.
//
// A fragment is a string of HTML with no surrounding document. Parse
// wraps it in a synthetic document and returns the body element as the
// fragment root; direct children of the root are the fragment's
// top-level nodes. Serialize is the inverse, rendering void elements
// self-closing (<br/>) the way the content pipeline stores them.
package fragment

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment and returns its root node.
// <br> is normalized to <br/> before parsing so that both forms of the
// legacy line break produce identical trees.
func Parse(s string) (*html.Node, error) {
	s = strings.ReplaceAll(s, "<br>", "<br/>")
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	if body := findBody(doc); body != nil {
		return body, nil
	}
	return doc, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// Serialize renders the fragment root's children back to a string.
func Serialize(root *html.Node) string {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		render(&buf, c)
	}
	return buf.String()
}

// SerializeLegacy renders like Serialize but restores the bare <br>
// form the persisted legacy format requires.
func SerializeLegacy(root *html.Node) string {
	return strings.ReplaceAll(Serialize(root), "<br/>", "<br>")
}

// SerializeNode renders a single node, including the node itself.
func SerializeNode(n *html.Node) string {
	var buf bytes.Buffer
	render(&buf, n)
	return buf.String()
}

// voidElements render self-closing and never hold children.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Wbr: true,
}

func render(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			if a.Namespace != "" {
				buf.WriteString(a.Namespace)
				buf.WriteByte(':')
			}
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		if voidElements[n.DataAtom] && n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			render(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			render(buf, c)
		}
	case html.CommentNode:
		// dropped on serialization
	case html.RawNode:
		buf.WriteString(n.Data)
	}
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces the named attribute, keeping its position
// when it already exists.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Walk visits n and every descendant in document order.
func Walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Elements returns every element node under root in document order,
// excluding root itself.
func Elements(root *html.Node) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, func(n *html.Node) {
			if n.Type == html.ElementNode {
				out = append(out, n)
			}
		})
	}
	return out
}

// FindAll returns every element named tag under root in document order.
func FindAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for _, n := range Elements(root) {
		if n.Data == tag {
			out = append(out, n)
		}
	}
	return out
}

// Detach removes n from its parent, leaving siblings untouched.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
