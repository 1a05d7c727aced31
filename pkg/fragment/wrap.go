package fragment

import "golang.org/x/net/html"

// independentParents are block tags that stand on their own during
// structural rewrites; they are never absorbed into a new wrapper.
var independentParents = map[string]bool{
	"h1": true, "p": true, "pre": true,
	"ol": true, "ul": true, "blockquote": true,
}

func isIndependentParent(n *html.Node) bool {
	return n.Type == html.ElementNode && independentParents[n.Data]
}

// WrapWithSiblings moves n into wrapper together with every contiguous
// sibling that cannot stand as a block on its own. Preceding siblings
// are absorbed back to (but not including) the nearest independent
// block, following siblings likewise forward; document order inside
// wrapper matches the original order. wrapper must be a detached
// element; it takes the absorbed run's place under n's parent.
func WrapWithSiblings(n, wrapper *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}

	start := n
	for prev := start.PrevSibling; prev != nil && !isIndependentParent(prev); prev = start.PrevSibling {
		start = prev
	}
	end := n
	for next := end.NextSibling; next != nil && !isIndependentParent(next); next = end.NextSibling {
		end = next
	}

	parent.InsertBefore(wrapper, start)
	for c := start; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		wrapper.AppendChild(c)
		if c == end {
			break
		}
		c = next
	}
}
