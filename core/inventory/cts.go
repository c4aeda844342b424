package inventory

import (
	"github.com/mhartwick/ctskit/core/xml"
)

// CTSNamespace is the fixed namespace all inventory elements live in.
const CTSNamespace = "http://chs.harvard.edu/xmlns/cts3/ti"

// ctsChildren returns the direct child elements with the given local name in
// the CTS namespace, in document order.
func ctsChildren(n *xml.Node, local string) []*xml.Node {
	if n == nil {
		return nil
	}
	var out []*xml.Node
	for _, child := range n.Children() {
		if child.Name() == local && child.NamespaceURI() == CTSNamespace {
			out = append(out, child)
		}
	}
	return out
}

// ctsChild returns the first direct child element with the given local name
// in the CTS namespace, or nil.
func ctsChild(n *xml.Node, local string) *xml.Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children() {
		if child.Name() == local && child.NamespaceURI() == CTSNamespace {
			return child
		}
	}
	return nil
}
