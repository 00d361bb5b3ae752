package page

import (
	"strings"

	"golang.org/x/net/html"
)

// findByClass returns the first element under root carrying class as one of
// its class tokens, or nil.
func findByClass(root *html.Node, class string) *html.Node {
	var found *html.Node

	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = n

			return false
		}

		return true
	})

	return found
}

// collectByClass returns all elements under root carrying class as one of
// their class tokens, in document order.
func collectByClass(root *html.Node, class string) []*html.Node {
	var nodes []*html.Node

	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			nodes = append(nodes, n)
		}

		return true
	})

	return nodes
}

// findImgByAlt returns the first <img> under root whose alt attribute equals
// alt, or nil.
func findImgByAlt(root *html.Node, alt string) *html.Node {
	var found *html.Node

	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "img" && attr(n, "alt") == alt {
			found = n

			return false
		}

		return true
	})

	return found
}

// findElement returns the first element with the given tag name, or nil.
func findElement(root *html.Node, tag string) *html.Node {
	var found *html.Node

	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			found = n

			return false
		}

		return true
	})

	return found
}

// walk visits nodes depth-first. fn returning false stops the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}

	return true
}

func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}

	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func setAttr(n *html.Node, key, val string) {
	for idx, a := range n.Attr {
		if a.Key == key {
			n.Attr[idx].Val = val

			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// setText replaces all children of n with a single text node.
func setText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}

	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
