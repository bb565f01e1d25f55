package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// Matcher selects HTML nodes.
type Matcher func(*html.Node) bool

// Tag matches elements with any of the given names.
func Tag(names ...string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, name := range names {
			if n.Data == name {
				return true
			}
		}
		return false
	}
}

// ID matches the element with the given id.
func ID(id string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	}
}

// Class matches elements whose class list contains class.
func Class(class string) Matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(Attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// ClassContains matches elements whose class attribute contains sub.
func ClassContains(sub string) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && strings.Contains(Attr(n, "class"), sub)
	}
}

// All matches nodes satisfying every matcher.
func All(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// TextMatches matches elements whose collapsed text satisfies pred.
func TextMatches(pred func(string) bool) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && pred(Text(n))
	}
}

// Find returns the first descendant of n matching m in document order.
func Find(n *html.Node, m Matcher) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m(c) {
			return c
		}
		if found := Find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n matching m in document order.
func FindAll(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// FindNext returns the first node after n in document order matching m.
// The search covers n's own descendants and then everything that follows.
func FindNext(n *html.Node, m Matcher) *html.Node {
	for cur := following(n); cur != nil; cur = following(cur) {
		if m(cur) {
			return cur
		}
	}
	return nil
}

// FindString returns the first text node under n whose data satisfies pred.
func FindString(n *html.Node, pred func(string) bool) *html.Node {
	return Find(n, func(c *html.Node) bool {
		return c.Type == html.TextNode && pred(c.Data)
	})
}

// NextElement returns the next sibling element of n.
func NextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func following(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// Attr returns the value of key on n, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Text returns the text content of n with runs of whitespace collapsed to
// single spaces.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return CollapseSpace(n.Data)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				sb.WriteString(c.Data)
				sb.WriteByte(' ')
			case c.Type == html.ElementNode && (c.Data == "script" || c.Data == "style"):
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return CollapseSpace(sb.String())
}

// CollapseSpace trims s and replaces whitespace runs with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
