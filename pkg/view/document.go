package view

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is the attribute that marks a page's view node. Its value is the slug.
const Attr = "router-view"

// Page is content that can be turned into a Document: either Markup or an
// already built *Document.
type Page interface {
	document(p *Parser) *Document
}

// Markup is raw page markup.
type Markup string

func (m Markup) document(p *Parser) *Document {
	return p.Parse(string(m))
}

// Document is a parsed page.
type Document struct {
	Root *html.Node
}

func (d *Document) document(*Parser) *Document {
	return d
}

// FromNode wraps a tree the caller already parsed.
func FromNode(root *html.Node) *Document {
	return &Document{Root: root}
}

// Title returns the trimmed text of the document's <title>, or "".
func (d *Document) Title() string {
	if d == nil || d.Root == nil {
		return ""
	}
	n := findFirst(d.Root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Title
	})
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Accessor converts pages to documents with an injected Parser.
type Accessor struct {
	parser *Parser
}

// NewAccessor creates an Accessor. A nil parser selects DefaultParser.
func NewAccessor(parser *Parser) *Accessor {
	if parser == nil {
		parser = DefaultParser()
	}
	return &Accessor{parser: parser}
}

// ToDocument parses Markup and returns a *Document unchanged.
// A nil page yields a nil document. A zero Accessor uses DefaultParser.
func (a *Accessor) ToDocument(page Page) *Document {
	if page == nil {
		return nil
	}
	parser := DefaultParser()
	if a != nil && a.parser != nil {
		parser = a.parser
	}
	return page.document(parser)
}

// FindView returns the first node in document order that carries Attr.
func FindView(doc *Document) (*html.Node, bool) {
	if doc == nil || doc.Root == nil {
		return nil, false
	}
	n := findFirst(doc.Root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasAttr(n, Attr)
	})
	return n, n != nil
}

// ReadSlug returns the value of Attr on node. An attribute that is present
// but empty yields "", true.
func ReadSlug(node *html.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	return getAttr(node, Attr)
}

// findFirst walks the tree depth-first in document order.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := getAttr(n, key)
	return ok
}
