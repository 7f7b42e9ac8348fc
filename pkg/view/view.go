package view

import "golang.org/x/net/html"

// View is the swappable region of a page.
type View struct {
	// Node is the element carrying Attr.
	Node *html.Node

	// Slug is the value of Attr.
	Slug string

	// Title is the page title that accompanies the view.
	Title string
}

// Load finds the view node of doc and reads its slug and the page title.
func Load(doc *Document) (*View, bool) {
	node, ok := FindView(doc)
	if !ok {
		return nil, false
	}
	slug, _ := ReadSlug(node)
	return &View{
		Node:  node,
		Slug:  slug,
		Title: doc.Title(),
	}, true
}
