// Package view turns fetched pages into documents and locates the view node
// that navigation swaps.
//
// A page marks its swappable region with the router-view attribute. The
// attribute value is the view's slug, which keys renderer and transition
// lookups:
//
//	<main router-view="home">...</main>
//
// Pages arrive either as raw markup or as a tree the caller already parsed:
//
//	acc := view.NewAccessor(nil) // uses the shared parser
//	doc := acc.ToDocument(view.Markup(body))
//	node, ok := view.FindView(doc)
//	if ok {
//	    slug, _ := view.ReadSlug(node)
//	}
//
// Lookups never fail. A missing view node or slug is reported through the
// boolean result and left to the caller to act on.
package view
