package view

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const homePage = `<!DOCTYPE html>
<html>
<head><title> Home </title></head>
<body>
  <nav><a href="/about">About</a></nav>
  <main router-view="home"><h1>Welcome</h1></main>
</body>
</html>`

func TestToDocumentParsesMarkup(t *testing.T) {
	acc := NewAccessor(nil)
	doc := acc.ToDocument(Markup(homePage))

	if doc == nil || doc.Root == nil {
		t.Fatal("ToDocument returned no document")
	}
	if doc.Root.Type != html.DocumentNode {
		t.Errorf("Root.Type = %v, want DocumentNode", doc.Root.Type)
	}
	if got := doc.Title(); got != "Home" {
		t.Errorf("Title() = %q, want %q", got, "Home")
	}
}

func TestToDocumentIsIdempotent(t *testing.T) {
	acc := NewAccessor(nil)
	doc := acc.ToDocument(Markup(homePage))

	again := acc.ToDocument(doc)
	if again != doc {
		t.Error("ToDocument(doc) should return the same document")
	}
	if again.Root != doc.Root {
		t.Error("ToDocument(doc) should not rebuild the tree")
	}
}

func TestToDocumentNil(t *testing.T) {
	acc := NewAccessor(nil)
	if doc := acc.ToDocument(nil); doc != nil {
		t.Errorf("ToDocument(nil) = %v, want nil", doc)
	}
}

func TestToDocumentZeroAccessor(t *testing.T) {
	tests := []struct {
		name string
		acc  *Accessor
	}{
		{"zero value", &Accessor{}},
		{"nil pointer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.acc.ToDocument(Markup(homePage))
			v, ok := Load(doc)
			if !ok || v.Slug != "home" {
				t.Errorf("Load(ToDocument) = %+v, %v; want slug home", v, ok)
			}
		})
	}
}

func TestFromNode(t *testing.T) {
	root, err := html.Parse(strings.NewReader(homePage))
	if err != nil {
		t.Fatal(err)
	}

	doc := NewAccessor(nil).ToDocument(FromNode(root))
	if doc.Root != root {
		t.Error("FromNode document should keep the caller's tree")
	}
	if _, ok := FindView(doc); !ok {
		t.Error("expected view in pre-parsed document")
	}
}

func TestDefaultParserIsShared(t *testing.T) {
	if DefaultParser() != DefaultParser() {
		t.Error("DefaultParser should return the same instance")
	}
	acc := NewAccessor(nil)
	if acc.parser != DefaultParser() {
		t.Error("NewAccessor(nil) should use DefaultParser")
	}

	custom := NewParser()
	if NewAccessor(custom).parser != custom {
		t.Error("NewAccessor should keep the injected parser")
	}
}

func TestFindView(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		wantOK   bool
		wantSlug string
	}{
		{
			name:     "single view",
			markup:   homePage,
			wantOK:   true,
			wantSlug: "home",
		},
		{
			name:   "no view",
			markup: `<html><body><main id="app">x</main></body></html>`,
			wantOK: false,
		},
		{
			name:     "first in document order wins",
			markup:   `<div router-view="outer"><section router-view="inner"></section></div><p router-view="later"></p>`,
			wantOK:   true,
			wantSlug: "outer",
		},
		{
			name:     "tag name does not matter",
			markup:   `<article router-view="post">x</article>`,
			wantOK:   true,
			wantSlug: "post",
		},
		{
			name:     "attribute name is case insensitive in markup",
			markup:   `<div ROUTER-VIEW="upper"></div>`,
			wantOK:   true,
			wantSlug: "upper",
		},
		{
			name:     "empty slug",
			markup:   `<div router-view></div>`,
			wantOK:   true,
			wantSlug: "",
		},
		{
			name:   "fragment without structure",
			markup: `just text`,
			wantOK: false,
		},
	}

	acc := NewAccessor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := acc.ToDocument(Markup(tt.markup))
			node, ok := FindView(doc)
			if ok != tt.wantOK {
				t.Fatalf("FindView ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if node != nil {
					t.Errorf("FindView node = %v, want nil", node)
				}
				return
			}
			slug, hasSlug := ReadSlug(node)
			if !hasSlug {
				t.Fatal("ReadSlug reported no attribute on the view node")
			}
			if slug != tt.wantSlug {
				t.Errorf("ReadSlug = %q, want %q", slug, tt.wantSlug)
			}
		})
	}
}

func TestFindViewNilDocument(t *testing.T) {
	if _, ok := FindView(nil); ok {
		t.Error("FindView(nil) should report absent")
	}
	if _, ok := FindView(&Document{}); ok {
		t.Error("FindView on an empty document should report absent")
	}
}

func TestReadSlugWithoutAttribute(t *testing.T) {
	node := &html.Node{Type: html.ElementNode, Data: "div"}
	if slug, ok := ReadSlug(node); ok || slug != "" {
		t.Errorf("ReadSlug = %q, %v; want absent", slug, ok)
	}
	if _, ok := ReadSlug(nil); ok {
		t.Error("ReadSlug(nil) should report absent")
	}
}

func TestLoad(t *testing.T) {
	doc := NewAccessor(nil).ToDocument(Markup(homePage))

	v, ok := Load(doc)
	if !ok {
		t.Fatal("Load should find the view")
	}
	if v.Slug != "home" {
		t.Errorf("Slug = %q, want %q", v.Slug, "home")
	}
	if v.Title != "Home" {
		t.Errorf("Title = %q, want %q", v.Title, "Home")
	}
	if v.Node == nil || v.Node.Data != "main" {
		t.Errorf("Node = %v, want <main>", v.Node)
	}

	if _, ok := Load(NewAccessor(nil).ToDocument(Markup("<p>none</p>"))); ok {
		t.Error("Load should report absent without a view node")
	}
}

func TestLoadEmptySlug(t *testing.T) {
	v, ok := Load(NewAccessor(nil).ToDocument(Markup(`<section router-view="">x</section>`)))
	if !ok {
		t.Fatal("Load should find a view whose slug is empty")
	}
	if v.Slug != "" || v.Node.Data != "section" {
		t.Errorf("View = {Slug: %q, Node: %s}, want empty slug on <section>", v.Slug, v.Node.Data)
	}
}
