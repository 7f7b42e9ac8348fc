package resolve

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/pageswap/pkg/view"
)

// Named is implemented by capabilities that report a stable name.
type Named interface {
	Name() string
}

// Name returns the name of a renderer or transition. Capabilities that do not
// implement Named are described by their Go type.
func Name(capability any) string {
	if capability == nil {
		return ""
	}
	if n, ok := capability.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", capability)
}

// DefaultRenderer writes the view element itself, including its attributes.
var DefaultRenderer Renderer = outerRenderer{}

// ContentRenderer writes the children of the view element only, for callers
// that keep the element in place and replace its content.
var ContentRenderer Renderer = innerRenderer{}

type outerRenderer struct{}

func (outerRenderer) Name() string { return "default" }

func (outerRenderer) Render(w io.Writer, v *view.View) error {
	if v == nil || v.Node == nil {
		return nil
	}
	return html.Render(w, v.Node)
}

type innerRenderer struct{}

func (innerRenderer) Name() string { return "content" }

func (innerRenderer) Render(w io.Writer, v *view.View) error {
	if v == nil || v.Node == nil {
		return nil
	}
	for c := v.Node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// ClassTransition marks the outgoing view with Leave and the incoming view
// with Enter as CSS classes. The client animates on those classes.
type ClassTransition struct {
	Label string
	Leave string
	Enter string
}

// Name implements Named.
func (t *ClassTransition) Name() string { return t.Label }

// Out implements Transition.
func (t *ClassTransition) Out(ctx context.Context, from *view.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if from != nil {
		addClass(from.Node, t.Leave)
	}
	return nil
}

// In implements Transition.
func (t *ClassTransition) In(ctx context.Context, from, to *view.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to != nil {
		addClass(to.Node, t.Enter)
	}
	return nil
}

// addClass appends class to the node's class attribute unless already set.
func addClass(n *html.Node, class string) {
	if n == nil || class == "" {
		return
	}
	for i, a := range n.Attr {
		if a.Namespace != "" || a.Key != "class" {
			continue
		}
		for _, existing := range strings.Fields(a.Val) {
			if existing == class {
				return
			}
		}
		n.Attr[i].Val = strings.TrimSpace(a.Val + " " + class)
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}

// Catalog names the capabilities that configuration can refer to.
type Catalog struct {
	renderers   map[string]Renderer
	transitions map[string]Transition
}

// NewCatalog returns a catalog holding the built-in capabilities:
// renderers "default" and "content", transitions "fade" and "slide".
func NewCatalog() *Catalog {
	c := &Catalog{
		renderers:   make(map[string]Renderer),
		transitions: make(map[string]Transition),
	}
	c.AddRenderer("default", DefaultRenderer)
	c.AddRenderer("content", ContentRenderer)
	c.AddTransition("fade", &ClassTransition{Label: "fade", Leave: "fade-leave", Enter: "fade-enter"})
	c.AddTransition("slide", &ClassTransition{Label: "slide", Leave: "slide-leave", Enter: "slide-enter"})
	return c
}

// AddRenderer registers r under name, replacing any previous entry.
func (c *Catalog) AddRenderer(name string, r Renderer) {
	c.renderers[name] = r
}

// AddTransition registers t under name, replacing any previous entry.
func (c *Catalog) AddTransition(name string, t Transition) {
	c.transitions[name] = t
}

// Renderer returns the renderer registered under name.
func (c *Catalog) Renderer(name string) (Renderer, bool) {
	r, ok := c.renderers[name]
	return r, ok
}

// Transition returns the transition registered under name.
func (c *Catalog) Transition(name string) (Transition, bool) {
	t, ok := c.transitions[name]
	return t, ok
}

// RendererNames returns the registered renderer names, sorted.
func (c *Catalog) RendererNames() []string {
	return sortedKeys(c.renderers)
}

// TransitionNames returns the registered transition names, sorted.
func (c *Catalog) TransitionNames() []string {
	return sortedKeys(c.transitions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
