package resolve

import (
	"context"
	"io"

	"github.com/vango-dev/pageswap/pkg/view"
)

// DefaultKey is the transitions entry used when a slug has no entry of its own.
const DefaultKey = "default"

// Renderer produces the content of an incoming view.
type Renderer interface {
	Render(w io.Writer, v *view.View) error
}

// Transition animates between the outgoing and the incoming view.
type Transition interface {
	// Out runs before the incoming view is rendered.
	Out(ctx context.Context, from *view.View) error

	// In runs after the incoming view is rendered. from may be nil on the
	// first navigation.
	In(ctx context.Context, from, to *view.View) error
}

// Renderers maps slugs to renderers.
type Renderers map[string]Renderer

// Transitions maps slugs to transitions. DefaultKey is reserved.
type Transitions map[string]Transition

// Outcome describes how a lookup was satisfied.
type Outcome string

const (
	// OutcomeMapped means the slug had its own entry.
	OutcomeMapped Outcome = "mapped"

	// OutcomeDefault means a fallback was used.
	OutcomeDefault Outcome = "default"

	// OutcomeNone means no transition applies.
	OutcomeNone Outcome = "none"
)

// ResolveRenderer returns the renderer for slug, or DefaultRenderer.
func ResolveRenderer(slug string, renderers Renderers) Renderer {
	r, _ := lookupRenderer(slug, renderers)
	return r
}

// ResolveTransition returns the transition for slug. The boolean is false
// when no transition applies.
func ResolveTransition(slug string, transitions Transitions) (Transition, bool) {
	t, outcome := lookupTransition(slug, transitions)
	return t, outcome != OutcomeNone
}

func lookupRenderer(slug string, renderers Renderers) (Renderer, Outcome) {
	if renderers == nil {
		return DefaultRenderer, OutcomeDefault
	}
	// A nil entry still falls back so that a renderer is always returned.
	if r, ok := renderers[slug]; ok && r != nil {
		return r, OutcomeMapped
	}
	return DefaultRenderer, OutcomeDefault
}

func lookupTransition(slug string, transitions Transitions) (Transition, Outcome) {
	if transitions == nil {
		return nil, OutcomeNone
	}
	t, ok := transitions[slug]
	if !ok {
		if d, ok := transitions[DefaultKey]; ok && d != nil {
			return d, OutcomeDefault
		}
		return nil, OutcomeNone
	}
	if t == nil {
		return nil, OutcomeNone
	}
	return t, OutcomeMapped
}
