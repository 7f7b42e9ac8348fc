package resolve

import (
	"log/slog"
)

// Observer is notified of every lookup made through a Registry.
type Observer interface {
	ObserveRenderer(slug string, outcome Outcome)
	ObserveTransition(slug string, outcome Outcome)
}

// Registry holds the renderer and transition mappings of an application.
// Either mapping may be nil.
type Registry struct {
	Renderers   Renderers
	Transitions Transitions

	// Observer, if set, receives lookup outcomes.
	Observer Observer

	// Logger receives debug output. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Renderer resolves the renderer for slug. It never returns nil.
func (r *Registry) Renderer(slug string) Renderer {
	renderer, outcome := lookupRenderer(slug, r.Renderers)
	r.logger().Debug("renderer resolved", "slug", slug, "outcome", outcome, "renderer", Name(renderer))
	if r.Observer != nil {
		r.Observer.ObserveRenderer(slug, outcome)
	}
	return renderer
}

// Transition resolves the transition for slug.
func (r *Registry) Transition(slug string) (Transition, bool) {
	transition, outcome := lookupTransition(slug, r.Transitions)
	r.logger().Debug("transition resolved", "slug", slug, "outcome", outcome)
	if r.Observer != nil {
		r.Observer.ObserveTransition(slug, outcome)
	}
	return transition, outcome != OutcomeNone
}

func (r *Registry) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
