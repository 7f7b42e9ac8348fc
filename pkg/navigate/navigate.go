// Package navigate runs a page navigation: it decomposes the target URL,
// fetches and parses the page, finds its view and resolves the renderer and
// transition that apply.
//
//	nav := navigate.New(navigate.Config{
//	    Source:   source.NewHTTP(10*time.Second, ""),
//	    Registry: reg,
//	})
//	next, err := nav.Navigate(ctx, "https://example.com/about")
//	if err != nil {
//	    return err
//	}
//	err = nav.Swap(ctx, current, next, w)
package navigate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/resolve"
	"github.com/vango-dev/pageswap/pkg/source"
	"github.com/vango-dev/pageswap/pkg/telemetry"
	"github.com/vango-dev/pageswap/pkg/urlparts"
	"github.com/vango-dev/pageswap/pkg/view"
)

// Config configures a Navigator.
type Config struct {
	// Source fetches pages for Navigate and Follow.
	Source source.Source

	// Accessor parses pages. If nil, an Accessor on the shared parser is used.
	Accessor *view.Accessor

	// Registry resolves renderers and transitions. If nil, an empty registry
	// is used: the default renderer and no transition.
	Registry *resolve.Registry

	// Metrics records navigation outcomes. Optional.
	Metrics *telemetry.Metrics

	// Tracer traces navigation stages. Optional.
	Tracer *telemetry.Tracer

	// Logger for debug/error messages. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Result is a resolved navigation.
type Result struct {
	URL      string
	Parts    urlparts.Parts
	Document *view.Document
	View     *view.View

	Renderer resolve.Renderer

	// Transition is nil when no transition applies.
	Transition resolve.Transition

	// AnchorOnly is true when the result reuses the previous document
	// because only the anchor changed.
	AnchorOnly bool
}

// Navigator resolves navigations.
type Navigator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Navigator.
func New(cfg Config) *Navigator {
	if cfg.Accessor == nil {
		cfg.Accessor = view.NewAccessor(nil)
	}
	if cfg.Registry == nil {
		cfg.Registry = &resolve.Registry{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Navigator{cfg: cfg, logger: cfg.Logger}
}

// Resolve resolves a page the caller already has. It fails with E300 when
// the page has no view node.
func (n *Navigator) Resolve(ctx context.Context, url string, page view.Page) (*Result, error) {
	_, span := n.cfg.Tracer.Start(ctx, "resolve", attribute.String("pageswap.url", url))

	res, err := n.resolve(url, page)
	if err != nil {
		n.cfg.Metrics.RecordNavigation(telemetry.StatusNoView)
	} else {
		n.cfg.Metrics.RecordNavigation(telemetry.StatusOK)
		span.SetAttributes(attribute.String("pageswap.slug", res.View.Slug))
	}
	telemetry.End(span, err)
	return res, err
}

func (n *Navigator) resolve(url string, page view.Page) (*Result, error) {
	start := time.Now()
	doc := n.cfg.Accessor.ToDocument(page)
	if _, ok := page.(view.Markup); ok {
		n.cfg.Metrics.ObserveParse(time.Since(start))
	}

	v, ok := view.Load(doc)
	if !ok {
		return nil, errors.New("E300").
			WithDetail("No element with " + view.Attr + " in " + url).
			WithSuggestion(`Mark the swappable region with ` + view.Attr + `="slug"`)
	}
	if v.Slug == "" {
		n.logger.Warn("view has an empty slug", "url", url)
	}

	res := &Result{
		URL:      url,
		Parts:    urlparts.Decompose(url),
		Document: doc,
		View:     v,
		Renderer: n.cfg.Registry.Renderer(v.Slug),
	}
	if t, ok := n.cfg.Registry.Transition(v.Slug); ok {
		res.Transition = t
	}

	n.logger.Debug("navigation resolved",
		"url", url,
		"slug", v.Slug,
		"renderer", resolve.Name(res.Renderer),
		"transition", resolve.Name(res.Transition),
	)
	return res, nil
}

// Navigate fetches url through the configured Source and resolves it.
func (n *Navigator) Navigate(ctx context.Context, url string) (*Result, error) {
	if n.cfg.Source == nil {
		return nil, errors.New("E201").WithDetail("navigator has no source")
	}

	fetchCtx, span := n.cfg.Tracer.Start(ctx, "fetch", attribute.String("pageswap.url", url))
	start := time.Now()
	markup, err := n.cfg.Source.Fetch(fetchCtx, url)
	n.cfg.Metrics.ObserveFetch(source.Name(n.cfg.Source), time.Since(start))
	telemetry.End(span, err)
	if err != nil {
		n.cfg.Metrics.RecordNavigation(telemetry.StatusFetchError)
		n.logger.Error("page fetch failed", "url", url, "error", err)
		return nil, err
	}

	return n.Resolve(ctx, url, view.Markup(markup))
}

// Follow navigates from the current result to url. When url only changes
// the anchor, the current document is reused without fetching.
func (n *Navigator) Follow(ctx context.Context, from *Result, url string) (*Result, error) {
	if from == nil || !urlparts.SameDocument(from.URL, url) {
		return n.Navigate(ctx, url)
	}

	n.cfg.Metrics.RecordNavigation(telemetry.StatusAnchor)
	n.logger.Debug("anchor navigation", "from", from.URL, "to", url)

	res := *from
	res.URL = url
	res.Parts = urlparts.Decompose(url)
	res.AnchorOnly = true
	return &res, nil
}

// Swap moves from one view to the next: the transition's Out runs on the
// outgoing view, the renderer writes the incoming view to w, and the
// transition's In runs last. Without a transition only the render happens.
// from may be nil on the first navigation.
func (n *Navigator) Swap(ctx context.Context, from, to *Result, w io.Writer) error {
	if to == nil || to.View == nil {
		return errors.New("E301").WithDetail("nothing to swap in")
	}
	if to.AnchorOnly {
		return nil
	}

	ctx, span := n.cfg.Tracer.Start(ctx, "swap", attribute.String("pageswap.slug", to.View.Slug))
	err := n.swap(ctx, from, to, w)
	telemetry.End(span, err)
	return err
}

func (n *Navigator) swap(ctx context.Context, from, to *Result, w io.Writer) error {
	var outgoing *view.View
	if from != nil {
		outgoing = from.View
	}

	if to.Transition != nil {
		if err := to.Transition.Out(ctx, outgoing); err != nil {
			return errors.New("E301").WithDetail("transition out").Wrap(err)
		}
	}
	renderer := to.Renderer
	if renderer == nil {
		renderer = resolve.DefaultRenderer
	}
	if err := renderer.Render(w, to.View); err != nil {
		return errors.New("E301").WithDetail("render " + to.View.Slug).Wrap(err)
	}
	if to.Transition != nil {
		if err := to.Transition.In(ctx, outgoing, to.View); err != nil {
			return errors.New("E301").WithDetail("transition in").Wrap(err)
		}
	}
	return nil
}
