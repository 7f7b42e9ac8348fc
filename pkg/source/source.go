// Package source fetches page markup for navigation.
//
// A Source is chosen per URL: pages can come from an HTTP server, a local
// directory, or an S3 bucket that holds a statically exported site.
package source

import (
	"context"
	"strings"

	"github.com/vango-dev/pageswap/internal/errors"
)

// Source returns the markup of the page addressed by url.
type Source interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Named is implemented by sources that report a name for metrics labels.
type Named interface {
	Name() string
}

// Name returns the source's name, or "custom".
func Name(s Source) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "custom"
}

// Mux dispatches to a Source by URL scheme.
type Mux struct {
	sources map[string]Source
}

// NewMux creates an empty Mux.
func NewMux() *Mux {
	return &Mux{sources: make(map[string]Source)}
}

// Handle registers s for scheme (e.g. "https", "file").
func (m *Mux) Handle(scheme string, s Source) *Mux {
	m.sources[strings.ToLower(scheme)] = s
	return m
}

// Name implements Named.
func (m *Mux) Name() string { return "mux" }

// Fetch implements Source.
func (m *Mux) Fetch(ctx context.Context, url string) (string, error) {
	s, ok := m.lookup(url)
	if !ok {
		return "", errors.New("E201").
			WithDetail("No source handles " + url).
			WithSuggestion("Use an http(s):// or file:// URL")
	}
	return s.Fetch(ctx, url)
}

// SourceFor returns the Source that would serve url.
func (m *Mux) SourceFor(url string) (Source, bool) {
	return m.lookup(url)
}

func (m *Mux) lookup(url string) (Source, bool) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return nil, false
	}
	s, ok := m.sources[strings.ToLower(scheme)]
	return s, ok
}
