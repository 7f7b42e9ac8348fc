package view

import (
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Parser builds documents from markup.
//
// A Parser holds only the options it was constructed with, so one instance
// can be shared by every caller for the life of the process.
type Parser struct {
	opts []html.ParseOption
}

// NewParser creates a parser with the given html parse options.
func NewParser(opts ...html.ParseOption) *Parser {
	return &Parser{opts: append([]html.ParseOption(nil), opts...)}
}

var (
	defaultParser     *Parser
	defaultParserOnce sync.Once
)

// DefaultParser returns the shared parser, creating it on first use.
// Scripting is disabled so <noscript> content is parsed as markup.
func DefaultParser() *Parser {
	defaultParserOnce.Do(func() {
		defaultParser = NewParser(html.ParseOptionEnableScripting(false))
	})
	return defaultParser
}

// Parse builds a document from markup. The html parser recovers from any
// malformed input, so Parse always returns a document.
func (p *Parser) Parse(markup string) *Document {
	root, err := html.ParseWithOptions(strings.NewReader(markup), p.opts...)
	if err != nil {
		// Only reachable on reader failure, which strings.Reader never reports.
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{Root: root}
}
