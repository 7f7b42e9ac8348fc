// Package urlparts splits navigation URLs into origin, pathname, anchor and
// query parameters.
//
// Every function is pure and total: a part that cannot be found is reported
// as absent, never as an error. Matching is pattern based and deliberately
// narrow. Hosts are ASCII word characters, hyphens and dots; query keys and
// values are not percent-decoded.
//
//	parts := urlparts.Decompose("https://example.com/blog/post?page=2#comments")
//	// parts.Origin   == "https://example.com"
//	// parts.Pathname == "/blog/post"
//	// parts.Anchor   == "#comments"
//	// parts.Params.Get("page") == "2", true
package urlparts

import (
	"regexp"
	"strings"
)

var (
	originPattern   = regexp.MustCompile(`^https?://[\w\-.]+`)
	pathnamePattern = regexp.MustCompile(`^https?://[^/?#]*(/[\w\-./]+)`)
	anchorPattern   = regexp.MustCompile(`(#.*)$`)
	queryPattern    = regexp.MustCompile(`\?([\w\-.=&]+)`)
)

// Parts is a decomposed URL.
//
// Present values are never empty, so an empty string (or nil Params) means
// the part was absent from the URL.
type Parts struct {
	Origin   string `json:"origin,omitempty"`
	Pathname string `json:"pathname,omitempty"`
	Anchor   string `json:"anchor,omitempty"`
	Params   Params `json:"params,omitempty"`
}

// Decompose computes all four parts of url independently.
func Decompose(url string) Parts {
	var p Parts
	p.Origin, _ = Origin(url)
	p.Pathname, _ = Pathname(url)
	p.Anchor, _ = Anchor(url)
	p.Params, _ = ParseParams(url)
	return p
}

// Origin returns the scheme and host the URL starts with.
func Origin(url string) (string, bool) {
	m := originPattern.FindString(url)
	return m, m != ""
}

// Pathname returns the path following the scheme and host, excluding the
// query string and anchor. A host followed directly by "?" or "#" has no
// pathname.
func Pathname(url string) (string, bool) {
	m := pathnamePattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Anchor returns everything from the first "#" to the end of the URL,
// including the "#".
func Anchor(url string) (string, bool) {
	m := anchorPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// RawQuery returns the query run following the first matching "?", without
// the "?".
func RawQuery(url string) (string, bool) {
	m := queryPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseParams returns the query parameters of url in first-occurrence order.
// A segment without "=" yields a key with no value. Repeated keys keep their
// first position and take the last value.
func ParseParams(url string) (Params, bool) {
	raw, ok := RawQuery(url)
	if !ok {
		return nil, false
	}

	segments := strings.Split(raw, "&")
	params := make(Params, 0, len(segments))
	index := make(map[string]int, len(segments))

	for _, segment := range segments {
		pieces := strings.Split(segment, "=")
		p := Param{Key: pieces[0]}
		if len(pieces) > 1 {
			p.Value = pieces[1]
			p.HasValue = true
		}

		if i, seen := index[p.Key]; seen {
			params[i] = p
			continue
		}
		index[p.Key] = len(params)
		params = append(params, p)
	}

	return params, true
}

// SameDocument reports whether a and b address the same document, differing
// at most in their anchors. Navigating between such URLs only scrolls.
func SameDocument(a, b string) bool {
	originA, okA := Origin(a)
	originB, okB := Origin(b)
	if !okA || !okB || originA != originB {
		return false
	}

	pathA, _ := Pathname(a)
	pathB, _ := Pathname(b)
	if normalizePath(pathA) != normalizePath(pathB) {
		return false
	}

	queryA, _ := RawQuery(a)
	queryB, _ := RawQuery(b)
	return queryA == queryB
}

// normalizePath treats a missing pathname as the root.
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
