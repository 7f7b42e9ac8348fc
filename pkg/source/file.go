package source

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/urlparts"
)

// File serves pages from a directory, mapping a URL's pathname to a file.
// file:// URLs are resolved against the directory too.
// "/" and paths ending in "/" map to index.html, and paths without an
// extension get ".html" appended.
type File struct {
	root string
}

// NewFile creates a File source rooted at dir.
func NewFile(dir string) *File {
	return &File{root: dir}
}

// Name implements Named.
func (f *File) Name() string { return "file" }

// Fetch implements Source.
func (f *File) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Join(f.root, filepath.FromSlash(pageKey(pagePath(url))))
	data, err := os.ReadFile(name)
	if err != nil {
		code := "E200"
		if os.IsNotExist(err) {
			code = "E202"
		}
		return "", errors.New(code).WithDetail("reading " + name).Wrap(err)
	}
	return string(data), nil
}

// pagePath returns the pathname of url. file:// URLs carry no host, so their
// path is everything after the scheme up to the query or anchor.
func pagePath(url string) string {
	if rest, ok := strings.CutPrefix(url, "file://"); ok {
		if i := strings.IndexAny(rest, "?#"); i >= 0 {
			rest = rest[:i]
		}
		return rest
	}
	p, _ := urlparts.Pathname(url)
	return p
}

// pageKey maps a pathname to a relative object key. Dot segments are
// resolved without escaping the root.
func pageKey(pathname string) string {
	dir := pathname == "" || strings.HasSuffix(pathname, "/")
	key := strings.TrimPrefix(path.Clean("/"+pathname), "/")
	switch {
	case key == "":
		return "index.html"
	case dir:
		return key + "/index.html"
	case path.Ext(key) == "":
		return key + ".html"
	default:
		return key
	}
}
