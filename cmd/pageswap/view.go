package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/resolve"
	"github.com/vango-dev/pageswap/pkg/view"
)

func viewCmd(opts *globalOptions) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "view <file|url>",
		Short: "Show the view a page declares",
		Long: `Parse a page and show the first element carrying router-view.

The argument is a local file, or a URL fetched the same way resolve
fetches pages.

Examples:
  pageswap view public/index.html
  pageswap view --render https://example.com/about`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readPage(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			return runView(cmd.OutOrStdout(), args[0], markup, render)
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Print the view element's markup")

	return cmd
}

func readPage(ctx context.Context, opts *globalOptions, target string) (string, error) {
	if !strings.Contains(target, "://") {
		data, err := os.ReadFile(target)
		if err != nil {
			return "", errors.New("E200").WithDetail("reading " + target).Wrap(err)
		}
		return string(data), nil
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return "", err
	}
	return newSource(cfg, opts.root).Fetch(ctx, target)
}

func runView(w io.Writer, target, markup string, render bool) error {
	doc := view.NewAccessor(nil).ToDocument(view.Markup(markup))
	v, ok := view.Load(doc)
	if !ok {
		return errors.New("E300").
			WithDetail("No element with " + view.Attr + " in " + target).
			WithSuggestion(`Mark the swappable region with ` + view.Attr + `="slug"`)
	}

	fmt.Fprintf(w, "Slug:  %s\n", v.Slug)
	if v.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", v.Title)
	}
	if render {
		fmt.Fprintln(w)
		if err := resolve.DefaultRenderer.Render(w, v); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
