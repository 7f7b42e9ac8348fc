package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/pageswap/pkg/navigate"
	"github.com/vango-dev/pageswap/pkg/resolve"
)

func resolveCmd(opts *globalOptions) *cobra.Command {
	var (
		from string
		swap bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve the renderer and transition for a page",
		Long: `Fetch a page, find its view and report the renderer and transition
configured for the view's slug.

With --from, the navigation starts at another page: when only the anchor
differs, the page is not fetched again. With --swap, the transition and
renderer run and the rendered view is printed.

Examples:
  pageswap resolve https://example.com/about
  pageswap resolve --from https://example.com/ --swap https://example.com/blog
  pageswap resolve --root ./public file:///docs/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			nav, err := newNavigator(cfg, opts.root, nil, nil, opts.logger())
			if err != nil {
				return err
			}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), nav, from, args[0], swap)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "URL of the page being navigated away from")
	cmd.Flags().BoolVar(&swap, "swap", false, "Run the swap and print the rendered view")

	return cmd
}

func runResolve(ctx context.Context, w io.Writer, nav *navigate.Navigator, from, url string, swap bool) error {
	var prev *navigate.Result
	if from != "" {
		res, err := nav.Navigate(ctx, from)
		if err != nil {
			return err
		}
		prev = res
	}

	next, err := nav.Follow(ctx, prev, url)
	if err != nil {
		return err
	}

	writeParts(w, url, next.Parts)
	fmt.Fprintf(w, "  Slug:       %s\n", next.View.Slug)
	if next.View.Title != "" {
		fmt.Fprintf(w, "  Title:      %s\n", next.View.Title)
	}
	fmt.Fprintf(w, "  Renderer:   %s\n", resolve.Name(next.Renderer))
	transition := resolve.Name(next.Transition)
	if transition == "" {
		transition = "(none)"
	}
	fmt.Fprintf(w, "  Transition: %s\n", transition)
	if next.AnchorOnly {
		fmt.Fprintln(w, "  Anchor only: page reused")
	}

	if !swap {
		return nil
	}
	fmt.Fprintln(w)
	if err := nav.Swap(ctx, prev, next, w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
