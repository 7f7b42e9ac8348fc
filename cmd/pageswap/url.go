package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/pageswap/pkg/urlparts"
)

func urlCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "url <url>...",
		Short: "Decompose URLs into origin, pathname, anchor and params",
		Long: `Decompose URLs into origin, pathname, anchor and query parameters.

Absent parts are left out. A parameter without "=" has no value.

Examples:
  pageswap url "https://example.com/docs?page=2#install"
  pageswap url --json "https://example.com/?a&b=1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runURL(cmd.OutOrStdout(), args, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func runURL(w io.Writer, urls []string, asJSON bool) error {
	if asJSON {
		out := make([]urlparts.Parts, 0, len(urls))
		for _, u := range urls {
			out = append(out, urlparts.Decompose(u))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, u := range urls {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeParts(w, u, urlparts.Decompose(u))
	}
	return nil
}

func writeParts(w io.Writer, url string, p urlparts.Parts) {
	fmt.Fprintln(w, url)
	if p.Origin != "" {
		fmt.Fprintf(w, "  Origin:   %s\n", p.Origin)
	}
	if p.Pathname != "" {
		fmt.Fprintf(w, "  Pathname: %s\n", p.Pathname)
	}
	if p.Anchor != "" {
		fmt.Fprintf(w, "  Anchor:   %s\n", p.Anchor)
	}
	for _, param := range p.Params {
		if param.HasValue {
			fmt.Fprintf(w, "  Param:    %s = %s\n", param.Key, param.Value)
		} else {
			fmt.Fprintf(w, "  Param:    %s\n", param.Key)
		}
	}
}
