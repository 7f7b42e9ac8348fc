package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/pageswap/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "pageswap",
		Short: "Inspect how pages resolve for view-swapping navigation",
		Long: `pageswap inspects pages that use view-swapping navigation.

A page marks its swappable region with a router-view attribute whose
value is the view's slug. pageswap decomposes URLs, finds the view in
a page, and reports the renderer and transition configured for it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: pageswap.json or pageswap.yaml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", ".", "Directory served for file:// URLs")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		urlCmd(),
		viewCmd(&opts),
		resolveCmd(&opts),
		serveCmd(&opts),
		versionCmd(),
	)

	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
