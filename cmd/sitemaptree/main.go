package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cormorant-labs/sitemaptree"
	"github.com/spf13/cobra"
)

func main() {
	var (
		logLevel    string
		logFormat   string
		retries     int
		concurrency int
		treeMode    bool
	)

	cmd := &cobra.Command{
		Use:          "sitemaptree [flags] <homepage URL>",
		Short:        "Discover and print the sitemap tree for a website",
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return nil
			}
			return errors.New("missing homepage URL argument")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sitemaptree.LoadConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if logFormat != "" {
				cfg.LogFormat = logFormat
			}
			if retries > 0 {
				cfg.Retries = retries
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}

			tree, err := sitemaptree.SitemapTreeForHomepage(context.Background(), args[0], cfg.Options(nil)...)
			if err != nil {
				return fmt.Errorf("build sitemap tree: %w", err)
			}

			if treeMode {
				printTree(tree, 0)
				return nil
			}
			for page := range tree.AllPages() {
				fmt.Fprintln(os.Stdout, page.URL)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (json, console)")
	flags.IntVar(&retries, "retries", 0, "Retry attempts per sitemap fetch (0 = use default)")
	flags.IntVar(&concurrency, "concurrency", 0, "Sibling sub-sitemap fetch concurrency (0 = use default)")
	flags.BoolVar(&treeMode, "tree", false, "Print the sitemap tree structure instead of a flat page list")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printTree(s sitemaptree.Sitemap, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s.Kind {
	case sitemaptree.KindInvalid:
		fmt.Fprintf(os.Stdout, "%s%s %s (invalid: %s)\n", indent, s.Kind, s.URL, s.Reason)
	case sitemaptree.KindPagesXML, sitemaptree.KindPagesText, sitemaptree.KindPagesRSS, sitemaptree.KindPagesAtom:
		fmt.Fprintf(os.Stdout, "%s%s %s (%d pages)\n", indent, s.Kind, s.URL, len(s.Pages))
	default:
		fmt.Fprintf(os.Stdout, "%s%s %s\n", indent, s.Kind, s.URL)
		for _, sub := range s.SubSitemaps {
			printTree(sub, depth+1)
		}
	}
}
