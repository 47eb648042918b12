// Package cmd implements the CLI commands for grimoire using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/gaurav-prasanna/grimoire/core/render"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "grimoire — D&D 5e rules reference in your terminal",
	Long: `grimoire looks up D&D 5th edition spells, spell lists, and class
features on https://dnd5e.wikidot.com and prints them to the terminal.

Usage:
  grimoire spell <name>
  grimoire spell --list [--class <name>]
  grimoire class <name> [--subclass <name>]`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// selectRenderer creates the Renderer for the requested output format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case "", "txt":
		return render.NewTextRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "csv":
		return render.NewCSVRenderer(), nil
	case "tsv":
		return render.NewTSVRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected txt, json, csv, or tsv)", format)
	}
}

// describeFetchError turns fetch failures into messages phrased for the
// query that caused them. A 404 means the wiki has no page for the query.
func describeFetchError(err error, kind, name string) error {
	var httpErr *core.HTTPError
	if errors.As(err, &httpErr) && httpErr.NotFound() {
		return fmt.Errorf("no such %s found: %q (check the spelling)", kind, name)
	}
	var netErr *core.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("could not reach the wiki: %v (try again in a moment)", netErr.Err)
	}
	return err
}

// userMessage renders a top-level error as a single line for stderr.
func userMessage(err error) string {
	var parseErr *core.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("%v (the wiki layout may have changed)", parseErr)
	}
	return err.Error()
}
