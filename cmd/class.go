// Package cmd — class command.
// Fetches a class page, optionally merging in a subclass page, and prints
// the features grouped by character level.
package cmd

import (
	"strings"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/gaurav-prasanna/grimoire/core/extract"
	"github.com/gaurav-prasanna/grimoire/core/fetch"
	"github.com/gaurav-prasanna/grimoire/core/locate"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagClassOutput string
	flagSubclass    string
	flagFeature     string
)

var classCmd = &cobra.Command{
	Use:   "class <name>",
	Short: "Fetch class features, optionally with a subclass",
	Long: `Fetch a class's description, multiclassing requirement, leveling
table, and features. With --subclass, the subclass's features are fetched
too and appear at their declared levels alongside the base features.

Examples:
  grimoire class wizard
  grimoire class wizard --subclass "School of Evocation"
  grimoire class rogue --feature sneak -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runClass,
}

func init() {
	rootCmd.AddCommand(classCmd)

	classCmd.Flags().StringVarP(&flagClassOutput, "output", "o", "txt", "Output format: txt, json, csv, or tsv")
	classCmd.Flags().StringVar(&flagSubclass, "subclass", "", "Merge in the named subclass's features")
	classCmd.Flags().StringVar(&flagFeature, "feature", "", "Show only features whose name contains this text")
}

func runClass(cmd *cobra.Command, args []string) error {
	renderer, err := selectRenderer(flagClassOutput)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	fetcher := fetch.New(cfg)
	locator := locate.New(cfg)
	extractor := extract.New()
	ctx := cmd.Context()

	name := args[0]
	url, err := locator.ClassURL(name)
	if err != nil {
		return err
	}
	markup, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return describeFetchError(err, "class", name)
	}
	record, err := extractor.Class(markup)
	if err != nil {
		return err
	}

	if flagSubclass != "" {
		subURL, err := locator.SubclassURL(name, flagSubclass)
		if err != nil {
			return err
		}
		subMarkup, err := fetcher.Fetch(ctx, subURL)
		if err != nil {
			return describeFetchError(err, "subclass", flagSubclass)
		}
		sub, err := extractor.Subclass(subMarkup, name)
		if err != nil {
			return err
		}
		record.AppendSubclass(sub)
	}

	if flagFeature != "" {
		record.Features = filterFeatures(record.Features, flagFeature)
	}

	out, err := renderer.Class(record)
	if err != nil {
		return err
	}
	cmd.Println(out)
	return nil
}

// filterFeatures keeps the features whose name contains term,
// case-insensitively, preserving order.
func filterFeatures(features []core.Feature, term string) []core.Feature {
	term = strings.ToLower(term)
	kept := features[:0]
	for _, f := range features {
		if strings.Contains(strings.ToLower(f.Name), term) {
			kept = append(kept, f)
		}
	}
	return kept
}
