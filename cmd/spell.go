// Package cmd — spell command.
// Fetches a single spell page, or a spell listing in --list mode, through
// the locate → fetch → extract → render pipeline.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/gaurav-prasanna/grimoire/core/extract"
	"github.com/gaurav-prasanna/grimoire/core/fetch"
	"github.com/gaurav-prasanna/grimoire/core/locate"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagSpellOutput    string
	flagSpellList      bool
	flagListClass      string
	flagListLevel      int
	flagListSchool     string
	flagListComponents []string
	flagListShort      bool
)

var spellCmd = &cobra.Command{
	Use:   "spell [name]",
	Short: "Fetch spell details or spell lists",
	Long: `Fetch the full details of a single spell, or a spell listing with
--list. Multi-word spell names may be given unquoted.

Examples:
  grimoire spell fireball
  grimoire spell detect magic -o json
  grimoire spell --list --class wizard
  grimoire spell --list --level 3 --school evocation --component V,S`,
	Args: cobra.ArbitraryArgs,
	RunE: runSpell,
}

func init() {
	rootCmd.AddCommand(spellCmd)

	spellCmd.Flags().StringVarP(&flagSpellOutput, "output", "o", "txt", "Output format: txt, json, csv, or tsv")
	spellCmd.Flags().BoolVar(&flagSpellList, "list", false, "Fetch a spell listing instead of a single spell")

	// Listing filters and projections, only meaningful with --list.
	spellCmd.Flags().StringVar(&flagListClass, "class", "", "Limit the listing to one class's spells")
	spellCmd.Flags().IntVar(&flagListLevel, "level", -1, "Limit the listing to one spell level")
	spellCmd.Flags().StringVar(&flagListSchool, "school", "", "Limit the listing to one school of magic")
	spellCmd.Flags().StringSliceVar(&flagListComponents, "component", nil,
		"Limit the listing to spells using all the given component codes")
	spellCmd.Flags().BoolVar(&flagListShort, "short", false,
		"Compact the listing columns for narrow terminals")
}

func runSpell(cmd *cobra.Command, args []string) error {
	if !flagSpellList && len(args) == 0 {
		return fmt.Errorf("a spell name is required (or pass --list)\n\n%s", cmd.UsageString())
	}

	renderer, err := selectRenderer(flagSpellOutput)
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	fetcher := fetch.New(cfg)
	locator := locate.New(cfg)
	extractor := extract.New()
	ctx := cmd.Context()

	if flagSpellList {
		return runSpellList(ctx, cmd, fetcher, locator, extractor, renderer)
	}

	name := strings.Join(args, " ")
	url, err := locator.SpellURL(name)
	if err != nil {
		return err
	}
	markup, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return describeFetchError(err, "spell", name)
	}
	spell, err := extractor.Spell(markup)
	if err != nil {
		return err
	}
	out, err := renderer.Spell(spell)
	if err != nil {
		return err
	}
	cmd.Println(out)
	return nil
}

func runSpellList(
	ctx context.Context,
	cmd *cobra.Command,
	fetcher core.Fetcher,
	locator *locate.Locator,
	extractor *extract.Extractor,
	renderer core.Renderer,
) error {
	url, err := locator.SpellListURL(flagListClass)
	if err != nil {
		return err
	}
	markup, err := fetcher.Fetch(ctx, url)
	if err != nil {
		if flagListClass != "" {
			return describeFetchError(err, "class", flagListClass)
		}
		return describeFetchError(err, "page", "spells")
	}
	list, err := extractor.SpellList(markup, flagListClass)
	if err != nil {
		return err
	}

	applyListFilters(list)
	if flagListShort {
		shortenEntries(list)
	}

	out, err := renderer.SpellList(list)
	if err != nil {
		return err
	}
	cmd.Println(out)
	return nil
}

// applyListFilters narrows the listing in place per the --level, --school,
// and --component flags.
func applyListFilters(list *core.SpellList) {
	kept := list.Entries[:0]
	for _, entry := range list.Entries {
		if flagListLevel >= 0 && entry.Level != flagListLevel {
			continue
		}
		if flagListSchool != "" && !strings.EqualFold(entry.School, flagListSchool) {
			continue
		}
		if !hasAllComponents(entry.Components, flagListComponents) {
			continue
		}
		kept = append(kept, entry)
	}
	list.Entries = kept
}

// shortenEntries compacts the listing columns so wide lists fit narrow
// terminals: truncated names and durations, three-letter schools, and
// abbreviated casting-time words.
func shortenEntries(list *core.SpellList) {
	for i := range list.Entries {
		entry := &list.Entries[i]
		entry.Name = truncate(entry.Name, 15)
		if len(entry.School) > 3 {
			entry.School = entry.School[:3]
		}
		entry.CastingTime = strings.ReplaceAll(entry.CastingTime, "Bonus", "B")
		entry.CastingTime = strings.ReplaceAll(entry.CastingTime, "Minute", "Min")
		entry.Duration = truncate(entry.Duration, 10)
	}
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// hasAllComponents reports whether a listing's component cell names every
// requested code.
func hasAllComponents(cell string, codes []string) bool {
	present := make(map[string]bool)
	for _, code := range strings.Split(cell, ",") {
		code = strings.TrimSpace(code)
		if i := strings.Index(code, " "); i > 0 {
			code = code[:i] // drop a trailing material parenthetical
		}
		present[strings.ToUpper(code)] = true
	}
	for _, want := range codes {
		if !present[strings.ToUpper(strings.TrimSpace(want))] {
			return false
		}
	}
	return true
}
