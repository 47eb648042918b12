// Package render — delimited renderer.
// Emits records as comma- or tab-separated rows with a header row, for
// piping into spreadsheet or shell tooling.
package render

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/grimoire/core"
)

// DelimitedRenderer produces one record per line with a leading header row.
// Field quoting follows the CSV rules for either delimiter.
type DelimitedRenderer struct {
	comma rune
}

// NewCSVRenderer creates a comma-separated renderer.
func NewCSVRenderer() *DelimitedRenderer {
	return &DelimitedRenderer{comma: ','}
}

// NewTSVRenderer creates a tab-separated renderer.
func NewTSVRenderer() *DelimitedRenderer {
	return &DelimitedRenderer{comma: '\t'}
}

func (r *DelimitedRenderer) Spell(s *core.Spell) (string, error) {
	rows := [][]string{
		{
			"Name", "Source", "Level", "School", "Casting Time", "Range",
			"Components", "Duration", "Ritual", "Description",
			"At Higher Levels", "Spell Lists",
		},
		{
			s.Name, s.Source, spellLevelCell(s.Level), s.School,
			s.CastingTime, s.Range, s.Components.String(), s.Duration,
			strconv.FormatBool(s.Ritual),
			strings.Join(s.Description, " "),
			s.HigherLevel,
			strings.Join(s.Classes, "|"),
		},
	}
	return r.write(rows)
}

func (r *DelimitedRenderer) SpellList(l *core.SpellList) (string, error) {
	rows := [][]string{
		{"Name", "Level", "School", "Casting Time", "Range", "Duration", "Components"},
	}
	for _, entry := range l.Entries {
		castingTime := entry.CastingTime
		if entry.Ritual {
			castingTime += " (ritual)"
		}
		rows = append(rows, []string{
			entry.Name, spellLevelCell(entry.Level), entry.School,
			castingTime, entry.Range, entry.Duration, entry.Components,
		})
	}
	return r.write(rows)
}

// Class emits one row per feature; the prose fields of the class record have
// no tabular shape and are left to the txt and json renderers.
func (r *DelimitedRenderer) Class(c *core.ClassRecord) (string, error) {
	rows := [][]string{{"Level", "Feature", "Description"}}
	for _, f := range c.Features {
		rows = append(rows, []string{
			strconv.Itoa(f.Level), f.Name, strings.Join(f.Description, " "),
		})
	}
	return r.write(rows)
}

func (r *DelimitedRenderer) write(rows [][]string) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = r.comma
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing delimited output: %w", err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// spellLevelCell prints a spell level for a table cell, naming cantrips.
func spellLevelCell(level int) string {
	if level == core.LevelCantrip {
		return "Cantrip"
	}
	return strconv.Itoa(level)
}
