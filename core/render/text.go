// Package render provides output renderers for extracted records.
// This file implements the plain-text renderer used for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/jedib0t/go-pretty/v6/table"
)

// TextRenderer renders records as human-readable text. Field labels in the
// spell block are fixed so the output stays greppable.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Spell renders a spell as a multi-line block in a fixed field order.
func (r *TextRenderer) Spell(s *core.Spell) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", s.Name, levelSchoolLine(s))

	if s.Source != "" {
		fmt.Fprintf(&b, "Source:       %s\n", s.Source)
	}
	fmt.Fprintf(&b, "Casting Time: %s\n", s.CastingTime)
	fmt.Fprintf(&b, "Range:        %s\n", s.Range)
	fmt.Fprintf(&b, "Components:   %s\n", s.Components)
	fmt.Fprintf(&b, "Duration:     %s\n", s.Duration)

	if len(s.Description) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(s.Description, "\n\n"))
		b.WriteString("\n")
	}
	if s.HigherLevel != "" {
		fmt.Fprintf(&b, "\nAt Higher Levels. %s\n", s.HigherLevel)
	}
	if len(s.Classes) > 0 {
		fmt.Fprintf(&b, "\nSpell Lists: %s\n", strings.Join(s.Classes, ", "))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// SpellList renders a listing as one table per level, levels ascending.
func (r *TextRenderer) SpellList(l *core.SpellList) (string, error) {
	var b strings.Builder

	if l.Class != "" {
		fmt.Fprintf(&b, "%s Spells\n", l.Class)
	} else {
		b.WriteString("All Spells\n")
	}

	level := -1
	var t table.Writer
	flush := func() {
		if t != nil {
			b.WriteString(t.Render())
			b.WriteString("\n")
			t = nil
		}
	}
	for _, entry := range l.Entries {
		if entry.Level != level {
			flush()
			level = entry.Level
			fmt.Fprintf(&b, "\n%s\n", levelHeading(level))
			t = newTable()
		}
		castingTime := entry.CastingTime
		if entry.Ritual {
			castingTime += " (ritual)"
		}
		t.AppendRow(table.Row{
			entry.Name, entry.School, castingTime, entry.Range, entry.Duration, entry.Components,
		})
	}
	flush()

	if l.Skipped > 0 {
		fmt.Fprintf(&b, "\n(%d malformed rows skipped)\n", l.Skipped)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Class renders a class record: description, multiclassing requirement,
// leveling table, then one section per level with one subsection per
// feature.
func (r *TextRenderer) Class(c *core.ClassRecord) (string, error) {
	var b strings.Builder

	b.WriteString(banner(c.Name))
	if c.Subclass != "" {
		fmt.Fprintf(&b, "Subclass: %s", c.Subclass)
		if c.SubclassSource != "" {
			fmt.Fprintf(&b, " (%s)", c.SubclassSource)
		}
		b.WriteString("\n\n")
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Description)
	}
	if c.MulticlassReq != "" {
		b.WriteString(heading("Multiclassing"))
		fmt.Fprintf(&b, "%s\n\n", c.MulticlassReq)
	}
	if c.LevelTable != nil {
		b.WriteString(heading("Leveling Table"))
		b.WriteString(renderTable(c.LevelTable))
		b.WriteString("\n\n")
	}

	for _, group := range core.GroupFeaturesByLevel(c.Features) {
		b.WriteString(heading(fmt.Sprintf("Level %d", group.Level)))
		for _, f := range group.Features {
			fmt.Fprintf(&b, "%s\n", f.Name)
			if len(f.Description) > 0 {
				fmt.Fprintf(&b, "%s\n", strings.Join(f.Description, "\n\n"))
			}
			if f.Table != nil {
				b.WriteString(renderTable(f.Table))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

// renderTable renders an extracted table with its own header row.
func renderTable(tbl *core.Table) string {
	t := newTable()
	header := make(table.Row, len(tbl.Headers))
	for i, h := range tbl.Headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range tbl.Rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.AppendRow(cells)
	}
	return t.Render()
}

// levelSchoolLine prints the combined level/school line the way the source
// does, e.g. "3rd-level Evocation" or "Evocation cantrip".
func levelSchoolLine(s *core.Spell) string {
	var line string
	if s.Level == core.LevelCantrip {
		line = fmt.Sprintf("%s cantrip", s.School)
	} else {
		line = fmt.Sprintf("%s-level %s", ordinal(s.Level), s.School)
	}
	if s.Ritual {
		line += " (ritual)"
	}
	return line
}

func levelHeading(level int) string {
	if level == core.LevelCantrip {
		return "Cantrips"
	}
	return ordinal(level) + " Level"
}

func banner(title string) string {
	rule := strings.Repeat("─", len([]rune(title)))
	return fmt.Sprintf("%s\n%s\n\n", title, rule)
}

func heading(title string) string {
	return fmt.Sprintf("%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
