package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/grimoire/core"
)

var (
	// trailing single-letter tags the listing appends to school names
	schoolTags = regexp.MustCompile(`[CDGT]+$`)
	// a trailing R on the casting time marks a ritual spell
	ritualSuffix = regexp.MustCompile(`\s*R$`)
)

// listColumns is the cell count of a well-formed listing row:
// name, school, casting time, range, duration, components.
const listColumns = 6

// SpellList parses a spell listing page. Each level's table is preceded by a
// header row; the header rows advance the level counter, so entries come out
// in ascending level order with row order preserved within a level.
//
// Malformed rows are skipped with a warning and counted, not fatal: a
// listing page's value is breadth, not one critical record.
func (e *Extractor) SpellList(html, class string) (*core.SpellList, error) {
	doc, err := parseDocument(html, "spell list")
	if err != nil {
		return nil, err
	}
	content, err := requireMatch(doc, "#page-content", "spell list", "page content")
	if err != nil {
		return nil, err
	}

	list := &core.SpellList{Class: class}
	level := -1

	content.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			level++
			return
		}

		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return cleanText(cell.Text())
		})
		if len(cells) != listColumns || cells[0] == "" {
			slog.Warn("skipping malformed spell row", "cells", len(cells), "level", level)
			list.Skipped++
			return
		}
		if level < core.LevelCantrip || level > core.MaxSpellLevel {
			slog.Warn("skipping row outside known spell levels", "level", level, "name", cells[0])
			list.Skipped++
			return
		}

		entry := core.SpellListEntry{
			Name:        cells[0],
			Level:       level,
			School:      schoolTags.ReplaceAllString(cells[1], ""),
			CastingTime: cells[2],
			Range:       cells[3],
			Duration:    cells[4],
			Components:  cells[5],
		}
		if ritualSuffix.MatchString(entry.CastingTime) {
			entry.Ritual = true
			entry.CastingTime = strings.TrimSpace(ritualSuffix.ReplaceAllString(entry.CastingTime, ""))
		}
		list.Entries = append(list.Entries, entry)
	})

	if len(list.Entries) == 0 && list.Skipped == 0 {
		return nil, &core.ParseError{Page: "spell list", Missing: "spell table rows"}
	}
	return list, nil
}
