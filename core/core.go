// Package core defines the shared data model, pipeline configuration, and
// error taxonomy for grimoire. Each pipeline stage is a clean, testable
// interface.
package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

const (
	// LevelCantrip is the level the wiki assigns to cantrips.
	LevelCantrip = 0
	// MaxSpellLevel is the highest spell level in the 5th edition rules.
	MaxSpellLevel = 9
	// MaxCharacterLevel is the highest character level a class table covers.
	MaxCharacterLevel = 20
)

// Config carries the settings shared by the fetcher and the page locator.
// It is constructed once per invocation and passed in explicitly; there is
// no process-wide mutable configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns the settings the CLI runs with.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://dnd5e.wikidot.com",
		Timeout:   30 * time.Second,
		UserAgent: "grimoire/1.0 (https://github.com/gaurav-prasanna/grimoire)",
	}
}

// Components describes what a caster needs to cast a spell: Verbal, Somatic,
// and Material, plus the material description when the source lists one.
type Components struct {
	Verbal       bool   `json:"verbal"`
	Somatic      bool   `json:"somatic"`
	Material     bool   `json:"material"`
	MaterialText string `json:"material_text,omitempty"`
}

// Codes returns the component codes present, in canonical V, S, M order.
func (c Components) Codes() []string {
	var codes []string
	if c.Verbal {
		codes = append(codes, "V")
	}
	if c.Somatic {
		codes = append(codes, "S")
	}
	if c.Material {
		codes = append(codes, "M")
	}
	return codes
}

// String renders the components the way the source site prints them,
// e.g. "V, S, M (a tiny ball of bat guano and sulfur)".
func (c Components) String() string {
	s := strings.Join(c.Codes(), ", ")
	if c.MaterialText != "" {
		s += " (" + c.MaterialText + ")"
	}
	return s
}

// Spell is a fully extracted spell page. Immutable once extracted.
type Spell struct {
	Name        string     `json:"name"`
	Source      string     `json:"source,omitempty"`
	Level       int        `json:"level"` // 0 = cantrip
	School      string     `json:"school"`
	CastingTime string     `json:"casting_time"`
	Range       string     `json:"range"`
	Components  Components `json:"components"`
	Duration    string     `json:"duration"`
	Ritual      bool       `json:"ritual,omitempty"`
	Description []string   `json:"description"`
	HigherLevel string     `json:"higher_level,omitempty"`
	Classes     []string   `json:"classes,omitempty"`
}

// SpellListEntry is the reduced projection of a spell used on listing pages.
type SpellListEntry struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	School      string `json:"school"`
	CastingTime string `json:"casting_time"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Components  string `json:"components"`
	Ritual      bool   `json:"ritual,omitempty"`
}

// SpellList holds the entries of a listing page in level order (ascending,
// cantrips first) with row order preserved within each level. Skipped counts
// malformed rows dropped during extraction; a listing page tolerates minor
// anomalies since its value is breadth, not one critical record.
type SpellList struct {
	Class   string           `json:"class,omitempty"`
	Entries []SpellListEntry `json:"spells"`
	Skipped int              `json:"-"`
}

// Table is a plain extracted HTML table.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Feature is a named ability a class or subclass grants at a character level.
type Feature struct {
	Level       int      `json:"level"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Table       *Table   `json:"table,omitempty"`
}

// SubclassRecord holds the extracted content of a subclass page.
type SubclassRecord struct {
	Class       string    `json:"class"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	Features    []Feature `json:"features"`
}

// ClassRecord holds a class page, optionally merged with a subclass.
// Subclass features are appended after the base features; formatting groups
// everything by level, so appended features surface at their declared levels.
type ClassRecord struct {
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	MulticlassReq  string    `json:"multiclass_requirement,omitempty"`
	LevelTable     *Table    `json:"leveling_table,omitempty"`
	Features       []Feature `json:"features"`
	Subclass       string    `json:"subclass,omitempty"`
	SubclassSource string    `json:"subclass_source,omitempty"`
}

// AppendSubclass merges a subclass page into the record. The subclass
// features keep their declared levels and are appended after the base
// features.
func (c *ClassRecord) AppendSubclass(sub *SubclassRecord) {
	c.Subclass = sub.Name
	c.SubclassSource = sub.Source
	c.Features = append(c.Features, sub.Features...)
}

// FeatureGroup is the set of features granted at one character level.
type FeatureGroup struct {
	Level    int
	Features []Feature
}

// GroupFeaturesByLevel buckets features by level, levels ascending. The
// grouping is stable: within a level, features keep their original order, so
// flattening the groups back loses nothing for well-formed input.
func GroupFeaturesByLevel(features []Feature) []FeatureGroup {
	byLevel := make(map[int][]Feature)
	var levels []int
	for _, f := range features {
		if _, seen := byLevel[f.Level]; !seen {
			levels = append(levels, f.Level)
		}
		byLevel[f.Level] = append(byLevel[f.Level], f)
	}
	sort.Ints(levels)

	groups := make([]FeatureGroup, 0, len(levels))
	for _, lvl := range levels {
		groups = append(groups, FeatureGroup{Level: lvl, Features: byLevel[lvl]})
	}
	return groups
}

// Fetcher retrieves raw markup from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Renderer turns extracted records into terminal-ready text. Renderers have
// no side effects; printing is the caller's responsibility.
type Renderer interface {
	Spell(s *Spell) (string, error)
	SpellList(l *SpellList) (string, error)
	Class(c *ClassRecord) (string, error)
}
