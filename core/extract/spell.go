package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/grimoire/core"
)

var (
	// "3rd-level evocation", optionally "(ritual)".
	leveledLine = regexp.MustCompile(`^(\d)(?:st|nd|rd|th)-level ([A-Za-z]+)( \(ritual\))?$`)
	// "evocation cantrip", optionally "(ritual)".
	cantripLine = regexp.MustCompile(`^([A-Za-z]+) cantrip( \(ritual\))?$`)
)

// Spell parses a single spell page into a complete record. A page that
// exists but lacks the expected statistics block is a ParseError, never a
// silent empty record.
func (e *Extractor) Spell(html string) (*core.Spell, error) {
	doc, err := parseDocument(html, "spell")
	if err != nil {
		return nil, err
	}

	title, ok := pageTitle(doc)
	if !ok {
		return nil, &core.ParseError{Page: "spell", Missing: "page title"}
	}
	content, err := requireMatch(doc, "#page-content", "spell", "page content")
	if err != nil {
		return nil, err
	}

	spell := &core.Spell{Name: title}
	var sawLevel, sawStats bool
	var walkErr error

	content.Find("p, ul").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())

		switch {
		case text == "":

		case strings.HasPrefix(text, "Source:"):
			spell.Source = strings.TrimSpace(strings.TrimPrefix(text, "Source:"))

		case !sawLevel && matchLevelLine(text, spell):
			sawLevel = true

		case strings.HasPrefix(text, "Casting Time:"):
			if walkErr = e.parseStatBlock(s, spell); walkErr != nil {
				return false
			}
			sawStats = true

		case strings.HasPrefix(text, "At Higher Levels."):
			spell.HigherLevel = strings.TrimSpace(strings.TrimPrefix(text, "At Higher Levels."))

		case strings.HasPrefix(text, "Spell Lists."):
			rest := strings.TrimPrefix(text, "Spell Lists.")
			for _, c := range strings.Split(rest, ",") {
				if c = strings.TrimSpace(c); c != "" {
					spell.Classes = append(spell.Classes, c)
				}
			}

		default:
			para, nerr := e.paragraphMarkdown(s)
			if nerr != nil {
				walkErr = nerr
				return false
			}
			if para != "" {
				spell.Description = append(spell.Description, para)
			}
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if !sawLevel {
		return nil, &core.ParseError{Page: "spell", Missing: "level and school line"}
	}
	if !sawStats {
		return nil, &core.ParseError{Page: "spell", Missing: "statistics block"}
	}
	return spell, nil
}

// matchLevelLine recognizes the combined level/school line and fills in
// level, school, and the ritual flag. Cantrips map to level 0.
func matchLevelLine(text string, spell *core.Spell) bool {
	if m := leveledLine.FindStringSubmatch(text); m != nil {
		lvl, err := strconv.Atoi(m[1])
		if err != nil || lvl < 1 || lvl > core.MaxSpellLevel {
			return false
		}
		spell.Level = lvl
		spell.School = titleCase(m[2])
		spell.Ritual = m[3] != ""
		return true
	}
	if m := cantripLine.FindStringSubmatch(text); m != nil {
		spell.Level = core.LevelCantrip
		spell.School = titleCase(m[1])
		spell.Ritual = m[2] != ""
		return true
	}
	return false
}

// statLabels are the labeled fields of the statistics block, all required.
var statLabels = []string{"Casting Time:", "Range:", "Components:", "Duration:"}

// parseStatBlock parses the paragraph holding the labeled statistics fields.
// The fields are separated by <br> breaks inside a single paragraph.
func (e *Extractor) parseStatBlock(s *goquery.Selection, spell *core.Spell) error {
	fields := make(map[string]string, len(statLabels))
	for _, line := range strings.Split(blockText(s), "\n") {
		line = cleanText(line)
		for _, label := range statLabels {
			if strings.HasPrefix(line, label) {
				fields[label] = strings.TrimSpace(strings.TrimPrefix(line, label))
			}
		}
	}
	for _, label := range statLabels {
		if _, ok := fields[label]; !ok {
			return &core.ParseError{
				Page:    "spell",
				Missing: fmt.Sprintf("%q field in statistics block", strings.TrimSuffix(label, ":")),
			}
		}
	}

	components, err := parseComponents(fields["Components:"])
	if err != nil {
		return err
	}
	spell.CastingTime = fields["Casting Time:"]
	spell.Range = fields["Range:"]
	spell.Components = components
	spell.Duration = fields["Duration:"]
	return nil
}

// parseComponents parses a component code list such as
// "V, S, M (a pinch of soot and salt)". The trailing parenthetical, when
// present, becomes the material description. A code outside {V, S, M} is a
// ParseError.
func parseComponents(field string) (core.Components, error) {
	var c core.Components

	rest := field
	if open := strings.Index(rest, "("); open >= 0 {
		if close := strings.LastIndex(rest, ")"); close > open {
			c.MaterialText = strings.TrimSpace(rest[open+1 : close])
			rest = rest[:open]
		}
	}

	for _, code := range strings.Split(rest, ",") {
		switch strings.TrimSpace(code) {
		case "V":
			c.Verbal = true
		case "S":
			c.Somatic = true
		case "M":
			c.Material = true
		case "":
		default:
			return core.Components{}, &core.ParseError{
				Page:    "spell",
				Missing: fmt.Sprintf("known component code (got %q)", strings.TrimSpace(code)),
			}
		}
	}
	return c, nil
}

// paragraphMarkdown converts a description paragraph or bullet list into
// Markdown text.
func (e *Extractor) paragraphMarkdown(s *goquery.Selection) (string, error) {
	h, err := goquery.OuterHtml(s)
	if err != nil {
		return cleanText(s.Text()), nil
	}
	return e.normalizer.Normalize(h)
}
