package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/grimoire/core"
)

// featureHeaders are the header elements a class page uses to introduce
// features.
const featureHeaders = "h1, h3, h5"

// "at 2nd level", "Starting at 6th level", "when you reach 20th level".
var levelInText = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)[ -]level`)

// ordinal level cells in the leveling table: "1st", "2nd", ...
var ordinalCell = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)$`)

// Class parses a base class page: description paragraphs up to the
// multiclassing requirement, the leveling table, and the feature sections
// that follow. Feature levels come from the leveling table's Features
// column, falling back to the level named in the feature's own text.
func (e *Extractor) Class(html string) (*core.ClassRecord, error) {
	doc, err := parseDocument(html, "class")
	if err != nil {
		return nil, err
	}

	title, ok := pageTitle(doc)
	if !ok {
		return nil, &core.ParseError{Page: "class", Missing: "page title"}
	}
	content, err := requireMatch(doc, "#page-content", "class", "page content")
	if err != nil {
		return nil, err
	}

	record := &core.ClassRecord{Name: title}
	children := content.Children()

	// The multiclassing paragraph separates the description from the
	// leveling table.
	multiIdx := -1
	for i := 0; i < children.Length(); i++ {
		if strings.Contains(strings.ToLower(cleanText(children.Eq(i).Text())), "multiclass") {
			multiIdx = i
			break
		}
	}
	if multiIdx < 0 {
		return nil, &core.ParseError{Page: "class", Missing: "multiclassing paragraph"}
	}

	var descParts []string
	for i := 0; i < multiIdx; i++ {
		if t := cleanText(children.Eq(i).Text()); t != "" {
			descParts = append(descParts, t)
		}
	}
	record.Description = strings.Join(descParts, " ")
	record.MulticlassReq = cleanText(children.Eq(multiIdx).Text())

	// First table after the multiclassing paragraph is the leveling table.
	featStart := -1
	for i := multiIdx + 1; i < children.Length(); i++ {
		if goquery.NodeName(children.Eq(i)) == "table" {
			record.LevelTable = tableToRecord(children.Eq(i))
			featStart = i + 1
			break
		}
	}
	if record.LevelTable == nil {
		return nil, &core.ParseError{Page: "class", Missing: "leveling table"}
	}

	// Features live in the first element after the leveling table that
	// contains header sections.
	var featureRoot *goquery.Selection
	for i := featStart; i < children.Length(); i++ {
		node := children.Eq(i)
		if isHeader(goquery.NodeName(node)) || node.Find(featureHeaders).Length() > 0 {
			featureRoot = content
			if !isHeader(goquery.NodeName(node)) {
				featureRoot = node
			}
			break
		}
	}
	if featureRoot == nil {
		return nil, &core.ParseError{Page: "class", Missing: "class feature sections"}
	}

	_, groups := splitAtHeaders(featureRoot.Find(featureHeaders + ", p, ul, table"))
	// a leading h1 ("Class Features") is the section banner, not a feature
	if len(groups) > 0 && goquery.NodeName(groups[0][0]) == "h1" {
		groups = groups[1:]
	}
	if len(groups) == 0 {
		return nil, &core.ParseError{Page: "class", Missing: "class feature sections"}
	}

	features, err := e.featuresFromGroups(groups)
	if err != nil {
		return nil, err
	}
	assignFeatureLevels(features, record.LevelTable)
	record.Features = features
	return record, nil
}

// Subclass parses a subclass page: a Source line and description paragraphs,
// then feature sections split at h3 headers. Feature levels come from the
// level each feature names in its own text.
func (e *Extractor) Subclass(html, class string) (*core.SubclassRecord, error) {
	doc, err := parseDocument(html, "subclass")
	if err != nil {
		return nil, err
	}

	title, ok := pageTitle(doc)
	if !ok {
		return nil, &core.ParseError{Page: "subclass", Missing: "page title"}
	}
	content, err := requireMatch(doc, "#page-content", "subclass", "page content")
	if err != nil {
		return nil, err
	}

	record := &core.SubclassRecord{
		Class: titleCase(class),
		Name:  stripClassPrefix(title, class),
	}

	lead, groups := splitAtHeaders(content.Find("h3, p, ul, table"))
	if len(groups) == 0 {
		return nil, &core.ParseError{Page: "subclass", Missing: "feature sections"}
	}

	var descParts []string
	for _, s := range lead {
		text := cleanText(s.Text())
		switch {
		case text == "":
		case strings.HasPrefix(text, "Source:"):
			record.Source = strings.TrimSpace(strings.TrimPrefix(text, "Source:"))
		default:
			descParts = append(descParts, text)
		}
	}
	record.Description = strings.Join(descParts, " ")

	features, err := e.featuresFromGroups(groups)
	if err != nil {
		return nil, err
	}
	for i := range features {
		features[i].Level = levelFromDescription(features[i].Description)
	}
	record.Features = features
	return record, nil
}

// featuresFromGroups turns header-split tag groups into features. Each group
// starts with its header (the feature name); paragraphs and bullet lists
// become description paragraphs, a nested table is captured as-is.
func (e *Extractor) featuresFromGroups(groups [][]*goquery.Selection) ([]core.Feature, error) {
	features := make([]core.Feature, 0, len(groups))
	for _, group := range groups {
		var f core.Feature
		for _, s := range group {
			name := goquery.NodeName(s)
			switch {
			case isHeader(name):
				f.Name = cleanText(s.Text())
			case name == "table":
				f.Table = tableToRecord(s)
			default:
				para, err := e.paragraphMarkdown(s)
				if err != nil {
					return nil, err
				}
				if para != "" {
					f.Description = append(f.Description, para)
				}
			}
		}
		if f.Name == "" {
			continue
		}
		features = append(features, f)
	}
	return features, nil
}

// assignFeatureLevels maps each feature onto a character level. The leveling
// table's Features column is authoritative; a feature absent from it falls
// back to the level named in its own description, then to level 1.
func assignFeatureLevels(features []core.Feature, table *core.Table) {
	byName := featureLevelIndex(table)
	for i := range features {
		if lvl, ok := byName[normalizeName(features[i].Name)]; ok {
			features[i].Level = lvl
			continue
		}
		features[i].Level = levelFromDescription(features[i].Description)
	}
}

// featureLevelIndex builds a normalized-name → level index from the
// leveling table's Features column. The first level naming a feature wins.
func featureLevelIndex(table *core.Table) map[string]int {
	featCol := -1
	for i, h := range table.Headers {
		if strings.Contains(strings.ToLower(h), "feature") {
			featCol = i
			break
		}
	}
	if featCol < 0 {
		return nil
	}

	index := make(map[string]int)
	for _, row := range table.Rows {
		if len(row) <= featCol {
			continue
		}
		m := ordinalCell.FindStringSubmatch(row[0])
		if m == nil {
			continue
		}
		lvl, err := strconv.Atoi(m[1])
		if err != nil || lvl < 1 || lvl > core.MaxCharacterLevel {
			continue
		}
		for _, name := range strings.Split(row[featCol], ",") {
			key := normalizeName(name)
			if key == "" {
				continue
			}
			if _, seen := index[key]; !seen {
				index[key] = lvl
			}
		}
	}
	return index
}

// levelFromDescription pulls the first "Nth level" mention out of a
// feature's text. Features that never name a level default to level 1.
func levelFromDescription(paragraphs []string) int {
	for _, p := range paragraphs {
		if m := levelInText.FindStringSubmatch(p); m != nil {
			if lvl, err := strconv.Atoi(m[1]); err == nil && lvl >= 1 && lvl <= core.MaxCharacterLevel {
				return lvl
			}
		}
	}
	return 1
}

// stripClassPrefix removes the leading "Class…:" portion of a subclass page
// title, e.g. "Wizard: School of Evocation" → "School of Evocation".
func stripClassPrefix(title, class string) string {
	if i := strings.Index(title, ":"); i >= 0 &&
		strings.HasPrefix(strings.ToLower(title), strings.ToLower(strings.TrimSpace(class))) {
		return strings.TrimSpace(title[i+1:])
	}
	return title
}
