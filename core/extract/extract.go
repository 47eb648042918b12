// Package extract implements the Extractor: it parses wiki markup for the
// three page kinds (single spell, spell list, class/subclass) and produces
// structured records.
//
// Element absence is a checked condition here, never a panic: the helpers
// below return optional/empty results, and a missing required element feeds
// directly into a *core.ParseError.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/gaurav-prasanna/grimoire/core/normalize"
)

// Extractor parses wiki pages into the grimoire data model.
type Extractor struct {
	normalizer *normalize.MarkdownNormalizer
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{normalizer: normalize.New()}
}

// parseDocument parses raw markup into a document tree. The page name is
// carried into any resulting ParseError.
func parseDocument(html, page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &core.ParseError{Page: page, Missing: "well-formed markup"}
	}
	return doc, nil
}

// firstMatch returns the first node matching selector, or ok=false when the
// document has none.
func firstMatch(doc *goquery.Document, selector string) (*goquery.Selection, bool) {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, false
	}
	return sel.First(), true
}

// requireMatch is firstMatch with absence promoted to a ParseError.
func requireMatch(doc *goquery.Document, selector, page, what string) (*goquery.Selection, error) {
	sel, ok := firstMatch(doc, selector)
	if !ok {
		return nil, &core.ParseError{Page: page, Missing: what}
	}
	return sel, nil
}

// pageTitle returns the wiki page title, e.g. "Fireball".
func pageTitle(doc *goquery.Document) (string, bool) {
	sel, ok := firstMatch(doc, ".page-title")
	if !ok {
		return "", false
	}
	title := cleanText(sel.Text())
	return title, title != ""
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// cleanText trims a text node and collapses inner whitespace runs, dropping
// non-printable characters the wiki occasionally embeds.
func cleanText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	out := innerWhitespace.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(out)
}

var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// blockText returns a selection's text with <br> breaks preserved as
// newlines. The spell stat block relies on this to separate its labeled
// fields.
func blockText(s *goquery.Selection) string {
	h, err := goquery.OuterHtml(s)
	if err != nil {
		return s.Text()
	}
	frag, err := goquery.NewDocumentFromReader(strings.NewReader(brTag.ReplaceAllString(h, "\n")))
	if err != nil {
		return s.Text()
	}
	return frag.Text()
}

// normalizeName reduces a feature or column name for matching: lowercase
// with all whitespace removed.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	return innerWhitespace.ReplaceAllString(name, "")
}

// titleCase uppercases the first letter of each word, the way the source
// prints school and class names.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// isHeader reports whether an element name is h1..h6.
func isHeader(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

// splitAtHeaders walks a flat tag selection and splits it at every header
// element. lead holds the content before the first header; each group starts
// with its header. Splitting is order-preserving and lossless.
func splitAtHeaders(tags *goquery.Selection) (lead []*goquery.Selection, groups [][]*goquery.Selection) {
	var current []*goquery.Selection
	started := false

	tags.Each(func(_ int, s *goquery.Selection) {
		if isHeader(goquery.NodeName(s)) {
			if started {
				groups = append(groups, current)
			} else {
				lead = current
				started = true
			}
			current = []*goquery.Selection{s}
			return
		}
		current = append(current, s)
	})

	if started {
		groups = append(groups, current)
	} else {
		lead = current
	}
	return lead, groups
}

// tableToRecord converts an HTML table into headers plus rows. Rows narrower
// than the widest row are dropped, which removes spanning decoration rows
// the wiki uses. Returns nil when the table has no usable rows.
func tableToRecord(table *goquery.Selection) *core.Table {
	var rows [][]string
	widest := 0
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td").Map(func(_ int, cell *goquery.Selection) string {
			return cleanText(cell.Text())
		})
		if len(cells) > widest {
			widest = len(cells)
		}
		rows = append(rows, cells)
	})
	if widest == 0 {
		return nil
	}

	kept := rows[:0]
	for _, row := range rows {
		if len(row) == widest {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &core.Table{Headers: kept[0], Rows: kept[1:]}
}
