// Package locate maps query terms onto wiki page URLs.
//
// The wiki names its pages deterministically: a spell lives at
// /spell:<slug>, a class spell list at /spells:<class>, a class page at
// /<class>, and a subclass page at /<class>:<subclass>. The locator only
// builds URLs; whether a page exists is discovered at fetch time.
package locate

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/grimoire/core"
)

// Locator builds page URLs following the wiki's naming convention.
type Locator struct {
	baseURL string
}

// New creates a Locator from the pipeline configuration.
func New(cfg core.Config) *Locator {
	return &Locator{baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}
}

// SpellURL returns the page URL for a single spell.
func (l *Locator) SpellURL(name string) (string, error) {
	slug, err := Slug(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/spell:%s", l.baseURL, slug), nil
}

// SpellListURL returns the URL of the full spell listing, or of a single
// class's list when class is non-empty.
func (l *Locator) SpellListURL(class string) (string, error) {
	if strings.TrimSpace(class) == "" {
		return l.baseURL + "/spells", nil
	}
	slug, err := Slug(class)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/spells:%s", l.baseURL, slug), nil
}

// ClassURL returns the page URL for a base class.
func (l *Locator) ClassURL(class string) (string, error) {
	slug, err := Slug(class)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", l.baseURL, slug), nil
}

// SubclassURL returns the page URL for a subclass of the given class.
func (l *Locator) SubclassURL(class, subclass string) (string, error) {
	classSlug, err := Slug(class)
	if err != nil {
		return "", err
	}
	subSlug, err := Slug(subclass)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s:%s", l.baseURL, classSlug, subSlug), nil
}

// Slug normalizes a query term into the wiki's page naming convention:
// lowercase, runs of whitespace, slashes, and hyphens collapse to a single
// hyphen, apostrophes, commas, and periods are dropped. A term that is empty or
// contains characters that cannot map to a slug yields an
// *core.InvalidQueryError.
func Slug(term string) (string, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return "", &core.InvalidQueryError{Term: term, Reason: "empty term"}
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(trimmed) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case r == ' ' || r == '\t' || r == '/' || r == '-':
			if !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		case r == '\'' || r == ',' || r == '.':
			// dropped from slugs by the wiki
		default:
			return "", &core.InvalidQueryError{
				Term:   term,
				Reason: fmt.Sprintf("character %q cannot appear in a page slug", r),
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "", &core.InvalidQueryError{Term: term, Reason: "term has no usable characters"}
	}
	return slug, nil
}
