package locate

import (
	"errors"
	"testing"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/stretchr/testify/require"
)

func testLocator() *Locator {
	cfg := core.DefaultConfig()
	cfg.BaseURL = "https://dnd5e.wikidot.com"
	return New(cfg)
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		term     string
		expected string
	}{
		{"Fireball", "fireball"},
		{"Detect Magic", "detect-magic"},
		{"  Mage   Hand ", "mage-hand"},
		{"Antipathy/Sympathy", "antipathy-sympathy"},
		{"Mordenkainen's Sword", "mordenkainens-sword"},
		{"Melf's Acid Arrow", "melfs-acid-arrow"},
		{"blade-ward", "blade-ward"},
	}
	for _, test := range testCases {
		slug, err := Slug(test.term)
		require.NoError(t, err, test.term)
		require.Equal(t, test.expected, slug)
	}
}

func TestSlugRejectsEmptyTerm(t *testing.T) {
	for _, term := range []string{"", "   ", "\t\n"} {
		_, err := Slug(term)
		var queryErr *core.InvalidQueryError
		require.True(t, errors.As(err, &queryErr), "term %q should be rejected", term)
	}
}

func TestSlugRejectsUnmappableCharacters(t *testing.T) {
	_, err := Slug("fire{ball}")
	var queryErr *core.InvalidQueryError
	require.True(t, errors.As(err, &queryErr))
	require.Contains(t, queryErr.Reason, "cannot appear in a page slug")
}

func TestSpellURL(t *testing.T) {
	l := testLocator()
	url, err := l.SpellURL("Detect Magic")
	require.NoError(t, err)
	require.Equal(t, "https://dnd5e.wikidot.com/spell:detect-magic", url)
}

func TestSpellListURL(t *testing.T) {
	l := testLocator()

	url, err := l.SpellListURL("")
	require.NoError(t, err)
	require.Equal(t, "https://dnd5e.wikidot.com/spells", url)

	url, err = l.SpellListURL("Wizard")
	require.NoError(t, err)
	require.Equal(t, "https://dnd5e.wikidot.com/spells:wizard", url)
}

func TestClassURL(t *testing.T) {
	l := testLocator()
	url, err := l.ClassURL("Wizard")
	require.NoError(t, err)
	require.Equal(t, "https://dnd5e.wikidot.com/wizard", url)
}

func TestSubclassURL(t *testing.T) {
	l := testLocator()
	url, err := l.SubclassURL("Wizard", "School of Evocation")
	require.NoError(t, err)
	require.Equal(t, "https://dnd5e.wikidot.com/wizard:school-of-evocation", url)
}

func TestURLsRejectEmptyTerms(t *testing.T) {
	l := testLocator()
	var queryErr *core.InvalidQueryError

	_, err := l.SpellURL("")
	require.True(t, errors.As(err, &queryErr))
	_, err = l.ClassURL(" ")
	require.True(t, errors.As(err, &queryErr))
	_, err = l.SubclassURL("wizard", "")
	require.True(t, errors.As(err, &queryErr))
}
