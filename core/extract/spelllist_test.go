package extract

import (
	"errors"
	"testing"

	_ "embed"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/spells.html
var spellListPage string

func TestExtractSpellList(t *testing.T) {
	list, err := New().SpellList(spellListPage, "Wizard")
	require.NoError(t, err)

	require.Equal(t, "Wizard", list.Class)
	require.Equal(t, 1, list.Skipped, "the row with no name should be skipped")

	expected := []core.SpellListEntry{
		{Name: "Acid Splash", Level: 0, School: "Conjuration", CastingTime: "1 Action", Range: "60 Feet", Duration: "Instantaneous", Components: "V, S"},
		{Name: "Fire Bolt", Level: 0, School: "Evocation", CastingTime: "1 Action", Range: "120 Feet", Duration: "Instantaneous", Components: "V, S"},
		{Name: "Detect Magic", Level: 1, School: "Divination", CastingTime: "1 Action", Range: "Self", Duration: "Concentration, up to 10 Minutes", Components: "V, S", Ritual: true},
		{Name: "Magic Missile", Level: 1, School: "Evocation", CastingTime: "1 Action", Range: "120 Feet", Duration: "Instantaneous", Components: "V, S"},
		{Name: "Misty Step", Level: 2, School: "Conjuration", CastingTime: "1 Bonus Action", Range: "Self", Duration: "Instantaneous", Components: "V"},
	}
	if diff := cmp.Diff(expected, list.Entries); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

// Levels must come out ascending with row order preserved within a level.
func TestExtractSpellListLevelOrder(t *testing.T) {
	list, err := New().SpellList(spellListPage, "")
	require.NoError(t, err)

	last := -1
	for _, entry := range list.Entries {
		require.GreaterOrEqual(t, entry.Level, last)
		require.LessOrEqual(t, entry.Level, core.MaxSpellLevel)
		last = entry.Level
	}
}

func TestExtractSpellListNoTables(t *testing.T) {
	page := `<html><body>
		<div class="page-title"><span>Spells</span></div>
		<div id="page-content"><p>Nothing here.</p></div>
		</body></html>`

	_, err := New().SpellList(page, "")

	var parseErr *core.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "spell list", parseErr.Page)
}
