package render

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/grimoire/core"
	"github.com/stretchr/testify/require"
)

func TestCSVSpell(t *testing.T) {
	out, err := NewCSVRenderer().Spell(sampleSpell())
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Name", rows[0][0])
	require.Equal(t, "Fireball", rows[1][0])
	require.Equal(t, "3", rows[1][2])
	require.Equal(t, "Evocation", rows[1][3])
	// the comma inside the components field survives the round trip
	require.Equal(t, "V, S, M (a tiny ball of bat guano and sulfur)", rows[1][6])
	require.Equal(t, "false", rows[1][8])
	require.Equal(t, "Sorcerer|Wizard", rows[1][11])
}

func TestTSVSpell(t *testing.T) {
	out, err := NewTSVRenderer().Spell(sampleSpell())
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 12)
	require.Equal(t, "Fireball", fields[0])
	require.Equal(t, "Player's Handbook", fields[1])
	require.Equal(t, "V, S, M (a tiny ball of bat guano and sulfur)", fields[6])
}

func TestCSVSpellList(t *testing.T) {
	list := &core.SpellList{
		Class: "Wizard",
		Entries: []core.SpellListEntry{
			{Name: "Fire Bolt", Level: 0, School: "Evocation", CastingTime: "1 Action", Range: "120 Feet", Duration: "Instantaneous", Components: "V, S"},
			{Name: "Detect Magic", Level: 1, School: "Divination", CastingTime: "1 Action", Range: "Self", Duration: "Concentration", Components: "V, S", Ritual: true},
		},
	}

	out, err := NewCSVRenderer().SpellList(list)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Equal(t, "Name,Level,School,Casting Time,Range,Duration,Components", lines[0])
	require.Len(t, lines, 3)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Cantrip", rows[1][1])
	require.Equal(t, "1", rows[2][1])
	require.Equal(t, "1 Action (ritual)", rows[2][3])
}

func TestTSVClassFeatures(t *testing.T) {
	record := &core.ClassRecord{
		Name: "Wizard",
		Features: []core.Feature{
			{Level: 1, Name: "Spellcasting", Description: []string{"You have a spellbook."}},
			{Level: 2, Name: "Arcane Tradition", Description: []string{"You choose a school."}},
		},
	}

	out, err := NewTSVRenderer().Class(record)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Equal(t, "Level\tFeature\tDescription", lines[0])
	require.Equal(t, "1\tSpellcasting\tYou have a spellbook.", lines[1])
	require.Equal(t, "2\tArcane Tradition\tYou choose a school.", lines[2])
}
