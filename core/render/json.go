// Package render — JSON renderer.
// Emits extracted records as indented JSON for piping into other tools.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/grimoire/core"
)

// JSONRenderer produces indented JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Spell(s *core.Spell) (string, error) {
	return marshal(s)
}

func (r *JSONRenderer) SpellList(l *core.SpellList) (string, error) {
	return marshal(struct {
		Count int `json:"spell_count"`
		*core.SpellList
	}{Count: len(l.Entries), SpellList: l})
}

func (r *JSONRenderer) Class(c *core.ClassRecord) (string, error) {
	return marshal(c)
}

func marshal(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return string(data), nil
}
