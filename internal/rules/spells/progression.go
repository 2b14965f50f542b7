// Package spells answers per-class, per-level spellcasting lookups: slot
// tables, pact slots, cantrips known and spells known.
package spells

import (
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

const (
	halfCasterMaxSlotLevel = 5
	pactMaxSlots           = 4
	pactMaxSlotLevel       = 5
)

// Known is the spells-known answer. Prepared casters choose from their whole
// list each day, so Count is meaningless when Prepared is set.
type Known struct {
	Count    int  `json:"count"`
	Prepared bool `json:"prepared"`
}

// Config for the table
type Config struct {
	Rules *ruleset.Rules
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	return vb.Build()
}

// Table is the spell progression lookup
type Table struct {
	rules *ruleset.Rules
}

// NewTable creates a progression table
func NewTable(cfg *Config) (*Table, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Table{rules: cfg.Rules}, nil
}

func clampLevel(level int) int {
	return min(max(level, dnd5e.MinLevel), dnd5e.MaxLevel)
}

// ceilHalf returns ceil(n/2) for non-negative n
func ceilHalf(n int) int {
	return (n + 1) / 2
}

// Progression returns the class's spellcasting type, none when unknown
func (t *Table) Progression(class string) ruleset.SpellcastingType {
	c, ok := t.rules.Class(class)
	if !ok || c.Spellcasting == "" {
		return ruleset.SpellcastingNone
	}
	return c.Spellcasting
}

// SlotsFor returns slot totals keyed by slot level. Levels with no slots are
// omitted; non-casters get an empty table.
func (t *Table) SlotsFor(class string, level int) dnd5e.SpellSlotTable {
	level = clampLevel(level)
	table := dnd5e.SpellSlotTable{}

	switch t.Progression(class) {
	case ruleset.SpellcastingFull:
		for i, n := range t.rules.FullCasterSlots(level) {
			if n > 0 {
				table[i+1] = n
			}
		}
	case ruleset.SpellcastingHalf:
		if level < 2 {
			return table
		}
		row := t.rules.FullCasterSlots(ceilHalf(level))
		for i := 0; i < halfCasterMaxSlotLevel; i++ {
			if row[i] > 0 {
				table[i+1] = row[i]
			}
		}
	case ruleset.SpellcastingPact:
		pact := PactSlotsFor(level)
		table[pact.SlotLevel] = pact.Count
	}
	return table
}

// PactSlotsFor is the warlock pattern: min(ceil(L/2),4) slots, all at
// level min(ceil((L+1)/2),5).
func PactSlotsFor(level int) dnd5e.PactSlots {
	level = clampLevel(level)
	return dnd5e.PactSlots{
		SlotLevel: min(ceilHalf(level+1), pactMaxSlotLevel),
		Count:     min(ceilHalf(level), pactMaxSlots),
	}
}

// PactSlots returns pact slots for a pact caster and false for anyone else
func (t *Table) PactSlots(class string, level int) (dnd5e.PactSlots, bool) {
	if t.Progression(class) != ruleset.SpellcastingPact {
		return dnd5e.PactSlots{}, false
	}
	return PactSlotsFor(level), true
}

// CantripsKnown uses the class breakpoints at levels 1, 4 and 10
func (t *Table) CantripsKnown(class string, level int) int {
	c, ok := t.rules.Class(class)
	if !ok || len(c.CantripsKnown) == 0 {
		return 0
	}
	level = clampLevel(level)
	switch {
	case level >= 10:
		return c.CantripsKnown[2]
	case level >= 4:
		return c.CantripsKnown[1]
	default:
		return c.CantripsKnown[0]
	}
}

// SpellsKnown returns the known-spell count, or Prepared for classes that
// prepare from their full list. Non-casters know zero.
func (t *Table) SpellsKnown(class string, level int) Known {
	c, ok := t.rules.Class(class)
	if !ok {
		return Known{}
	}
	if c.Prepared {
		return Known{Prepared: true}
	}
	if len(c.SpellsKnown) == 0 {
		return Known{}
	}
	return Known{Count: c.SpellsKnown[clampLevel(level)-1]}
}

// MaxSpellLevel is the highest slot level available, 0 for none
func (t *Table) MaxSpellLevel(class string, level int) int {
	highest := 0
	for slotLevel, n := range t.SlotsFor(class, level) {
		if n > 0 && slotLevel > highest {
			highest = slotLevel
		}
	}
	return highest
}
