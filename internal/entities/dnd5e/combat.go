package dnd5e

// HitPoints on the derived sheet
type HitPoints struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

// CombatStats is a read-only snapshot derived from a draft
type CombatStats struct {
	ArmorClass        int             `json:"armor_class"`
	HitPoints         HitPoints       `json:"hit_points"`
	Speed             int             `json:"speed"`
	Initiative        int             `json:"initiative"`
	ProficiencyBonus  int             `json:"proficiency_bonus"`
	SavingThrows      map[Ability]int `json:"saving_throws"`
	Skills            map[string]int  `json:"skills"`
	PassivePerception int             `json:"passive_perception"`
}

// SpellSlotTable maps slot level (1-9) to total slots. Derived per request,
// used counts belong to the caller.
type SpellSlotTable map[int]int

// Total returns the number of slots across all levels
func (t SpellSlotTable) Total() int {
	n := 0
	for _, count := range t {
		n += count
	}
	return n
}

// PactSlots describes warlock pact magic: Count slots all at SlotLevel
type PactSlots struct {
	SlotLevel int `json:"slot_level"`
	Count     int `json:"count"`
}
