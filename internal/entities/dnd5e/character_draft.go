// Package dnd5e holds the character builder data model.
//
// A CharacterDraft is the mutable record assembled across wizard steps and
// persisted as JSON. The rules packages read it; they never store it.
package dnd5e

import (
	"fmt"

	"github.com/KirkDiggler/character-builder/internal/errors"
)

// CreationStep names a wizard step
type CreationStep string

// Wizard steps in order
const (
	StepIdentity      CreationStep = "identity"
	StepAbilityScores CreationStep = "ability_scores"
	StepSkills        CreationStep = "skills"
	StepSpells        CreationStep = "spells"
	StepEquipment     CreationStep = "equipment"
	StepReview        CreationStep = "review"
)

// SpellSelection lists chosen spells by name
type SpellSelection struct {
	Cantrips []string `json:"cantrips"`
	Known    []string `json:"known"`
	Prepared []string `json:"prepared"`
}

// CharacterDraft is a character under construction
type CharacterDraft struct {
	ID            string            `json:"id"`
	PlayerID      string            `json:"player_id"`
	Name          string            `json:"name"`
	Race          string            `json:"race"`
	Subrace       string            `json:"subrace,omitempty"`
	Class         string            `json:"class"`
	Background    string            `json:"background"`
	AbilityScores AbilityScores     `json:"ability_scores"`
	AbilityMethod string            `json:"ability_method,omitempty"`
	RollsPool     []int             `json:"rolls_pool,omitempty"`
	Skills        []string          `json:"skills"`
	Spells        *SpellSelection   `json:"spells,omitempty"`
	Equipment     *EquipmentState   `json:"equipment,omitempty"`
	Advancement   *AdvancementState `json:"advancement,omitempty"`
	Classes       []ClassLevel      `json:"classes,omitempty"`
	Step          CreationStep      `json:"step"`
	CreatedAt     int64             `json:"created_at"`
	UpdatedAt     int64             `json:"updated_at"`
	ExpiresAt     int64             `json:"expires_at"`
}

// NewCharacterDraft creates a draft with every ability at 8 and no skills
func NewCharacterDraft(id, playerID string) *CharacterDraft {
	return &CharacterDraft{
		ID:            id,
		PlayerID:      playerID,
		AbilityScores: DefaultAbilityScores(),
		Skills:        []string{},
		Step:          StepIdentity,
	}
}

// HasSkill reports whether the skill is selected
func (d *CharacterDraft) HasSkill(name string) bool {
	for _, s := range d.Skills {
		if s == name {
			return true
		}
	}
	return false
}

// AddSkill adds a skill, returning false if it was already present
func (d *CharacterDraft) AddSkill(name string) bool {
	if d.HasSkill(name) {
		return false
	}
	d.Skills = append(d.Skills, name)
	return true
}

// RemoveSkill drops a skill if present
func (d *CharacterDraft) RemoveSkill(name string) {
	out := d.Skills[:0]
	for _, s := range d.Skills {
		if s != name {
			out = append(out, s)
		}
	}
	d.Skills = out
}

// SetSkills replaces the skill set, dropping duplicates but keeping order
func (d *CharacterDraft) SetSkills(names []string) {
	d.Skills = make([]string, 0, len(names))
	for _, n := range names {
		d.AddSkill(n)
	}
}

// PrimaryClass is the first multiclass entry, or Class when single-classed
func (d *CharacterDraft) PrimaryClass() string {
	if len(d.Classes) > 0 && d.Classes[0].Name != "" {
		return d.Classes[0].Name
	}
	return d.Class
}

// TotalLevel sums class levels capped at 20. Without class entries it falls
// back to the advancement level, then 1.
func (d *CharacterDraft) TotalLevel() int {
	if len(d.Classes) > 0 {
		total := 0
		for _, c := range d.Classes {
			total += c.Level
		}
		return min(max(total, MinLevel), MaxLevel)
	}
	if d.Advancement != nil && d.Advancement.CurrentLevel >= MinLevel {
		return min(d.Advancement.CurrentLevel, MaxLevel)
	}
	return MinLevel
}

// Validate checks the persisted shape: score bounds, skill uniqueness,
// quantities, purse, XP and level ranges.
func (d *CharacterDraft) Validate() error {
	vb := errors.NewValidationBuilder()

	d.AbilityScores.validateInto(vb)

	seen := make(map[string]bool, len(d.Skills))
	for _, s := range d.Skills {
		if seen[s] {
			vb.Fieldf("skills", "duplicate skill %q", s)
		}
		seen[s] = true
	}

	if d.Equipment != nil {
		for i, item := range d.Equipment.Items {
			if item.Quantity < 1 {
				vb.Fieldf(fmt.Sprintf("equipment.items[%d].quantity", i), "must be at least 1")
			}
		}
		c := d.Equipment.Currency
		if c.CP < 0 || c.SP < 0 || c.EP < 0 || c.GP < 0 || c.PP < 0 {
			vb.Field("equipment.currency", "must not be negative")
		}
	}

	if d.Advancement != nil {
		errors.ValidateRange("advancement.experience_points", d.Advancement.ExperiencePoints, 0, MaxExperiencePoints, vb)
		errors.ValidateRange("advancement.current_level", d.Advancement.CurrentLevel, MinLevel, MaxLevel, vb)
	}

	for i, c := range d.Classes {
		errors.ValidateRange(fmt.Sprintf("classes[%d].level", i), c.Level, MinLevel, MaxLevel, vb)
	}

	return vb.Build()
}

// Clone returns a deep copy so rules can mutate without aliasing
func (d *CharacterDraft) Clone() *CharacterDraft {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Skills = append([]string(nil), d.Skills...)
	clone.RollsPool = append([]int(nil), d.RollsPool...)
	clone.Classes = append([]ClassLevel(nil), d.Classes...)
	if d.Spells != nil {
		spells := SpellSelection{
			Cantrips: append([]string(nil), d.Spells.Cantrips...),
			Known:    append([]string(nil), d.Spells.Known...),
			Prepared: append([]string(nil), d.Spells.Prepared...),
		}
		clone.Spells = &spells
	}
	clone.Equipment = d.Equipment.Clone()
	clone.Advancement = d.Advancement.Clone()
	return &clone
}
