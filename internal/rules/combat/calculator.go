// Package combat derives the combat sheet from a character draft
package combat

import (
	"strings"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

const (
	baseArmorClass = 10
	shieldBonus    = 2
	mediumDexCap   = 2
)

// armor-name substrings and their base AC, checked on equipped items that
// carry no armor category
var armorNameBase = []struct {
	substr string
	base   int
}{
	{"leather", 11},
	{"chain", 13},
	{"plate", 18},
}

// Config for the calculator
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

// Calculator computes CombatStats. It is a pure function of the draft.
type Calculator struct {
	rules *ruleset.Rules
}

// NewCalculator creates a calculator
func NewCalculator(cfg *Config) (*Calculator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Calculator{rules: cfg.Rules}, nil
}

// ProficiencyBonus is ceil(level/4)+1
func ProficiencyBonus(level int) int {
	level = max(level, dnd5e.MinLevel)
	return (level+3)/4 + 1
}

// Compute derives the full combat snapshot
func (c *Calculator) Compute(draft *dnd5e.CharacterDraft) *dnd5e.CombatStats {
	level := draft.TotalLevel()
	prof := ProficiencyBonus(level)
	scores := draft.AbilityScores

	maxHP := c.MaxHitPoints(draft)
	skills := c.SkillBonuses(draft)

	return &dnd5e.CombatStats{
		ArmorClass: ArmorClass(scores.Dexterity, draft.Equipment.EquippedItems()),
		HitPoints: dnd5e.HitPoints{
			Current: maxHP,
			Max:     maxHP,
		},
		Speed:             c.rules.Speed(draft.Race, draft.Subrace),
		Initiative:        dnd5e.Modifier(scores.Dexterity),
		ProficiencyBonus:  prof,
		SavingThrows:      c.SavingThrows(draft),
		Skills:            skills,
		PassivePerception: 10 + skills["Perception"],
	}
}

// ArmorClass starts at 10 and takes the best equipped armor. Items with an
// armor category use it; otherwise the name decides the base and the base
// decides the Dex cap. The result is never below 10.
func ArmorClass(dexScore int, equipped []dnd5e.InventoryItem) int {
	dexMod := dnd5e.Modifier(dexScore)

	best := -1
	shield := 0
	for _, item := range equipped {
		var ac int
		switch item.ArmorCategory {
		case dnd5e.ArmorCategoryShield:
			shield = shieldBonus
			continue
		case dnd5e.ArmorCategoryLight:
			ac = item.BaseAC + dexMod
		case dnd5e.ArmorCategoryMedium:
			ac = item.BaseAC + min(dexMod, mediumDexCap)
		case dnd5e.ArmorCategoryHeavy:
			ac = item.BaseAC
		default:
			base, ok := baseFromName(item.Name, item.EquipmentRef)
			if !ok {
				continue
			}
			ac = base + cappedDex(base, dexMod)
		}
		best = max(best, ac)
	}

	if best < 0 {
		best = baseArmorClass + dexMod
	}
	return max(best+shield, baseArmorClass)
}

func baseFromName(names ...string) (int, bool) {
	found := 0
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, a := range armorNameBase {
			if strings.Contains(lower, a.substr) {
				found = max(found, a.base)
			}
		}
	}
	return found, found > 0
}

// cappedDex applies the bracket rule: up to 12 is light (uncapped), 13-14 is
// medium (+2 max), above 14 is heavy (no Dex).
func cappedDex(base, dexMod int) int {
	switch {
	case base <= 12:
		return dexMod
	case base <= 14:
		return min(dexMod, mediumDexCap)
	default:
		return min(dexMod, 0)
	}
}

// MaxHitPoints is the primary class die plus Con at level 1, then the class
// average plus Con per further level, never below 1.
func (c *Calculator) MaxHitPoints(draft *dnd5e.CharacterDraft) int {
	conMod := dnd5e.Modifier(draft.AbilityScores.Constitution)
	level := draft.TotalLevel()

	if len(draft.Classes) == 0 {
		die := c.rules.HitDie(draft.PrimaryClass())
		hp := die + conMod + (level-1)*(AverageHitDie(die)+conMod)
		return max(hp, 1)
	}

	hp := 0
	remaining := level
	for i, cl := range draft.Classes {
		die := c.rules.HitDie(cl.Name)
		levels := min(cl.Level, remaining)
		remaining -= levels
		if levels <= 0 {
			break
		}
		if i == 0 {
			hp += die + conMod
			levels--
		}
		hp += levels * (AverageHitDie(die) + conMod)
	}
	return max(hp, 1)
}

// AverageHitDie is the fixed per-level hit point value for a die
func AverageHitDie(die int) int {
	return die/2 + 1
}

// SavingThrows adds proficiency for the primary class's two save abilities
func (c *Calculator) SavingThrows(draft *dnd5e.CharacterDraft) map[dnd5e.Ability]int {
	prof := ProficiencyBonus(draft.TotalLevel())
	var proficient []dnd5e.Ability
	if class, ok := c.rules.Class(draft.PrimaryClass()); ok {
		proficient = class.SavingThrows
	}

	out := make(map[dnd5e.Ability]int, len(dnd5e.Abilities))
	for _, a := range dnd5e.Abilities {
		bonus := dnd5e.Modifier(draft.AbilityScores.Get(a))
		for _, p := range proficient {
			if p == a {
				bonus += prof
				break
			}
		}
		out[a] = bonus
	}
	return out
}

// SkillBonuses covers all 18 skills, adding proficiency for selected ones
func (c *Calculator) SkillBonuses(draft *dnd5e.CharacterDraft) map[string]int {
	prof := ProficiencyBonus(draft.TotalLevel())
	selected := make(map[string]bool, len(draft.Skills))
	for _, s := range draft.Skills {
		selected[ruleset.Key(s)] = true
	}

	skills := c.rules.Skills()
	out := make(map[string]int, len(skills))
	for _, skill := range skills {
		bonus := dnd5e.Modifier(draft.AbilityScores.Get(skill.Ability))
		if selected[ruleset.Key(skill.Name)] {
			bonus += prof
		}
		out[skill.Name] = bonus
	}
	return out
}
