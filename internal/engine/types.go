package engine

import (
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// Event types published on the engine bus
const (
	EventLevelUp        = "character.level_up"
	EventClassAdded     = "character.class_added"
	EventExperienceGain = "character.experience_gained"
)

// Event context keys
const (
	ContextLevel           = "level"
	ContextClass           = "class"
	ContextHitPointsGained = "hit_points_gained"
	ContextExperience      = "experience_points"
	ContextManual          = "manual"
)

// ValidationError is one failed rule, Field names the draft field
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

// Validation error codes
const (
	CodeInvalidAbilityScores = "invalid_ability_scores"
	CodeUnknownSkill         = "unknown_skill"
	CodeSkillNotAllowed      = "skill_not_allowed"
	CodeTooManySkills        = "too_many_skills"
	CodeDuplicateSpell       = "duplicate_spell"
	CodeTooManyCantrips      = "too_many_cantrips"
	CodeTooManySpells        = "too_many_spells"
	CodeNotASpellcaster      = "not_a_spellcaster"
	CodePreparedNotKnown     = "prepared_not_known"
)

// ValidateAbilityScoresInput contains ability scores to validate
type ValidateAbilityScoresInput struct {
	Method        string
	AbilityScores dnd5e.AbilityScores
	// RollsPool is required by the roll method
	RollsPool []int
}

// ValidateAbilityScoresOutput contains ability score validation results
type ValidateAbilityScoresOutput struct {
	IsValid bool
	Errors  []ValidationError
	// PointsSpent is set for point-buy when every score is in range
	PointsSpent int
}

// RollAbilityScoresInput asks for a fresh rolls pool
type RollAbilityScoresInput struct{}

// AbilityRoll is one 4d6 roll with its lowest die dropped
type AbilityRoll struct {
	Dice    []int
	Dropped int
	Total   int
}

// RollAbilityScoresOutput contains six rolls
type RollAbilityScoresOutput struct {
	Rolls []AbilityRoll
}

// Pool returns the roll totals in roll order
func (o *RollAbilityScoresOutput) Pool() []int {
	pool := make([]int, len(o.Rolls))
	for i, r := range o.Rolls {
		pool[i] = r.Total
	}
	return pool
}

// ValidateSkillChoicesInput contains skill choices to validate
type ValidateSkillChoicesInput struct {
	Class      string
	Background string
	Skills     []string
}

// ValidateSkillChoicesOutput contains skill validation results
type ValidateSkillChoicesOutput struct {
	IsValid bool
	Errors  []ValidationError
	// Skills is the normalized selection with background skills merged in
	Skills []string
}

// ValidateSpellSelectionInput contains spell choices to validate
type ValidateSpellSelectionInput struct {
	Class  string
	Level  int
	Spells *dnd5e.SpellSelection
}

// ValidateSpellSelectionOutput contains spell validation results
type ValidateSpellSelectionOutput struct {
	IsValid bool
	Errors  []ValidationError
}

// CalculateCombatStatsInput contains the draft to derive stats from
type CalculateCombatStatsInput struct {
	Draft *dnd5e.CharacterDraft
}

// CalculateCombatStatsOutput contains the derived sheet
type CalculateCombatStatsOutput struct {
	Stats *dnd5e.CombatStats
}

// GetSpellcastingInput selects a class and class level
type GetSpellcastingInput struct {
	Class string
	Level int
}

// GetSpellcastingOutput describes spellcasting at that level
type GetSpellcastingOutput struct {
	Progression   string
	Slots         dnd5e.SpellSlotTable
	PactSlots     *dnd5e.PactSlots
	CantripsKnown int
	SpellsKnown   int
	// PreparedCaster means SpellsKnown does not apply
	PreparedCaster bool
	MaxSpellLevel  int
}

// AwardExperienceInput adds XP to a draft
type AwardExperienceInput struct {
	Draft  *dnd5e.CharacterDraft
	Amount int
}

// AwardExperienceOutput reports the new XP position
type AwardExperienceOutput struct {
	Draft         *dnd5e.CharacterDraft
	LevelFromXP   int
	XPNeeded      int
	CanLevelUp    bool
	PendingLevels int
}

// LevelUpInput gains one level in Class. An empty Class means the primary
// class. A class the draft does not hold yet is a multiclass gain and must
// meet its prerequisites.
type LevelUpInput struct {
	Draft  *dnd5e.CharacterDraft
	Class  string
	Manual bool
	At     int64
}

// LevelUpOutput contains the updated draft and the history entry
type LevelUpOutput struct {
	Draft      *dnd5e.CharacterDraft
	Entry      *dnd5e.LevelEntry
	Multiclass bool
}

// CheckMulticlassInput asks whether a draft may take a level in Class
type CheckMulticlassInput struct {
	Draft *dnd5e.CharacterDraft
	Class string
}

// CheckMulticlassOutput lists unmet prerequisites
type CheckMulticlassOutput struct {
	Eligible bool
	Missing  []string
	// EligibleClasses lists every class the scores currently qualify for
	EligibleClasses []string
}
