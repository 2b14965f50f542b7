package dnd5e

import (
	"github.com/KirkDiggler/character-builder/internal/errors"
)

// Ability identifies one of the six ability scores
type Ability string

// Ability keys, also used as JSON keys
const (
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

// Schema bounds for a stored ability score
const (
	MinAbilityScore     = 3
	MaxAbilityScore     = 20
	DefaultAbilityScore = 8
)

// Abilities lists the six abilities in sheet order
var Abilities = [6]Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// String returns the ability key
func (a Ability) String() string {
	return string(a)
}

// IsValid reports whether a is one of the six abilities
func (a Ability) IsValid() bool {
	for _, ab := range Abilities {
		if ab == a {
			return true
		}
	}
	return false
}

// AbilityScores holds exactly six scores
type AbilityScores struct {
	Strength     int `json:"str"`
	Dexterity    int `json:"dex"`
	Constitution int `json:"con"`
	Intelligence int `json:"int"`
	Wisdom       int `json:"wis"`
	Charisma     int `json:"cha"`
}

// DefaultAbilityScores returns every ability at 8
func DefaultAbilityScores() AbilityScores {
	d := DefaultAbilityScore
	return AbilityScoresFromValues([6]int{d, d, d, d, d, d})
}

// AbilityScoresFromValues builds scores from STR..CHA ordered values
func AbilityScoresFromValues(v [6]int) AbilityScores {
	return AbilityScores{
		Strength:     v[0],
		Dexterity:    v[1],
		Constitution: v[2],
		Intelligence: v[3],
		Wisdom:       v[4],
		Charisma:     v[5],
	}
}

// Values returns the scores in STR..CHA order
func (s AbilityScores) Values() [6]int {
	return [6]int{s.Strength, s.Dexterity, s.Constitution, s.Intelligence, s.Wisdom, s.Charisma}
}

// Get returns the score for an ability, 0 for an unknown key
func (s AbilityScores) Get(a Ability) int {
	switch a {
	case AbilityStrength:
		return s.Strength
	case AbilityDexterity:
		return s.Dexterity
	case AbilityConstitution:
		return s.Constitution
	case AbilityIntelligence:
		return s.Intelligence
	case AbilityWisdom:
		return s.Wisdom
	case AbilityCharisma:
		return s.Charisma
	default:
		return 0
	}
}

// Set assigns the score for an ability. Unknown keys are ignored.
func (s *AbilityScores) Set(a Ability, value int) {
	switch a {
	case AbilityStrength:
		s.Strength = value
	case AbilityDexterity:
		s.Dexterity = value
	case AbilityConstitution:
		s.Constitution = value
	case AbilityIntelligence:
		s.Intelligence = value
	case AbilityWisdom:
		s.Wisdom = value
	case AbilityCharisma:
		s.Charisma = value
	}
}

// Modifier returns the ability modifier for a score, rounding toward
// negative infinity (8 -> -1, 1 -> -5).
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Validate enforces the stored schema bound on every score
func (s AbilityScores) Validate() error {
	vb := errors.NewValidationBuilder()
	s.validateInto(vb)
	return vb.Build()
}

func (s AbilityScores) validateInto(vb *errors.ValidationBuilder) {
	for _, a := range Abilities {
		errors.ValidateRange("ability_scores."+a.String(), s.Get(a), MinAbilityScore, MaxAbilityScore, vb)
	}
}
