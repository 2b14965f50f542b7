package dnd5e_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
)

type CharacterDraftTestSuite struct {
	suite.Suite
	draft *dnd5e.CharacterDraft
}

func TestCharacterDraftSuite(t *testing.T) {
	suite.Run(t, new(CharacterDraftTestSuite))
}

func (s *CharacterDraftTestSuite) SetupTest() {
	s.draft = dnd5e.NewCharacterDraft("draft-1", "player-1")
}

func (s *CharacterDraftTestSuite) TestDefaults() {
	s.Equal([6]int{8, 8, 8, 8, 8, 8}, s.draft.AbilityScores.Values())
	s.Empty(s.draft.Skills)
	s.Equal(dnd5e.StepIdentity, s.draft.Step)
	s.Equal(1, s.draft.TotalLevel())
	s.NoError(s.draft.Validate())
}

func (s *CharacterDraftTestSuite) TestSkillsHaveSetSemantics() {
	s.True(s.draft.AddSkill("Perception"))
	s.False(s.draft.AddSkill("Perception"))

	s.draft.SetSkills([]string{"Athletics", "Stealth", "Athletics"})
	s.Equal([]string{"Athletics", "Stealth"}, s.draft.Skills)

	s.draft.RemoveSkill("Athletics")
	s.Equal([]string{"Stealth"}, s.draft.Skills)
}

func (s *CharacterDraftTestSuite) TestTotalLevel() {
	testCases := []struct {
		name     string
		classes  []dnd5e.ClassLevel
		adv      *dnd5e.AdvancementState
		expected int
	}{
		{name: "no classes no advancement", expected: 1},
		{name: "advancement level", adv: &dnd5e.AdvancementState{CurrentLevel: 7}, expected: 7},
		{
			name:     "sum of classes",
			classes:  []dnd5e.ClassLevel{{Name: "Fighter", Level: 3}, {Name: "Rogue", Level: 2}},
			adv:      &dnd5e.AdvancementState{CurrentLevel: 9},
			expected: 5,
		},
		{
			name:     "capped at 20",
			classes:  []dnd5e.ClassLevel{{Name: "Fighter", Level: 15}, {Name: "Wizard", Level: 10}},
			expected: 20,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.draft.Classes = tc.classes
			s.draft.Advancement = tc.adv
			s.Equal(tc.expected, s.draft.TotalLevel())
		})
	}
}

func (s *CharacterDraftTestSuite) TestValidateReportsEveryField() {
	s.draft.AbilityScores.Strength = 2
	s.draft.Skills = []string{"Arcana", "Arcana"}
	s.draft.Equipment = &dnd5e.EquipmentState{
		Items:    []dnd5e.InventoryItem{{EquipmentRef: "rope", Quantity: 0}},
		Currency: dnd5e.Currency{GP: -1},
	}
	s.draft.Advancement = &dnd5e.AdvancementState{ExperiencePoints: 400000, CurrentLevel: 21}

	err := s.draft.Validate()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	for _, key := range []string{
		"ability_scores.str",
		"skills",
		"equipment.items[0].quantity",
		"equipment.currency",
		"advancement.experience_points",
		"advancement.current_level",
	} {
		s.Contains(fields, key)
	}
}

func (s *CharacterDraftTestSuite) TestJSONShapeRoundTrip() {
	s.draft.Class = "Wizard"
	s.draft.Spells = &dnd5e.SpellSelection{Cantrips: []string{"Light"}}
	s.draft.Equipment = &dnd5e.EquipmentState{Currency: dnd5e.Currency{GP: 10}}

	raw, err := json.Marshal(s.draft)
	s.Require().NoError(err)

	var generic map[string]any
	s.Require().NoError(json.Unmarshal(raw, &generic))
	scores, ok := generic["ability_scores"].(map[string]any)
	s.Require().True(ok)
	s.Len(scores, 6)

	var back dnd5e.CharacterDraft
	s.Require().NoError(json.Unmarshal(raw, &back))
	s.Equal(s.draft, &back)
}

func (s *CharacterDraftTestSuite) TestCloneDoesNotAlias() {
	s.draft.AddSkill("Arcana")
	s.draft.Equipment = &dnd5e.EquipmentState{Items: []dnd5e.InventoryItem{{EquipmentRef: "rope", Quantity: 1}}}

	clone := s.draft.Clone()
	clone.AddSkill("History")
	clone.Equipment.Items[0].Quantity = 5

	s.Equal([]string{"Arcana"}, s.draft.Skills)
	s.Equal(1, s.draft.Equipment.Items[0].Quantity)
}

func TestModifierFloors(t *testing.T) {
	cases := map[int]int{1: -5, 3: -4, 8: -1, 9: -1, 10: 0, 11: 0, 14: 2, 15: 2, 20: 5}
	for score, want := range cases {
		if got := dnd5e.Modifier(score); got != want {
			t.Errorf("Modifier(%d) = %d, want %d", score, got, want)
		}
	}
}
