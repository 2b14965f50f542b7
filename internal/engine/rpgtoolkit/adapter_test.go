package rpgtoolkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

// scriptedRoller hands out pre-set RollN results in order
type scriptedRoller struct {
	results [][]int
	err     error
	calls   int
}

func (s *scriptedRoller) Roll(size int) (int, error) {
	rolls, err := s.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return rolls[0], nil
}

func (s *scriptedRoller) RollN(count, _ int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.results) {
		return nil, fmt.Errorf("no scripted roll for call %d", s.calls)
	}
	out := s.results[s.calls]
	s.calls++
	return out[:min(count, len(out))], nil
}

type AdapterTestSuite struct {
	suite.Suite
	bus     *events.Bus
	roller  *scriptedRoller
	adapter *Adapter
	ctx     context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) SetupTest() {
	s.bus = events.NewBus()
	s.roller = &scriptedRoller{}
	adapter, err := NewAdapter(&AdapterConfig{
		EventBus:   s.bus,
		DiceRoller: s.roller,
		Rules:      ruleset.MustDefault(),
	})
	s.Require().NoError(err)
	s.adapter = adapter
	s.ctx = context.Background()
}

func (s *AdapterTestSuite) fighter() *dnd5e.CharacterDraft {
	draft := dnd5e.NewCharacterDraft("draft_1", "player_1")
	draft.Class = "Fighter"
	draft.Race = "Human"
	draft.AbilityScores = dnd5e.AbilityScoresFromValues([6]int{15, 12, 14, 8, 10, 13})
	return draft
}

func (s *AdapterTestSuite) TestNewAdapterValidation() {
	testCases := []struct {
		name string
		cfg  *AdapterConfig
	}{
		{name: "nil config", cfg: nil},
		{name: "missing event bus", cfg: &AdapterConfig{DiceRoller: s.roller, Rules: ruleset.MustDefault()}},
		{name: "missing dice roller", cfg: &AdapterConfig{EventBus: s.bus, Rules: ruleset.MustDefault()}},
		{name: "missing rules", cfg: &AdapterConfig{EventBus: s.bus, DiceRoller: s.roller}},
		{name: "manual bound too high", cfg: &AdapterConfig{
			EventBus: s.bus, DiceRoller: s.roller, Rules: ruleset.MustDefault(), ManualMinScore: 21,
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := NewAdapter(tc.cfg)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *AdapterTestSuite) TestCalculateAbilityModifier() {
	for score, want := range map[int]int{1: -5, 3: -4, 8: -1, 9: -1, 10: 0, 11: 0, 15: 2, 20: 5} {
		s.Equal(want, s.adapter.CalculateAbilityModifier(score), "score %d", score)
	}
}

func (s *AdapterTestSuite) TestCalculateProficiencyBonus() {
	for level, want := range map[int]int{0: 0, 1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 13: 5, 17: 6, 20: 6} {
		s.Equal(want, s.adapter.CalculateProficiencyBonus(level), "level %d", level)
	}
}

func (s *AdapterTestSuite) TestValidateAbilityScores() {
	testCases := []struct {
		name   string
		input  *engine.ValidateAbilityScoresInput
		valid  bool
		points int
	}{
		{
			name: "standard array permutation",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "standard",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{8, 10, 12, 13, 14, 15}),
			},
			valid: true,
		},
		{
			name: "standard array reused value",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "standard_array",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{15, 15, 13, 12, 10, 8}),
			},
		},
		{
			name: "point buy spends exactly 27",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "point-buy",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{15, 15, 15, 8, 8, 8}),
			},
			valid:  true,
			points: 27,
		},
		{
			name: "point buy under budget",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "point_buy",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{8, 8, 8, 8, 8, 8}),
			},
		},
		{
			name: "roll drawn from pool",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "roll",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{16, 9, 12, 12, 7, 14}),
				RollsPool:     []int{12, 14, 7, 16, 12, 9},
			},
			valid: true,
		},
		{
			name: "roll without pool",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "roll",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{16, 9, 12, 12, 7, 14}),
			},
		},
		{
			name: "manual below floor",
			input: &engine.ValidateAbilityScoresInput{
				Method:        "manual",
				AbilityScores: dnd5e.AbilityScoresFromValues([6]int{7, 10, 10, 10, 10, 10}),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.adapter.ValidateAbilityScores(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.valid, out.IsValid, "%+v", out.Errors)
			if tc.valid {
				s.Empty(out.Errors)
			} else {
				s.NotEmpty(out.Errors)
				s.Equal(engine.CodeInvalidAbilityScores, out.Errors[0].Code)
			}
			s.Equal(tc.points, out.PointsSpent)
		})
	}
}

func (s *AdapterTestSuite) TestValidateAbilityScoresUnknownMethod() {
	out, err := s.adapter.ValidateAbilityScores(s.ctx, &engine.ValidateAbilityScoresInput{Method: "4d6"})
	s.Require().NoError(err)
	s.False(out.IsValid)
	s.Require().Len(out.Errors, 1)
	s.Equal("ability_method", out.Errors[0].Field)

	_, err = s.adapter.ValidateAbilityScores(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestRollAbilityScoresDropsLowest() {
	s.roller.results = [][]int{
		{3, 6, 2, 5},
		{1, 1, 1, 1},
		{6, 6, 6, 6},
		{4, 3, 2, 1},
		{2, 5, 5, 2},
		{6, 1, 6, 1},
	}

	out, err := s.adapter.RollAbilityScores(s.ctx, &engine.RollAbilityScoresInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 6)

	s.Equal(engine.AbilityRoll{Dice: []int{3, 6, 2, 5}, Dropped: 2, Total: 14}, out.Rolls[0])
	s.Equal([]int{14, 3, 18, 9, 12, 13}, out.Pool())
	s.Equal(6, s.roller.calls)
}

func (s *AdapterTestSuite) TestRollAbilityScoresRollerFailure() {
	s.roller.err = fmt.Errorf("entropy exhausted")

	_, err := s.adapter.RollAbilityScores(s.ctx, &engine.RollAbilityScoresInput{})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *AdapterTestSuite) TestRollAbilityScoresRejectsImpossibleDice() {
	s.roller.results = [][]int{{7, 1, 1, 1}}

	_, err := s.adapter.RollAbilityScores(s.ctx, &engine.RollAbilityScoresInput{})
	s.True(errors.IsInternal(err))
}

func (s *AdapterTestSuite) TestValidateSkillChoices() {
	testCases := []struct {
		name   string
		input  *engine.ValidateSkillChoicesInput
		valid  bool
		code   string
		skills []string
	}{
		{
			name: "class picks plus background grant",
			input: &engine.ValidateSkillChoicesInput{
				Class: "fighter", Background: "Acolyte", Skills: []string{"athletics", "Perception"},
			},
			valid:  true,
			skills: []string{"Athletics", "Perception", "Insight", "Religion"},
		},
		{
			name: "background skill does not use a pick",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Fighter", Background: "Acolyte", Skills: []string{"Insight", "Athletics", "Survival"},
			},
			valid:  true,
			skills: []string{"Insight", "Athletics", "Survival", "Religion"},
		},
		{
			name: "duplicates collapse",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Fighter", Skills: []string{"Athletics", "athletics"},
			},
			valid:  true,
			skills: []string{"Athletics"},
		},
		{
			name: "skill outside class list",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Fighter", Skills: []string{"Arcana"},
			},
			code: engine.CodeSkillNotAllowed,
		},
		{
			name: "too many picks",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Fighter", Skills: []string{"Athletics", "Perception", "Survival"},
			},
			code: engine.CodeTooManySkills,
		},
		{
			name: "unknown skill",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Fighter", Skills: []string{"Flying"},
			},
			code: engine.CodeUnknownSkill,
		},
		{
			name: "unknown class has no picks",
			input: &engine.ValidateSkillChoicesInput{
				Class: "Gunslinger", Skills: []string{"Athletics"},
			},
			code: engine.CodeSkillNotAllowed,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.adapter.ValidateSkillChoices(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.valid, out.IsValid, "%+v", out.Errors)
			if tc.valid {
				s.Equal(tc.skills, out.Skills)
				return
			}
			codes := make([]string, 0, len(out.Errors))
			for _, e := range out.Errors {
				codes = append(codes, e.Code)
			}
			s.Contains(codes, tc.code)
		})
	}
}

func (s *AdapterTestSuite) TestValidateSpellSelection() {
	testCases := []struct {
		name  string
		input *engine.ValidateSpellSelectionInput
		valid bool
		code  string
	}{
		{
			name:  "no selection",
			input: &engine.ValidateSpellSelectionInput{Class: "Wizard", Level: 1},
			valid: true,
		},
		{
			name: "wizard cantrips at limit",
			input: &engine.ValidateSpellSelectionInput{Class: "Wizard", Level: 1, Spells: &dnd5e.SpellSelection{
				Cantrips: []string{"Fire Bolt", "Light", "Mage Hand"},
				Known:    []string{"Magic Missile", "Shield", "Sleep", "Detect Magic", "Mage Armor", "Find Familiar"},
				Prepared: []string{"Magic Missile"},
			}},
			valid: true,
		},
		{
			name: "wizard one cantrip too many",
			input: &engine.ValidateSpellSelectionInput{Class: "Wizard", Level: 1, Spells: &dnd5e.SpellSelection{
				Cantrips: []string{"Fire Bolt", "Light", "Mage Hand", "Prestidigitation"},
			}},
			code: engine.CodeTooManyCantrips,
		},
		{
			name: "sorcerer knows two at level one",
			input: &engine.ValidateSpellSelectionInput{Class: "Sorcerer", Level: 1, Spells: &dnd5e.SpellSelection{
				Known: []string{"Magic Missile", "Shield", "Sleep"},
			}},
			code: engine.CodeTooManySpells,
		},
		{
			name: "known caster prepares only known spells",
			input: &engine.ValidateSpellSelectionInput{Class: "Sorcerer", Level: 1, Spells: &dnd5e.SpellSelection{
				Known:    []string{"Magic Missile"},
				Prepared: []string{"Shield"},
			}},
			code: engine.CodePreparedNotKnown,
		},
		{
			name: "duplicate spell",
			input: &engine.ValidateSpellSelectionInput{Class: "Bard", Level: 3, Spells: &dnd5e.SpellSelection{
				Known: []string{"Healing Word", "healing word"},
			}},
			code: engine.CodeDuplicateSpell,
		},
		{
			name: "fighter cannot cast",
			input: &engine.ValidateSpellSelectionInput{Class: "Fighter", Level: 3, Spells: &dnd5e.SpellSelection{
				Cantrips: []string{"Light"},
			}},
			code: engine.CodeNotASpellcaster,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.adapter.ValidateSpellSelection(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.valid, out.IsValid, "%+v", out.Errors)
			if !tc.valid {
				s.Require().NotEmpty(out.Errors)
				s.Equal(tc.code, out.Errors[0].Code)
			}
		})
	}

	_, err := s.adapter.ValidateSpellSelection(s.ctx, &engine.ValidateSpellSelectionInput{Class: "Wizard", Level: 21})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestCalculateCombatStats() {
	draft := s.fighter()
	draft.AddSkill("Perception")

	out, err := s.adapter.CalculateCombatStats(s.ctx, &engine.CalculateCombatStatsInput{Draft: draft})
	s.Require().NoError(err)

	s.Equal(11, out.Stats.ArmorClass)
	s.Equal(12, out.Stats.HitPoints.Max)
	s.Equal(2, out.Stats.ProficiencyBonus)
	s.Equal(1, out.Stats.Initiative)
	s.Equal(12, out.Stats.PassivePerception)
	s.Equal(4, out.Stats.SavingThrows[dnd5e.AbilityStrength])

	_, err = s.adapter.CalculateCombatStats(s.ctx, &engine.CalculateCombatStatsInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestGetSpellcasting() {
	warlock, err := s.adapter.GetSpellcasting(s.ctx, &engine.GetSpellcastingInput{Class: "Warlock", Level: 3})
	s.Require().NoError(err)
	s.Equal("pact", warlock.Progression)
	s.Require().NotNil(warlock.PactSlots)
	s.Equal(dnd5e.PactSlots{SlotLevel: 2, Count: 2}, *warlock.PactSlots)
	s.Equal(dnd5e.SpellSlotTable{2: 2}, warlock.Slots)
	s.Equal(4, warlock.SpellsKnown)

	wizard, err := s.adapter.GetSpellcasting(s.ctx, &engine.GetSpellcastingInput{Class: "wizard", Level: 1})
	s.Require().NoError(err)
	s.Equal(dnd5e.SpellSlotTable{1: 2}, wizard.Slots)
	s.Equal(3, wizard.CantripsKnown)
	s.True(wizard.PreparedCaster)
	s.Nil(wizard.PactSlots)
	s.Equal(1, wizard.MaxSpellLevel)

	paladin, err := s.adapter.GetSpellcasting(s.ctx, &engine.GetSpellcastingInput{Class: "Paladin", Level: 1})
	s.Require().NoError(err)
	s.Empty(paladin.Slots)
	s.Equal(0, paladin.MaxSpellLevel)

	_, err = s.adapter.GetSpellcasting(s.ctx, &engine.GetSpellcastingInput{Class: "Wizard", Level: 0})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestAwardExperience() {
	var published []int
	s.bus.SubscribeFunc(engine.EventExperienceGain, 100, func(_ context.Context, e events.Event) error {
		xp, _ := GetIntContext(e, engine.ContextExperience)
		published = append(published, xp)
		return nil
	})

	draft := s.fighter()
	out, err := s.adapter.AwardExperience(s.ctx, &engine.AwardExperienceInput{Draft: draft, Amount: 900})
	s.Require().NoError(err)

	s.Nil(draft.Advancement, "input draft is not mutated")
	s.Equal(900, out.Draft.Advancement.ExperiencePoints)
	s.Equal(1, out.Draft.Advancement.CurrentLevel)
	s.Equal(3, out.LevelFromXP)
	s.True(out.CanLevelUp)
	s.Equal(2, out.PendingLevels)
	s.Equal(0, out.XPNeeded)
	s.Equal([]int{900}, published)

	_, err = s.adapter.AwardExperience(s.ctx, &engine.AwardExperienceInput{Draft: draft, Amount: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestAwardExperienceClampsAtCap() {
	draft := s.fighter()
	draft.Advancement = &dnd5e.AdvancementState{ExperiencePoints: 350000, CurrentLevel: 19}

	out, err := s.adapter.AwardExperience(s.ctx, &engine.AwardExperienceInput{Draft: draft, Amount: 10000})
	s.Require().NoError(err)
	s.Equal(dnd5e.MaxExperiencePoints, out.Draft.Advancement.ExperiencePoints)
	s.Equal(20, out.LevelFromXP)
	s.Equal(1, out.PendingLevels)
}

func (s *AdapterTestSuite) TestLevelUpGated() {
	var levels []int
	s.bus.SubscribeFunc(engine.EventLevelUp, 100, func(_ context.Context, e events.Event) error {
		level, _ := GetIntContext(e, engine.ContextLevel)
		levels = append(levels, level)
		draft, ok := ExtractDraft(e.Source())
		s.True(ok)
		s.Equal("draft_1", draft.ID)
		return nil
	})

	draft := s.fighter()
	draft.Advancement = &dnd5e.AdvancementState{ExperiencePoints: 300, CurrentLevel: 1}

	out, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, At: 1700000000})
	s.Require().NoError(err)

	s.False(out.Multiclass)
	s.Equal(2, out.Draft.Advancement.CurrentLevel)
	s.Equal(&dnd5e.LevelEntry{
		Level:            2,
		Class:            "Fighter",
		HitPointsGained:  8,
		ExperiencePoints: 300,
		At:               1700000000,
	}, out.Entry)
	s.Len(out.Draft.Advancement.LevelHistory, 1)
	s.Empty(out.Draft.Classes)
	s.Equal([]int{2}, levels)
	s.Equal(1, draft.Advancement.CurrentLevel, "input draft is not mutated")
}

func (s *AdapterTestSuite) TestLevelUpWithoutEnoughXP() {
	draft := s.fighter()

	_, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(300, errors.GetMeta(err)["xp_needed"])
}

func (s *AdapterTestSuite) TestManualLevelUpIgnoresXP() {
	draft := s.fighter()

	out, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, Manual: true})
	s.Require().NoError(err)
	s.Equal(2, out.Draft.Advancement.CurrentLevel)
	s.True(out.Entry.Manual)
	s.Equal(0, out.Draft.Advancement.ExperiencePoints)
}

func (s *AdapterTestSuite) TestLevelUpRequiresClass() {
	draft := dnd5e.NewCharacterDraft("draft_1", "player_1")

	_, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, Manual: true})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, Class: "Wizard", Manual: true})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *AdapterTestSuite) TestMulticlassLevelUp() {
	var added []string
	s.bus.SubscribeFunc(engine.EventClassAdded, 100, func(_ context.Context, e events.Event) error {
		class, _ := GetStringContext(e, engine.ContextClass)
		added = append(added, class)
		return nil
	})

	draft := s.fighter()
	draft.AbilityScores.Intelligence = 13

	out, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, Class: "wizard", Manual: true})
	s.Require().NoError(err)

	s.True(out.Multiclass)
	s.Equal([]dnd5e.ClassLevel{{Name: "Fighter", Level: 1}, {Name: "Wizard", Level: 1}}, out.Draft.Classes)
	s.Equal(2, out.Draft.TotalLevel())
	s.Equal(6, out.Entry.HitPointsGained)
	s.Equal([]string{"Wizard"}, added)

	again, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: out.Draft, Class: "Fighter", Manual: true})
	s.Require().NoError(err)
	s.False(again.Multiclass)
	s.Equal([]dnd5e.ClassLevel{{Name: "Fighter", Level: 2}, {Name: "Wizard", Level: 1}}, again.Draft.Classes)
	s.Equal(3, again.Draft.Advancement.CurrentLevel)
}

func (s *AdapterTestSuite) TestMulticlassPrerequisitesNotMet() {
	draft := s.fighter()

	_, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: draft, Class: "Wizard", Manual: true})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal([]string{"Wizard: INT 13 (have 8)"}, errors.GetMeta(err)["missing"])
}

func (s *AdapterTestSuite) TestCancelledLevelUpIsRejected() {
	s.bus.SubscribeFunc(engine.EventLevelUp, 100, func(_ context.Context, e events.Event) error {
		e.Cancel()
		return nil
	})

	_, err := s.adapter.LevelUp(s.ctx, &engine.LevelUpInput{Draft: s.fighter(), Manual: true})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *AdapterTestSuite) TestCheckMulticlass() {
	draft := s.fighter()

	out, err := s.adapter.CheckMulticlass(s.ctx, &engine.CheckMulticlassInput{Draft: draft, Class: "Wizard"})
	s.Require().NoError(err)
	s.False(out.Eligible)
	s.Equal([]string{"Wizard: INT 13 (have 8)"}, out.Missing)
	s.Contains(out.EligibleClasses, "Fighter")
	s.Contains(out.EligibleClasses, "Barbarian")
	s.NotContains(out.EligibleClasses, "Wizard")

	draft.AbilityScores.Intelligence = 13
	out, err = s.adapter.CheckMulticlass(s.ctx, &engine.CheckMulticlassInput{Draft: draft, Class: "Wizard"})
	s.Require().NoError(err)
	s.True(out.Eligible)
	s.Empty(out.Missing)

	_, err = s.adapter.CheckMulticlass(s.ctx, &engine.CheckMulticlassInput{Draft: draft})
	s.True(errors.IsInvalidArgument(err))
}
