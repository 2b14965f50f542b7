// Package engine is the rules façade the orchestrators talk to
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/character-builder/internal/engine Engine

import (
	"context"
)

// Engine provides character build validation and progression rules
type Engine interface {
	// Build validation
	ValidateAbilityScores(ctx context.Context, input *ValidateAbilityScoresInput) (*ValidateAbilityScoresOutput, error)
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)
	ValidateSkillChoices(ctx context.Context, input *ValidateSkillChoicesInput) (*ValidateSkillChoicesOutput, error)
	ValidateSpellSelection(
		ctx context.Context,
		input *ValidateSpellSelectionInput,
	) (*ValidateSpellSelectionOutput, error)

	// Derived sheet
	CalculateCombatStats(ctx context.Context, input *CalculateCombatStatsInput) (*CalculateCombatStatsOutput, error)
	GetSpellcasting(ctx context.Context, input *GetSpellcastingInput) (*GetSpellcastingOutput, error)

	// Advancement
	AwardExperience(ctx context.Context, input *AwardExperienceInput) (*AwardExperienceOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
	CheckMulticlass(ctx context.Context, input *CheckMulticlassInput) (*CheckMulticlassOutput, error)

	// Utility methods
	CalculateProficiencyBonus(level int) int
	CalculateAbilityModifier(score int) int
}
