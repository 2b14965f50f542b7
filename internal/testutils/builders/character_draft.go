// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// CharacterDraftBuilder provides a fluent interface for building test CharacterDraft instances
type CharacterDraftBuilder struct {
	draft *dnd5e.CharacterDraft
}

// NewCharacterDraftBuilder creates a new builder with minimal defaults
func NewCharacterDraftBuilder() *CharacterDraftBuilder {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Unix()
	draft := dnd5e.NewCharacterDraft("draft-test-123", "player-test-123")
	draft.Advancement = dnd5e.NewAdvancementState()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return &CharacterDraftBuilder{draft: draft}
}

// WithID sets the draft ID
func (b *CharacterDraftBuilder) WithID(id string) *CharacterDraftBuilder {
	b.draft.ID = id
	return b
}

// WithPlayerID sets the player ID
func (b *CharacterDraftBuilder) WithPlayerID(playerID string) *CharacterDraftBuilder {
	b.draft.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *CharacterDraftBuilder) WithName(name string) *CharacterDraftBuilder {
	b.draft.Name = name
	return b
}

// WithRace sets the race and optionally subrace
func (b *CharacterDraftBuilder) WithRace(race string, subrace ...string) *CharacterDraftBuilder {
	b.draft.Race = race
	if len(subrace) > 0 {
		b.draft.Subrace = subrace[0]
	}
	return b
}

// WithClass sets the primary class
func (b *CharacterDraftBuilder) WithClass(class string) *CharacterDraftBuilder {
	b.draft.Class = class
	return b
}

// WithBackground sets the background
func (b *CharacterDraftBuilder) WithBackground(background string) *CharacterDraftBuilder {
	b.draft.Background = background
	return b
}

// WithAbilityScores sets scores in STR, DEX, CON, INT, WIS, CHA order
func (b *CharacterDraftBuilder) WithAbilityScores(str, dex, con, intel, wis, cha int) *CharacterDraftBuilder {
	b.draft.AbilityScores = dnd5e.AbilityScoresFromValues([6]int{str, dex, con, intel, wis, cha})
	return b
}

// WithRollsPool records a rolled pool and selects the roll method
func (b *CharacterDraftBuilder) WithRollsPool(pool ...int) *CharacterDraftBuilder {
	b.draft.RollsPool = pool
	b.draft.AbilityMethod = "roll"
	return b
}

// WithSkills sets the skill set
func (b *CharacterDraftBuilder) WithSkills(skills ...string) *CharacterDraftBuilder {
	b.draft.SetSkills(skills)
	return b
}

// WithEquipment sets the equipment state
func (b *CharacterDraftBuilder) WithEquipment(state *dnd5e.EquipmentState) *CharacterDraftBuilder {
	b.draft.Equipment = state
	return b
}

// WithExperience sets XP and current level
func (b *CharacterDraftBuilder) WithExperience(xp, level int) *CharacterDraftBuilder {
	b.draft.Advancement.ExperiencePoints = xp
	b.draft.Advancement.CurrentLevel = level
	return b
}

// WithClasses sets the multiclass split
func (b *CharacterDraftBuilder) WithClasses(classes ...dnd5e.ClassLevel) *CharacterDraftBuilder {
	b.draft.Classes = classes
	return b
}

// WithStep sets the wizard step
func (b *CharacterDraftBuilder) WithStep(step dnd5e.CreationStep) *CharacterDraftBuilder {
	b.draft.Step = step
	return b
}

// WithExpiresAt sets the expiry
func (b *CharacterDraftBuilder) WithExpiresAt(t time.Time) *CharacterDraftBuilder {
	b.draft.ExpiresAt = t.Unix()
	return b
}

// AsFighter fills a level 1 human fighter with the standard array
func (b *CharacterDraftBuilder) AsFighter() *CharacterDraftBuilder {
	return b.WithName("Thorin").
		WithRace("Human").
		WithClass("Fighter").
		WithBackground("Acolyte").
		WithAbilityScores(15, 12, 14, 8, 10, 13)
}

// Build returns a copy so one builder can produce several drafts
func (b *CharacterDraftBuilder) Build() *dnd5e.CharacterDraft {
	return b.draft.Clone()
}
