package testutils

import (
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// Draft stages for testing
const (
	StageIdentityComplete = "identity_complete"
	StageScoresComplete   = "scores_complete"
	StageSkillsComplete   = "skills_complete"

	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Thorin Oakenshield"
)

// CreateTestCharacterDraft creates a fresh draft with every ability at 8
func CreateTestCharacterDraft(playerID string) *dnd5e.CharacterDraft {
	draft := dnd5e.NewCharacterDraft("draft-test-001", playerID)
	draft.Name = "Test Character"
	draft.Advancement = dnd5e.NewAdvancementState()
	return draft
}

// CreateTestCharacterDraftAtStage creates a level 1 human fighter draft
// filled in up to stage
func CreateTestCharacterDraftAtStage(playerID string, stage string) *dnd5e.CharacterDraft {
	draft := CreateTestCharacterDraft(playerID)

	switch stage {
	case StageSkillsComplete:
		draft.Skills = []string{"Athletics", "Perception", "Insight", "Religion"}
		draft.Step = dnd5e.StepSpells
		fallthrough
	case StageScoresComplete:
		draft.AbilityScores = CreateTestAbilityScores()
		draft.AbilityMethod = "standard"
		if draft.Step == dnd5e.StepIdentity {
			draft.Step = dnd5e.StepSkills
		}
		fallthrough
	case StageIdentityComplete:
		draft.Name = TestCharacterName
		draft.Race = "Human"
		draft.Class = "Fighter"
		draft.Background = "Acolyte"
		if draft.Step == dnd5e.StepIdentity {
			draft.Step = dnd5e.StepAbilityScores
		}
	}

	return draft
}

// CreateTestAbilityScores returns the standard array assigned STR first
func CreateTestAbilityScores() dnd5e.AbilityScores {
	return dnd5e.AbilityScoresFromValues([6]int{15, 14, 13, 12, 10, 8})
}
