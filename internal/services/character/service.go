// Package character defines the interface for character draft operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/character-builder/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
)

// Service defines the interface for character draft operations
type Service interface {
	// Draft lifecycle
	CreateDraft(ctx context.Context, input *CreateDraftInput) (*CreateDraftOutput, error)
	GetDraft(ctx context.Context, input *GetDraftInput) (*GetDraftOutput, error)
	DeleteDraft(ctx context.Context, input *DeleteDraftInput) (*DeleteDraftOutput, error)

	// Wizard steps
	UpdateIdentity(ctx context.Context, input *UpdateIdentityInput) (*UpdateIdentityOutput, error)
	UpdateAbilityScores(ctx context.Context, input *UpdateAbilityScoresInput) (*UpdateAbilityScoresOutput, error)
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)
	UpdateSkills(ctx context.Context, input *UpdateSkillsInput) (*UpdateSkillsOutput, error)
	UpdateSpells(ctx context.Context, input *UpdateSpellsInput) (*UpdateSpellsOutput, error)

	// Equipment
	InitializeEquipment(ctx context.Context, input *InitializeEquipmentInput) (*InitializeEquipmentOutput, error)
	AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error)
	RemoveEquipment(ctx context.Context, input *RemoveEquipmentInput) (*RemoveEquipmentOutput, error)
	SetEquipped(ctx context.Context, input *SetEquippedInput) (*SetEquippedOutput, error)

	// Derived views
	GetCombatStats(ctx context.Context, input *GetCombatStatsInput) (*GetCombatStatsOutput, error)
	GetSpellcasting(ctx context.Context, input *GetSpellcastingInput) (*GetSpellcastingOutput, error)

	// Advancement
	AwardExperience(ctx context.Context, input *AwardExperienceInput) (*AwardExperienceOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
	ManualLevelUp(ctx context.Context, input *ManualLevelUpInput) (*ManualLevelUpOutput, error)
	CheckMulticlass(ctx context.Context, input *CheckMulticlassInput) (*CheckMulticlassOutput, error)
	AddClass(ctx context.Context, input *AddClassInput) (*AddClassOutput, error)
}

// ValidationWarning is a non-blocking note about a draft
type ValidationWarning struct {
	Field   string
	Message string
	Type    string
}

// Draft lifecycle types

// CreateDraftInput defines the request for creating a draft
type CreateDraftInput struct {
	PlayerID string
	Name     string
}

// CreateDraftOutput defines the response for creating a draft
type CreateDraftOutput struct {
	Draft *dnd5e.CharacterDraft
}

// GetDraftInput looks a draft up by ID, or by player when DraftID is empty
type GetDraftInput struct {
	DraftID  string
	PlayerID string
}

// GetDraftOutput defines the response for getting a draft
type GetDraftOutput struct {
	Draft *dnd5e.CharacterDraft
}

// DeleteDraftInput defines the request for deleting a draft
type DeleteDraftInput struct {
	DraftID string
}

// DeleteDraftOutput defines the response for deleting a draft
type DeleteDraftOutput struct {
	Message string
}

// Wizard step types

// UpdateIdentityInput sets the descriptive choices. Nil fields are left alone.
type UpdateIdentityInput struct {
	DraftID    string
	Name       *string
	Race       *string
	Subrace    *string
	Class      *string
	Background *string
}

// UpdateIdentityOutput defines the response for updating identity
type UpdateIdentityOutput struct {
	Draft    *dnd5e.CharacterDraft
	Warnings []ValidationWarning
}

// UpdateAbilityScoresInput defines the request for setting ability scores
type UpdateAbilityScoresInput struct {
	DraftID       string
	Method        string
	AbilityScores dnd5e.AbilityScores
}

// UpdateAbilityScoresOutput defines the response for setting ability scores
type UpdateAbilityScoresOutput struct {
	Draft       *dnd5e.CharacterDraft
	PointsSpent int
}

// RollAbilityScoresInput defines the request for rolling the pool
type RollAbilityScoresInput struct {
	DraftID string
}

// RollAbilityScoresOutput carries the six rolls and their totals
type RollAbilityScoresOutput struct {
	Draft *dnd5e.CharacterDraft
	Rolls []dicesession.DiceRoll
	Pool  []int
}

// UpdateSkillsInput defines the request for choosing class skills
type UpdateSkillsInput struct {
	DraftID string
	Skills  []string
}

// UpdateSkillsOutput defines the response for choosing skills
type UpdateSkillsOutput struct {
	Draft *dnd5e.CharacterDraft
}

// UpdateSpellsInput defines the request for choosing spells
type UpdateSpellsInput struct {
	DraftID string
	Spells  dnd5e.SpellSelection
}

// UpdateSpellsOutput defines the response for choosing spells
type UpdateSpellsOutput struct {
	Draft *dnd5e.CharacterDraft
}

// Equipment types

// InitializeEquipmentInput defines the request for the starting kit
type InitializeEquipmentInput struct {
	DraftID string
}

// InitializeEquipmentOutput defines the response for the starting kit
type InitializeEquipmentOutput struct {
	Draft *dnd5e.CharacterDraft
}

// AddEquipmentInput buys Quantity units of an item
type AddEquipmentInput struct {
	DraftID      string
	EquipmentRef string
	Quantity     int
}

// AddEquipmentOutput defines the response for buying an item
type AddEquipmentOutput struct {
	Draft *dnd5e.CharacterDraft
}

// RemoveEquipmentInput sells back Quantity units of an item
type RemoveEquipmentInput struct {
	DraftID      string
	EquipmentRef string
	Quantity     int
}

// RemoveEquipmentOutput defines the response for removing an item
type RemoveEquipmentOutput struct {
	Draft *dnd5e.CharacterDraft
}

// SetEquippedInput defines the request for equipping an item
type SetEquippedInput struct {
	DraftID      string
	EquipmentRef string
	Equipped     bool
}

// SetEquippedOutput defines the response for equipping an item
type SetEquippedOutput struct {
	Draft *dnd5e.CharacterDraft
}

// Derived view types

// GetCombatStatsInput defines the request for combat stats
type GetCombatStatsInput struct {
	DraftID string
}

// GetCombatStatsOutput defines the response for combat stats
type GetCombatStatsOutput struct {
	Stats *dnd5e.CombatStats
}

// GetSpellcastingInput asks for a class's casting table. Class defaults to
// the draft's primary class.
type GetSpellcastingInput struct {
	DraftID string
	Class   string
}

// GetSpellcastingOutput is the casting table at the class's level
type GetSpellcastingOutput struct {
	Class          string
	Level          int
	Progression    string
	Slots          dnd5e.SpellSlotTable
	PactSlots      *dnd5e.PactSlots
	CantripsKnown  int
	SpellsKnown    int
	PreparedCaster bool
	MaxSpellLevel  int
}

// Advancement types

// AwardExperienceInput defines the request for granting XP
type AwardExperienceInput struct {
	DraftID string
	Amount  int
}

// AwardExperienceOutput reports the new XP position
type AwardExperienceOutput struct {
	Draft         *dnd5e.CharacterDraft
	LevelFromXP   int
	XPNeeded      int
	CanLevelUp    bool
	PendingLevels int
}

// LevelUpInput gains one level in Class, or the primary class when empty
type LevelUpInput struct {
	DraftID string
	Class   string
}

// LevelUpOutput defines the response for a level gain
type LevelUpOutput struct {
	Draft      *dnd5e.CharacterDraft
	Entry      *dnd5e.LevelEntry
	Multiclass bool
}

// ManualLevelUpInput gains a level without the XP gate
type ManualLevelUpInput struct {
	DraftID string
	Class   string
}

// ManualLevelUpOutput defines the response for a manual level gain
type ManualLevelUpOutput struct {
	Draft      *dnd5e.CharacterDraft
	Entry      *dnd5e.LevelEntry
	Multiclass bool
}

// CheckMulticlassInput defines the request for a prerequisite check
type CheckMulticlassInput struct {
	DraftID string
	Class   string
}

// CheckMulticlassOutput reports unmet prerequisites and the classes open
// to the draft
type CheckMulticlassOutput struct {
	Eligible        bool
	Missing         []string
	EligibleClasses []string
}

// AddClassInput takes a first level in a class the draft does not hold
type AddClassInput struct {
	DraftID string
	Class   string
	// Manual skips the XP gate
	Manual bool
}

// AddClassOutput defines the response for adding a class
type AddClassOutput struct {
	Draft *dnd5e.CharacterDraft
	Entry *dnd5e.LevelEntry
}
