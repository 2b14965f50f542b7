// Package characterdraft persists character drafts
package characterdraft

//go:generate mockgen -destination=mock/mock_repository.go -package=characterdraftmock github.com/KirkDiggler/character-builder/internal/repositories/character_draft Repository

import (
	"context"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// Repository stores drafts. A player owns at most one draft; creating a new
// one replaces the previous draft.
type Repository interface {
	// Create stores the draft, replacing any draft the player already has.
	// Returns errors.InvalidArgument when the draft fails schema validation.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns errors.NotFound for missing or expired drafts
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByPlayerID returns the player's single draft
	GetByPlayerID(ctx context.Context, input GetByPlayerIDInput) (*GetByPlayerIDOutput, error)

	// Update overwrites an existing draft.
	// Returns errors.NotFound if the draft is gone.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a character draft
type CreateInput struct {
	Draft *dnd5e.CharacterDraft
}

// CreateOutput defines the output for creating a character draft
type CreateOutput struct {
	Draft *dnd5e.CharacterDraft
}

// GetInput defines the input for getting a character draft
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character draft
type GetOutput struct {
	Draft *dnd5e.CharacterDraft
}

// GetByPlayerIDInput defines the input for getting a player's draft
type GetByPlayerIDInput struct {
	PlayerID string
}

// GetByPlayerIDOutput defines the output for getting a player's draft
type GetByPlayerIDOutput struct {
	Draft *dnd5e.CharacterDraft
}

// UpdateInput defines the input for updating a character draft
type UpdateInput struct {
	Draft *dnd5e.CharacterDraft
}

// UpdateOutput defines the output for updating a character draft
type UpdateOutput struct {
	Draft *dnd5e.CharacterDraft
}

// DeleteInput defines the input for deleting a character draft
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character draft
type DeleteOutput struct{}
