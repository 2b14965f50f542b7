// Package dicesession stores rolled dice grouped by entity and purpose, such
// as the six ability-score rolls a draft may assign.
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/character-builder/internal/repositories/dice_session Repository

// DiceSession is a set of rolls owned by one entity for one purpose
type DiceSession struct {
	// EntityID is the owner, usually a draft id
	EntityID string `json:"entity_id"`
	// Context groups related rolls, e.g. "ability_scores"
	Context   string     `json:"context"`
	Rolls     []DiceRoll `json:"rolls"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Totals returns each roll's total in roll order
func (s *DiceSession) Totals() []int {
	totals := make([]int, len(s.Rolls))
	for i, r := range s.Rolls {
		totals[i] = r.Total
	}
	return totals
}

// DiceRoll is one rolled expression
type DiceRoll struct {
	RollID   string `json:"roll_id"`
	Notation string `json:"notation"`
	// Dice are the kept dice
	Dice        []int  `json:"dice"`
	Dropped     []int  `json:"dropped,omitempty"`
	Total       int    `json:"total"`
	Description string `json:"description,omitempty"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new session, replacing one with the same key
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns errors.NotFound for missing or expired sessions
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *DiceSession) error
}
