package dice

import (
	"time"

	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
)

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	EntityID    string
	Context     string
	Notation    string
	Description string
	TTL         time.Duration
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll    *dicesession.DiceRoll
	Session *dicesession.DiceSession
}

// GetRollSessionInput defines the request for getting a roll session
type GetRollSessionInput struct {
	EntityID string
	Context  string
}

// GetRollSessionOutput defines the response for getting a roll session
type GetRollSessionOutput struct {
	Session *dicesession.DiceSession
}

// ClearRollSessionInput defines the request for clearing a roll session
type ClearRollSessionInput struct {
	EntityID string
	Context  string
}

// ClearRollSessionOutput defines the response for clearing a roll session
type ClearRollSessionOutput struct {
	RollsDeleted int
}

// RollAbilityScoresInput defines the request for rolling an ability score pool
type RollAbilityScoresInput struct {
	EntityID string
	// Method must be empty or MethodStandard
	Method string
}

// RollAbilityScoresOutput defines the response for rolling ability scores
type RollAbilityScoresOutput struct {
	Rolls   []dicesession.DiceRoll
	Session *dicesession.DiceSession
	// Pool holds the six totals in roll order
	Pool []int
}
