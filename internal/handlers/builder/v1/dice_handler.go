package v1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler implements DiceServer
type DiceHandler struct {
	diceService dice.Service
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
	}, nil
}

var _ DiceServer = (*DiceHandler)(nil)

type sessionRequest struct {
	EntityID    string `json:"entity_id"`
	Context     string `json:"context"`
	Notation    string `json:"notation"`
	Description string `json:"description"`
}

type sessionResponse struct {
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	CreatedAt int64                  `json:"created_at,omitempty"`
	ExpiresAt int64                  `json:"expires_at"`
}

func (h *DiceHandler) sessionRequest(req *structpb.Struct) (*sessionRequest, error) {
	var in sessionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.EntityID == "" {
		return nil, errors.InvalidArgument("entity_id is required")
	}
	if in.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}
	return &in, nil
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (h *DiceHandler) RollDice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.sessionRequest(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Notation == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	out, err := h.diceService.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    in.EntityID,
		Context:     in.Context,
		Notation:    in.Notation,
		Description: in.Description,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(sessionResponse{
		Rolls:     out.Session.Rolls,
		ExpiresAt: out.Session.ExpiresAt.Unix(),
	}, nil)
}

// GetRollSession retrieves an existing dice roll session
func (h *DiceHandler) GetRollSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.sessionRequest(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.GetRollSession(ctx, &dice.GetRollSessionInput{
		EntityID: in.EntityID,
		Context:  in.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(sessionResponse{
		Rolls:     out.Session.Rolls,
		CreatedAt: out.Session.CreatedAt.Unix(),
		ExpiresAt: out.Session.ExpiresAt.Unix(),
	}, nil)
}

// ClearRollSession removes a dice roll session
func (h *DiceHandler) ClearRollSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.sessionRequest(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.diceService.ClearRollSession(ctx, &dice.ClearRollSessionInput{
		EntityID: in.EntityID,
		Context:  in.Context,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"message":       "roll session cleared",
		"rolls_cleared": out.RollsDeleted,
	}, nil)
}
