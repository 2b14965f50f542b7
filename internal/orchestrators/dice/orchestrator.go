// Package dice implements the dice orchestrator for handling dice roll sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/character-builder/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
)

const (
	// ContextAbilityScores groups the rolls pool for the roll method
	ContextAbilityScores = "ability_scores"

	// DefaultSessionTTL applies when neither the input nor the config sets one
	DefaultSessionTTL = 15 * time.Minute

	// MethodStandard is the only pool method: best three of 4d6
	MethodStandard = "4d6_drop_lowest"

	// AbilityScoreNotation is recorded on each pool roll
	AbilityScoreNotation = "4d6dl1"

	maxDiceCount = 100
	maxDieSize   = 1000
)

// Notation like "2d6", "1d20" or "4d6dl1" (drop lowest one)
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:dl(\d+))?$`)

// Service defines the interface for dice operations
type Service interface {
	// Generic dice rolling
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	// RollAbilityScores replaces the entity's ability score pool with six fresh rolls
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	Engine          engine.Engine
	DiceRoller      dice.Roller
	Logger          *zap.Logger
	SessionTTL      time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	engine          engine.Engine
	roller          dice.Roller
	logger          *zap.Logger
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	logger := logging.OrNop(cfg.Logger)

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		engine:          cfg.Engine,
		roller:          cfg.DiceRoller,
		logger:          logger.Named("dice"),
		sessionTTL:      ttl,
	}, nil
}

// parseDiceNotation parses notation like "2d6" or "4d6dl1"
func parseDiceNotation(notation string) (count, size, dropLowest int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if len(matches) != 4 {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY or XdYdlZ)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if matches[3] != "" {
		dropLowest, err = strconv.Atoi(matches[3])
		if err != nil {
			return 0, 0, 0, errors.InvalidArgumentf("invalid drop count in notation: %s", notation)
		}
	}

	if count <= 0 || size <= 0 {
		return 0, 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > maxDiceCount || size > maxDieSize {
		return 0, 0, 0, errors.InvalidArgumentf("at most %dd%d per roll: %s", maxDiceCount, maxDieSize, notation)
	}
	if dropLowest >= count {
		return 0, 0, 0, errors.InvalidArgumentf("cannot drop %d of %d dice: %s", dropLowest, count, notation)
	}

	return count, size, dropLowest, nil
}

// splitLowest returns kept dice in roll order and the dropped lowest values
func splitLowest(rolled []int, dropLowest int) (kept, dropped []int) {
	if dropLowest <= 0 {
		return append([]int(nil), rolled...), nil
	}
	sorted := slices.Clone(rolled)
	slices.Sort(sorted)
	dropped = sorted[:dropLowest]

	pending := make(map[int]int, dropLowest)
	for _, d := range dropped {
		pending[d]++
	}
	for _, d := range rolled {
		if pending[d] > 0 {
			pending[d]--
			continue
		}
		kept = append(kept, d)
	}
	return kept, dropped
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	count, size, dropLowest, err := parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	rolled, err := o.roller.RollN(count, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll dice")
	}
	kept, dropped := splitLowest(rolled, dropLowest)

	roll := &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Notation:    input.Notation,
		Dice:        kept,
		Dropped:     dropped,
		Total:       sum(kept),
		Description: input.Description,
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})

	var session *dicesession.DiceSession
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing session")
		}

		ttl := input.TTL
		if ttl == 0 {
			ttl = o.sessionTTL
		}

		createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
			EntityID: input.EntityID,
			Context:  input.Context,
			Rolls:    []dicesession.DiceRoll{*roll},
			TTL:      ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create dice session")
		}
		session = createOutput.Session
	} else {
		session = getOutput.Session
		session.Rolls = append(session.Rolls, *roll)

		if err := o.diceSessionRepo.Update(ctx, session); err != nil {
			return nil, errors.Wrap(err, "failed to update dice session")
		}
	}

	o.logger.Info("dice rolled",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.String("notation", input.Notation),
		zap.Int("total", roll.Total),
		zap.String("roll_id", roll.RollID),
	)

	return &RollDiceOutput{
		Roll:    roll,
		Session: session,
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(
	ctx context.Context,
	input *ClearRollSessionInput,
) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	o.logger.Info("dice session cleared",
		zap.String("entity_id", input.EntityID),
		zap.String("context", input.Context),
		zap.Int("rolls_deleted", deleteOutput.RollsDeleted),
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}

// RollAbilityScores rolls the six-value pool and stores it under
// ContextAbilityScores, replacing any earlier pool for the entity
func (o *orchestrator) RollAbilityScores(
	ctx context.Context,
	input *RollAbilityScoresInput,
) (*RollAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Method != "" && input.Method != MethodStandard {
		return nil, errors.InvalidArgumentf("unsupported rolling method: %s", input.Method)
	}

	rolled, err := o.engine.RollAbilityScores(ctx, &engine.RollAbilityScoresInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll ability scores")
	}

	rolls := make([]dicesession.DiceRoll, 0, len(rolled.Rolls))
	for i, r := range rolled.Rolls {
		kept, dropped := splitLowest(r.Dice, 1)
		rolls = append(rolls, dicesession.DiceRoll{
			RollID:      o.idGen.Generate(),
			Notation:    AbilityScoreNotation,
			Dice:        kept,
			Dropped:     dropped,
			Total:       r.Total,
			Description: fmt.Sprintf("Ability Score %d", i+1),
		})
	}

	createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
		EntityID: input.EntityID,
		Context:  ContextAbilityScores,
		Rolls:    rolls,
		TTL:      o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ability score session")
	}

	o.logger.Info("ability scores rolled",
		zap.String("entity_id", input.EntityID),
		zap.Ints("pool", rolled.Pool()),
	)

	return &RollAbilityScoresOutput{
		Rolls:   rolls,
		Session: createOutput.Session,
		Pool:    rolled.Pool(),
	}, nil
}
