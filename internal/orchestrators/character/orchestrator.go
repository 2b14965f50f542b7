// Package character implements the character draft orchestrator
package character

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/clients/external"
	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/orchestrators/dice"
	"github.com/KirkDiggler/character-builder/internal/pkg/clock"
	"github.com/KirkDiggler/character-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
	draftrepo "github.com/KirkDiggler/character-builder/internal/repositories/character_draft"
	"github.com/KirkDiggler/character-builder/internal/rules/abilities"
	"github.com/KirkDiggler/character-builder/internal/rules/equipment"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
	"github.com/KirkDiggler/character-builder/internal/services/character"
)

// DefaultDraftTTL is how long an untouched draft lives
const DefaultDraftTTL = 24 * time.Hour

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterDraftRepo draftrepo.Repository
	DiceService        dice.Service
	Engine             engine.Engine
	Rules              *ruleset.Rules
	Ledger             *equipment.Ledger
	ExternalClient     external.Client
	IDGenerator        idgen.Generator
	Clock              clock.Clock
	Logger             *zap.Logger
	DraftTTL           time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterDraftRepo == nil {
		vb.RequiredField("CharacterDraftRepo")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Ledger == nil {
		vb.RequiredField("Ledger")
	}
	if c.ExternalClient == nil {
		vb.RequiredField("ExternalClient")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.DraftTTL < 0 {
		vb.Field("DraftTTL", "must not be negative")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterDraftRepo draftrepo.Repository
	diceService        dice.Service
	engine             engine.Engine
	rules              *ruleset.Rules
	ledger             *equipment.Ledger
	externalClient     external.Client
	idGenerator        idgen.Generator
	clock              clock.Clock
	logger             *zap.Logger
	draftTTL           time.Duration
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &Orchestrator{
		characterDraftRepo: cfg.CharacterDraftRepo,
		diceService:        cfg.DiceService,
		engine:             cfg.Engine,
		rules:              cfg.Rules,
		ledger:             cfg.Ledger,
		externalClient:     cfg.ExternalClient,
		idGenerator:        cfg.IDGenerator,
		clock:              cfg.Clock,
		logger:             cfg.Logger,
		draftTTL:           cfg.DraftTTL,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	o.logger = logging.OrNop(o.logger)
	if o.draftTTL == 0 {
		o.draftTTL = DefaultDraftTTL
	}
	o.logger = o.logger.Named("character")

	return o, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// Draft lifecycle methods

// CreateDraft starts a new draft for a player, replacing any draft they had
func (o *Orchestrator) CreateDraft(
	ctx context.Context,
	input *character.CreateDraftInput,
) (*character.CreateDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	draft := dnd5e.NewCharacterDraft(o.idGenerator.Generate(), input.PlayerID)
	draft.Name = strings.TrimSpace(input.Name)
	draft.Advancement = dnd5e.NewAdvancementState()
	draft.CreatedAt = now.Unix()
	draft.UpdatedAt = now.Unix()
	draft.ExpiresAt = now.Add(o.draftTTL).Unix()

	out, err := o.characterDraftRepo.Create(ctx, draftrepo.CreateInput{Draft: draft})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create draft")
	}

	o.logger.Info("draft created",
		zap.String("draft_id", draft.ID),
		zap.String("player_id", draft.PlayerID))

	return &character.CreateDraftOutput{Draft: out.Draft}, nil
}

// GetDraft returns a draft by ID, or the player's draft
func (o *Orchestrator) GetDraft(ctx context.Context, input *character.GetDraftInput) (*character.GetDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.DraftID == "" && input.PlayerID != "" {
		out, err := o.characterDraftRepo.GetByPlayerID(ctx, draftrepo.GetByPlayerIDInput{PlayerID: input.PlayerID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get draft")
		}
		return &character.GetDraftOutput{Draft: out.Draft}, nil
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	return &character.GetDraftOutput{Draft: draft}, nil
}

// DeleteDraft removes a draft and its rolls pool
func (o *Orchestrator) DeleteDraft(
	ctx context.Context,
	input *character.DeleteDraftInput,
) (*character.DeleteDraftOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DraftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	if _, err := o.characterDraftRepo.Delete(ctx, draftrepo.DeleteInput{ID: input.DraftID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete draft")
	}

	// the pool expires on its own; a failed clear only leaves it early
	_, err := o.diceService.ClearRollSession(ctx, &dice.ClearRollSessionInput{
		EntityID: input.DraftID,
		Context:  dice.ContextAbilityScores,
	})
	if err != nil && !errors.IsNotFound(err) {
		o.logger.Warn("failed to clear rolls pool",
			zap.String("draft_id", input.DraftID),
			zap.Error(err))
	}

	return &character.DeleteDraftOutput{Message: "draft deleted"}, nil
}

// Wizard step methods

// UpdateIdentity sets name, race, subrace, class and background. Names are
// stored in the rules tables' spelling. Changing class or background
// clears the choices that depended on it.
func (o *Orchestrator) UpdateIdentity(
	ctx context.Context,
	input *character.UpdateIdentityInput,
) (*character.UpdateIdentityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	warnings := make([]character.ValidationWarning, 0)

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.InvalidArgument("name must not be empty").WithMeta("field", "name")
		}
		draft.Name = name
	}

	if input.Race != nil {
		race := o.rules.Normalize(*input.Race)
		if _, ok := o.rules.Race(race); !ok && race != "" {
			warnings = append(warnings, character.ValidationWarning{
				Field:   "race",
				Message: race + " is not in the race table; speed defaults to 30",
				Type:    "unknown_race",
			})
		}
		if ruleset.Key(race) != ruleset.Key(draft.Race) && draft.Subrace != "" && !o.rules.SubraceOf(race, draft.Subrace) {
			draft.Subrace = ""
		}
		draft.Race = race
	}

	if input.Subrace != nil {
		subrace := o.rules.Normalize(*input.Subrace)
		if subrace != "" && !o.rules.SubraceOf(draft.Race, subrace) {
			return nil, errors.InvalidArgumentf("%s is not a subrace of %s", subrace, draft.Race).
				WithMeta("field", "subrace")
		}
		draft.Subrace = subrace
	}

	if input.Class != nil {
		class := o.rules.Normalize(*input.Class)
		if ruleset.Key(class) != ruleset.Key(draft.Class) {
			if hasLeveled(draft) {
				return nil, errors.FailedPrecondition("class cannot change after gaining levels").
					WithMeta("field", "class")
			}
			if _, ok := o.rules.Class(class); !ok && class != "" {
				warnings = append(warnings, character.ValidationWarning{
					Field:   "class",
					Message: class + " is not in the class table; d8 hit die and 100 gp apply",
					Type:    "unknown_class",
				})
			}
			draft.Class = class
			draft.Spells = nil
			if draft.Equipment != nil {
				draft.Equipment = nil
				warnings = append(warnings, clearedWarning("equipment"))
			}
			if len(draft.Skills) > 0 {
				draft.SetSkills(nil)
				warnings = append(warnings, clearedWarning("skills"))
			}
		}
	}

	if input.Background != nil {
		background := o.rules.Normalize(*input.Background)
		if ruleset.Key(background) != ruleset.Key(draft.Background) {
			draft.Background = background
			if len(draft.Skills) > 0 {
				draft.SetSkills(nil)
				warnings = append(warnings, clearedWarning("skills"))
			}
		}
	}

	if draft.Name != "" && draft.Race != "" && draft.Class != "" && draft.Background != "" {
		advanceStep(draft, dnd5e.StepIdentity)
	}

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.UpdateIdentityOutput{Draft: saved, Warnings: warnings}, nil
}

// UpdateAbilityScores stores scores that are legal for the chosen method.
// The roll method checks against the draft's rolls pool, falling back to
// the dice session when the draft has none recorded.
func (o *Orchestrator) UpdateAbilityScores(
	ctx context.Context,
	input *character.UpdateAbilityScoresInput,
) (*character.UpdateAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	method, ok := abilities.ParseMethod(input.Method)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown ability score method %q", input.Method).
			WithMeta("field", "method")
	}
	if err := input.AbilityScores.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid ability scores")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	var pool []int
	if method == abilities.MethodRoll {
		pool, err = o.rollsPool(ctx, draft)
		if err != nil {
			return nil, err
		}
	}

	validation, err := o.engine.ValidateAbilityScores(ctx, &engine.ValidateAbilityScoresInput{
		Method:        string(method),
		AbilityScores: input.AbilityScores,
		RollsPool:     pool,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate ability scores")
	}
	if !validation.IsValid {
		return nil, errors.Wrapf(rejection(validation.Errors), "ability scores rejected for %s", method)
	}

	draft.AbilityScores = input.AbilityScores
	draft.AbilityMethod = string(method)
	if method == abilities.MethodRoll {
		draft.RollsPool = pool
	}
	if draft.Equipment != nil {
		o.ledger.Refresh(draft.Equipment, draft.AbilityScores.Strength)
	}
	advanceStep(draft, dnd5e.StepAbilityScores)

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.UpdateAbilityScoresOutput{
		Draft:       saved,
		PointsSpent: validation.PointsSpent,
	}, nil
}

// RollAbilityScores rolls a fresh pool for the draft and records it
func (o *Orchestrator) RollAbilityScores(
	ctx context.Context,
	input *character.RollAbilityScoresInput,
) (*character.RollAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	rolled, err := o.diceService.RollAbilityScores(ctx, &dice.RollAbilityScoresInput{
		EntityID: draft.ID,
		Method:   dice.MethodStandard,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll ability scores")
	}

	draft.RollsPool = append([]int(nil), rolled.Pool...)
	draft.AbilityMethod = string(abilities.MethodRoll)

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.RollAbilityScoresOutput{
		Draft: saved,
		Rolls: rolled.Rolls,
		Pool:  rolled.Pool,
	}, nil
}

// UpdateSkills replaces the class skill picks. Background skills are added
// automatically.
func (o *Orchestrator) UpdateSkills(
	ctx context.Context,
	input *character.UpdateSkillsInput,
) (*character.UpdateSkillsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Class == "" {
		return nil, errors.FailedPrecondition("choose a class before skills")
	}

	validation, err := o.engine.ValidateSkillChoices(ctx, &engine.ValidateSkillChoicesInput{
		Class:      draft.Class,
		Background: draft.Background,
		Skills:     input.Skills,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate skills")
	}
	if !validation.IsValid {
		return nil, errors.Wrap(rejection(validation.Errors), "skills rejected")
	}

	draft.SetSkills(validation.Skills)
	advanceStep(draft, dnd5e.StepSkills)

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.UpdateSkillsOutput{Draft: saved}, nil
}

// UpdateSpells replaces the spell selection for the primary class at its
// current level.
func (o *Orchestrator) UpdateSpells(
	ctx context.Context,
	input *character.UpdateSpellsInput,
) (*character.UpdateSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	class := draft.PrimaryClass()
	if class == "" {
		return nil, errors.FailedPrecondition("choose a class before spells")
	}

	selection := &dnd5e.SpellSelection{
		Cantrips: append([]string{}, input.Spells.Cantrips...),
		Known:    append([]string{}, input.Spells.Known...),
		Prepared: append([]string{}, input.Spells.Prepared...),
	}

	level, _ := classLevel(draft, class)
	validation, err := o.engine.ValidateSpellSelection(ctx, &engine.ValidateSpellSelectionInput{
		Class:  class,
		Level:  level,
		Spells: selection,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate spells")
	}
	if !validation.IsValid {
		return nil, errors.Wrap(rejection(validation.Errors), "spells rejected")
	}

	draft.Spells = selection
	advanceStep(draft, dnd5e.StepSpells)

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.UpdateSpellsOutput{Draft: saved}, nil
}

// Derived views

// GetCombatStats derives the combat block from the stored draft
func (o *Orchestrator) GetCombatStats(
	ctx context.Context,
	input *character.GetCombatStatsInput,
) (*character.GetCombatStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.CalculateCombatStats(ctx, &engine.CalculateCombatStatsInput{Draft: draft})
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate combat stats")
	}

	return &character.GetCombatStatsOutput{Stats: out.Stats}, nil
}

// GetSpellcasting returns the casting table for a held class at its level
func (o *Orchestrator) GetSpellcasting(
	ctx context.Context,
	input *character.GetSpellcastingInput,
) (*character.GetSpellcastingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	class := draft.PrimaryClass()
	if input.Class != "" {
		class = o.rules.Normalize(input.Class)
	}
	if class == "" {
		return nil, errors.FailedPrecondition("draft has no class")
	}

	level, held := classLevel(draft, class)
	if !held {
		return nil, errors.FailedPreconditionf("draft has no levels in %s", class)
	}

	out, err := o.engine.GetSpellcasting(ctx, &engine.GetSpellcastingInput{Class: class, Level: level})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get spellcasting")
	}

	return &character.GetSpellcastingOutput{
		Class:          class,
		Level:          level,
		Progression:    out.Progression,
		Slots:          out.Slots,
		PactSlots:      out.PactSlots,
		CantripsKnown:  out.CantripsKnown,
		SpellsKnown:    out.SpellsKnown,
		PreparedCaster: out.PreparedCaster,
		MaxSpellLevel:  out.MaxSpellLevel,
	}, nil
}

// Helper methods

func (o *Orchestrator) loadDraft(ctx context.Context, draftID string) (*dnd5e.CharacterDraft, error) {
	if draftID == "" {
		return nil, errors.InvalidArgument("draft ID is required")
	}

	out, err := o.characterDraftRepo.Get(ctx, draftrepo.GetInput{ID: draftID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get draft")
	}
	return out.Draft, nil
}

// saveDraft stamps the draft and slides its expiry forward
func (o *Orchestrator) saveDraft(ctx context.Context, draft *dnd5e.CharacterDraft) (*dnd5e.CharacterDraft, error) {
	now := o.clock.Now()
	draft.UpdatedAt = now.Unix()
	draft.ExpiresAt = now.Add(o.draftTTL).Unix()

	out, err := o.characterDraftRepo.Update(ctx, draftrepo.UpdateInput{Draft: draft})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update draft")
	}
	return out.Draft, nil
}

// rollsPool returns the pool the roll method draws from
func (o *Orchestrator) rollsPool(ctx context.Context, draft *dnd5e.CharacterDraft) ([]int, error) {
	if len(draft.RollsPool) > 0 {
		return draft.RollsPool, nil
	}

	session, err := o.diceService.GetRollSession(ctx, &dice.GetRollSessionInput{
		EntityID: draft.ID,
		Context:  dice.ContextAbilityScores,
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.FailedPrecondition("roll ability scores before assigning them")
		}
		return nil, errors.Wrap(err, "failed to get rolls pool")
	}
	return session.Session.Totals(), nil
}

// rejection turns rule failures into an InvalidArgument carrying per-field
// messages
func rejection(failures []engine.ValidationError) error {
	vb := errors.NewValidationBuilder()
	for _, f := range failures {
		vb.Field(f.Field, f.Message)
	}
	if !vb.HasErrors() {
		vb.Field("draft", "rejected")
	}
	return vb.Build()
}

func clearedWarning(field string) character.ValidationWarning {
	return character.ValidationWarning{
		Field:   field,
		Message: field + " cleared by identity change",
		Type:    "cleared",
	}
}

var stepOrder = []dnd5e.CreationStep{
	dnd5e.StepIdentity,
	dnd5e.StepAbilityScores,
	dnd5e.StepSkills,
	dnd5e.StepSpells,
	dnd5e.StepEquipment,
	dnd5e.StepReview,
}

func stepIndex(step dnd5e.CreationStep) int {
	for i, s := range stepOrder {
		if s == step {
			return i
		}
	}
	return 0
}

// advanceStep moves the draft past completed. It never moves backwards.
func advanceStep(draft *dnd5e.CharacterDraft, completed dnd5e.CreationStep) {
	next := min(stepIndex(completed)+1, len(stepOrder)-1)
	if stepIndex(draft.Step) < next {
		draft.Step = stepOrder[next]
	}
}

func hasLeveled(draft *dnd5e.CharacterDraft) bool {
	if len(draft.Classes) > 0 {
		return true
	}
	return draft.Advancement != nil && len(draft.Advancement.LevelHistory) > 0
}

// classLevel is the draft's level in class and whether the class is held
func classLevel(draft *dnd5e.CharacterDraft, class string) (int, bool) {
	for _, c := range draft.Classes {
		if ruleset.Key(c.Name) == ruleset.Key(class) {
			return c.Level, true
		}
	}
	if len(draft.Classes) == 0 && ruleset.Key(draft.Class) == ruleset.Key(class) {
		return draft.TotalLevel(), true
	}
	return 0, false
}
