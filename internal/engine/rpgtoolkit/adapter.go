// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
	"github.com/KirkDiggler/character-builder/internal/rules/abilities"
	"github.com/KirkDiggler/character-builder/internal/rules/combat"
	"github.com/KirkDiggler/character-builder/internal/rules/multiclass"
	"github.com/KirkDiggler/character-builder/internal/rules/progression"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
	"github.com/KirkDiggler/character-builder/internal/rules/spells"
)

const (
	abilityDice     = 4
	abilityDieSides = 6
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	eventBus   events.EventBus
	diceRoller dice.Roller
	rules      *ruleset.Rules
	logger     *zap.Logger

	validator   *abilities.Validator
	calculator  *combat.Calculator
	spells      *spells.Table
	progression *progression.Engine
	multiclass  *multiclass.Checker
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	EventBus   events.EventBus
	DiceRoller dice.Roller
	Rules      *ruleset.Rules
	// ManualMinScore is the lowest score the manual method accepts, zero for the default
	ManualMinScore int
	Logger         *zap.Logger
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	if c.Rules == nil {
		return errors.InvalidArgument("rules are required")
	}
	if c.ManualMinScore < 0 || c.ManualMinScore > abilities.ManualMaxScore {
		return errors.InvalidArgumentf("manual min score must be between 0 and %d", abilities.ManualMaxScore)
	}
	return nil
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	calculator, err := combat.NewCalculator(&combat.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create combat calculator")
	}
	table, err := spells.NewTable(&spells.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create spell table")
	}
	xp, err := progression.NewEngine(&progression.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression engine")
	}
	checker, err := multiclass.NewChecker(&multiclass.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create multiclass checker")
	}

	logger := logging.OrNop(cfg.Logger)

	return &Adapter{
		eventBus:    cfg.EventBus,
		diceRoller:  cfg.DiceRoller,
		rules:       cfg.Rules,
		logger:      logger,
		validator:   abilities.NewValidator(&abilities.Config{ManualMinScore: cfg.ManualMinScore}),
		calculator:  calculator,
		spells:      table,
		progression: xp,
		multiclass:  checker,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// CalculateAbilityModifier calculates the D&D 5e ability modifier for a given score
func (a *Adapter) CalculateAbilityModifier(score int) int {
	return dnd5e.Modifier(score)
}

// CalculateProficiencyBonus calculates the D&D 5e proficiency bonus for a given level
func (a *Adapter) CalculateProficiencyBonus(level int) int {
	if level <= 0 {
		return 0
	}
	return combat.ProficiencyBonus(level)
}

// ValidateAbilityScores checks the six scores against the generation method
func (a *Adapter) ValidateAbilityScores(
	_ context.Context,
	input *engine.ValidateAbilityScoresInput,
) (*engine.ValidateAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	method, ok := abilities.ParseMethod(input.Method)
	if !ok {
		return &engine.ValidateAbilityScoresOutput{
			Errors: []engine.ValidationError{{
				Field:   "ability_method",
				Message: fmt.Sprintf("unknown method %q", input.Method),
				Code:    engine.CodeInvalidAbilityScores,
			}},
		}, nil
	}

	values := input.AbilityScores.Values()
	reasons := a.validator.Explain(method, values, abilities.ValidationContext{RollsPool: input.RollsPool})

	output := &engine.ValidateAbilityScoresOutput{IsValid: len(reasons) == 0}
	for _, reason := range reasons {
		output.Errors = append(output.Errors, engine.ValidationError{
			Field:   "ability_scores",
			Message: reason,
			Code:    engine.CodeInvalidAbilityScores,
		})
	}

	if method == abilities.MethodPointBuy {
		if cost, err := abilities.TotalCost(values); err == nil {
			output.PointsSpent = cost
		}
	}

	return output, nil
}

// RollAbilityScores rolls six scores, each the best three of 4d6
func (a *Adapter) RollAbilityScores(
	_ context.Context,
	_ *engine.RollAbilityScoresInput,
) (*engine.RollAbilityScoresOutput, error) {
	output := &engine.RollAbilityScoresOutput{
		Rolls: make([]engine.AbilityRoll, 0, abilities.RollPoolSize),
	}

	for i := 0; i < abilities.RollPoolSize; i++ {
		rolled, err := a.diceRoller.RollN(abilityDice, abilityDieSides)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll ability score")
		}
		if len(rolled) != abilityDice {
			return nil, errors.Internalf("expected %d dice, got %d", abilityDice, len(rolled))
		}

		lowest := 0
		total := 0
		for j, die := range rolled {
			if die < 1 || die > abilityDieSides {
				return nil, errors.Internalf("die result %d outside 1-%d", die, abilityDieSides)
			}
			total += die
			if die < rolled[lowest] {
				lowest = j
			}
		}

		output.Rolls = append(output.Rolls, engine.AbilityRoll{
			Dice:    append([]int(nil), rolled...),
			Dropped: rolled[lowest],
			Total:   total - rolled[lowest],
		})
	}

	return output, nil
}

// ValidateSkillChoices checks class picks against the class list and count.
// Background skills are granted and never count against the class pick.
func (a *Adapter) ValidateSkillChoices(
	_ context.Context,
	input *engine.ValidateSkillChoicesInput,
) (*engine.ValidateSkillChoicesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	class, _ := a.rules.Class(input.Class)
	className := class.Name
	if className == "" {
		className = input.Class
	}

	options := make(map[string]bool, len(class.SkillChoices.Options))
	for _, o := range class.SkillChoices.Options {
		options[ruleset.Key(o)] = true
	}
	granted := a.rules.BackgroundSkills(input.Background)
	grantedKeys := make(map[string]bool, len(granted))
	for _, g := range granted {
		grantedKeys[ruleset.Key(g)] = true
	}

	var errs []engine.ValidationError
	seen := make(map[string]bool, len(input.Skills)+len(granted))
	selected := make([]string, 0, len(input.Skills)+len(granted))
	classPicks := 0

	for _, name := range input.Skills {
		skill, ok := a.rules.Skill(name)
		if !ok {
			errs = append(errs, engine.ValidationError{
				Field:   "skills",
				Message: fmt.Sprintf("unknown skill %q", name),
				Code:    engine.CodeUnknownSkill,
			})
			continue
		}
		k := ruleset.Key(skill.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		selected = append(selected, skill.Name)

		if grantedKeys[k] {
			continue
		}
		if !options[k] {
			errs = append(errs, engine.ValidationError{
				Field:   "skills",
				Message: fmt.Sprintf("%s is not a %s skill choice", skill.Name, className),
				Code:    engine.CodeSkillNotAllowed,
			})
		}
		classPicks++
	}

	if classPicks > class.SkillChoices.Count {
		errs = append(errs, engine.ValidationError{
			Field:   "skills",
			Message: fmt.Sprintf("%s chooses %d skills, got %d", className, class.SkillChoices.Count, classPicks),
			Code:    engine.CodeTooManySkills,
		})
	}

	for _, g := range granted {
		if k := ruleset.Key(g); !seen[k] {
			seen[k] = true
			selected = append(selected, g)
		}
	}

	return &engine.ValidateSkillChoicesOutput{
		IsValid: len(errs) == 0,
		Errors:  errs,
		Skills:  selected,
	}, nil
}

// ValidateSpellSelection checks chosen spells against the class's counts
func (a *Adapter) ValidateSpellSelection(
	_ context.Context,
	input *engine.ValidateSpellSelectionInput,
) (*engine.ValidateSpellSelectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Level < dnd5e.MinLevel || input.Level > dnd5e.MaxLevel {
		return nil, errors.InvalidArgumentf("level must be between %d and %d", dnd5e.MinLevel, dnd5e.MaxLevel)
	}

	selection := input.Spells
	if selection == nil {
		return &engine.ValidateSpellSelectionOutput{IsValid: true}, nil
	}

	var errs []engine.ValidationError
	for _, list := range []struct {
		field string
		names []string
	}{
		{"spells.cantrips", selection.Cantrips},
		{"spells.known", selection.Known},
		{"spells.prepared", selection.Prepared},
	} {
		if dup, ok := firstDuplicate(list.names); ok {
			errs = append(errs, engine.ValidationError{
				Field:   list.field,
				Message: fmt.Sprintf("duplicate spell %q", dup),
				Code:    engine.CodeDuplicateSpell,
			})
		}
	}

	total := len(selection.Cantrips) + len(selection.Known) + len(selection.Prepared)
	if a.spells.Progression(input.Class) == ruleset.SpellcastingNone {
		if total > 0 {
			errs = append(errs, engine.ValidationError{
				Field:   "spells",
				Message: fmt.Sprintf("%s does not cast spells", input.Class),
				Code:    engine.CodeNotASpellcaster,
			})
		}
		return &engine.ValidateSpellSelectionOutput{IsValid: len(errs) == 0, Errors: errs}, nil
	}

	if limit := a.spells.CantripsKnown(input.Class, input.Level); len(selection.Cantrips) > limit {
		errs = append(errs, engine.ValidationError{
			Field:   "spells.cantrips",
			Message: fmt.Sprintf("level %d %s knows %d cantrips, got %d", input.Level, input.Class, limit, len(selection.Cantrips)),
			Code:    engine.CodeTooManyCantrips,
		})
	}

	known := a.spells.SpellsKnown(input.Class, input.Level)
	if !known.Prepared {
		if len(selection.Known) > known.Count {
			errs = append(errs, engine.ValidationError{
				Field:   "spells.known",
				Message: fmt.Sprintf("level %d %s knows %d spells, got %d", input.Level, input.Class, known.Count, len(selection.Known)),
				Code:    engine.CodeTooManySpells,
			})
		}
		knownSet := make(map[string]bool, len(selection.Known))
		for _, s := range selection.Known {
			knownSet[ruleset.Key(s)] = true
		}
		for _, s := range selection.Prepared {
			if !knownSet[ruleset.Key(s)] {
				errs = append(errs, engine.ValidationError{
					Field:   "spells.prepared",
					Message: fmt.Sprintf("%q is not a known spell", s),
					Code:    engine.CodePreparedNotKnown,
				})
			}
		}
	}

	return &engine.ValidateSpellSelectionOutput{IsValid: len(errs) == 0, Errors: errs}, nil
}

// CalculateCombatStats derives the combat snapshot for a draft
func (a *Adapter) CalculateCombatStats(
	_ context.Context,
	input *engine.CalculateCombatStatsInput,
) (*engine.CalculateCombatStatsOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.InvalidArgument("draft is required")
	}
	return &engine.CalculateCombatStatsOutput{Stats: a.calculator.Compute(input.Draft)}, nil
}

// GetSpellcasting reports slots and spell counts for a class level
func (a *Adapter) GetSpellcasting(
	_ context.Context,
	input *engine.GetSpellcastingInput,
) (*engine.GetSpellcastingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Level < dnd5e.MinLevel || input.Level > dnd5e.MaxLevel {
		return nil, errors.InvalidArgumentf("level must be between %d and %d", dnd5e.MinLevel, dnd5e.MaxLevel)
	}

	known := a.spells.SpellsKnown(input.Class, input.Level)
	output := &engine.GetSpellcastingOutput{
		Progression:    string(a.spells.Progression(input.Class)),
		Slots:          a.spells.SlotsFor(input.Class, input.Level),
		CantripsKnown:  a.spells.CantripsKnown(input.Class, input.Level),
		SpellsKnown:    known.Count,
		PreparedCaster: known.Prepared,
		MaxSpellLevel:  a.spells.MaxSpellLevel(input.Class, input.Level),
	}
	if pact, ok := a.spells.PactSlots(input.Class, input.Level); ok {
		output.PactSlots = &pact
	}
	return output, nil
}

// AwardExperience adds XP without changing the level
func (a *Adapter) AwardExperience(
	ctx context.Context,
	input *engine.AwardExperienceInput,
) (*engine.AwardExperienceOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.InvalidArgument("draft is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("amount must not be negative")
	}

	draft := input.Draft.Clone()
	state := ensureAdvancement(draft)
	a.progression.AwardXP(state, input.Amount)

	levelFromXP := a.progression.LevelFromXP(state.ExperiencePoints)
	output := &engine.AwardExperienceOutput{
		Draft:         draft,
		LevelFromXP:   levelFromXP,
		XPNeeded:      a.progression.XPNeededForNext(state.ExperiencePoints, state.CurrentLevel),
		CanLevelUp:    a.progression.CanLevelUp(state.ExperiencePoints, state.CurrentLevel),
		PendingLevels: max(0, levelFromXP-state.CurrentLevel),
	}

	if err := a.publish(ctx, engine.EventExperienceGain, draft, map[string]any{
		engine.ContextExperience: state.ExperiencePoints,
		engine.ContextLevel:      state.CurrentLevel,
	}); err != nil {
		return nil, err
	}

	return output, nil
}

// LevelUp gains one level. Gated gains need the XP threshold; manual gains
// skip it. Hit points gained are the class die average plus Con, at least 1.
func (a *Adapter) LevelUp(ctx context.Context, input *engine.LevelUpInput) (*engine.LevelUpOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.InvalidArgument("draft is required")
	}

	draft := input.Draft.Clone()
	target := input.Class
	if target == "" {
		target = draft.PrimaryClass()
	}
	if target == "" {
		return nil, errors.InvalidArgument("class is required")
	}
	if draft.PrimaryClass() == "" {
		return nil, errors.FailedPrecondition("choose a class before levelling up")
	}
	if c, ok := a.rules.Class(target); ok {
		target = c.Name
	}

	held := heldIndex(draft, target)
	isMulticlass := held < 0
	if isMulticlass {
		result := a.multiclass.CheckAll(currentClasses(draft), target, draft.AbilityScores)
		if !result.Met {
			return nil, errors.FailedPreconditionf("multiclass prerequisites not met for %s", target).
				WithMeta("missing", result.Missing)
		}
	}

	gain := progression.LevelGain{
		Class:           target,
		HitPointsGained: max(combat.AverageHitDie(a.rules.HitDie(target))+dnd5e.Modifier(draft.AbilityScores.Constitution), 1),
		At:              input.At,
	}

	state := ensureAdvancement(draft)
	var entry *dnd5e.LevelEntry
	var err error
	if input.Manual {
		entry, err = a.progression.ManualLevelUp(state, gain)
	} else {
		entry, err = a.progression.LevelUp(state, gain)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case isMulticlass:
		if len(draft.Classes) == 0 {
			draft.Classes = []dnd5e.ClassLevel{{Name: draft.Class, Level: entry.Level - 1}}
		}
		draft.Classes = append(draft.Classes, dnd5e.ClassLevel{Name: target, Level: 1})
	case len(draft.Classes) > 0:
		draft.Classes[held].Level++
	}

	eventType := engine.EventLevelUp
	if isMulticlass {
		eventType = engine.EventClassAdded
	}
	if err := a.publish(ctx, eventType, draft, map[string]any{
		engine.ContextLevel:           entry.Level,
		engine.ContextClass:           entry.Class,
		engine.ContextHitPointsGained: entry.HitPointsGained,
		engine.ContextManual:          entry.Manual,
	}); err != nil {
		return nil, err
	}

	a.logger.Debug("level gained",
		zap.String("draft_id", draft.ID),
		zap.String("class", entry.Class),
		zap.Int("level", entry.Level),
		zap.Bool("manual", entry.Manual),
	)

	return &engine.LevelUpOutput{Draft: draft, Entry: entry, Multiclass: isMulticlass}, nil
}

// CheckMulticlass reports whether the draft qualifies for a level in Class
func (a *Adapter) CheckMulticlass(
	_ context.Context,
	input *engine.CheckMulticlassInput,
) (*engine.CheckMulticlassOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.InvalidArgument("draft is required")
	}
	if input.Class == "" {
		return nil, errors.InvalidArgument("class is required")
	}

	result := a.multiclass.CheckAll(currentClasses(input.Draft), input.Class, input.Draft.AbilityScores)
	return &engine.CheckMulticlassOutput{
		Eligible:        result.Met,
		Missing:         result.Missing,
		EligibleClasses: a.multiclass.Eligible(input.Draft.AbilityScores),
	}, nil
}

// publish emits an event with the draft as source. A subscriber may cancel it.
func (a *Adapter) publish(ctx context.Context, eventType string, draft *dnd5e.CharacterDraft, data map[string]any) error {
	event := events.NewGameEvent(eventType, wrapCharacterDraft(draft), nil)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := a.eventBus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	if event.IsCancelled() {
		return errors.FailedPreconditionf("%s was rejected", eventType)
	}
	return nil
}

func ensureAdvancement(draft *dnd5e.CharacterDraft) *dnd5e.AdvancementState {
	if draft.Advancement == nil {
		draft.Advancement = dnd5e.NewAdvancementState()
		draft.Advancement.CurrentLevel = draft.TotalLevel()
	}
	return draft.Advancement
}

// currentClasses lists held classes, treating a single-classed draft as one entry
func currentClasses(draft *dnd5e.CharacterDraft) []dnd5e.ClassLevel {
	if len(draft.Classes) > 0 {
		return draft.Classes
	}
	if draft.Class == "" {
		return nil
	}
	return []dnd5e.ClassLevel{{Name: draft.Class, Level: draft.TotalLevel()}}
}

// heldIndex returns the Classes index of class, 0 for a single-classed
// draft's own class, or -1 when the class is not held
func heldIndex(draft *dnd5e.CharacterDraft, class string) int {
	k := ruleset.Key(class)
	if len(draft.Classes) == 0 {
		if ruleset.Key(draft.Class) == k {
			return 0
		}
		return -1
	}
	for i, cl := range draft.Classes {
		if ruleset.Key(cl.Name) == k {
			return i
		}
	}
	return -1
}

func firstDuplicate(list []string) (string, bool) {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		k := ruleset.Key(s)
		if seen[k] {
			return s, true
		}
		seen[k] = true
	}
	return "", false
}
