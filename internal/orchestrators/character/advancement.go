package character

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/engine"
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/services/character"
)

// AwardExperience adds XP. Levels are not gained until LevelUp.
func (o *Orchestrator) AwardExperience(
	ctx context.Context,
	input *character.AwardExperienceInput,
) (*character.AwardExperienceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.AwardExperience(ctx, &engine.AwardExperienceInput{
		Draft:  draft,
		Amount: input.Amount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to award experience")
	}

	saved, err := o.saveDraft(ctx, out.Draft)
	if err != nil {
		return nil, err
	}

	return &character.AwardExperienceOutput{
		Draft:         saved,
		LevelFromXP:   out.LevelFromXP,
		XPNeeded:      out.XPNeeded,
		CanLevelUp:    out.CanLevelUp,
		PendingLevels: out.PendingLevels,
	}, nil
}

// LevelUp gains one level once the draft has the XP for it
func (o *Orchestrator) LevelUp(ctx context.Context, input *character.LevelUpInput) (*character.LevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	out, err := o.gainLevel(ctx, draft, input.Class, false)
	if err != nil {
		return nil, err
	}

	return &character.LevelUpOutput{Draft: out.Draft, Entry: out.Entry, Multiclass: out.Multiclass}, nil
}

// ManualLevelUp gains one level regardless of XP
func (o *Orchestrator) ManualLevelUp(
	ctx context.Context,
	input *character.ManualLevelUpInput,
) (*character.ManualLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	out, err := o.gainLevel(ctx, draft, input.Class, true)
	if err != nil {
		return nil, err
	}

	return &character.ManualLevelUpOutput{Draft: out.Draft, Entry: out.Entry, Multiclass: out.Multiclass}, nil
}

// CheckMulticlass reports whether the draft may take a level in a class
func (o *Orchestrator) CheckMulticlass(
	ctx context.Context,
	input *character.CheckMulticlassInput,
) (*character.CheckMulticlassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Class == "" {
		return nil, errors.InvalidArgument("class is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.CheckMulticlass(ctx, &engine.CheckMulticlassInput{
		Draft: draft,
		Class: o.rules.Normalize(input.Class),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check multiclass")
	}

	return &character.CheckMulticlassOutput{
		Eligible:        out.Eligible,
		Missing:         out.Missing,
		EligibleClasses: out.EligibleClasses,
	}, nil
}

// AddClass takes a first level in a new class. Prerequisites of the new
// class and of every class already held must be met.
func (o *Orchestrator) AddClass(ctx context.Context, input *character.AddClassInput) (*character.AddClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Class == "" {
		return nil, errors.InvalidArgument("class is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Class == "" {
		return nil, errors.FailedPrecondition("choose a class before multiclassing")
	}

	class := o.rules.Normalize(input.Class)
	if _, held := classLevel(draft, class); held {
		return nil, errors.FailedPreconditionf("draft already has levels in %s", class).
			WithMeta("field", "class")
	}

	out, err := o.gainLevel(ctx, draft, class, input.Manual)
	if err != nil {
		return nil, err
	}

	return &character.AddClassOutput{Draft: out.Draft, Entry: out.Entry}, nil
}

func (o *Orchestrator) gainLevel(
	ctx context.Context,
	draft *dnd5e.CharacterDraft,
	class string,
	manual bool,
) (*engine.LevelUpOutput, error) {
	out, err := o.engine.LevelUp(ctx, &engine.LevelUpInput{
		Draft:  draft,
		Class:  class,
		Manual: manual,
		At:     o.clock.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to level up")
	}

	saved, err := o.saveDraft(ctx, out.Draft)
	if err != nil {
		return nil, err
	}

	o.logger.Info("level gained",
		zap.String("draft_id", saved.ID),
		zap.String("class", out.Entry.Class),
		zap.Int("level", out.Entry.Level),
		zap.Bool("manual", manual),
		zap.Bool("multiclass", out.Multiclass))

	return &engine.LevelUpOutput{Draft: saved, Entry: out.Entry, Multiclass: out.Multiclass}, nil
}
