package character

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/equipment"
	"github.com/KirkDiggler/character-builder/internal/services/character"
)

// InitializeEquipment grants the class's starting kit and gold
func (o *Orchestrator) InitializeEquipment(
	ctx context.Context,
	input *character.InitializeEquipmentInput,
) (*character.InitializeEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	draft, err := o.loadDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}
	if draft.Class == "" {
		return nil, errors.FailedPrecondition("choose a class before equipment")
	}
	if draft.Equipment != nil {
		return nil, errors.FailedPrecondition("equipment already initialized")
	}

	var refs []string
	if class, ok := o.rules.Class(draft.Class); ok {
		for _, grant := range class.StartingEquipment {
			refs = append(refs, grant.Ref)
		}
	}
	resolve, err := o.resolveRefs(ctx, refs)
	if err != nil {
		return nil, err
	}

	state, err := o.ledger.Initialize(draft.Class, draft.AbilityScores.Strength, resolve)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize equipment")
	}

	draft.Equipment = state
	advanceStep(draft, dnd5e.StepEquipment)

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.InitializeEquipmentOutput{Draft: saved}, nil
}

// AddEquipment buys items out of the draft's purse
func (o *Orchestrator) AddEquipment(
	ctx context.Context,
	input *character.AddEquipmentInput,
) (*character.AddEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EquipmentRef == "" {
		return nil, errors.InvalidArgument("equipment ref is required")
	}

	draft, err := o.loadEquippedDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	item, err := o.externalClient.GetEquipment(ctx, input.EquipmentRef)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up equipment %s", input.EquipmentRef)
	}

	if err := o.rehydrate(ctx, draft); err != nil {
		return nil, err
	}

	err = o.ledger.AddItem(draft.Equipment, item, quantityOrOne(input.Quantity), draft.AbilityScores.Strength)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add equipment")
	}

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("equipment added",
		zap.String("draft_id", draft.ID),
		zap.String("equipment_ref", item.Ref),
		zap.Int("quantity", quantityOrOne(input.Quantity)))

	return &character.AddEquipmentOutput{Draft: saved}, nil
}

// RemoveEquipment drops items and refunds their cost
func (o *Orchestrator) RemoveEquipment(
	ctx context.Context,
	input *character.RemoveEquipmentInput,
) (*character.RemoveEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EquipmentRef == "" {
		return nil, errors.InvalidArgument("equipment ref is required")
	}

	draft, err := o.loadEquippedDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	if err := o.rehydrate(ctx, draft); err != nil {
		return nil, err
	}

	err = o.ledger.RemoveItem(draft.Equipment, input.EquipmentRef, quantityOrOne(input.Quantity), draft.AbilityScores.Strength)
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove equipment")
	}

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.RemoveEquipmentOutput{Draft: saved}, nil
}

// SetEquipped marks a held item as worn or wielded
func (o *Orchestrator) SetEquipped(
	ctx context.Context,
	input *character.SetEquippedInput,
) (*character.SetEquippedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EquipmentRef == "" {
		return nil, errors.InvalidArgument("equipment ref is required")
	}

	draft, err := o.loadEquippedDraft(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	if err := o.ledger.SetEquipped(draft.Equipment, input.EquipmentRef, input.Equipped); err != nil {
		return nil, errors.Wrap(err, "failed to set equipped")
	}

	saved, err := o.saveDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	return &character.SetEquippedOutput{Draft: saved}, nil
}

func (o *Orchestrator) loadEquippedDraft(ctx context.Context, draftID string) (*dnd5e.CharacterDraft, error) {
	draft, err := o.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Equipment == nil {
		return nil, errors.FailedPrecondition("equipment not initialized")
	}
	return draft, nil
}

// rehydrate refreshes held items from the compendium before a mutation
func (o *Orchestrator) rehydrate(ctx context.Context, draft *dnd5e.CharacterDraft) error {
	refs := make([]string, 0, len(draft.Equipment.Items))
	for _, item := range draft.Equipment.Items {
		refs = append(refs, item.EquipmentRef)
	}

	resolve, err := o.resolveRefs(ctx, refs)
	if err != nil {
		return err
	}

	if err := o.ledger.Rehydrate(draft.Equipment, draft.AbilityScores.Strength, resolve); err != nil {
		return errors.Wrap(err, "failed to refresh equipment")
	}
	return nil
}

// resolveRefs looks every ref up once so the ledger can resolve without
// I/O. Unknown refs are left out for the ledger to report.
func (o *Orchestrator) resolveRefs(ctx context.Context, refs []string) (equipment.ResolveFunc, error) {
	found := make(map[string]*dnd5e.EquipmentData, len(refs))
	for _, ref := range refs {
		if _, ok := found[ref]; ok {
			continue
		}
		data, err := o.externalClient.GetEquipment(ctx, ref)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to look up equipment %s", ref)
		}
		found[ref] = data
	}

	return func(ref string) (*dnd5e.EquipmentData, bool) {
		data, ok := found[ref]
		return data, ok
	}, nil
}

func quantityOrOne(q int) int {
	if q == 0 {
		return 1
	}
	return q
}
