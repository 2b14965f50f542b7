package v1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
	"github.com/KirkDiggler/character-builder/internal/services/character"
)

// HandlerConfig holds dependencies for the builder handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements CharacterBuilderServer
type Handler struct {
	characterService character.Service
}

// NewHandler creates a new builder handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{characterService: cfg.CharacterService}, nil
}

var _ CharacterBuilderServer = (*Handler)(nil)

// Request shapes

type draftRequest struct {
	DraftID  string `json:"draft_id"`
	PlayerID string `json:"player_id"`
}

type createDraftRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type updateIdentityRequest struct {
	DraftID    string  `json:"draft_id"`
	Name       *string `json:"name"`
	Race       *string `json:"race"`
	Subrace    *string `json:"subrace"`
	Class      *string `json:"class"`
	Background *string `json:"background"`
}

type updateAbilityScoresRequest struct {
	DraftID       string              `json:"draft_id"`
	Method        string              `json:"method"`
	AbilityScores dnd5e.AbilityScores `json:"ability_scores"`
}

type updateSkillsRequest struct {
	DraftID string   `json:"draft_id"`
	Skills  []string `json:"skills"`
}

type updateSpellsRequest struct {
	DraftID string               `json:"draft_id"`
	Spells  dnd5e.SpellSelection `json:"spells"`
}

type equipmentRequest struct {
	DraftID      string `json:"draft_id"`
	EquipmentRef string `json:"equipment_ref"`
	Quantity     int    `json:"quantity"`
	Equipped     bool   `json:"equipped"`
}

type classRequest struct {
	DraftID string `json:"draft_id"`
	Class   string `json:"class"`
	Manual  bool   `json:"manual"`
}

type awardExperienceRequest struct {
	DraftID string `json:"draft_id"`
	Amount  int    `json:"amount"`
}

// Response shapes

type warningView struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type draftResponse struct {
	Draft    *dnd5e.CharacterDraft `json:"draft"`
	Warnings []warningView         `json:"warnings,omitempty"`
}

type levelResponse struct {
	Draft      *dnd5e.CharacterDraft `json:"draft"`
	Entry      *dnd5e.LevelEntry     `json:"entry"`
	Multiclass bool                  `json:"multiclass"`
}

// Draft lifecycle

// CreateDraft starts a new draft
func (h *Handler) CreateDraft(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createDraftRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	out, err := h.characterService.CreateDraft(ctx, &character.CreateDraftInput{
		PlayerID: in.PlayerID,
		Name:     in.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// GetDraft returns a draft by draft_id or player_id
func (h *Handler) GetDraft(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in draftRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" && in.PlayerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id or player_id is required"))
	}

	out, err := h.characterService.GetDraft(ctx, &character.GetDraftInput{
		DraftID:  in.DraftID,
		PlayerID: in.PlayerID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// DeleteDraft removes a draft
func (h *Handler) DeleteDraft(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.draftID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.DeleteDraft(ctx, &character.DeleteDraftInput{DraftID: in})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]string{"message": out.Message}, nil)
}

// Wizard steps

// UpdateIdentity sets the descriptive choices present in the request
func (h *Handler) UpdateIdentity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateIdentityRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}

	out, err := h.characterService.UpdateIdentity(ctx, &character.UpdateIdentityInput{
		DraftID:    in.DraftID,
		Name:       in.Name,
		Race:       in.Race,
		Subrace:    in.Subrace,
		Class:      in.Class,
		Background: in.Background,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	warnings := make([]warningView, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		warnings = append(warnings, warningView{Field: w.Field, Message: w.Message, Type: w.Type})
	}
	return respond(draftResponse{Draft: out.Draft, Warnings: warnings}, nil)
}

// UpdateAbilityScores assigns scores under a generation method
func (h *Handler) UpdateAbilityScores(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateAbilityScoresRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}
	if in.Method == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("method is required"))
	}

	out, err := h.characterService.UpdateAbilityScores(ctx, &character.UpdateAbilityScoresInput{
		DraftID:       in.DraftID,
		Method:        in.Method,
		AbilityScores: in.AbilityScores,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(struct {
		Draft       *dnd5e.CharacterDraft `json:"draft"`
		PointsSpent int                   `json:"points_spent"`
	}{out.Draft, out.PointsSpent}, nil)
}

// RollAbilityScores rolls the draft's pool
func (h *Handler) RollAbilityScores(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	draftID, err := h.draftID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.RollAbilityScores(ctx, &character.RollAbilityScoresInput{DraftID: draftID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(struct {
		Draft *dnd5e.CharacterDraft  `json:"draft"`
		Rolls []dicesession.DiceRoll `json:"rolls"`
		Pool  []int                  `json:"pool"`
	}{out.Draft, out.Rolls, out.Pool}, nil)
}

// UpdateSkills chooses class skills
func (h *Handler) UpdateSkills(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateSkillsRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}

	out, err := h.characterService.UpdateSkills(ctx, &character.UpdateSkillsInput{
		DraftID: in.DraftID,
		Skills:  in.Skills,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// UpdateSpells chooses cantrips and spells
func (h *Handler) UpdateSpells(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateSpellsRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}

	out, err := h.characterService.UpdateSpells(ctx, &character.UpdateSpellsInput{
		DraftID: in.DraftID,
		Spells:  in.Spells,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// Equipment

// InitializeEquipment grants the starting kit
func (h *Handler) InitializeEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	draftID, err := h.draftID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.InitializeEquipment(ctx, &character.InitializeEquipmentInput{DraftID: draftID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// AddEquipment buys an item
func (h *Handler) AddEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.equipmentRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.AddEquipment(ctx, &character.AddEquipmentInput{
		DraftID:      in.DraftID,
		EquipmentRef: in.EquipmentRef,
		Quantity:     in.Quantity,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// RemoveEquipment sells an item back
func (h *Handler) RemoveEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.equipmentRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.RemoveEquipment(ctx, &character.RemoveEquipmentInput{
		DraftID:      in.DraftID,
		EquipmentRef: in.EquipmentRef,
		Quantity:     in.Quantity,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// SetEquipped equips or unequips an item
func (h *Handler) SetEquipped(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.equipmentRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.SetEquipped(ctx, &character.SetEquippedInput{
		DraftID:      in.DraftID,
		EquipmentRef: in.EquipmentRef,
		Equipped:     in.Equipped,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(draftResponse{Draft: out.Draft}, nil)
}

// Derived views

// GetCombatStats returns the derived combat block
func (h *Handler) GetCombatStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	draftID, err := h.draftID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.GetCombatStats(ctx, &character.GetCombatStatsInput{DraftID: draftID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"stats": out.Stats}, nil)
}

// GetSpellcasting returns a class's casting table
func (h *Handler) GetSpellcasting(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in classRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}

	out, err := h.characterService.GetSpellcasting(ctx, &character.GetSpellcastingInput{
		DraftID: in.DraftID,
		Class:   in.Class,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(struct {
		Class          string               `json:"class"`
		Level          int                  `json:"level"`
		Progression    string               `json:"progression"`
		Slots          dnd5e.SpellSlotTable `json:"slots"`
		PactSlots      *dnd5e.PactSlots     `json:"pact_slots,omitempty"`
		CantripsKnown  int                  `json:"cantrips_known"`
		SpellsKnown    int                  `json:"spells_known"`
		PreparedCaster bool                 `json:"prepared_caster"`
		MaxSpellLevel  int                  `json:"max_spell_level"`
	}{
		out.Class, out.Level, out.Progression, out.Slots, out.PactSlots,
		out.CantripsKnown, out.SpellsKnown, out.PreparedCaster, out.MaxSpellLevel,
	}, nil)
}

// Advancement

// AwardExperience grants XP
func (h *Handler) AwardExperience(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in awardExperienceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}

	out, err := h.characterService.AwardExperience(ctx, &character.AwardExperienceInput{
		DraftID: in.DraftID,
		Amount:  in.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(struct {
		Draft         *dnd5e.CharacterDraft `json:"draft"`
		LevelFromXP   int                   `json:"level_from_xp"`
		XPNeeded      int                   `json:"xp_needed"`
		CanLevelUp    bool                  `json:"can_level_up"`
		PendingLevels int                   `json:"pending_levels"`
	}{out.Draft, out.LevelFromXP, out.XPNeeded, out.CanLevelUp, out.PendingLevels}, nil)
}

// LevelUp gains an XP-gated level
func (h *Handler) LevelUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.classRequest(req, false)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.LevelUp(ctx, &character.LevelUpInput{DraftID: in.DraftID, Class: in.Class})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(levelResponse{Draft: out.Draft, Entry: out.Entry, Multiclass: out.Multiclass}, nil)
}

// ManualLevelUp gains a level without the XP gate
func (h *Handler) ManualLevelUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.classRequest(req, false)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.ManualLevelUp(ctx, &character.ManualLevelUpInput{DraftID: in.DraftID, Class: in.Class})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(levelResponse{Draft: out.Draft, Entry: out.Entry, Multiclass: out.Multiclass}, nil)
}

// CheckMulticlass reports prerequisites for a class
func (h *Handler) CheckMulticlass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.classRequest(req, true)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.CheckMulticlass(ctx, &character.CheckMulticlassInput{DraftID: in.DraftID, Class: in.Class})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(struct {
		Eligible        bool     `json:"eligible"`
		Missing         []string `json:"missing"`
		EligibleClasses []string `json:"eligible_classes"`
	}{out.Eligible, nonNil(out.Missing), nonNil(out.EligibleClasses)}, nil)
}

// AddClass multiclasses into a new class
func (h *Handler) AddClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := h.classRequest(req, true)
	if err != nil {
		return nil, err
	}

	out, err := h.characterService.AddClass(ctx, &character.AddClassInput{
		DraftID: in.DraftID,
		Class:   in.Class,
		Manual:  in.Manual,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(levelResponse{Draft: out.Draft, Entry: out.Entry, Multiclass: true}, nil)
}

// Request helpers

func (h *Handler) draftID(req *structpb.Struct) (string, error) {
	var in draftRequest
	if err := decode(req, &in); err != nil {
		return "", errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}
	return in.DraftID, nil
}

func (h *Handler) equipmentRequest(req *structpb.Struct) (*equipmentRequest, error) {
	var in equipmentRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}
	if in.EquipmentRef == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("equipment_ref is required"))
	}
	return &in, nil
}

func (h *Handler) classRequest(req *structpb.Struct, classRequired bool) (*classRequest, error) {
	var in classRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.DraftID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("draft_id is required"))
	}
	if classRequired && in.Class == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("class is required"))
	}
	return &in, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
