package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-builder/internal/clients/external"
	enginemock "github.com/KirkDiggler/character-builder/internal/engine/mock"
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/orchestrators/character"
	dicemock "github.com/KirkDiggler/character-builder/internal/orchestrators/dice/mock"
	"github.com/KirkDiggler/character-builder/internal/pkg/clock"
	"github.com/KirkDiggler/character-builder/internal/pkg/idgen"
	draftrepomock "github.com/KirkDiggler/character-builder/internal/repositories/character_draft/mock"
	"github.com/KirkDiggler/character-builder/internal/rules/equipment"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
	charactersvc "github.com/KirkDiggler/character-builder/internal/services/character"
	"github.com/KirkDiggler/character-builder/internal/testutils/builders"
	"github.com/KirkDiggler/character-builder/internal/testutils/mocks"
)

// EquipmentTestSuite runs the equipment steps against the static compendium
type EquipmentTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockDraftRepo *draftrepomock.MockRepository
	orchestrator  *character.Orchestrator
	ctx           context.Context
}

func TestEquipmentSuite(t *testing.T) {
	suite.Run(t, new(EquipmentTestSuite))
}

func (s *EquipmentTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDraftRepo = draftrepomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	rules := ruleset.MustDefault()
	ledger, err := equipment.NewLedger(&equipment.Config{Rules: rules})
	s.Require().NoError(err)
	compendium, err := external.NewStatic(rules)
	s.Require().NoError(err)

	s.orchestrator, err = character.New(&character.Config{
		CharacterDraftRepo: s.mockDraftRepo,
		DiceService:        dicemock.NewMockService(s.ctrl),
		Engine:             enginemock.NewMockEngine(s.ctrl),
		Rules:              rules,
		Ledger:             ledger,
		ExternalClient:     compendium,
		IDGenerator:        idgen.NewSequential("draft"),
		Clock:              clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
}

func (s *EquipmentTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// equippedFighter returns a fighter holding the starting kit
func (s *EquipmentTestSuite) equippedFighter() *dnd5e.CharacterDraft {
	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").AsFighter().Build()
	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	var saved *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &saved)

	_, err := s.orchestrator.InitializeEquipment(s.ctx, &charactersvc.InitializeEquipmentInput{DraftID: "draft_1"})
	s.Require().NoError(err)
	return saved
}

func (s *EquipmentTestSuite) TestInitializeEquipment() {
	draft := s.equippedFighter()

	s.Equal(125, draft.Equipment.Currency.GP)
	s.Len(draft.Equipment.Items, 5)
	s.Equal(float64(225), draft.Equipment.CarryingCapacity.MaxWeight)
	s.Greater(draft.Equipment.CarryingCapacity.CurrentWeight, float64(0))
	s.Equal(dnd5e.StepReview, draft.Step)

	idx, ok := draft.Equipment.FindItem("handaxe")
	s.Require().True(ok)
	s.Equal(2, draft.Equipment.Items[idx].Quantity)
}

func (s *EquipmentTestSuite) TestInitializeEquipmentTwice() {
	draft := s.equippedFighter()
	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)

	_, err := s.orchestrator.InitializeEquipment(s.ctx, &charactersvc.InitializeEquipmentInput{DraftID: "draft_1"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EquipmentTestSuite) TestAddThenRemoveRoundTrips() {
	draft := s.equippedFighter()
	before := draft.Equipment.Clone()

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	var added *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &added)

	_, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "dagger",
		Quantity:     2,
	})
	s.Require().NoError(err)
	s.Equal(121, added.Equipment.Currency.GP)
	s.Len(added.Equipment.Items, 6)

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, added)
	var removed *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &removed)

	_, err = s.orchestrator.RemoveEquipment(s.ctx, &charactersvc.RemoveEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "dagger",
		Quantity:     2,
	})
	s.Require().NoError(err)
	s.Equal(before, removed.Equipment)
}

func (s *EquipmentTestSuite) TestAddEquipmentFailures() {
	draft := s.equippedFighter()

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	_, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "vorpal-sword",
	})
	s.True(errors.IsNotFound(err))

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	_, err = s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "plate-armor",
	})
	s.True(errors.IsInvalidArgument(err))
	s.Equal("currency", errors.GetMeta(err)["field"])
	s.Equal(125, draft.Equipment.Currency.GP)

	_, err = s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{DraftID: "draft_1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EquipmentTestSuite) TestEquipmentRequiresInitialization() {
	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").AsFighter().Build()
	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)

	_, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "dagger",
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EquipmentTestSuite) TestStaleReferenceIsDataLoss() {
	draft := builders.NewCharacterDraftBuilder().
		WithID("draft_1").
		AsFighter().
		WithEquipment(&dnd5e.EquipmentState{
			Items:    []dnd5e.InventoryItem{{EquipmentRef: "retired-item", Name: "Retired", Quantity: 1}},
			Currency: dnd5e.Currency{GP: 50},
		}).
		Build()
	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)

	_, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "dagger",
	})
	s.True(errors.IsDataLoss(err))
	s.Equal("retired-item", errors.GetMeta(err)["equipment_ref"])
}

func (s *EquipmentTestSuite) TestSetEquipped() {
	draft := s.equippedFighter()
	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	var saved *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &saved)

	_, err := s.orchestrator.SetEquipped(s.ctx, &charactersvc.SetEquippedInput{
		DraftID:      "draft_1",
		EquipmentRef: "shield",
		Equipped:     true,
	})
	s.Require().NoError(err)
	idx, ok := saved.Equipment.FindItem("shield")
	s.Require().True(ok)
	s.True(saved.Equipment.Items[idx].Equipped)

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, saved)
	_, err = s.orchestrator.SetEquipped(s.ctx, &charactersvc.SetEquippedInput{
		DraftID:      "draft_1",
		EquipmentRef: "greataxe",
		Equipped:     true,
	})
	s.True(errors.IsNotFound(err))
}

func (s *EquipmentTestSuite) TestRefSpellingsShareAStack() {
	draft := s.equippedFighter()

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	var added *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &added)

	_, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "Chain Mail",
	})
	s.Require().NoError(err)
	s.Len(added.Equipment.Items, 5)
	idx, ok := added.Equipment.FindItem("chain-mail")
	s.Require().True(ok)
	s.Equal(2, added.Equipment.Items[idx].Quantity)
	s.Equal(50, added.Equipment.Currency.GP)

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, added)
	var removed *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &removed)

	_, err = s.orchestrator.RemoveEquipment(s.ctx, &charactersvc.RemoveEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "chain-mail",
	})
	s.Require().NoError(err)
	s.Equal(dnd5e.Currency{GP: 125}, removed.Equipment.Currency)
	idx, ok = removed.Equipment.FindItem("Chain Mail")
	s.Require().True(ok)
	s.Equal(1, removed.Equipment.Items[idx].Quantity)
}

func (s *EquipmentTestSuite) TestRemovingStartingKitRefundsNothing() {
	draft := s.equippedFighter()

	mocks.ExpectDraftGet(s.ctx, s.mockDraftRepo, draft)
	var removed *dnd5e.CharacterDraft
	mocks.ExpectDraftUpdate(s.ctx, s.mockDraftRepo, &removed)

	_, err := s.orchestrator.RemoveEquipment(s.ctx, &charactersvc.RemoveEquipmentInput{
		DraftID:      "draft_1",
		EquipmentRef: "chain-mail",
	})
	s.Require().NoError(err)
	s.Equal(dnd5e.Currency{GP: 125}, removed.Equipment.Currency)
	s.Len(removed.Equipment.Items, 4)
}
