package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/equipment"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

type LedgerTestSuite struct {
	suite.Suite
	rules  *ruleset.Rules
	ledger *equipment.Ledger
	state  *dnd5e.EquipmentState
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.rules = ruleset.MustDefault()
	ledger, err := equipment.NewLedger(&equipment.Config{Rules: s.rules})
	s.Require().NoError(err)
	s.ledger = ledger
	s.state = &dnd5e.EquipmentState{Currency: dnd5e.Currency{GP: 50}}
	s.ledger.Refresh(s.state, 10)
}

func (s *LedgerTestSuite) resolve(ref string) (*dnd5e.EquipmentData, bool) {
	item, ok := s.rules.CatalogItem(ref)
	if !ok {
		return nil, false
	}
	return item.ToEquipmentData(), true
}

func (s *LedgerTestSuite) item(ref string) *dnd5e.EquipmentData {
	data, ok := s.resolve(ref)
	s.Require().True(ok, ref)
	return data
}

func (s *LedgerTestSuite) TestStartingGold() {
	s.Equal(125, s.ledger.StartingGold("Fighter"))
	s.Equal(100, s.ledger.StartingGold("Wizard"))
	s.Equal(100, s.ledger.StartingGold("Unmapped"))
}

func (s *LedgerTestSuite) TestInitializeFighter() {
	state, err := s.ledger.Initialize("fighter", 15, s.resolve)
	s.Require().NoError(err)

	s.Equal(dnd5e.Currency{GP: 125}, state.Currency)
	idx, ok := state.FindItem("handaxe")
	s.Require().True(ok)
	s.Equal(2, state.Items[idx].Quantity)
	s.Equal(float64(state.TotalWeightTenths())/10, state.CarryingCapacity.CurrentWeight)
	s.Equal(225.0, state.CarryingCapacity.MaxWeight)
}

func (s *LedgerTestSuite) TestInitializeUnknownClassOnlyGold() {
	state, err := s.ledger.Initialize("Commoner", 10, s.resolve)
	s.Require().NoError(err)
	s.Empty(state.Items)
	s.Equal(100, state.Currency.GP)
}

func (s *LedgerTestSuite) TestInitializeBrokenReference() {
	_, err := s.ledger.Initialize("Fighter", 15, func(string) (*dnd5e.EquipmentData, bool) { return nil, false })
	s.Require().Error(err)
	s.ErrorIs(err, equipment.ErrDataIntegrity)
	s.True(errors.IsDataLoss(err))
}

func (s *LedgerTestSuite) TestAddStacksAndRemoveDeletesLastUnit() {
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("dagger"), 1, 10))
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("dagger"), 2, 10))
	s.Len(s.state.Items, 1)
	s.Equal(3, s.state.Items[0].Quantity)
	s.Equal(44, s.state.Currency.GP)
	s.Equal(3.0, s.state.CarryingCapacity.CurrentWeight)

	s.Require().NoError(s.ledger.RemoveItem(s.state, "dagger", 2, 10))
	s.Equal(1, s.state.Items[0].Quantity)
	s.Require().NoError(s.ledger.RemoveItem(s.state, "dagger", 1, 10))
	s.Empty(s.state.Items)
	s.Equal(50, s.state.Currency.GP)
	s.Zero(s.state.CarryingCapacity.CurrentWeight)
}

func (s *LedgerTestSuite) TestInsufficientFundsLeavesStateUntouched() {
	before := s.state.Clone()
	err := s.ledger.AddItem(s.state, s.item("plate-armor"), 1, 20)
	s.Require().Error(err)
	s.ErrorIs(err, equipment.ErrInsufficientFunds)
	s.NotErrorIs(err, equipment.ErrOverCapacity)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(before, s.state)
}

func (s *LedgerTestSuite) TestOverCapacityLeavesStateUntouched() {
	s.state.Currency.GP = 5000
	before := s.state.Clone()
	// strength 3 carries 45 lb; chain mail weighs 55
	err := s.ledger.AddItem(s.state, s.item("chain-mail"), 1, 3)
	s.Require().Error(err)
	s.ErrorIs(err, equipment.ErrOverCapacity)
	s.Equal(before, s.state)
}

func (s *LedgerTestSuite) TestRemoveErrors() {
	err := s.ledger.RemoveItem(s.state, "rope-hempen-50-feet", 1, 10)
	s.True(errors.IsNotFound(err))

	s.Require().NoError(s.ledger.AddItem(s.state, s.item("torch"), 1, 10))
	err = s.ledger.RemoveItem(s.state, "torch", 2, 10)
	s.True(errors.IsInvalidArgument(err))

	err = s.ledger.AddItem(s.state, s.item("torch"), 0, 10)
	s.True(errors.IsInvalidArgument(err))
}

func (s *LedgerTestSuite) TestPaysByValueWithChange() {
	s.state.Currency = dnd5e.Currency{GP: 1}
	// a torch costs 1 cp; no copper on hand so a gold piece is broken
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("torch"), 1, 10))
	s.Equal(dnd5e.Currency{GP: 0, SP: 9, CP: 9}, s.state.Currency)
	s.Equal(99, s.state.Currency.TotalCopper())

	s.Require().NoError(s.ledger.RemoveItem(s.state, "torch", 1, 10))
	s.Equal(dnd5e.Currency{GP: 1}, s.state.Currency)
}

func (s *LedgerTestSuite) TestRefundByValueWhenChangeWasSpent() {
	s.state.Currency = dnd5e.Currency{GP: 1}
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("torch"), 1, 10))
	// spend the silver handed back as change
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("club"), 9, 10))
	s.Equal(dnd5e.Currency{CP: 9}, s.state.Currency)

	s.Require().NoError(s.ledger.RemoveItem(s.state, "torch", 1, 10))
	s.Equal(dnd5e.Currency{CP: 10}, s.state.Currency)
}

func (s *LedgerTestSuite) TestGrantedItemsRefundNothing() {
	state, err := s.ledger.Initialize("Fighter", 15, s.resolve)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.RemoveItem(state, "chain-mail", 1, 15))
	s.Equal(dnd5e.Currency{GP: 125}, state.Currency)
	_, ok := state.FindItem("chain-mail")
	s.False(ok)
}

func (s *LedgerTestSuite) TestPurchasedUnitsRefundBeforeGranted() {
	state, err := s.ledger.Initialize("Fighter", 15, s.resolve)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.AddItem(state, s.item("handaxe"), 1, 15))
	s.Equal(120, state.Currency.GP)

	s.Require().NoError(s.ledger.RemoveItem(state, "handaxe", 2, 15))
	s.Equal(dnd5e.Currency{GP: 125}, state.Currency)
	idx, ok := state.FindItem("handaxe")
	s.Require().True(ok)
	s.Equal(1, state.Items[idx].Quantity)
	s.Zero(state.Items[idx].Purchased)
}

func (s *LedgerTestSuite) TestRefsMatchAcrossSpellings() {
	armor := s.item("chain-mail")
	armor.Ref = "Chain Mail"
	s.state.Currency.GP = 200
	s.Require().NoError(s.ledger.AddItem(s.state, armor, 1, 15))
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("chain-mail"), 1, 15))
	s.Require().Len(s.state.Items, 1)
	s.Equal("chain-mail", s.state.Items[0].EquipmentRef)

	s.Require().NoError(s.ledger.SetEquipped(s.state, "CHAIN_MAIL", true))
	s.Require().NoError(s.ledger.RemoveItem(s.state, "chain-mail", 2, 15))
	s.Empty(s.state.Items)
	s.Equal(dnd5e.Currency{GP: 200}, s.state.Currency)
}

func (s *LedgerTestSuite) TestSetEquipped() {
	s.Require().NoError(s.ledger.AddItem(s.state, s.item("leather-armor"), 1, 10))
	s.Require().NoError(s.ledger.SetEquipped(s.state, "leather-armor", true))
	s.Len(s.state.EquippedItems(), 1)
	s.True(errors.IsNotFound(s.ledger.SetEquipped(s.state, "shield", true)))
}

func (s *LedgerTestSuite) TestRehydrate() {
	s.state.Items = []dnd5e.InventoryItem{{EquipmentRef: "longsword", Quantity: 2, Equipped: true}}
	s.Require().NoError(s.ledger.Rehydrate(s.state, 10, s.resolve))
	s.Equal("Longsword", s.state.Items[0].Name)
	s.True(s.state.Items[0].Equipped)
	s.Equal(6.0, s.state.CarryingCapacity.CurrentWeight)

	s.state.Items = append(s.state.Items, dnd5e.InventoryItem{EquipmentRef: "vorpal-sword", Quantity: 1})
	err := s.ledger.Rehydrate(s.state, 10, s.resolve)
	s.True(errors.IsDataLoss(err))
}

func TestCarryingCapacityExactFractions(t *testing.T) {
	capacity := equipment.CarryingCapacity(15)
	assert.Equal(t, 225.0, capacity.MaxWeight)
	assert.Equal(t, 150.0, capacity.EncumberedAt)
	assert.Equal(t, 187.5, capacity.HeavilyEncumberedAt)

	capacity = equipment.CarryingCapacity(10)
	assert.Equal(t, 100.0, capacity.EncumberedAt)
	assert.Equal(t, 125.0, capacity.HeavilyEncumberedAt)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	rules := ruleset.MustDefault()
	ledger, err := equipment.NewLedger(&equipment.Config{Rules: rules})
	if err != nil {
		t.Fatal(err)
	}
	catalog := rules.Catalog()

	rapid.Check(t, func(t *rapid.T) {
		entry := rapid.SampledFrom(catalog).Draw(t, "item")
		quantity := rapid.IntRange(1, 3).Draw(t, "quantity")
		state := &dnd5e.EquipmentState{
			Currency: dnd5e.Currency{
				CP: rapid.IntRange(0, 50).Draw(t, "cp"),
				SP: rapid.IntRange(0, 50).Draw(t, "sp"),
				GP: rapid.IntRange(0, 5000).Draw(t, "gp"),
				PP: rapid.IntRange(0, 5).Draw(t, "pp"),
			},
		}
		ledger.Refresh(state, 20)
		before := state.Clone()

		if err := ledger.AddItem(state, entry.ToEquipmentData(), quantity, 20); err != nil {
			if state.CarryingCapacity != before.CarryingCapacity || state.Currency != before.Currency {
				t.Fatalf("failed add mutated state: %v", err)
			}
			return
		}
		if err := ledger.RemoveItem(state, entry.Ref, quantity, 20); err != nil {
			t.Fatal(err)
		}
		if state.Currency != before.Currency {
			t.Fatalf("purse drifted: %+v -> %+v", before.Currency, state.Currency)
		}
		if state.CarryingCapacity.CurrentWeight != before.CarryingCapacity.CurrentWeight {
			t.Fatalf("weight drifted: %v -> %v", before.CarryingCapacity.CurrentWeight, state.CarryingCapacity.CurrentWeight)
		}
		if len(state.Items) != 0 {
			t.Fatalf("items left behind: %+v", state.Items)
		}
	})
}

func TestRoundTripExactWhenPaidInItemDenomination(t *testing.T) {
	rules := ruleset.MustDefault()
	ledger, err := equipment.NewLedger(&equipment.Config{Rules: rules})
	if err != nil {
		t.Fatal(err)
	}

	rapid.Check(t, func(t *rapid.T) {
		entry := rapid.SampledFrom(rules.Catalog()).Draw(t, "item")
		state := &dnd5e.EquipmentState{Currency: dnd5e.Currency{CP: 2000, SP: 2000, GP: 2000}}
		ledger.Refresh(state, 20)
		before := state.Clone()

		if err := ledger.AddItem(state, entry.ToEquipmentData(), 1, 20); err != nil {
			t.Fatal(err)
		}
		if err := ledger.RemoveItem(state, entry.Ref, 1, 20); err != nil {
			t.Fatal(err)
		}
		if state.Currency != before.Currency {
			t.Fatalf("purse %+v != %+v", state.Currency, before.Currency)
		}
	})
}
