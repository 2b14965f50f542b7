// Package equipment keeps inventory, purse and carrying load consistent as
// items are added and removed.
//
// Weights are integer tenths of a pound and prices integer copper. Each
// stack records the coins its purchases debited, so an add followed by a
// remove of the same item restores the purse coin for coin.
// Every operation validates before it mutates: a failed add or remove leaves
// the EquipmentState untouched.
package equipment

import (
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

// Carrying capacity multiplier: max load in pounds is strength x 15
const capacityPerStrength = 15

var (
	// ErrInsufficientFunds means the purse cannot cover a purchase
	ErrInsufficientFunds = errors.InvalidArgument("insufficient funds")
	// ErrOverCapacity means the added weight exceeds the carrying maximum
	ErrOverCapacity = errors.InvalidArgument("over carrying capacity")
	// ErrDataIntegrity means a stored equipment reference no longer resolves
	ErrDataIntegrity = errors.New(errors.CodeDataLoss, "equipment reference did not resolve")
)

// ResolveFunc maps an equipment ref to compendium data
type ResolveFunc func(ref string) (*dnd5e.EquipmentData, bool)

// CarryingCapacity returns the load thresholds for a strength score. The
// encumbrance points are exact 2/3 and 5/6 of the maximum.
func CarryingCapacity(strength int) dnd5e.CarryingCapacity {
	maxWeight := float64(strength * capacityPerStrength)
	return dnd5e.CarryingCapacity{
		MaxWeight:           maxWeight,
		EncumberedAt:        maxWeight * 2 / 3,
		HeavilyEncumberedAt: maxWeight * 5 / 6,
	}
}

func maxWeightTenths(strength int) int {
	return strength * capacityPerStrength * 10
}

// Config for the ledger
type Config struct {
	Rules *ruleset.Rules
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	return vb.Build()
}

// Ledger applies inventory mutations
type Ledger struct {
	rules *ruleset.Rules
}

// NewLedger creates a ledger
func NewLedger(cfg *Config) (*Ledger, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Ledger{rules: cfg.Rules}, nil
}

// StartingGold returns the flat per-class gold, 100 for unmapped classes
func (l *Ledger) StartingGold(class string) int {
	return l.rules.StartingGold(class)
}

// Initialize builds the starting state for a class: its equipment grants
// and starting gold. The starting kit is not charged against the purse or
// checked against capacity. A grant that does not resolve is a data
// integrity failure.
func (l *Ledger) Initialize(class string, strength int, resolve ResolveFunc) (*dnd5e.EquipmentState, error) {
	state := &dnd5e.EquipmentState{
		Items:    []dnd5e.InventoryItem{},
		Currency: dnd5e.Currency{GP: l.StartingGold(class)},
	}

	if c, ok := l.rules.Class(class); ok {
		for _, grant := range c.StartingEquipment {
			data, ok := resolve(grant.Ref)
			if !ok {
				return nil, errors.WrapWithCode(ErrDataIntegrity, errors.CodeDataLoss,
					"starting equipment missing from compendium").
					WithMeta("equipment_ref", grant.Ref).
					WithMeta("class", c.Name)
			}
			addToStacks(state, data, max(grant.Quantity, 1))
		}
	}

	l.Refresh(state, strength)
	return state, nil
}

// Refresh recomputes current weight and the strength-derived thresholds
func (l *Ledger) Refresh(state *dnd5e.EquipmentState, strength int) {
	state.CarryingCapacity = CarryingCapacity(strength)
	state.RecomputeWeight()
}

// AddItem buys quantity units of item, debiting the purse and stacking with
// an existing entry of the same ref.
func (l *Ledger) AddItem(state *dnd5e.EquipmentState, item *dnd5e.EquipmentData, quantity, strength int) error {
	if item == nil {
		return errors.InvalidArgument("item is required")
	}
	if quantity < 1 {
		return errors.InvalidArgumentf("quantity must be at least 1, got %d", quantity).
			WithMeta("field", "quantity")
	}

	cost := item.Cost.Copper() * quantity
	if state.Currency.TotalCopper() < cost {
		return errors.WrapWithCode(ErrInsufficientFunds, errors.CodeInvalidArgument, "cannot afford "+item.Name).
			WithMeta("field", "currency").
			WithMeta("cost_cp", cost).
			WithMeta("available_cp", state.Currency.TotalCopper())
	}

	newWeight := state.TotalWeightTenths() + item.WeightTenths*quantity
	if newWeight > maxWeightTenths(strength) {
		return errors.WrapWithCode(ErrOverCapacity, errors.CodeInvalidArgument, "cannot carry "+item.Name).
			WithMeta("field", "carrying_capacity").
			WithMeta("weight_lb", float64(newWeight)/10).
			WithMeta("max_lb", float64(maxWeightTenths(strength))/10)
	}

	paid := pay(&state.Currency, item.Cost, quantity)
	idx := addToStacks(state, item, quantity)
	state.Items[idx].Purchased += quantity
	state.Items[idx].Paid = state.Items[idx].Paid.Plus(paid)
	l.Refresh(state, strength)
	return nil
}

// RemoveItem drops quantity units of ref. Purchased units go first and are
// refunded; granted units are returned for nothing. Removing every
// purchased unit gives back the exact coins they debited when the purse
// still holds the change, otherwise the value is refunded in the item's
// own denomination. The last unit removes the entry.
func (l *Ledger) RemoveItem(state *dnd5e.EquipmentState, ref string, quantity, strength int) error {
	if quantity < 1 {
		return errors.InvalidArgumentf("quantity must be at least 1, got %d", quantity).
			WithMeta("field", "quantity")
	}
	idx, ok := state.FindItem(ref)
	if !ok {
		return errors.NotFoundf("equipment %s not in inventory", ref)
	}
	held := state.Items[idx]
	if quantity > held.Quantity {
		return errors.InvalidArgumentf("cannot remove %d %s, holding %d", quantity, held.Name, held.Quantity).
			WithMeta("field", "quantity")
	}

	refund(state, idx, min(quantity, held.Purchased))
	if quantity == held.Quantity {
		state.Items = append(state.Items[:idx], state.Items[idx+1:]...)
	} else {
		state.Items[idx].Quantity -= quantity
	}
	l.Refresh(state, strength)
	return nil
}

// SetEquipped flips the equipped flag on a held stack
func (l *Ledger) SetEquipped(state *dnd5e.EquipmentState, ref string, equipped bool) error {
	idx, ok := state.FindItem(ref)
	if !ok {
		return errors.NotFoundf("equipment %s not in inventory", ref)
	}
	state.Items[idx].Equipped = equipped
	return nil
}

// Rehydrate checks every stored ref still resolves and refreshes cached
// weight, cost and armor data from the compendium.
func (l *Ledger) Rehydrate(state *dnd5e.EquipmentState, strength int, resolve ResolveFunc) error {
	refreshed := make([]dnd5e.InventoryItem, len(state.Items))
	for i, item := range state.Items {
		data, ok := resolve(item.EquipmentRef)
		if !ok {
			return errors.WrapWithCode(ErrDataIntegrity, errors.CodeDataLoss, "stored equipment missing from compendium").
				WithMeta("equipment_ref", item.EquipmentRef)
		}
		next := data.ToInventoryItem(item.Quantity)
		next.Equipped = item.Equipped
		next.Purchased = item.Purchased
		next.Paid = item.Paid
		refreshed[i] = next
	}
	state.Items = refreshed
	l.Refresh(state, strength)
	return nil
}

// addToStacks returns the index of the stack that received the units
func addToStacks(state *dnd5e.EquipmentState, item *dnd5e.EquipmentData, quantity int) int {
	if idx, ok := state.FindItem(item.Ref); ok {
		state.Items[idx].Quantity += quantity
		return idx
	}
	state.Items = append(state.Items, item.ToInventoryItem(quantity))
	return len(state.Items) - 1
}

// refund credits the purse for that many purchased units of stack idx
func refund(state *dnd5e.EquipmentState, idx, units int) {
	if units == 0 {
		return
	}
	stack := &state.Items[idx]
	if units == stack.Purchased {
		if restored := state.Currency.Plus(stack.Paid); restored.Valid() {
			state.Currency = restored
			stack.Purchased = 0
			stack.Paid = dnd5e.Currency{}
			return
		}
	}

	coins := stack.Cost.Quantity * units
	state.Currency.Adjust(stack.Cost.Unit, coins)
	stack.Paid.Adjust(stack.Cost.Unit, -coins)
	stack.Purchased -= units
	if stack.Purchased == 0 {
		stack.Paid = dnd5e.Currency{}
	}
}

// denominations from most to least valuable
var denominations = []dnd5e.CurrencyUnit{
	dnd5e.CurrencyPlatinum,
	dnd5e.CurrencyGold,
	dnd5e.CurrencyElectrum,
	dnd5e.CurrencySilver,
	dnd5e.CurrencyCopper,
}

// changeDenominations are used when breaking a coin
var changeDenominations = []dnd5e.CurrencyUnit{
	dnd5e.CurrencyGold,
	dnd5e.CurrencySilver,
	dnd5e.CurrencyCopper,
}

// pay debits the purse and returns the coins it took, change counted as
// negative. Coins of the price's own denomination are spent first; when
// they run short the total is paid by value with change. The caller has
// already checked the purse covers the price.
func pay(c *dnd5e.Currency, price dnd5e.Coins, quantity int) dnd5e.Currency {
	before := *c
	debit(c, price, quantity)
	return before.Minus(*c)
}

func debit(c *dnd5e.Currency, price dnd5e.Coins, quantity int) {
	coins := price.Quantity * quantity
	if c.Amount(price.Unit) >= coins {
		c.Adjust(price.Unit, -coins)
		return
	}

	remaining := price.Copper() * quantity
	for _, u := range denominations {
		use := min(c.Amount(u), remaining/u.CopperValue())
		c.Adjust(u, -use)
		remaining -= use * u.CopperValue()
	}
	if remaining == 0 {
		return
	}

	// Every coin left is worth more than what is owed; break the smallest.
	for i := len(denominations) - 1; i >= 0; i-- {
		u := denominations[i]
		if c.Amount(u) == 0 {
			continue
		}
		c.Adjust(u, -1)
		change := u.CopperValue() - remaining
		for _, cu := range changeDenominations {
			n := change / cu.CopperValue()
			c.Adjust(cu, n)
			change -= n * cu.CopperValue()
		}
		return
	}
}
