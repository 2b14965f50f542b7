package dnd5e

import "strings"

// CurrencyUnit is a coin denomination
type CurrencyUnit string

// Coin denominations
const (
	CurrencyCopper   CurrencyUnit = "cp"
	CurrencySilver   CurrencyUnit = "sp"
	CurrencyElectrum CurrencyUnit = "ep"
	CurrencyGold     CurrencyUnit = "gp"
	CurrencyPlatinum CurrencyUnit = "pp"
)

// CopperValue returns how many copper pieces one coin of u is worth.
// Unknown units are treated as gold.
func (u CurrencyUnit) CopperValue() int {
	switch u {
	case CurrencyCopper:
		return 1
	case CurrencySilver:
		return 10
	case CurrencyElectrum:
		return 50
	case CurrencyPlatinum:
		return 1000
	default:
		return 100
	}
}

// Coins is a price in a single denomination
type Coins struct {
	Quantity int          `json:"quantity"`
	Unit     CurrencyUnit `json:"unit"`
}

// Copper returns the price in copper pieces
func (c Coins) Copper() int {
	return c.Quantity * c.Unit.CopperValue()
}

// Currency is a purse of coins
type Currency struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// TotalCopper returns the purse value in copper pieces
func (c Currency) TotalCopper() int {
	return c.CP +
		c.SP*CurrencySilver.CopperValue() +
		c.EP*CurrencyElectrum.CopperValue() +
		c.GP*CurrencyGold.CopperValue() +
		c.PP*CurrencyPlatinum.CopperValue()
}

// Amount returns the number of coins held in a denomination
func (c Currency) Amount(u CurrencyUnit) int {
	switch u {
	case CurrencyCopper:
		return c.CP
	case CurrencySilver:
		return c.SP
	case CurrencyElectrum:
		return c.EP
	case CurrencyPlatinum:
		return c.PP
	default:
		return c.GP
	}
}

// Adjust adds delta coins of denomination u
func (c *Currency) Adjust(u CurrencyUnit, delta int) {
	switch u {
	case CurrencyCopper:
		c.CP += delta
	case CurrencySilver:
		c.SP += delta
	case CurrencyElectrum:
		c.EP += delta
	case CurrencyPlatinum:
		c.PP += delta
	default:
		c.GP += delta
	}
}

// Plus returns the denomination-wise sum of two purses
func (c Currency) Plus(o Currency) Currency {
	return Currency{CP: c.CP + o.CP, SP: c.SP + o.SP, EP: c.EP + o.EP, GP: c.GP + o.GP, PP: c.PP + o.PP}
}

// Minus returns the denomination-wise difference c - o
func (c Currency) Minus(o Currency) Currency {
	return Currency{CP: c.CP - o.CP, SP: c.SP - o.SP, EP: c.EP - o.EP, GP: c.GP - o.GP, PP: c.PP - o.PP}
}

// Valid reports whether no denomination is negative
func (c Currency) Valid() bool {
	return c.CP >= 0 && c.SP >= 0 && c.EP >= 0 && c.GP >= 0 && c.PP >= 0
}

// NormalizeRef lowercases and hyphenates an equipment reference so that
// "Chain Mail", "chain_mail" and "chain-mail" name the same item.
func NormalizeRef(ref string) string {
	fields := strings.FieldsFunc(strings.ToLower(ref), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return strings.Join(fields, "-")
}

// ArmorCategory classifies armor when the compendium provides it
type ArmorCategory string

// Armor categories; the empty value means "not armor or unknown"
const (
	ArmorCategoryNone   ArmorCategory = ""
	ArmorCategoryLight  ArmorCategory = "light"
	ArmorCategoryMedium ArmorCategory = "medium"
	ArmorCategoryHeavy  ArmorCategory = "heavy"
	ArmorCategoryShield ArmorCategory = "shield"
)

// InventoryItem is one stack of equipment on the character
type InventoryItem struct {
	EquipmentRef  string        `json:"equipment_ref"`
	Name          string        `json:"name"`
	Quantity      int           `json:"quantity"`
	Equipped      bool          `json:"equipped"`
	WeightTenths  int           `json:"weight_tenths"` // per unit, tenths of a pound
	Cost          Coins         `json:"cost"`          // per unit
	ArmorCategory ArmorCategory `json:"armor_category,omitempty"`
	BaseAC        int           `json:"base_ac,omitempty"`

	// Purchased counts the units bought from the purse; the rest were
	// granted. Paid holds the coins those units actually debited, with
	// change given back recorded as negative amounts.
	Purchased int      `json:"purchased,omitempty"`
	Paid      Currency `json:"paid"`
}

// CarryingCapacity is expressed in pounds
type CarryingCapacity struct {
	CurrentWeight       float64 `json:"current_weight"`
	MaxWeight           float64 `json:"max_weight"`
	EncumberedAt        float64 `json:"encumbered_at"`
	HeavilyEncumberedAt float64 `json:"heavily_encumbered_at"`
}

// EquipmentState is the character's inventory, purse and load
type EquipmentState struct {
	Items            []InventoryItem  `json:"items"`
	Currency         Currency         `json:"currency"`
	CarryingCapacity CarryingCapacity `json:"carrying_capacity"`
}

// FindItem returns the index of the stack holding ref under any spelling
func (e *EquipmentState) FindItem(ref string) (int, bool) {
	key := NormalizeRef(ref)
	for i := range e.Items {
		if NormalizeRef(e.Items[i].EquipmentRef) == key {
			return i, true
		}
	}
	return -1, false
}

// TotalWeightTenths folds item weight times quantity over the inventory
func (e *EquipmentState) TotalWeightTenths() int {
	total := 0
	for _, item := range e.Items {
		total += item.WeightTenths * item.Quantity
	}
	return total
}

// RecomputeWeight refreshes CurrentWeight from the item list
func (e *EquipmentState) RecomputeWeight() {
	e.CarryingCapacity.CurrentWeight = float64(e.TotalWeightTenths()) / 10
}

// EquippedItems returns the equipped stacks
func (e *EquipmentState) EquippedItems() []InventoryItem {
	if e == nil {
		return nil
	}
	var out []InventoryItem
	for _, item := range e.Items {
		if item.Equipped {
			out = append(out, item)
		}
	}
	return out
}

// Clone returns a deep copy
func (e *EquipmentState) Clone() *EquipmentState {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Items = append([]InventoryItem(nil), e.Items...)
	return &clone
}

// EquipmentData is a resolved compendium entry
type EquipmentData struct {
	Ref           string
	Name          string
	Category      string // "weapon", "armor", "gear"
	WeightTenths  int
	Cost          Coins
	ArmorCategory ArmorCategory
	BaseAC        int
}

// ToInventoryItem creates a stack of quantity units from the entry
func (d *EquipmentData) ToInventoryItem(quantity int) InventoryItem {
	return InventoryItem{
		EquipmentRef:  NormalizeRef(d.Ref),
		Name:          d.Name,
		Quantity:      quantity,
		WeightTenths:  d.WeightTenths,
		Cost:          d.Cost,
		ArmorCategory: d.ArmorCategory,
		BaseAC:        d.BaseAC,
	}
}
