// Package ruleset loads the immutable D&D 5e lookup tables the rules
// packages are built on: classes, races, skills, backgrounds, XP thresholds,
// spell slots and the static equipment catalog.
//
// Tables are parsed once from embedded YAML. Callers receive a *Rules and
// pass it to each calculator through its Config; nothing reads the tables
// as package globals.
package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

//go:embed data/*.yaml
var embedded embed.FS

var (
	defaultOnce  sync.Once
	defaultRules *Rules
	defaultErr   error
)

// Default returns the embedded tables, parsed on first use
func Default() (*Rules, error) {
	defaultOnce.Do(func() {
		defaultRules, defaultErr = Load(embedded)
	})
	return defaultRules, defaultErr
}

// MustDefault is Default for callers that treat a broken embed as fatal
func MustDefault() *Rules {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// SpellcastingType describes how a class gains spell slots
type SpellcastingType string

// Spellcasting progressions
const (
	SpellcastingNone SpellcastingType = "none"
	SpellcastingFull SpellcastingType = "full"
	SpellcastingHalf SpellcastingType = "half"
	SpellcastingPact SpellcastingType = "pact"
)

// SkillChoices is the class skill pick
type SkillChoices struct {
	Count   int      `yaml:"count"`
	Options []string `yaml:"options"`
}

// MulticlassRequirement lists abilities that must reach the multiclass
// minimum. AllOf must all qualify; AnyOf needs at least one.
type MulticlassRequirement struct {
	AllOf []dnd5e.Ability `yaml:"all_of"`
	AnyOf []dnd5e.Ability `yaml:"any_of"`
}

// EquipmentGrant is one starting-equipment line
type EquipmentGrant struct {
	Ref      string `yaml:"ref"`
	Quantity int    `yaml:"quantity"`
}

// Class is one row of the class table
type Class struct {
	Name              string                `yaml:"name"`
	HitDie            int                   `yaml:"hit_die"`
	SavingThrows      []dnd5e.Ability       `yaml:"saving_throws"`
	Spellcasting      SpellcastingType      `yaml:"spellcasting"`
	StartingGold      int                   `yaml:"starting_gold"`
	SkillChoices      SkillChoices          `yaml:"skill_choices"`
	Multiclass        MulticlassRequirement `yaml:"multiclass"`
	CantripsKnown     []int                 `yaml:"cantrips_known"`
	SpellsKnown       []int                 `yaml:"spells_known"`
	Prepared          bool                  `yaml:"prepared"`
	StartingEquipment []EquipmentGrant      `yaml:"starting_equipment"`
}

// Subrace overrides race values when set
type Subrace struct {
	Name  string `yaml:"name"`
	Speed int    `yaml:"speed"`
}

// Race is one row of the race table
type Race struct {
	Name     string    `yaml:"name"`
	Speed    int       `yaml:"speed"`
	Subraces []Subrace `yaml:"subraces"`
}

// Skill pairs a skill with its governing ability
type Skill struct {
	Name    string        `yaml:"name"`
	Ability dnd5e.Ability `yaml:"ability"`
}

// Background grants fixed skill proficiencies
type Background struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// CatalogItem is a static compendium entry
type CatalogItem struct {
	Ref           string              `yaml:"ref"`
	Name          string              `yaml:"name"`
	Category      string              `yaml:"category"`
	Weight        float64             `yaml:"weight"`
	Cost          catalogCost         `yaml:"cost"`
	ArmorCategory dnd5e.ArmorCategory `yaml:"armor_category"`
	BaseAC        int                 `yaml:"base_ac"`
}

type catalogCost struct {
	Quantity int                `yaml:"quantity"`
	Unit     dnd5e.CurrencyUnit `yaml:"unit"`
}

// ToEquipmentData converts pounds to tenths
func (c CatalogItem) ToEquipmentData() *dnd5e.EquipmentData {
	return &dnd5e.EquipmentData{
		Ref:           c.Ref,
		Name:          c.Name,
		Category:      c.Category,
		WeightTenths:  int(math.Round(c.Weight * 10)),
		Cost:          dnd5e.Coins{Quantity: c.Cost.Quantity, Unit: c.Cost.Unit},
		ArmorCategory: c.ArmorCategory,
		BaseAC:        c.BaseAC,
	}
}

type classesFile struct {
	Classes []Class `yaml:"classes"`
}

type racesFile struct {
	DefaultSpeed int    `yaml:"default_speed"`
	Races        []Race `yaml:"races"`
}

type coreFile struct {
	DefaultHitDie       int          `yaml:"default_hit_die"`
	DefaultStartingGold int          `yaml:"default_starting_gold"`
	XPThresholds        []int        `yaml:"xp_thresholds"`
	Skills              []Skill      `yaml:"skills"`
	Backgrounds         []Background `yaml:"backgrounds"`
	FullCasterSlots     [][]int      `yaml:"full_caster_slots"`
}

type equipmentFile struct {
	Equipment []CatalogItem `yaml:"equipment"`
}

// Rules is the read-only table set. Lookups are case-insensitive.
type Rules struct {
	classes      map[string]Class
	classOrder   []string
	races        map[string]Race
	subraces     map[string]subraceRef
	defaultSpeed int

	defaultHitDie       int
	defaultStartingGold int
	xpThresholds        [dnd5e.MaxLevel]int
	skills              []Skill
	skillIndex          map[string]Skill
	backgrounds         map[string]Background
	fullCasterSlots     [dnd5e.MaxLevel][9]int

	catalog      map[string]CatalogItem
	catalogOrder []string
}

type subraceRef struct {
	race    string
	subrace Subrace
}

// Load parses the four table files from fsys (data/*.yaml)
func Load(fsys fs.FS) (*Rules, error) {
	var cf classesFile
	var rf racesFile
	var core coreFile
	var ef equipmentFile

	for name, dst := range map[string]any{
		"data/classes.yaml":   &cf,
		"data/races.yaml":     &rf,
		"data/core.yaml":      &core,
		"data/equipment.yaml": &ef,
	} {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := yaml.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	r := &Rules{
		classes:             make(map[string]Class, len(cf.Classes)),
		races:               make(map[string]Race, len(rf.Races)),
		subraces:            make(map[string]subraceRef),
		defaultSpeed:        rf.DefaultSpeed,
		defaultHitDie:       core.DefaultHitDie,
		defaultStartingGold: core.DefaultStartingGold,
		skills:              core.Skills,
		skillIndex:          make(map[string]Skill, len(core.Skills)),
		backgrounds:         make(map[string]Background, len(core.Backgrounds)),
		catalog:             make(map[string]CatalogItem, len(ef.Equipment)),
	}

	for _, c := range cf.Classes {
		if err := validateClass(c); err != nil {
			return nil, err
		}
		r.classes[Key(c.Name)] = c
		r.classOrder = append(r.classOrder, c.Name)
	}
	for _, race := range rf.Races {
		r.races[Key(race.Name)] = race
		for _, sub := range race.Subraces {
			r.subraces[Key(sub.Name)] = subraceRef{race: race.Name, subrace: sub}
		}
	}
	for _, s := range core.Skills {
		if !s.Ability.IsValid() {
			return nil, fmt.Errorf("skill %s: unknown ability %q", s.Name, s.Ability)
		}
		r.skillIndex[Key(s.Name)] = s
	}
	for _, b := range core.Backgrounds {
		r.backgrounds[Key(b.Name)] = b
	}
	for _, item := range ef.Equipment {
		r.catalog[Key(item.Ref)] = item
		r.catalogOrder = append(r.catalogOrder, item.Ref)
	}

	if len(core.XPThresholds) != dnd5e.MaxLevel {
		return nil, fmt.Errorf("xp_thresholds: want %d entries, got %d", dnd5e.MaxLevel, len(core.XPThresholds))
	}
	copy(r.xpThresholds[:], core.XPThresholds)
	if !sort.IntsAreSorted(core.XPThresholds) {
		return nil, fmt.Errorf("xp_thresholds must be ascending")
	}

	if len(core.FullCasterSlots) != dnd5e.MaxLevel {
		return nil, fmt.Errorf("full_caster_slots: want %d rows, got %d", dnd5e.MaxLevel, len(core.FullCasterSlots))
	}
	for i, row := range core.FullCasterSlots {
		if len(row) != 9 {
			return nil, fmt.Errorf("full_caster_slots row %d: want 9 columns, got %d", i+1, len(row))
		}
		copy(r.fullCasterSlots[i][:], row)
	}

	for _, c := range cf.Classes {
		for _, grant := range c.StartingEquipment {
			if _, ok := r.catalog[Key(grant.Ref)]; !ok {
				return nil, fmt.Errorf("class %s: starting equipment %q not in catalog", c.Name, grant.Ref)
			}
		}
	}

	return r, nil
}

func validateClass(c Class) error {
	if c.HitDie <= 0 {
		return fmt.Errorf("class %s: hit_die must be positive", c.Name)
	}
	if len(c.SavingThrows) != 2 {
		return fmt.Errorf("class %s: want 2 saving throws, got %d", c.Name, len(c.SavingThrows))
	}
	if len(c.CantripsKnown) != 0 && len(c.CantripsKnown) != 3 {
		return fmt.Errorf("class %s: cantrips_known needs 3 breakpoints", c.Name)
	}
	if len(c.SpellsKnown) != 0 && len(c.SpellsKnown) != dnd5e.MaxLevel {
		return fmt.Errorf("class %s: spells_known needs %d levels", c.Name, dnd5e.MaxLevel)
	}
	return nil
}

// Key folds a name for case-insensitive table lookups
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Normalize returns the table's spelling of a class, race, subrace,
// background or skill name. Unknown names are title-cased.
func (r *Rules) Normalize(name string) string {
	k := Key(name)
	if k == "" {
		return ""
	}
	if c, ok := r.classes[k]; ok {
		return c.Name
	}
	if race, ok := r.races[k]; ok {
		return race.Name
	}
	if sub, ok := r.subraces[k]; ok {
		return sub.subrace.Name
	}
	if b, ok := r.backgrounds[k]; ok {
		return b.Name
	}
	if s, ok := r.skillIndex[k]; ok {
		return s.Name
	}
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// Class looks up a class by name
func (r *Rules) Class(name string) (Class, bool) {
	c, ok := r.classes[Key(name)]
	return c, ok
}

// ClassNames returns the class names in table order
func (r *Rules) ClassNames() []string {
	return append([]string(nil), r.classOrder...)
}

// HitDie returns the class hit die, defaulting to d8
func (r *Rules) HitDie(class string) int {
	if c, ok := r.Class(class); ok {
		return c.HitDie
	}
	return r.defaultHitDie
}

// StartingGold returns the flat starting gold for a class, 100 when unknown
func (r *Rules) StartingGold(class string) int {
	if c, ok := r.Class(class); ok && c.StartingGold > 0 {
		return c.StartingGold
	}
	return r.defaultStartingGold
}

// Race looks up a race by name
func (r *Rules) Race(name string) (Race, bool) {
	race, ok := r.races[Key(name)]
	return race, ok
}

// Speed resolves walking speed from race and subrace, 30 when unknown
func (r *Rules) Speed(race, subrace string) int {
	if sub, ok := r.subraces[Key(subrace)]; ok && sub.subrace.Speed > 0 {
		return sub.subrace.Speed
	}
	if rc, ok := r.Race(race); ok && rc.Speed > 0 {
		return rc.Speed
	}
	return r.defaultSpeed
}

// SubraceOf reports whether subrace belongs to race
func (r *Rules) SubraceOf(race, subrace string) bool {
	sub, ok := r.subraces[Key(subrace)]
	return ok && Key(sub.race) == Key(race)
}

// Skills returns the 18 skills in sheet order
func (r *Rules) Skills() []Skill {
	return append([]Skill(nil), r.skills...)
}

// Skill looks up a skill by name
func (r *Rules) Skill(name string) (Skill, bool) {
	s, ok := r.skillIndex[Key(name)]
	return s, ok
}

// BackgroundSkills returns the skills a background grants, empty when unknown
func (r *Rules) BackgroundSkills(background string) []string {
	if b, ok := r.backgrounds[Key(background)]; ok {
		return append([]string(nil), b.Skills...)
	}
	return []string{}
}

// XPThresholds returns the minimum XP for levels 1..20
func (r *Rules) XPThresholds() [dnd5e.MaxLevel]int {
	return r.xpThresholds
}

// FullCasterSlots returns the nine slot counts for a full caster of level.
// Level is clamped to 1..20.
func (r *Rules) FullCasterSlots(level int) [9]int {
	level = min(max(level, dnd5e.MinLevel), dnd5e.MaxLevel)
	return r.fullCasterSlots[level-1]
}

// CatalogItem looks up a static equipment entry by ref
func (r *Rules) CatalogItem(ref string) (CatalogItem, bool) {
	item, ok := r.catalog[Key(ref)]
	return item, ok
}

// Catalog returns every static equipment entry in file order
func (r *Rules) Catalog() []CatalogItem {
	out := make([]CatalogItem, 0, len(r.catalogOrder))
	for _, ref := range r.catalogOrder {
		out = append(out, r.catalog[Key(ref)])
	}
	return out
}
