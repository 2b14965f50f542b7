// Package external provides compendium lookups for equipment, either from
// the dnd5e-api or from the embedded static catalog.
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/character-builder/internal/clients/external Client

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	api "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"go.uber.org/zap"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/pkg/logging"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

// Equipment categories reported on EquipmentData
const (
	CategoryWeapon = "weapon"
	CategoryArmor  = "armor"
	CategoryGear   = "gear"
)

// Client looks up equipment by compendium reference (e.g. "chain-mail")
type Client interface {
	// GetEquipment returns NotFound when the reference is unknown
	GetEquipment(ctx context.Context, ref string) (*dnd5e.EquipmentData, error)
}

// equipmentAPI is the slice of the dnd5e-api client we use
type equipmentAPI interface {
	GetEquipment(key string) (api.EquipmentInterface, error)
}

// Config contains configuration options for the dnd5e-api client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Fallback answers lookups the API cannot (optional)
	Fallback Client
	Logger   *zap.Logger
}

// Validate sets defaults for unset fields.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.HTTPTimeout < 0 {
		return errors.InvalidArgument("http timeout must not be negative")
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	cfg.Logger = logging.OrNop(cfg.Logger)
	return nil
}

type client struct {
	api      equipmentAPI
	fallback Client
	logger   *zap.Logger
}

// New creates a dnd5e-api backed client wrapped in the library's cache.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := api.NewDND5eAPI(&api.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to create D&D 5e API client")
	}

	return &client{
		api:      api.NewCachedClient(baseClient, cfg.CacheTTL),
		fallback: cfg.Fallback,
		logger:   cfg.Logger,
	}, nil
}

func (c *client) GetEquipment(ctx context.Context, ref string) (*dnd5e.EquipmentData, error) {
	if ref == "" {
		return nil, errors.InvalidArgument("equipment ref is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "equipment lookup canceled")
	}

	key := toAPIKey(ref)
	item, err := c.api.GetEquipment(key)
	if err == nil && item != nil {
		if data := convertEquipment(item); data != nil {
			data.Ref = key
			return data, nil
		}
	}

	if c.fallback != nil {
		c.logger.Debug("dnd5e-api lookup missed, using fallback",
			zap.String("ref", ref), zap.Error(err))
		return c.fallback.GetEquipment(ctx, ref)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get equipment "+ref)
	}
	return nil, errors.NotFoundf("equipment %s not found", ref)
}

// toAPIKey lowercases and hyphenates a reference ("Chain Mail" -> "chain-mail")
func toAPIKey(ref string) string {
	return dnd5e.NormalizeRef(ref)
}

// convertEquipment maps the three dnd5e-api equipment shapes onto ours
func convertEquipment(item api.EquipmentInterface) *dnd5e.EquipmentData {
	switch eq := item.(type) {
	case *entities.Weapon:
		return &dnd5e.EquipmentData{
			Ref:          eq.Key,
			Name:         eq.Name,
			Category:     CategoryWeapon,
			WeightTenths: weightTenths(float64(eq.Weight)),
			Cost:         convertCost(eq.Cost),
		}
	case *entities.Armor:
		data := &dnd5e.EquipmentData{
			Ref:           eq.Key,
			Name:          eq.Name,
			Category:      CategoryArmor,
			WeightTenths:  weightTenths(float64(eq.Weight)),
			Cost:          convertCost(eq.Cost),
			ArmorCategory: convertArmorCategory(eq.ArmorCategory),
		}
		if eq.ArmorClass != nil {
			data.BaseAC = int(eq.ArmorClass.Base)
		}
		return data
	case *entities.Equipment:
		return &dnd5e.EquipmentData{
			Ref:          eq.Key,
			Name:         eq.Name,
			Category:     CategoryGear,
			WeightTenths: weightTenths(float64(eq.Weight)),
			Cost:         convertCost(eq.Cost),
		}
	default:
		return nil
	}
}

func weightTenths(pounds float64) int {
	return int(math.Round(pounds * 10))
}

func convertCost(cost *entities.Cost) dnd5e.Coins {
	if cost == nil {
		return dnd5e.Coins{Unit: dnd5e.CurrencyGold}
	}
	return dnd5e.Coins{
		Quantity: int(cost.Quantity),
		Unit:     dnd5e.CurrencyUnit(strings.ToLower(cost.Unit)),
	}
}

func convertArmorCategory(category string) dnd5e.ArmorCategory {
	switch strings.ToLower(category) {
	case "light":
		return dnd5e.ArmorCategoryLight
	case "medium":
		return dnd5e.ArmorCategoryMedium
	case "heavy":
		return dnd5e.ArmorCategoryHeavy
	case "shield":
		return dnd5e.ArmorCategoryShield
	default:
		return dnd5e.ArmorCategoryNone
	}
}

type staticClient struct {
	rules *ruleset.Rules
}

// NewStatic serves lookups from the embedded equipment catalog
func NewStatic(rules *ruleset.Rules) (Client, error) {
	if rules == nil {
		return nil, errors.InvalidArgument("rules are required")
	}
	return &staticClient{rules: rules}, nil
}

func (s *staticClient) GetEquipment(_ context.Context, ref string) (*dnd5e.EquipmentData, error) {
	if ref == "" {
		return nil, errors.InvalidArgument("equipment ref is required")
	}
	item, ok := s.rules.CatalogItem(toAPIKey(ref))
	if !ok {
		return nil, errors.NotFoundf("equipment %s not found", ref)
	}
	return item.ToEquipmentData(), nil
}
