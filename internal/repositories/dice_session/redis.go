package dicesession

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/character-builder/internal/redis"
)

// Sessions live at dice_session:{entity_id}:{context}
const (
	sessionKeyPrefix = "dice_session:"
	defaultTTL       = 15 * time.Minute
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// record is the stored form. Pool duplicates the roll totals so a value
// that no longer matches its rolls is caught on read.
type record struct {
	*DiceSession
	Pool []int `json:"pool"`
}

func encode(session *DiceSession) ([]byte, error) {
	data, err := json.Marshal(record{DiceSession: session, Pool: session.Totals()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode dice session")
	}
	return data, nil
}

func decode(raw string) (*DiceSession, error) {
	rec := record{DiceSession: &DiceSession{}}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode dice session")
	}
	if !slices.Equal(rec.Pool, rec.DiceSession.Totals()) {
		return nil, errors.New(errors.CodeDataLoss, "dice session pool does not match its rolls").
			WithMeta("entity_id", rec.EntityID).
			WithMeta("context", rec.Context)
	}
	return rec.DiceSession, nil
}

func sessionKey(entityID, purpose string) (string, error) {
	if entityID == "" {
		return "", errors.InvalidArgument("entity ID cannot be empty")
	}
	if purpose == "" {
		return "", errors.InvalidArgument("context cannot be empty")
	}
	return sessionKeyPrefix + entityID + ":" + purpose, nil
}

// Create stores the rolls as the entity's pool for a purpose, replacing any
// earlier pool under the same key.
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	key, err := sessionKey(input.EntityID, input.Context)
	if err != nil {
		return nil, err
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := r.clock.Now()
	session := &DiceSession{
		EntityID:  input.EntityID,
		Context:   input.Context,
		Rolls:     input.Rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := encode(session)
	if err != nil {
		return nil, err
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store dice session %s", key)
	}

	return &CreateOutput{Session: session}, nil
}

// Get loads a pool. Sessions past their expiry are removed and reported
// as not found even if Redis has not evicted them yet.
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	key, err := sessionKey(input.EntityID, input.Context)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.Get(ctx, key).Result()
	if err == redisclient.Nil {
		return nil, errors.NotFound("dice session not found").
			WithMeta("entity_id", input.EntityID).
			WithMeta("context", input.Context)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dice session %s", key)
	}

	session, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if !r.clock.Now().Before(session.ExpiresAt) {
		r.client.Del(ctx, key)
		return nil, errors.NotFound("dice session has expired").
			WithMeta("entity_id", input.EntityID).
			WithMeta("context", input.Context)
	}

	return &GetOutput{Session: session}, nil
}

// Delete removes a pool in one round trip and reports how many rolls it
// held. A missing session deletes nothing.
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := sessionKey(input.EntityID, input.Context)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.GetDel(ctx, key).Result()
	if err == redisclient.Nil {
		return &DeleteOutput{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete dice session %s", key)
	}

	// the key is already gone, so an unreadable value still counts as deleted
	session, err := decode(raw)
	if err != nil {
		return &DeleteOutput{}, nil
	}
	return &DeleteOutput{RollsDeleted: len(session.Rolls)}, nil
}

// Update rewrites an existing pool with the time it has left. The write is
// conditional on the key existing, so an evicted session is not revived.
func (r *redisRepository) Update(ctx context.Context, session *DiceSession) error {
	if session == nil {
		return errors.InvalidArgument("session cannot be nil")
	}
	key, err := sessionKey(session.EntityID, session.Context)
	if err != nil {
		return err
	}

	remaining := session.ExpiresAt.Sub(r.clock.Now())
	if remaining <= 0 {
		return errors.InvalidArgument("session has already expired")
	}

	data, err := encode(session)
	if err != nil {
		return err
	}

	err = r.client.SetArgs(ctx, key, data, redis.SetArgs{Mode: "XX", TTL: remaining}).Err()
	if err == redisclient.Nil {
		return errors.NotFound("dice session not found").
			WithMeta("entity_id", session.EntityID).
			WithMeta("context", session.Context)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to update dice session %s", key)
	}
	return nil
}
