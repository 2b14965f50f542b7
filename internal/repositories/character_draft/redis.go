package characterdraft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/character-builder/internal/redis"
)

const (
	draftKeyPrefix      = "draft:"
	playerMappingPrefix = "draft:player:"
	defaultTTL          = 24 * time.Hour

	// Error messages
	errDraftNil      = "draft cannot be nil"
	errDraftIDEmpty  = "draft ID cannot be empty"
	errPlayerIDEmpty = "player ID cannot be empty"
	errDraftExpired  = "draft has already expired"
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

// NewRedisRepository creates a new Redis-backed character draft repository
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

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Draft == nil {
		return nil, errors.InvalidArgument(errDraftNil)
	}
	if input.Draft.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}
	if input.Draft.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if err := input.Draft.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid draft")
	}

	ttl, err := r.ttlFor(input.Draft)
	if err != nil {
		return nil, err
	}

	playerKey := playerMappingPrefix + input.Draft.PlayerID
	existingDraftID, err := r.client.Get(ctx, playerKey).Result()
	if err != nil && err != redisclient.Nil {
		return nil, errors.Wrapf(err, "failed to check existing draft")
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal draft")
	}

	pipe := r.client.TxPipeline()

	if existingDraftID != "" && existingDraftID != input.Draft.ID {
		pipe.Del(ctx, draftKeyPrefix+existingDraftID)
	}
	pipe.Set(ctx, draftKeyPrefix+input.Draft.ID, data, ttl)
	// the mapping outlives the draft; GetByPlayerID cleans up stale entries
	pipe.Set(ctx, playerKey, input.Draft.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create draft")
	}

	return &CreateOutput{Draft: input.Draft}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	result, err := r.client.Get(ctx, draftKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("draft with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get draft")
	}

	var draft dnd5e.CharacterDraft
	if err := json.Unmarshal([]byte(result), &draft); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal draft")
	}

	if draft.ExpiresAt > 0 && !r.clock.Now().Before(time.Unix(draft.ExpiresAt, 0)) {
		return nil, errors.NotFoundf("draft with ID %s has expired", input.ID)
	}

	return &GetOutput{Draft: &draft}, nil
}

func (r *redisRepository) GetByPlayerID(ctx context.Context, input GetByPlayerIDInput) (*GetByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	playerKey := playerMappingPrefix + input.PlayerID
	draftID, err := r.client.Get(ctx, playerKey).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("no draft found for player %s", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get player draft mapping")
	}

	getOutput, err := r.Get(ctx, GetInput{ID: draftID})
	if err != nil {
		if errors.IsNotFound(err) {
			r.client.Del(ctx, playerKey)
		}
		return nil, err
	}

	return &GetByPlayerIDOutput{Draft: getOutput.Draft}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Draft == nil {
		return nil, errors.InvalidArgument(errDraftNil)
	}
	if input.Draft.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}
	if err := input.Draft.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid draft")
	}

	key := draftKeyPrefix + input.Draft.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("draft with ID %s not found", input.Draft.ID)
	}

	ttl, err := r.ttlFor(input.Draft)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal draft")
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update draft")
	}

	return &UpdateOutput{Draft: input.Draft}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, draftKeyPrefix+input.ID)
	if getOutput.Draft.PlayerID != "" {
		pipe.Del(ctx, playerMappingPrefix+getOutput.Draft.PlayerID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete draft")
	}

	return &DeleteOutput{}, nil
}

// ttlFor derives the key TTL from ExpiresAt, defaulting when unset
func (r *redisRepository) ttlFor(draft *dnd5e.CharacterDraft) (time.Duration, error) {
	if draft.ExpiresAt == 0 {
		return defaultTTL, nil
	}
	ttl := time.Unix(draft.ExpiresAt, 0).Sub(r.clock.Now())
	if ttl <= 0 {
		return 0, errors.InvalidArgument(errDraftExpired)
	}
	return ttl, nil
}
