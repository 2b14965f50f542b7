package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// EntityTypeCharacterDraft is the core.Entity type of a wrapped draft
const EntityTypeCharacterDraft = "character_draft"

// CharacterDraftEntity wraps dnd5e.CharacterDraft to implement core.Entity interface
type CharacterDraftEntity struct {
	*dnd5e.CharacterDraft
}

// GetID returns the character draft's ID
func (c *CharacterDraftEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterDraftEntity) GetType() string {
	return EntityTypeCharacterDraft
}

var _ core.Entity = (*CharacterDraftEntity)(nil)

// wrapCharacterDraft converts a dnd5e.CharacterDraft to a CharacterDraftEntity
func wrapCharacterDraft(draft *dnd5e.CharacterDraft) *CharacterDraftEntity {
	return &CharacterDraftEntity{CharacterDraft: draft}
}

// ExtractDraft returns the draft behind an event source or target
func ExtractDraft(entity core.Entity) (*dnd5e.CharacterDraft, bool) {
	wrapped, ok := entity.(*CharacterDraftEntity)
	if !ok || wrapped == nil {
		return nil, false
	}
	return wrapped.CharacterDraft, true
}

// GetIntContext safely extracts an int from event context
func GetIntContext(event events.Event, key string) (int, bool) {
	if val, ok := event.Context().Get(key); ok {
		if intVal, ok := val.(int); ok {
			return intVal, true
		}
	}
	return 0, false
}

// GetStringContext safely extracts a string from event context
func GetStringContext(event events.Event, key string) (string, bool) {
	if val, ok := event.Context().Get(key); ok {
		if strVal, ok := val.(string); ok {
			return strVal, true
		}
	}
	return "", false
}

// GetBoolContext safely extracts a bool from event context
func GetBoolContext(event events.Event, key string) (value, exists bool) {
	if val, ok := event.Context().Get(key); ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal, true
		}
	}
	return false, false
}
