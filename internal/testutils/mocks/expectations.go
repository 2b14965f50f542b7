// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	draftrepo "github.com/KirkDiggler/character-builder/internal/repositories/character_draft"
	draftrepomock "github.com/KirkDiggler/character-builder/internal/repositories/character_draft/mock"
)

// ExpectDraftGet sets up a mock expectation for getting a draft from repository
func ExpectDraftGet(
	ctx context.Context, mockRepo *draftrepomock.MockRepository,
	draft *dnd5e.CharacterDraft,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, draftrepo.GetInput{ID: draft.ID}).
		Return(&draftrepo.GetOutput{Draft: draft}, nil)
}

// ExpectDraftGetError sets up a failing draft lookup
func ExpectDraftGetError(
	ctx context.Context, mockRepo *draftrepomock.MockRepository,
	draftID string, err error,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, draftrepo.GetInput{ID: draftID}).
		Return(nil, err)
}

// ExpectDraftGetByPlayerID sets up a mock expectation for getting a draft by player ID
func ExpectDraftGetByPlayerID(
	ctx context.Context, mockRepo *draftrepomock.MockRepository,
	playerID string, draft *dnd5e.CharacterDraft, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			GetByPlayerID(ctx, draftrepo.GetByPlayerIDInput{PlayerID: playerID}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		GetByPlayerID(ctx, draftrepo.GetByPlayerIDInput{PlayerID: playerID}).
		Return(&draftrepo.GetByPlayerIDOutput{Draft: draft}, nil)
}

// ExpectDraftCreate echoes the created draft back
func ExpectDraftCreate(ctx context.Context, mockRepo *draftrepomock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input draftrepo.CreateInput) (*draftrepo.CreateOutput, error) {
			return &draftrepo.CreateOutput{Draft: input.Draft}, nil
		})
}

// ExpectDraftUpdate echoes the saved draft back. Pass saved to capture it.
func ExpectDraftUpdate(
	ctx context.Context, mockRepo *draftrepomock.MockRepository,
	saved **dnd5e.CharacterDraft,
) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input draftrepo.UpdateInput) (*draftrepo.UpdateOutput, error) {
			if saved != nil {
				*saved = input.Draft
			}
			return &draftrepo.UpdateOutput{Draft: input.Draft}, nil
		})
}

// ExpectDraftDelete sets up a mock expectation for deleting a draft
func ExpectDraftDelete(ctx context.Context, mockRepo *draftrepomock.MockRepository, draftID string, err error) {
	if err != nil {
		mockRepo.EXPECT().
			Delete(ctx, draftrepo.DeleteInput{ID: draftID}).
			Return(nil, err)
		return
	}
	mockRepo.EXPECT().
		Delete(ctx, draftrepo.DeleteInput{ID: draftID}).
		Return(&draftrepo.DeleteOutput{}, nil)
}
