package v1_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/errors"
	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
	"github.com/KirkDiggler/character-builder/internal/orchestrators/dice"
	dicemock "github.com/KirkDiggler/character-builder/internal/orchestrators/dice/mock"
	dicesession "github.com/KirkDiggler/character-builder/internal/repositories/dice_session"
)

type DiceHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockDice *dicemock.MockService
	handler  *v1.DiceHandler
	ctx      context.Context
}

func TestDiceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DiceHandlerTestSuite))
}

func (s *DiceHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDice = dicemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1.NewDiceHandler(&v1.DiceHandlerConfig{DiceService: s.mockDice})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *DiceHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DiceHandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *DiceHandlerTestSuite) TestRollDice_Success() {
	expiresAt := time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC)
	roll := dicesession.DiceRoll{
		RollID:      "roll_abc",
		Notation:    "4d6dl1",
		Dice:        []int{6, 5, 4},
		Dropped:     []int{2},
		Total:       15,
		Description: "Ability Score Roll",
	}

	s.mockDice.EXPECT().
		RollDice(s.ctx, &dice.RollDiceInput{
			EntityID:    "draft_1",
			Context:     "ability_scores",
			Notation:    "4d6dl1",
			Description: "Ability Score Roll",
		}).
		Return(&dice.RollDiceOutput{
			Roll: &roll,
			Session: &dicesession.DiceSession{
				EntityID:  "draft_1",
				Context:   "ability_scores",
				Rolls:     []dicesession.DiceRoll{roll},
				ExpiresAt: expiresAt,
			},
		}, nil)

	resp, err := s.handler.RollDice(s.ctx, s.request(map[string]any{
		"entity_id":   "draft_1",
		"context":     "ability_scores",
		"notation":    "4d6dl1",
		"description": "Ability Score Roll",
	}))
	s.Require().NoError(err)

	rolls := resp.Fields["rolls"].GetListValue().GetValues()
	s.Require().Len(rolls, 1)
	got := rolls[0].GetStructValue()
	s.Equal("roll_abc", got.Fields["roll_id"].GetStringValue())
	s.Equal(float64(15), got.Fields["total"].GetNumberValue())
	s.Equal(float64(expiresAt.Unix()), resp.Fields["expires_at"].GetNumberValue())
}

func (s *DiceHandlerTestSuite) TestRollDice_MissingFields() {
	testCases := []struct {
		name   string
		fields map[string]any
	}{
		{"entity", map[string]any{"context": "ability_scores", "notation": "1d20"}},
		{"context", map[string]any{"entity_id": "draft_1", "notation": "1d20"}},
		{"notation", map[string]any{"entity_id": "draft_1", "context": "ability_scores"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.RollDice(s.ctx, s.request(tc.fields))
			st, ok := status.FromError(err)
			s.Require().True(ok)
			s.Equal(codes.InvalidArgument, st.Code())
		})
	}
}

func (s *DiceHandlerTestSuite) TestGetRollSession_NotFound() {
	s.mockDice.EXPECT().
		GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: "draft_1", Context: "ability_scores"}).
		Return(nil, errors.NotFound("roll session not found"))

	_, err := s.handler.GetRollSession(s.ctx, s.request(map[string]any{
		"entity_id": "draft_1",
		"context":   "ability_scores",
	}))
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
}

func (s *DiceHandlerTestSuite) TestClearRollSession() {
	s.mockDice.EXPECT().
		ClearRollSession(s.ctx, &dice.ClearRollSessionInput{EntityID: "draft_1", Context: "ability_scores"}).
		Return(&dice.ClearRollSessionOutput{RollsDeleted: 6}, nil)

	resp, err := s.handler.ClearRollSession(s.ctx, s.request(map[string]any{
		"entity_id": "draft_1",
		"context":   "ability_scores",
	}))
	s.Require().NoError(err)
	s.Equal(float64(6), resp.Fields["rolls_cleared"].GetNumberValue())
}
