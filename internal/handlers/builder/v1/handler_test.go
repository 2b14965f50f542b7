package v1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
	"github.com/KirkDiggler/character-builder/internal/services/character"
	charactermock "github.com/KirkDiggler/character-builder/internal/services/character/mock"
	"github.com/KirkDiggler/character-builder/internal/testutils/builders"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *charactermock.MockService
	handler     *v1.Handler
	ctx         context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = charactermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1.NewHandler(&v1.HandlerConfig{CharacterService: s.mockService})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) requireCode(err error, code codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(code, st.Code())
}

func (s *HandlerTestSuite) TestNewHandlerValidation() {
	_, err := v1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1.NewHandler(&v1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestCreateDraft() {
	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").WithPlayerID("player_1").WithName("Thorin").Build()
	s.mockService.EXPECT().
		CreateDraft(s.ctx, &character.CreateDraftInput{PlayerID: "player_1", Name: "Thorin"}).
		Return(&character.CreateDraftOutput{Draft: draft}, nil)

	resp, err := s.handler.CreateDraft(s.ctx, s.request(map[string]any{
		"player_id": "player_1",
		"name":      "Thorin",
	}))
	s.Require().NoError(err)

	got := resp.Fields["draft"].GetStructValue()
	s.Require().NotNil(got)
	s.Equal("draft_1", got.Fields["id"].GetStringValue())
	s.Equal("Thorin", got.Fields["name"].GetStringValue())
}

func (s *HandlerTestSuite) TestCreateDraftRequiresPlayer() {
	_, err := s.handler.CreateDraft(s.ctx, s.request(map[string]any{"name": "Thorin"}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestUnknownFieldRejected() {
	_, err := s.handler.GetDraft(s.ctx, s.request(map[string]any{
		"draft_id":  "draft_1",
		"draftname": "typo",
	}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestUpdateIdentityPassesOnlyPresentFields() {
	race := "dwarf"
	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").WithRace("Dwarf").Build()
	s.mockService.EXPECT().
		UpdateIdentity(s.ctx, &character.UpdateIdentityInput{DraftID: "draft_1", Race: &race}).
		Return(&character.UpdateIdentityOutput{
			Draft: draft,
			Warnings: []character.ValidationWarning{
				{Field: "skills", Message: "skills cleared", Type: "cleared"},
			},
		}, nil)

	resp, err := s.handler.UpdateIdentity(s.ctx, s.request(map[string]any{
		"draft_id": "draft_1",
		"race":     "dwarf",
	}))
	s.Require().NoError(err)

	warnings := resp.Fields["warnings"].GetListValue().GetValues()
	s.Require().Len(warnings, 1)
	s.Equal("cleared", warnings[0].GetStructValue().Fields["type"].GetStringValue())
}

func (s *HandlerTestSuite) TestUpdateAbilityScores() {
	scores := dnd5e.AbilityScores{
		Strength: 15, Dexterity: 14, Constitution: 13,
		Intelligence: 12, Wisdom: 10, Charisma: 8,
	}
	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").WithAbilityScores(15, 14, 13, 12, 10, 8).Build()
	s.mockService.EXPECT().
		UpdateAbilityScores(s.ctx, &character.UpdateAbilityScoresInput{
			DraftID:       "draft_1",
			Method:        "point_buy",
			AbilityScores: scores,
		}).
		Return(&character.UpdateAbilityScoresOutput{Draft: draft, PointsSpent: 27}, nil)

	resp, err := s.handler.UpdateAbilityScores(s.ctx, s.request(map[string]any{
		"draft_id": "draft_1",
		"method":   "point_buy",
		"ability_scores": map[string]any{
			"str": 15, "dex": 14, "con": 13, "int": 12, "wis": 10, "cha": 8,
		},
	}))
	s.Require().NoError(err)
	s.Equal(float64(27), resp.Fields["points_spent"].GetNumberValue())
}

func (s *HandlerTestSuite) TestValidationErrorCarriesMeta() {
	vb := errors.NewValidationBuilder()
	vb.Field("ability_scores", "point buy must spend exactly 27 points")
	s.mockService.EXPECT().
		UpdateAbilityScores(s.ctx, gomock.Any()).
		Return(nil, errors.Wrap(vb.Build(), "ability scores rejected"))

	_, err := s.handler.UpdateAbilityScores(s.ctx, s.request(map[string]any{
		"draft_id": "draft_1",
		"method":   "point_buy",
	}))
	s.requireCode(err, codes.InvalidArgument)

	back := errors.FromGRPCError(err)
	fields, ok := errors.GetMeta(back)["validation_errors"].(map[string]any)
	s.Require().True(ok)
	s.Contains(fields, "ability_scores")
}

func (s *HandlerTestSuite) TestEquipmentRequiresRef() {
	_, err := s.handler.AddEquipment(s.ctx, s.request(map[string]any{"draft_id": "draft_1"}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestLevelUpFailedPrecondition() {
	s.mockService.EXPECT().
		LevelUp(s.ctx, &character.LevelUpInput{DraftID: "draft_1", Class: "Fighter"}).
		Return(nil, errors.FailedPrecondition("not enough experience"))

	_, err := s.handler.LevelUp(s.ctx, s.request(map[string]any{
		"draft_id": "draft_1",
		"class":    "Fighter",
	}))
	s.requireCode(err, codes.FailedPrecondition)
}

func (s *HandlerTestSuite) TestCheckMulticlass() {
	s.mockService.EXPECT().
		CheckMulticlass(s.ctx, &character.CheckMulticlassInput{DraftID: "draft_1", Class: "Wizard"}).
		Return(&character.CheckMulticlassOutput{
			Eligible: false,
			Missing:  []string{"Intelligence 13"},
		}, nil)

	resp, err := s.handler.CheckMulticlass(s.ctx, s.request(map[string]any{
		"draft_id": "draft_1",
		"class":    "Wizard",
	}))
	s.Require().NoError(err)
	s.False(resp.Fields["eligible"].GetBoolValue())
	s.Len(resp.Fields["missing"].GetListValue().GetValues(), 1)
	s.NotNil(resp.Fields["eligible_classes"].GetListValue())
}

func (s *HandlerTestSuite) TestAddClassRequiresClass() {
	_, err := s.handler.AddClass(s.ctx, s.request(map[string]any{"draft_id": "draft_1"}))
	s.requireCode(err, codes.InvalidArgument)
}

// TestRoundTripOverGRPC drives the registered service through a real
// client connection so the descriptors and status details are exercised.
func (s *HandlerTestSuite) TestRoundTripOverGRPC() {
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	v1.RegisterCharacterBuilderServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	client := v1.NewCharacterBuilderClient(conn)

	draft := builders.NewCharacterDraftBuilder().WithID("draft_1").Build()
	s.mockService.EXPECT().
		GetDraft(gomock.Any(), &character.GetDraftInput{DraftID: "draft_1"}).
		Return(&character.GetDraftOutput{Draft: draft}, nil)

	resp, err := client.Call(ctx, v1.MethodGetDraft, s.request(map[string]any{"draft_id": "draft_1"}))
	s.Require().NoError(err)
	s.Equal("draft_1", resp.Fields["draft"].GetStructValue().Fields["id"].GetStringValue())

	s.mockService.EXPECT().
		GetDraft(gomock.Any(), &character.GetDraftInput{DraftID: "missing"}).
		Return(nil, errors.NotFound("draft not found").WithMeta("draft_id", "missing"))

	_, err = client.Call(ctx, v1.MethodGetDraft, s.request(map[string]any{"draft_id": "missing"}))
	s.requireCode(err, codes.NotFound)
	back := errors.FromGRPCError(err)
	s.True(errors.IsNotFound(back))
	s.Equal("missing", errors.GetMeta(back)["draft_id"])
}
