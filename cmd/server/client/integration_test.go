//go:build integration

package client

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
)

// TestFighterCreationFlowIntegration walks a fighter through every wizard
// step against a running server.
func TestFighterCreationFlowIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	addr := os.Getenv("GRPC_SERVER_ADDRESS")
	if addr == "" {
		addr = "localhost:50051"
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Logf("Failed to close connection: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client := v1.NewCharacterBuilderClient(conn)

	call := func(method string, fields map[string]any) *structpb.Struct {
		t.Helper()
		req, err := structpb.NewStruct(fields)
		require.NoError(t, err)
		resp, err := client.Call(ctx, method, req)
		require.NoError(t, err, method)
		return resp
	}

	playerID := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	created := call(v1.MethodCreateDraft, map[string]any{"player_id": playerID, "name": "Thorin"})
	draftID := created.Fields["draft"].GetStructValue().Fields["id"].GetStringValue()
	require.NotEmpty(t, draftID)
	defer call(v1.MethodDeleteDraft, map[string]any{"draft_id": draftID})

	call(v1.MethodUpdateIdentity, map[string]any{
		"draft_id":   draftID,
		"race":       "dwarf",
		"subrace":    "hill dwarf",
		"class":      "fighter",
		"background": "acolyte",
	})

	scores := call(v1.MethodUpdateAbilityScores, map[string]any{
		"draft_id": draftID,
		"method":   "point_buy",
		"ability_scores": map[string]any{
			"str": 15, "dex": 14, "con": 13, "int": 8, "wis": 10, "cha": 10,
		},
	})
	assert.Equal(t, float64(27), scores.Fields["points_spent"].GetNumberValue())

	call(v1.MethodUpdateSkills, map[string]any{
		"draft_id": draftID,
		"skills":   []any{"Athletics", "Perception"},
	})
	call(v1.MethodInitializeEquipment, map[string]any{"draft_id": draftID})

	stats := call(v1.MethodGetCombatStats, map[string]any{"draft_id": draftID}).
		Fields["stats"].GetStructValue()
	require.NotNil(t, stats)
	assert.Greater(t, stats.Fields["armor_class"].GetNumberValue(), float64(10))

	req, err := structpb.NewStruct(map[string]any{"draft_id": draftID, "class": "Fighter"})
	require.NoError(t, err)
	_, err = client.Call(ctx, v1.MethodLevelUp, req)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	call(v1.MethodAwardExperience, map[string]any{"draft_id": draftID, "amount": 300})
	leveled := call(v1.MethodLevelUp, map[string]any{"draft_id": draftID, "class": "Fighter"})
	entry := leveled.Fields["entry"].GetStructValue()
	require.NotNil(t, entry)
	assert.Equal(t, float64(2), entry.Fields["level"].GetNumberValue())
}
