// Package client provides test commands for the character builder gRPC service
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/errors"
	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the character builder",
	Long:  `Client commands exercise the character builder by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Draft commands
	ClientCmd.AddCommand(createDraftCmd)
	ClientCmd.AddCommand(getDraftCmd)
	ClientCmd.AddCommand(deleteDraftCmd)
	ClientCmd.AddCommand(updateIdentityCmd)
	ClientCmd.AddCommand(rollAbilityScoresCmd)
	ClientCmd.AddCommand(updateAbilityScoresCmd)
	ClientCmd.AddCommand(updateSkillsCmd)

	// Equipment commands
	ClientCmd.AddCommand(initEquipmentCmd)
	ClientCmd.AddCommand(addEquipmentCmd)
	ClientCmd.AddCommand(removeEquipmentCmd)

	// Derived views and advancement
	ClientCmd.AddCommand(combatStatsCmd)
	ClientCmd.AddCommand(awardXPCmd)
	ClientCmd.AddCommand(levelUpCmd)
	ClientCmd.AddCommand(addClassCmd)

	// Dice and raw calls
	ClientCmd.AddCommand(rollDiceCmd)
	ClientCmd.AddCommand(callCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// invoke calls one method on service and prints the response as JSON
func invoke(service, method string, fields map[string]any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	var client *v1.Client
	if service == v1.DiceServiceName {
		client = v1.NewDiceClient(conn)
	} else {
		client = v1.NewCharacterBuilderClient(conn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Call(ctx, method, req)
	if err != nil {
		return describe(method, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// describe renders a status error with any field details it carries
func describe(method string, err error) error {
	converted := errors.FromGRPCError(err)
	meta := errors.GetMeta(converted)
	if len(meta) == 0 {
		return fmt.Errorf("%s failed: %w", method, converted)
	}
	return fmt.Errorf("%s failed: %w %v", method, converted, meta)
}

func builder(method string, fields map[string]any) error {
	return invoke(v1.CharacterBuilderServiceName, method, fields)
}
