// Package main is the entry point for the character builder gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/character-builder/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "character-builder",
	Short: "D&D 5e character builder gRPC server",
	Long: `Character builder validates D&D 5e character drafts step by step and
advances them through experience, level-ups and multiclassing.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
