package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
)

var (
	equipmentRef string
	quantity     int
	xpAmount     int
	manual       bool
	diceEntity   string
	diceContext  string
	notation     string
	requestJSON  string
	diceService  bool
)

var initEquipmentCmd = &cobra.Command{
	Use:   "init-equipment",
	Short: "Grant the class starting kit and gold",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodInitializeEquipment, map[string]any{"draft_id": draftID})
	},
}

var addEquipmentCmd = &cobra.Command{
	Use:   "add-equipment",
	Short: "Buy equipment with the draft's currency",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodAddEquipment, map[string]any{
			"draft_id":      draftID,
			"equipment_ref": equipmentRef,
			"quantity":      quantity,
		})
	},
}

var removeEquipmentCmd = &cobra.Command{
	Use:   "remove-equipment",
	Short: "Sell equipment back at purchase price",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodRemoveEquipment, map[string]any{
			"draft_id":      draftID,
			"equipment_ref": equipmentRef,
			"quantity":      quantity,
		})
	},
}

var combatStatsCmd = &cobra.Command{
	Use:   "combat-stats",
	Short: "Show derived AC, hit points, saves and skills",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodGetCombatStats, map[string]any{"draft_id": draftID})
	},
}

var awardXPCmd = &cobra.Command{
	Use:   "award-xp",
	Short: "Award experience points",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodAwardExperience, map[string]any{
			"draft_id": draftID,
			"amount":   xpAmount,
		})
	},
}

var levelUpCmd = &cobra.Command{
	Use:   "level-up",
	Short: "Gain a level in a held class",
	RunE: func(_ *cobra.Command, _ []string) error {
		method := v1.MethodLevelUp
		if manual {
			method = v1.MethodManualLevelUp
		}
		return builder(method, map[string]any{
			"draft_id": draftID,
			"class":    class,
		})
	},
}

var addClassCmd = &cobra.Command{
	Use:   "add-class",
	Short: "Multiclass into a new class",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodAddClass, map[string]any{
			"draft_id": draftID,
			"class":    class,
			"manual":   manual,
		})
	},
}

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice",
	Short: "Roll dice into a session",
	RunE: func(_ *cobra.Command, _ []string) error {
		return invoke(v1.DiceServiceName, v1.MethodRollDice, map[string]any{
			"entity_id": diceEntity,
			"context":   diceContext,
			"notation":  notation,
		})
	},
}

var callCmd = &cobra.Command{
	Use:   "call METHOD",
	Short: "Call any method with a raw JSON request",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		fields := map[string]any{}
		if requestJSON != "" {
			if err := json.Unmarshal([]byte(requestJSON), &fields); err != nil {
				return fmt.Errorf("invalid --data: %w", err)
			}
		}
		service := v1.CharacterBuilderServiceName
		if diceService {
			service = v1.DiceServiceName
		}
		return invoke(service, args[0], fields)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		initEquipmentCmd, addEquipmentCmd, removeEquipmentCmd, combatStatsCmd, awardXPCmd, levelUpCmd, addClassCmd,
	} {
		cmd.Flags().StringVar(&draftID, "draft-id", "", "Draft ID (required)")
		_ = cmd.MarkFlagRequired("draft-id") // nolint:errcheck // safe to ignore in init
	}

	for _, cmd := range []*cobra.Command{addEquipmentCmd, removeEquipmentCmd} {
		cmd.Flags().StringVar(&equipmentRef, "ref", "", "Equipment reference, e.g. longsword (required)")
		cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity")
		_ = cmd.MarkFlagRequired("ref") // nolint:errcheck // safe to ignore in init
	}

	awardXPCmd.Flags().IntVar(&xpAmount, "amount", 0, "Experience to award")

	levelUpCmd.Flags().StringVar(&class, "class", "", "Class to level, defaults to the primary class")
	levelUpCmd.Flags().BoolVar(&manual, "manual", false, "Skip the experience gate")

	addClassCmd.Flags().StringVar(&class, "class", "", "Class to add (required)")
	addClassCmd.Flags().BoolVar(&manual, "manual", false, "Skip the experience gate")
	_ = addClassCmd.MarkFlagRequired("class") // nolint:errcheck // safe to ignore in init

	rollDiceCmd.Flags().StringVar(&diceEntity, "entity-id", "", "Entity the session belongs to (required)")
	rollDiceCmd.Flags().StringVar(&diceContext, "context", "", "Session context (required)")
	rollDiceCmd.Flags().StringVar(&notation, "notation", "1d20", "Dice notation, e.g. 2d6 or 4d6dl1")
	_ = rollDiceCmd.MarkFlagRequired("entity-id") // nolint:errcheck // safe to ignore in init
	_ = rollDiceCmd.MarkFlagRequired("context")   // nolint:errcheck // safe to ignore in init

	callCmd.Flags().StringVar(&requestJSON, "data", "", "JSON request body")
	callCmd.Flags().BoolVar(&diceService, "dice", false, "Call the Dice service instead of CharacterBuilder")
}
