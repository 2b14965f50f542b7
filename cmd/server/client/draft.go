package client

import (
	"github.com/spf13/cobra"

	v1 "github.com/KirkDiggler/character-builder/internal/handlers/builder/v1"
)

var (
	playerID      string
	draftID       string
	draftName     string
	race          string
	subrace       string
	class         string
	background    string
	scoreMethod   string
	abilityScores []int
	skills        []string
)

var createDraftCmd = &cobra.Command{
	Use:   "create-draft",
	Short: "Create a new character draft",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodCreateDraft, map[string]any{
			"player_id": playerID,
			"name":      draftName,
		})
	},
}

var getDraftCmd = &cobra.Command{
	Use:   "get-draft",
	Short: "Get a draft by id or by player",
	RunE: func(_ *cobra.Command, _ []string) error {
		fields := map[string]any{}
		if draftID != "" {
			fields["draft_id"] = draftID
		}
		if playerID != "" {
			fields["player_id"] = playerID
		}
		return builder(v1.MethodGetDraft, fields)
	},
}

var deleteDraftCmd = &cobra.Command{
	Use:   "delete-draft",
	Short: "Delete a draft",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodDeleteDraft, map[string]any{"draft_id": draftID})
	},
}

var updateIdentityCmd = &cobra.Command{
	Use:   "update-identity",
	Short: "Set name, race, subrace, class or background",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fields := map[string]any{"draft_id": draftID}
		for flag, key := range map[string]string{
			"name":       "name",
			"race":       "race",
			"subrace":    "subrace",
			"class":      "class",
			"background": "background",
		} {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag) // nolint:errcheck // flag is registered
				fields[key] = value
			}
		}
		return builder(v1.MethodUpdateIdentity, fields)
	},
}

var rollAbilityScoresCmd = &cobra.Command{
	Use:   "roll-ability-scores",
	Short: "Roll a 4d6 drop lowest pool for a draft",
	RunE: func(_ *cobra.Command, _ []string) error {
		return builder(v1.MethodRollAbilityScores, map[string]any{"draft_id": draftID})
	},
}

var updateAbilityScoresCmd = &cobra.Command{
	Use:   "update-ability-scores",
	Short: "Assign STR DEX CON INT WIS CHA under a method",
	RunE: func(_ *cobra.Command, _ []string) error {
		scores := map[string]any{}
		for i, key := range []string{"str", "dex", "con", "int", "wis", "cha"} {
			if i < len(abilityScores) {
				scores[key] = abilityScores[i]
			}
		}
		return builder(v1.MethodUpdateAbilityScores, map[string]any{
			"draft_id":       draftID,
			"method":         scoreMethod,
			"ability_scores": scores,
		})
	},
}

var updateSkillsCmd = &cobra.Command{
	Use:   "update-skills",
	Short: "Choose class skills",
	RunE: func(_ *cobra.Command, _ []string) error {
		list := make([]any, 0, len(skills))
		for _, s := range skills {
			list = append(list, s)
		}
		return builder(v1.MethodUpdateSkills, map[string]any{
			"draft_id": draftID,
			"skills":   list,
		})
	},
}

func init() {
	createDraftCmd.Flags().StringVar(&playerID, "player-id", "", "Player ID (required)")
	createDraftCmd.Flags().StringVar(&draftName, "name", "", "Character name")
	_ = createDraftCmd.MarkFlagRequired("player-id") // nolint:errcheck // safe to ignore in init

	getDraftCmd.Flags().StringVar(&draftID, "draft-id", "", "Draft ID")
	getDraftCmd.Flags().StringVar(&playerID, "player-id", "", "Player ID")

	updateIdentityCmd.Flags().StringVar(&draftName, "name", "", "Character name")
	updateIdentityCmd.Flags().StringVar(&race, "race", "", "Race")
	updateIdentityCmd.Flags().StringVar(&subrace, "subrace", "", "Subrace")
	updateIdentityCmd.Flags().StringVar(&class, "class", "", "Class")
	updateIdentityCmd.Flags().StringVar(&background, "background", "", "Background")

	updateAbilityScoresCmd.Flags().StringVar(&scoreMethod, "method", "standard", "standard, point_buy, roll or manual")
	updateAbilityScoresCmd.Flags().IntSliceVar(&abilityScores, "scores", nil, "six scores in STR,DEX,CON,INT,WIS,CHA order")
	_ = updateAbilityScoresCmd.MarkFlagRequired("scores") // nolint:errcheck // safe to ignore in init

	updateSkillsCmd.Flags().StringSliceVar(&skills, "skills", nil, "skills to choose")

	for _, cmd := range []*cobra.Command{
		deleteDraftCmd, updateIdentityCmd, rollAbilityScoresCmd, updateAbilityScoresCmd, updateSkillsCmd,
	} {
		cmd.Flags().StringVar(&draftID, "draft-id", "", "Draft ID (required)")
		_ = cmd.MarkFlagRequired("draft-id") // nolint:errcheck // safe to ignore in init
	}
}
