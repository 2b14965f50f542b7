package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

const (
	draftKeyPattern     = "draft:*"
	playerMappingPrefix = "draft:player:"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	rules, err := ruleset.Default()
	if err != nil {
		log.Fatal("Failed to load rules:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted character drafts...")

	iter := client.Scan(ctx, 0, draftKeyPattern, 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, playerMappingPrefix) {
			if problem := checkPlayerMapping(ctx, client, key); problem != "" {
				fmt.Printf("✗ %s: %s\n", key, problem)
				corruptedKeys = append(corruptedKeys, key)
			}
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		if problem := checkDraft(rules, key, data); problem != "" {
			fmt.Printf("✗ %s: %s\n", key, problem)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d drafts, found %d corrupted entries\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}
	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// checkDraft returns why a stored draft can no longer be served, or "".
// Equipment refs are checked against the embedded catalog, so drafts built
// with the api compendium may report false positives.
func checkDraft(rules *ruleset.Rules, key, data string) string {
	var draft dnd5e.CharacterDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return fmt.Sprintf("corrupted JSON: %v", err)
	}
	if "draft:"+draft.ID != key {
		return fmt.Sprintf("id %q does not match key", draft.ID)
	}
	if err := draft.Validate(); err != nil {
		return fmt.Sprintf("invalid draft: %v", err)
	}
	if draft.Equipment != nil {
		for _, item := range draft.Equipment.Items {
			if _, ok := rules.CatalogItem(item.EquipmentRef); !ok {
				return fmt.Sprintf("unknown equipment reference %q", item.EquipmentRef)
			}
		}
	}
	return ""
}

// checkPlayerMapping flags player indexes that point at missing drafts
func checkPlayerMapping(ctx context.Context, client *redis.Client, key string) string {
	draftID, err := client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Sprintf("unreadable: %v", err)
	}
	exists, err := client.Exists(ctx, "draft:"+draftID).Result()
	if err != nil {
		return fmt.Sprintf("unreadable: %v", err)
	}
	if exists == 0 {
		return fmt.Sprintf("points at missing draft %q", draftID)
	}
	return ""
}
