// Package progression derives levels from experience points and applies
// level gains to an AdvancementState.
//
// Two entry points exist on purpose: LevelUp is gated by XP, ManualLevelUp
// is the milestone path and ignores XP entirely.
package progression

import (
	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

// Config for the engine
type Config struct {
	Rules *ruleset.Rules
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	return vb.Build()
}

// Engine answers XP questions from the threshold table
type Engine struct {
	thresholds [dnd5e.MaxLevel]int
}

// NewEngine creates an XP engine
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Engine{thresholds: cfg.Rules.XPThresholds()}, nil
}

// LevelFromXP returns the highest level whose threshold is at most xp
func (e *Engine) LevelFromXP(xp int) int {
	for level := dnd5e.MaxLevel; level > dnd5e.MinLevel; level-- {
		if xp >= e.thresholds[level-1] {
			return level
		}
	}
	return dnd5e.MinLevel
}

// XPForLevel returns the threshold for level, clamped to 1..20
func (e *Engine) XPForLevel(level int) int {
	level = min(max(level, dnd5e.MinLevel), dnd5e.MaxLevel)
	return e.thresholds[level-1]
}

// XPNeededForNext is how much XP remains before the next level, never negative
func (e *Engine) XPNeededForNext(currentXP, currentLevel int) int {
	return max(0, e.XPForLevel(min(currentLevel+1, dnd5e.MaxLevel))-currentXP)
}

// CanLevelUp reports whether XP covers the next level's threshold
func (e *Engine) CanLevelUp(currentXP, currentLevel int) bool {
	return currentLevel < dnd5e.MaxLevel && currentXP >= e.XPForLevel(currentLevel+1)
}

// AwardXP adds amount, clamping the total to 0..355000. The level is not
// changed; gains happen through LevelUp.
func (e *Engine) AwardXP(state *dnd5e.AdvancementState, amount int) {
	state.ExperiencePoints = min(max(state.ExperiencePoints+amount, 0), dnd5e.MaxExperiencePoints)
}

// LevelGain describes one completed level
type LevelGain struct {
	Class           string
	HitPointsGained int
	At              int64
}

// LevelUp advances one level when XP allows it
func (e *Engine) LevelUp(state *dnd5e.AdvancementState, gain LevelGain) (*dnd5e.LevelEntry, error) {
	if state.CurrentLevel >= dnd5e.MaxLevel {
		return nil, errors.FailedPreconditionf("already at level %d", dnd5e.MaxLevel)
	}
	if !e.CanLevelUp(state.ExperiencePoints, state.CurrentLevel) {
		return nil, errors.FailedPreconditionf("level %d requires %d XP, have %d",
			state.CurrentLevel+1, e.XPForLevel(state.CurrentLevel+1), state.ExperiencePoints).
			WithMeta("xp_needed", e.XPNeededForNext(state.ExperiencePoints, state.CurrentLevel))
	}
	return apply(state, gain, false), nil
}

// ManualLevelUp advances one level regardless of XP
func (e *Engine) ManualLevelUp(state *dnd5e.AdvancementState, gain LevelGain) (*dnd5e.LevelEntry, error) {
	if state.CurrentLevel >= dnd5e.MaxLevel {
		return nil, errors.FailedPreconditionf("already at level %d", dnd5e.MaxLevel)
	}
	return apply(state, gain, true), nil
}

func apply(state *dnd5e.AdvancementState, gain LevelGain, manual bool) *dnd5e.LevelEntry {
	state.CurrentLevel++
	entry := dnd5e.LevelEntry{
		Level:            state.CurrentLevel,
		Class:            gain.Class,
		HitPointsGained:  gain.HitPointsGained,
		ExperiencePoints: state.ExperiencePoints,
		Manual:           manual,
		At:               gain.At,
	}
	state.LevelHistory = append(state.LevelHistory, entry)
	return &entry
}
