// Package multiclass checks ability-score prerequisites for taking levels in
// an additional class.
package multiclass

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/character-builder/internal/errors"
	"github.com/KirkDiggler/character-builder/internal/rules/ruleset"
)

// MinimumScore is the prerequisite threshold for every governing ability
const MinimumScore = 13

// Result lists unmet requirements, formatted for display
type Result struct {
	Met     bool     `json:"met"`
	Missing []string `json:"missing"`
}

// Config for the checker
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

// Checker evaluates prerequisites from the class table
type Checker struct {
	rules *ruleset.Rules
}

// NewChecker creates a checker
func NewChecker(cfg *Config) (*Checker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Checker{rules: cfg.Rules}, nil
}

// Check tests the target class's prerequisite. Unknown classes have none.
func (c *Checker) Check(target string, scores dnd5e.AbilityScores) Result {
	class, ok := c.rules.Class(target)
	if !ok {
		return Result{Met: true, Missing: []string{}}
	}
	missing := unmet(class, scores)
	return Result{Met: len(missing) == 0, Missing: missing}
}

// CheckAll also requires the prerequisites of every class already held,
// as multiclassing out of a class needs its minimums too.
func (c *Checker) CheckAll(current []dnd5e.ClassLevel, target string, scores dnd5e.AbilityScores) Result {
	missing := c.Check(target, scores).Missing
	seen := map[string]bool{ruleset.Key(target): true}
	for _, held := range current {
		k := ruleset.Key(held.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		missing = append(missing, c.Check(held.Name, scores).Missing...)
	}
	return Result{Met: len(missing) == 0, Missing: missing}
}

// Eligible returns every class in table order the scores qualify for
func (c *Checker) Eligible(scores dnd5e.AbilityScores) []string {
	var out []string
	for _, name := range c.rules.ClassNames() {
		if c.Check(name, scores).Met {
			out = append(out, name)
		}
	}
	return out
}

func unmet(class ruleset.Class, scores dnd5e.AbilityScores) []string {
	missing := []string{}
	for _, a := range class.Multiclass.AllOf {
		if scores.Get(a) < MinimumScore {
			missing = append(missing, fmt.Sprintf("%s: %s %d (have %d)",
				class.Name, abilityLabel(a), MinimumScore, scores.Get(a)))
		}
	}
	if len(class.Multiclass.AnyOf) > 0 {
		met := false
		labels := make([]string, 0, len(class.Multiclass.AnyOf))
		for _, a := range class.Multiclass.AnyOf {
			labels = append(labels, abilityLabel(a))
			if scores.Get(a) >= MinimumScore {
				met = true
			}
		}
		if !met {
			missing = append(missing, fmt.Sprintf("%s: %s %d",
				class.Name, strings.Join(labels, " or "), MinimumScore))
		}
	}
	return missing
}

func abilityLabel(a dnd5e.Ability) string {
	return strings.ToUpper(a.String())
}
