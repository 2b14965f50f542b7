// Package abilities validates ability-score assignments against the four
// generation methods and prices point-buy spends.
package abilities

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/character-builder/internal/entities/dnd5e"
)

// Method is an ability-score generation method
type Method string

// Generation methods
const (
	MethodStandard Method = "standard"
	MethodPointBuy Method = "point-buy"
	MethodRoll     Method = "roll"
	MethodManual   Method = "manual"
)

// Manual-method bounds
const (
	DefaultManualMinScore = 8
	ManualMaxScore        = 20
)

// RollPoolSize is the number of 4d6-drop-lowest results a roll pool holds
const RollPoolSize = 6

// StandardArray is assigned one value per ability
var StandardArray = [6]int{15, 14, 13, 12, 10, 8}

// ParseMethod accepts the canonical names plus underscore spellings
func ParseMethod(s string) (Method, bool) {
	switch Method(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")) {
	case MethodStandard, "standard-array":
		return MethodStandard, true
	case MethodPointBuy:
		return MethodPointBuy, true
	case MethodRoll, "rolled":
		return MethodRoll, true
	case MethodManual:
		return MethodManual, true
	default:
		return "", false
	}
}

// ValidationContext carries method inputs that are not scores
type ValidationContext struct {
	RollsPool []int
}

// Config for the validator
type Config struct {
	// ManualMinScore is the lowest score the manual method accepts.
	// Zero means DefaultManualMinScore.
	ManualMinScore int
}

// Validator checks scores against a method. It never errors on well-typed
// input; failures are reported as reasons.
type Validator struct {
	manualMin int
}

// NewValidator creates a validator
func NewValidator(cfg *Config) *Validator {
	v := &Validator{manualMin: DefaultManualMinScore}
	if cfg != nil && cfg.ManualMinScore > 0 {
		v.manualMin = cfg.ManualMinScore
	}
	return v
}

// Validate reports whether scores are legal for method
func (v *Validator) Validate(method Method, scores [6]int, ctx ValidationContext) bool {
	return len(v.Explain(method, scores, ctx)) == 0
}

// Explain returns one reason per failed check, empty when legal
func (v *Validator) Explain(method Method, scores [6]int, ctx ValidationContext) []string {
	var reasons []string
	for i, score := range scores {
		if score <= 0 {
			reasons = append(reasons, fmt.Sprintf("%s: must be positive", dnd5e.Abilities[i]))
		}
	}

	switch method {
	case MethodStandard:
		reasons = append(reasons, explainStandard(scores)...)
	case MethodPointBuy:
		reasons = append(reasons, explainPointBuy(scores)...)
	case MethodRoll:
		reasons = append(reasons, explainRoll(scores, ctx.RollsPool)...)
	case MethodManual:
		for i, score := range scores {
			if score < v.manualMin || score > ManualMaxScore {
				reasons = append(reasons, fmt.Sprintf("%s: %d is outside %d-%d",
					dnd5e.Abilities[i], score, v.manualMin, ManualMaxScore))
			}
		}
	default:
		reasons = append(reasons, fmt.Sprintf("unknown method %q", method))
	}
	return reasons
}

func explainStandard(scores [6]int) []string {
	if sameMultiset(scores[:], StandardArray[:]) {
		return nil
	}
	var reasons []string
	for i, score := range scores {
		if !slices.Contains(StandardArray[:], score) {
			reasons = append(reasons, fmt.Sprintf("%s: %d is not in the standard array", dnd5e.Abilities[i], score))
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "each standard array value must be used exactly once")
	}
	return reasons
}

func explainPointBuy(scores [6]int) []string {
	var reasons []string
	for i, score := range scores {
		if score < PointBuyMinScore || score > PointBuyMaxScore {
			reasons = append(reasons, fmt.Sprintf("%s: %d is outside %d-%d",
				dnd5e.Abilities[i], score, PointBuyMinScore, PointBuyMaxScore))
		}
	}
	if len(reasons) > 0 {
		return reasons
	}
	total, err := TotalCost(scores)
	if err != nil {
		return []string{err.Error()}
	}
	if total != PointBuyBudget {
		return []string{fmt.Sprintf("point-buy spends %d of %d points", total, PointBuyBudget)}
	}
	return nil
}

// explainRoll matches assigned scores against the pool as a multiset so no
// rolled value is used twice.
func explainRoll(scores [6]int, pool []int) []string {
	if len(pool) != RollPoolSize {
		return []string{fmt.Sprintf("rolls pool must hold %d values, has %d", RollPoolSize, len(pool))}
	}
	remaining := make(map[int]int, len(pool))
	for _, p := range pool {
		remaining[p]++
	}
	var reasons []string
	for i, score := range scores {
		if remaining[score] == 0 {
			reasons = append(reasons, fmt.Sprintf("%s: %d is not an unused roll", dnd5e.Abilities[i], score))
			continue
		}
		remaining[score]--
	}
	return reasons
}

func sameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
