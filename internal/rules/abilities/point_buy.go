package abilities

import (
	"github.com/KirkDiggler/character-builder/internal/errors"
)

// Point-buy limits
const (
	PointBuyBudget   = 27
	PointBuyMinScore = 8
	PointBuyMaxScore = 15
)

// ErrScoreOutOfRange is returned for a score the point-buy table cannot price
var ErrScoreOutOfRange = errors.New(errors.CodeOutOfRange, "score outside point-buy range")

// CostOf prices one score: 8 and below are free, 9-13 cost score-8,
// 14 costs 7 and 15 costs 9.
func CostOf(score int) (int, error) {
	switch {
	case score <= PointBuyMinScore:
		return 0, nil
	case score <= 13:
		return score - PointBuyMinScore, nil
	case score == 14:
		return 7, nil
	case score == PointBuyMaxScore:
		return 9, nil
	default:
		return 0, errors.WrapWithCode(ErrScoreOutOfRange, errors.CodeOutOfRange, "cannot price score").
			WithMeta("score", score)
	}
}

// TotalCost sums CostOf over the scores. The first unpriceable score aborts.
func TotalCost(scores [6]int) (int, error) {
	total := 0
	for _, score := range scores {
		cost, err := CostOf(score)
		if err != nil {
			return 0, err
		}
		total += cost
	}
	return total, nil
}
