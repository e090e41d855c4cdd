package allocation

import (
	"github.com/samber/lo"

	"github.com/yukikurage/intern-allocation-api/internal/constants"
)

// Score sums the worker's ratings over the project's required skills. A skill
// the worker never rated contributes 0, and ratings are clamped to the 1-5
// scale so the result never exceeds 5 per required skill. Duplicate skill
// ids in required count once.
func Score(required []uint64, ratings map[uint64]int) int {
	score := 0
	for _, skillID := range lo.Uniq(required) {
		score += clampRating(ratings[skillID])
	}
	return score
}

// IndexRatings turns a rating list into a skill id lookup. Later entries for
// the same skill win.
func IndexRatings(ratings []Rating) map[uint64]int {
	return lo.SliceToMap(ratings, func(r Rating) (uint64, int) {
		return r.SkillID, r.Rating
	})
}

// Eligible reports whether a worker with the given declared capacity may take
// a project of the given effort. Equality qualifies.
func Eligible(goalHours *float64, estimatedHours float64) bool {
	return goalHours != nil && *goalHours >= estimatedHours
}

func clampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > constants.MaxSkillRating {
		return constants.MaxSkillRating
	}
	return rating
}
