package domain

// ScoreScaleMax is the upper bound of every normalised score
const ScoreScaleMax = 10.0

// RawScores maps indicator name to the achieved level for one organisation.
// Indicators missing from the map count as 0.
type RawScores map[string]float64

// ScoreResult holds normalised 0-10 scores for one organisation
type ScoreResult struct {
	PerCategory map[Category]float64 `json:"per_category"`
	Overall     float64              `json:"overall"`
}

// CategoryScore returns the score for a category, 0 when absent
func (r ScoreResult) CategoryScore(c Category) float64 {
	return r.PerCategory[c]
}

// Equal reports whether two results carry the same scores. A category
// missing from one side counts as 0.
func (r ScoreResult) Equal(o ScoreResult) bool {
	if r.Overall != o.Overall {
		return false
	}
	for c, v := range r.PerCategory {
		if o.CategoryScore(c) != v {
			return false
		}
	}
	for c, v := range o.PerCategory {
		if r.CategoryScore(c) != v {
			return false
		}
	}
	return true
}

// EmptyScoreResult returns a result with every fixed category at 0
func EmptyScoreResult() ScoreResult {
	per := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		per[c] = 0
	}
	return ScoreResult{PerCategory: per}
}
