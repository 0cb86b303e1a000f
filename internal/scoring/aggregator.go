// Package scoring derives normalised 0-10 scores from raw indicator levels.
//
// Scores are weighted by scale size: a category score is the sum of achieved
// levels over the sum of scale maxima, so an indicator out of 5 moves the
// result more than one out of 3.
//
// Indicators whose category code is not one of the seven fixed categories
// still count toward the overall score but belong to no category bucket.
package scoring

import (
	"math"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/scale"
)

// Aggregator is pure and stateless apart from its resolver
type Aggregator struct {
	resolver *scale.Resolver
}

// NewAggregator creates an aggregator. A nil resolver uses scale.DefaultResolver.
func NewAggregator(resolver *scale.Resolver) *Aggregator {
	if resolver == nil {
		resolver = scale.DefaultResolver()
	}
	return &Aggregator{resolver: resolver}
}

type bucket struct {
	achieved float64
	max      float64
}

func (b bucket) normalised() float64 {
	if b.max == 0 {
		return 0
	}
	return round2(b.achieved / b.max * domain.ScoreScaleMax)
}

// Aggregate scores one organisation against the catalogue.
// Missing indicators count as 0; achieved levels are clamped to [0, scale max].
func (a *Aggregator) Aggregate(indicators []domain.IndicatorDefinition, raw domain.RawScores) domain.ScoreResult {
	buckets := make(map[domain.Category]*bucket, len(domain.Categories))
	for _, c := range domain.Categories {
		buckets[c] = &bucket{}
	}
	var overall bucket

	// Iterate the slice, not a map, so float sums are order-stable.
	for _, ind := range indicators {
		max := float64(a.resolver.MaxPoints(ind.Scale))
		achieved := clamp(raw[ind.Name], max)

		overall.achieved += achieved
		overall.max += max

		if b, ok := buckets[ind.Category]; ok {
			b.achieved += achieved
			b.max += max
		}
	}

	result := domain.ScoreResult{
		PerCategory: make(map[domain.Category]float64, len(buckets)),
		Overall:     overall.normalised(),
	}
	for c, b := range buckets {
		result.PerCategory[c] = b.normalised()
	}
	return result
}

// AggregateCatalogue is Aggregate over a catalogue value
func (a *Aggregator) AggregateCatalogue(catalogue *domain.Catalogue, raw domain.RawScores) domain.ScoreResult {
	return a.Aggregate(catalogue.Indicators(), raw)
}

// MaxPoints exposes the resolver for callers showing per-indicator maxima
func (a *Aggregator) MaxPoints(ind domain.IndicatorDefinition) int {
	return a.resolver.MaxPoints(ind.Scale)
}

func clamp(v, max float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// round2 rounds half away from zero to two decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
