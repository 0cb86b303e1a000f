package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

func exampleCatalogue() []domain.IndicatorDefinition {
	return []domain.IndicatorDefinition{
		{Name: "A", Category: domain.CategoryDigitalLiteracy, Scale: "0=No;1=Yes"},
		{Name: "B", Category: domain.CategoryDigitalLiteracy, Scale: "0=None;1=Basic;2=Full"},
	}
}

func TestAggregate_WeightsByScaleSize(t *testing.T) {
	agg := NewAggregator(nil)

	res := agg.Aggregate(exampleCatalogue(), domain.RawScores{"A": 1, "B": 1})

	assert.Equal(t, 6.67, res.PerCategory[domain.CategoryDigitalLiteracy])
	assert.Equal(t, 6.67, res.Overall)
	assert.Equal(t, 0.0, res.PerCategory[domain.CategoryPrivacy])
}

func TestAggregate_AllCategoriesPresent(t *testing.T) {
	agg := NewAggregator(nil)

	res := agg.Aggregate(nil, nil)

	require.Len(t, res.PerCategory, len(domain.Categories))
	for _, c := range domain.Categories {
		v, ok := res.PerCategory[c]
		assert.True(t, ok, "missing category %s", c)
		assert.Equal(t, 0.0, v)
	}
	assert.Equal(t, 0.0, res.Overall)
}

func TestAggregate_EmptyScoresAreZero(t *testing.T) {
	res := NewAggregator(nil).Aggregate(exampleCatalogue(), domain.RawScores{})

	assert.Equal(t, 0.0, res.PerCategory[domain.CategoryDigitalLiteracy])
	assert.Equal(t, 0.0, res.Overall)
}

func TestAggregate_AllAtMaxIsTen(t *testing.T) {
	indicators := []domain.IndicatorDefinition{
		{Name: "A", Category: domain.CategoryDigitalLiteracy, Scale: "0=No;1=Yes"},
		{Name: "B", Category: domain.CategoryCybersecurity, Scale: "0=No;1=Some;2=Most;3=All"},
		{Name: "C", Category: domain.CategoryHumanAgency, Scale: "unparseable"},
	}
	raw := domain.RawScores{"A": 1, "B": 3, "C": 5}

	res := NewAggregator(nil).Aggregate(indicators, raw)

	assert.Equal(t, 10.0, res.PerCategory[domain.CategoryDigitalLiteracy])
	assert.Equal(t, 10.0, res.PerCategory[domain.CategoryCybersecurity])
	assert.Equal(t, 10.0, res.PerCategory[domain.CategoryHumanAgency])
	assert.Equal(t, 0.0, res.PerCategory[domain.CategoryPrivacy])
	assert.Equal(t, 10.0, res.Overall)
}

func TestAggregate_UnknownCategoryCountsOnlyInOverall(t *testing.T) {
	indicators := []domain.IndicatorDefinition{
		{Name: "A", Category: domain.CategoryPrivacy, Scale: "0=No;1=Yes"},
		{Name: "X", Category: domain.Category("9"), Scale: "0=No;1=Yes"},
	}

	res := NewAggregator(nil).Aggregate(indicators, domain.RawScores{"A": 1, "X": 0})

	assert.Equal(t, 10.0, res.PerCategory[domain.CategoryPrivacy])
	assert.Equal(t, 5.0, res.Overall)
	_, ok := res.PerCategory[domain.Category("9")]
	assert.False(t, ok)
}

func TestAggregate_ClampsOutOfRangeValues(t *testing.T) {
	indicators := []domain.IndicatorDefinition{
		{Name: "A", Category: domain.CategoryTransparency, Scale: "0=No;1=Yes"},
		{Name: "B", Category: domain.CategoryTransparency, Scale: "0=No;1=Yes"},
		{Name: "C", Category: domain.CategoryTransparency, Scale: "0=No;1=Yes"},
	}
	raw := domain.RawScores{"A": 7, "B": -2, "C": math.NaN()}

	res := NewAggregator(nil).Aggregate(indicators, raw)

	assert.Equal(t, 3.33, res.PerCategory[domain.CategoryTransparency])
	assert.Equal(t, 3.33, res.Overall)
}

func TestAggregate_ZeroMaxIndicatorDoesNotDivideByZero(t *testing.T) {
	indicators := []domain.IndicatorDefinition{
		{Name: "Z", Category: domain.CategoryAlgorithms, Scale: "0=Only"},
	}

	res := NewAggregator(nil).Aggregate(indicators, domain.RawScores{"Z": 1})

	assert.Equal(t, 0.0, res.PerCategory[domain.CategoryAlgorithms])
	assert.Equal(t, 0.0, res.Overall)
}

func TestAggregate_IgnoresScoresForUnknownIndicators(t *testing.T) {
	res := NewAggregator(nil).Aggregate(exampleCatalogue(), domain.RawScores{"A": 1, "B": 2, "ghost": 100})

	assert.Equal(t, 10.0, res.Overall)
}

func TestAggregate_Idempotent(t *testing.T) {
	agg := NewAggregator(nil)
	indicators := exampleCatalogue()
	raw := domain.RawScores{"A": 1, "B": 2}

	first := agg.Aggregate(indicators, raw)
	second := agg.Aggregate(indicators, raw)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.RawScores{"A": 1, "B": 2}, raw, "input must not be modified")
}

func TestAggregate_WithinBounds(t *testing.T) {
	indicators := []domain.IndicatorDefinition{
		{Name: "A", Category: domain.CategoryDigitalLiteracy, Scale: "0=a;1=b;2=c"},
		{Name: "B", Category: domain.CategoryCybersecurity, Scale: "0=a;4=e"},
		{Name: "C", Category: domain.CategoryPrivacy, Scale: ""},
	}
	agg := NewAggregator(nil)

	for a := -1.0; a <= 3; a += 0.5 {
		for b := -1.0; b <= 5; b += 0.5 {
			res := agg.Aggregate(indicators, domain.RawScores{"A": a, "B": b, "C": a + b})
			assert.GreaterOrEqual(t, res.Overall, 0.0)
			assert.LessOrEqual(t, res.Overall, 10.0)
			for _, v := range res.PerCategory {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 10.0)
			}
		}
	}
}

func TestAggregateCatalogue(t *testing.T) {
	cat, err := domain.NewCatalogue(exampleCatalogue())
	require.NoError(t, err)

	res := NewAggregator(nil).AggregateCatalogue(cat, domain.RawScores{"A": 1, "B": 1})
	assert.Equal(t, 6.67, res.Overall)

	res = NewAggregator(nil).AggregateCatalogue(nil, domain.RawScores{"A": 1})
	assert.Equal(t, 0.0, res.Overall)
}

func TestMaxPoints(t *testing.T) {
	agg := NewAggregator(nil)
	assert.Equal(t, 2, agg.MaxPoints(domain.IndicatorDefinition{Scale: "0=None;1=Basic;2=Full"}))
	assert.Equal(t, 5, agg.MaxPoints(domain.IndicatorDefinition{Scale: "garbage"}))
}
