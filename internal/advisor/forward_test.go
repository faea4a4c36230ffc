package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoresZeroInputUniform(t *testing.T) {
	scores := Scores([NumFeatures]float32{})

	// With zero features every logit equals the shared bias, so the
	// softmax spreads probability evenly across the categories.
	var sum float32
	for i, s := range scores {
		assert.InDelta(t, 0.2, s, 1e-6, "category %s", CategoryNames[i])
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestScoresSumToOne(t *testing.T) {
	inputs := [][NumFeatures]float32{
		{12.5, 3.0, 0.0, 1.0},
		{-8.0, 14.0, 2.5, 4.0},
		{30.0, 0.5, 0.0, 2.0},
	}
	for _, in := range inputs {
		var sum float32
		for _, s := range Scores(in) {
			sum += s
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "input %v", in)
	}
}

func TestScoresFavorDominantFeature(t *testing.T) {
	// Heavy precipitation carries the largest weight in the rainy row.
	scores := Scores([NumFeatures]float32{0, 0, 5, 0})

	rainy := 2
	for i, s := range scores {
		if i == rainy {
			continue
		}
		assert.Greater(t, scores[rainy], s, "rainy should dominate %s", CategoryNames[i])
	}
}
