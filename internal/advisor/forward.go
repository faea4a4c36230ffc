package advisor

import "github.com/chewxy/math32"

// Scores computes the category probabilities the exported graph encodes:
// a per-category dot product with the weight row, a bias add, then a
// softmax over the categories.
func Scores(features [NumFeatures]float32) [NumCategories]float32 {
	var logits [NumCategories]float32
	for c := 0; c < NumCategories; c++ {
		sum := categoryBias[c]
		for f := 0; f < NumFeatures; f++ {
			sum += categoryWeights[c][f] * features[f]
		}
		logits[c] = sum
	}
	return softmax(logits)
}

// softmax subtracts the max logit before exponentiating so large scores
// cannot overflow float32.
func softmax(logits [NumCategories]float32) [NumCategories]float32 {
	maxVal := logits[0]
	for _, v := range logits[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	var out [NumCategories]float32
	var sum float32
	for i, v := range logits {
		e := math32.Exp(v - maxVal)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
