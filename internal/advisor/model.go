// Package advisor defines the weather advisor classifier: a fixed linear
// model that maps four forecast features to five advice categories, built
// and exported as an ONNX graph.
package advisor

import (
	"fmt"

	"github.com/vaero-ai/modelgen/internal/onnx"
	"github.com/vaero-ai/modelgen/internal/tensor"
)

// Envelope constants.
const (
	GraphName    = "weather_advisor"
	ProducerName = "vaero-weather-ai"
	IRVersion    = 7
	OpsetVersion = 13
)

// Tensor names wired through the graph.
const (
	InputName  = "weather_input"
	OutputName = "advice_category"

	weightsName = "weights"
	biasName    = "bias"
	matmulName  = "matmul_output"
	addName     = "add_output"
)

// Model dimensions.
const (
	NumFeatures   = 4
	NumCategories = 5
)

// FeatureNames lists the input features in feed order.
var FeatureNames = []string{"temperature", "wind_speed", "precipitation", "symbol_code"}

// CategoryNames lists the advice categories in output order.
var CategoryNames = []string{"warm", "windy", "rainy", "cold", "neutral"}

// categoryWeights holds one feature weight row per advice category. Each
// row leans on the feature its category reacts to; the neutral row is
// uniform.
var categoryWeights = [NumCategories][NumFeatures]float32{
	{0.4, 0.3, 0.2, 0.1},     // warm
	{0.2, 0.4, 0.3, 0.1},     // windy
	{0.1, 0.2, 0.6, 0.1},     // rainy
	{0.3, 0.2, 0.1, 0.4},     // cold
	{0.25, 0.25, 0.25, 0.25}, // neutral
}

// categoryBias shifts every category score before the softmax.
var categoryBias = [NumCategories]float32{0.1, 0.1, 0.1, 0.1, 0.1}

// InputShape returns the declared feed shape: one batch of NumFeatures.
func InputShape() tensor.Shape { return tensor.Shape{1, NumFeatures} }

// OutputShape returns the declared result shape: one batch of NumCategories.
func OutputShape() tensor.Shape { return tensor.Shape{1, NumCategories} }

// BuildModel assembles the advisor envelope: a MatMul against the category
// weight rows, a bias Add, and a Softmax over the category axis.
func BuildModel() (*onnx.ModelProto, error) {
	weights, err := onnx.FloatInitializer(weightsName,
		tensor.Shape{NumCategories, NumFeatures}, flattenWeights())
	if err != nil {
		return nil, fmt.Errorf("build weights: %w", err)
	}
	bias, err := onnx.FloatInitializer(biasName,
		tensor.Shape{NumCategories}, append([]float32(nil), categoryBias[:]...))
	if err != nil {
		return nil, fmt.Errorf("build bias: %w", err)
	}

	graph := &onnx.GraphProto{
		Name: GraphName,
		Nodes: []onnx.NodeProto{
			{
				OpType:  "MatMul",
				Inputs:  []string{InputName, weightsName},
				Outputs: []string{matmulName},
			},
			{
				OpType:  "Add",
				Inputs:  []string{matmulName, biasName},
				Outputs: []string{addName},
			},
			{
				OpType:     "Softmax",
				Inputs:     []string{addName},
				Outputs:    []string{OutputName},
				Attributes: []onnx.AttributeProto{onnx.IntAttr("axis", 1)},
			},
		},
		Inputs:       []onnx.ValueInfoProto{onnx.FloatValueInfo(InputName, InputShape())},
		Outputs:      []onnx.ValueInfoProto{onnx.FloatValueInfo(OutputName, OutputShape())},
		Initializers: []onnx.TensorProto{weights, bias},
	}

	return &onnx.ModelProto{
		IRVersion:    IRVersion,
		ProducerName: ProducerName,
		OpsetImport:  []onnx.OperatorSetID{{Version: OpsetVersion}},
		Graph:        graph,
	}, nil
}

// flattenWeights lays the weight rows out in row-major order.
func flattenWeights() []float32 {
	flat := make([]float32, 0, NumCategories*NumFeatures)
	for _, row := range categoryWeights {
		flat = append(flat, row[:]...)
	}
	return flat
}
