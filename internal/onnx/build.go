package onnx

import (
	"fmt"

	"github.com/vaero-ai/modelgen/internal/tensor"
)

// FloatValueInfo builds the declaration of a float32 graph input or output
// with a fully static shape.
func FloatValueInfo(name string, shape tensor.Shape) ValueInfoProto {
	dims := make([]DimensionProto, len(shape))
	for i, d := range shape {
		dims[i] = DimensionProto{DimValue: int64(d)}
	}
	return ValueInfoProto{
		Name: name,
		Type: &TypeProto{
			TensorType: &TensorTypeProto{
				ElemType: TensorProtoFloat,
				Shape:    &TensorShapeProto{Dims: dims},
			},
		},
	}
}

// FloatInitializer builds a float32 constant tensor with row-major data.
// The data must fill the shape exactly.
func FloatInitializer(name string, shape tensor.Shape, data []float32) (TensorProto, error) {
	if err := shape.Validate(); err != nil {
		return TensorProto{}, fmt.Errorf("initializer %q: %w", name, err)
	}
	if len(data) != shape.NumElements() {
		return TensorProto{}, fmt.Errorf("initializer %q: %d elements do not fill shape %v (need %d)",
			name, len(data), shape, shape.NumElements())
	}
	dims := make([]int64, len(shape))
	for i, d := range shape {
		dims[i] = int64(d)
	}
	return TensorProto{
		Name:      name,
		DataType:  TensorProtoFloat,
		Dims:      dims,
		FloatData: data,
	}, nil
}

// IntAttr builds an INT attribute.
func IntAttr(name string, v int64) AttributeProto {
	return AttributeProto{Name: name, Type: AttributeProtoInt, I: v}
}
