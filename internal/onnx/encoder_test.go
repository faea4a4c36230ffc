package onnx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vaero-ai/modelgen/internal/tensor"
)

// testModel builds a small linear classifier envelope: y = Softmax(x*W + b).
func testModel() *ModelProto {
	weights, err := FloatInitializer("W", tensor.Shape{3, 2}, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	if err != nil {
		panic(err)
	}
	bias, err := FloatInitializer("b", tensor.Shape{2}, []float32{0.5, -0.5})
	if err != nil {
		panic(err)
	}

	graph := &GraphProto{
		Name: "linear_graph",
		Nodes: []NodeProto{
			{
				Name:    "matmul",
				OpType:  "MatMul",
				Inputs:  []string{"x", "W"},
				Outputs: []string{"xw"},
			},
			{
				Name:    "add",
				OpType:  "Add",
				Inputs:  []string{"xw", "b"},
				Outputs: []string{"logits"},
			},
			{
				Name:       "softmax",
				OpType:     "Softmax",
				Inputs:     []string{"logits"},
				Outputs:    []string{"y"},
				Attributes: []AttributeProto{IntAttr("axis", 1)},
			},
		},
		Inputs:       []ValueInfoProto{FloatValueInfo("x", tensor.Shape{1, 3})},
		Outputs:      []ValueInfoProto{FloatValueInfo("y", tensor.Shape{1, 2})},
		Initializers: []TensorProto{weights, bias},
	}

	return &ModelProto{
		IRVersion:    7,
		ProducerName: "modelgen-test",
		OpsetImport:  []OperatorSetID{{Version: 13}},
		Graph:        graph,
		MetadataProps: []StringStringEntry{
			{Key: "purpose", Value: "codec test"},
		},
	}
}

// TestMarshalDeterministic verifies that equal models serialize to
// identical bytes.
func TestMarshalDeterministic(t *testing.T) {
	a := Marshal(testModel())
	b := Marshal(testModel())

	if len(a) == 0 {
		t.Fatal("Marshal produced no bytes")
	}
	if !bytes.Equal(a, b) {
		t.Error("two marshals of equal models differ")
	}
}

// TestMarshalKnownBytes checks hand-computed wire layouts for small messages.
func TestMarshalKnownBytes(t *testing.T) {
	opset := marshalOperatorSetID(&OperatorSetID{Version: 13})
	want := []byte{0x10, 0x0d} // field 2 varint, value 13
	if !bytes.Equal(opset, want) {
		t.Errorf("opset bytes = %x, want %x", opset, want)
	}

	attr := marshalAttributeProto(&AttributeProto{Name: "axis", Type: AttributeProtoInt, I: 1})
	want = []byte{
		0x0a, 0x04, 'a', 'x', 'i', 's', // field 1 (name)
		0x18, 0x01, // field 3 (i) varint, value 1
		0xa0, 0x01, 0x02, // field 20 (type) varint, value INT
	}
	if !bytes.Equal(attr, want) {
		t.Errorf("attribute bytes = %x, want %x", attr, want)
	}

	dim := marshalDimensionProto(&DimensionProto{DimValue: 0})
	want = []byte{0x08, 0x00} // oneof member written even at zero
	if !bytes.Equal(dim, want) {
		t.Errorf("dimension bytes = %x, want %x", dim, want)
	}
}

// TestMarshalParseRoundTrip serializes a model and parses it back.
func TestMarshalParseRoundTrip(t *testing.T) {
	model := testModel()
	parsed, err := Parse(Marshal(model))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parsed.IRVersion != 7 {
		t.Errorf("IRVersion = %d, want 7", parsed.IRVersion)
	}
	if parsed.ProducerName != "modelgen-test" {
		t.Errorf("ProducerName = %q, want %q", parsed.ProducerName, "modelgen-test")
	}
	if parsed.DefaultOpsetVersion() != 13 {
		t.Errorf("opset version = %d, want 13", parsed.DefaultOpsetVersion())
	}
	if len(parsed.MetadataProps) != 1 || parsed.MetadataProps[0].Key != "purpose" {
		t.Errorf("metadata not preserved: %+v", parsed.MetadataProps)
	}

	if parsed.Graph == nil {
		t.Fatal("Graph is nil")
	}
	g := parsed.Graph
	if g.Name != "linear_graph" {
		t.Errorf("graph name = %q, want %q", g.Name, "linear_graph")
	}
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	for i, want := range []string{"MatMul", "Add", "Softmax"} {
		if g.Nodes[i].OpType != want {
			t.Errorf("node %d op type = %q, want %q", i, g.Nodes[i].OpType, want)
		}
	}

	softmax := g.Nodes[2]
	if len(softmax.Attributes) != 1 {
		t.Fatalf("expected 1 softmax attribute, got %d", len(softmax.Attributes))
	}
	axis := softmax.Attributes[0]
	if axis.Name != "axis" || axis.Type != AttributeProtoInt || axis.I != 1 {
		t.Errorf("axis attribute not preserved: %+v", axis)
	}

	if len(g.Initializers) != 2 {
		t.Fatalf("expected 2 initializers, got %d", len(g.Initializers))
	}
	w := g.Initializers[0]
	if w.Name != "W" || w.DataType != TensorProtoFloat {
		t.Errorf("initializer header not preserved: %+v", w)
	}
	if len(w.Dims) != 2 || w.Dims[0] != 3 || w.Dims[1] != 2 {
		t.Errorf("initializer dims = %v, want [3 2]", w.Dims)
	}
	if len(w.FloatData) != 6 || w.FloatData[0] != 0.1 || w.FloatData[5] != 0.6 {
		t.Errorf("initializer data not preserved: %v", w.FloatData)
	}

	if len(g.Inputs) != 1 || len(g.Outputs) != 1 {
		t.Fatalf("expected 1 input and 1 output, got %d and %d", len(g.Inputs), len(g.Outputs))
	}
	in := g.Inputs[0]
	if in.Name != "x" {
		t.Errorf("input name = %q, want %q", in.Name, "x")
	}
	if in.Type == nil || in.Type.TensorType == nil || in.Type.TensorType.Shape == nil {
		t.Fatal("input type info is nil")
	}
	dims := in.Type.TensorType.Shape.Dims
	if len(dims) != 2 || dims[0].DimValue != 1 || dims[1].DimValue != 3 {
		t.Errorf("input dims = %+v, want [1 3]", dims)
	}
}

// TestMarshalRoundTripSymbolicDim verifies dim_param survives the codec.
func TestMarshalRoundTripSymbolicDim(t *testing.T) {
	vi := FloatValueInfo("x", tensor.Shape{1, 4})
	vi.Type.TensorType.Shape.Dims[0] = DimensionProto{DimParam: "batch"}

	model := testModel()
	model.Graph.Inputs = []ValueInfoProto{vi}

	parsed, err := Parse(Marshal(model))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dims := parsed.Graph.Inputs[0].Type.TensorType.Shape.Dims
	if dims[0].DimParam != "batch" {
		t.Errorf("dim_param = %q, want %q", dims[0].DimParam, "batch")
	}
	if dims[1].DimValue != 4 {
		t.Errorf("dim_value = %d, want 4", dims[1].DimValue)
	}
}

// TestMarshalRoundTripNegativeInt covers the ten-byte varint encoding.
func TestMarshalRoundTripNegativeInt(t *testing.T) {
	model := testModel()
	model.Graph.Nodes[2].Attributes[0] = IntAttr("axis", -1)

	parsed, err := Parse(Marshal(model))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := parsed.Graph.Nodes[2].Attributes[0].I; got != -1 {
		t.Errorf("axis = %d, want -1", got)
	}
}

// TestMarshalPreservesOptionalInputPlaceholder verifies empty input names
// keep their position.
func TestMarshalPreservesOptionalInputPlaceholder(t *testing.T) {
	node := &NodeProto{
		OpType:  "Gemm",
		Inputs:  []string{"x", "W", ""},
		Outputs: []string{"y"},
	}
	parsed := NodeProto{}
	sub := &parser{data: marshalNodeProto(node)}
	if err := sub.readNodeProto(&parsed); err != nil {
		t.Fatalf("readNodeProto failed: %v", err)
	}
	if len(parsed.Inputs) != 3 || parsed.Inputs[2] != "" {
		t.Errorf("inputs = %q, want trailing empty placeholder", parsed.Inputs)
	}
}

// TestMarshalDocStrings verifies doc_string fields survive the codec.
func TestMarshalDocStrings(t *testing.T) {
	model := testModel()
	model.DocString = "model doc"
	model.Graph.DocString = "graph doc"
	model.Graph.Nodes[0].DocString = "node doc"
	model.Graph.Inputs[0].DocString = "input doc"
	model.Graph.Initializers[0].DocString = "tensor doc"

	parsed, err := Parse(Marshal(model))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.DocString != "model doc" {
		t.Errorf("model doc = %q", parsed.DocString)
	}
	if parsed.Graph.DocString != "graph doc" {
		t.Errorf("graph doc = %q", parsed.Graph.DocString)
	}
	if parsed.Graph.Nodes[0].DocString != "node doc" {
		t.Errorf("node doc = %q", parsed.Graph.Nodes[0].DocString)
	}
	if parsed.Graph.Inputs[0].DocString != "input doc" {
		t.Errorf("input doc = %q", parsed.Graph.Inputs[0].DocString)
	}
	if parsed.Graph.Initializers[0].DocString != "tensor doc" {
		t.Errorf("tensor doc = %q", parsed.Graph.Initializers[0].DocString)
	}
}

// TestWriteFile writes a model to disk and parses it back.
func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.onnx")

	model := testModel()
	if err := WriteFile(path, model); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if st.Size() != int64(len(Marshal(model))) {
		t.Errorf("file size %d does not match marshal size %d", st.Size(), len(Marshal(model)))
	}

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if parsed.Graph == nil || len(parsed.Graph.Nodes) != 3 {
		t.Error("written model did not round-trip")
	}
}

// TestWriteFileBadPath verifies write errors are surfaced.
func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "test.onnx"), testModel())
	if err == nil {
		t.Error("expected error for missing parent directory, got nil")
	}
}
