package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vaero-ai/modelgen/internal/tensor"
)

// TestInfo verifies the summary matches the written artifact.
func TestInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := WriteFile(path, testModel()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	if info.IRVersion != 7 {
		t.Errorf("IRVersion = %d, want 7", info.IRVersion)
	}
	if info.OpsetVersion != 13 {
		t.Errorf("OpsetVersion = %d, want 13", info.OpsetVersion)
	}
	if info.ProducerName != "modelgen-test" {
		t.Errorf("ProducerName = %q, want %q", info.ProducerName, "modelgen-test")
	}
	if info.GraphName != "linear_graph" {
		t.Errorf("GraphName = %q, want %q", info.GraphName, "linear_graph")
	}
	if info.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", info.NodeCount)
	}
	if info.InitializerCount != 2 {
		t.Errorf("InitializerCount = %d, want 2", info.InitializerCount)
	}

	if len(info.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(info.Inputs))
	}
	in := info.Inputs[0]
	if in.Name != "x" || in.DType != tensor.Float32 || !in.Shape.Equal(tensor.Shape{1, 3}) {
		t.Errorf("input info = %+v", in)
	}

	if len(info.Outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(info.Outputs))
	}
	out := info.Outputs[0]
	if out.Name != "y" || out.DType != tensor.Float32 || !out.Shape.Equal(tensor.Shape{1, 2}) {
		t.Errorf("output info = %+v", out)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.FileSize != st.Size() {
		t.Errorf("FileSize = %d, stat says %d", info.FileSize, st.Size())
	}
}

// TestInfoExcludesInitializedInputs verifies inputs backed by initializers
// are reported as weights, not feeds.
func TestInfoExcludesInitializedInputs(t *testing.T) {
	model := testModel()
	model.Graph.Inputs = append(model.Graph.Inputs, FloatValueInfo("W", tensor.Shape{3, 2}))

	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := WriteFile(path, model); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if len(info.Inputs) != 1 || info.Inputs[0].Name != "x" {
		t.Errorf("inputs = %+v, want only %q", info.Inputs, "x")
	}
}

// TestInfoSymbolicDims verifies symbolic dimensions are reported as -1.
func TestInfoSymbolicDims(t *testing.T) {
	model := testModel()
	model.Graph.Inputs[0].Type.TensorType.Shape.Dims[0] = DimensionProto{DimParam: "batch"}

	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := WriteFile(path, model); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if !info.Inputs[0].Shape.Equal(tensor.Shape{-1, 3}) {
		t.Errorf("input shape = %v, want [-1, 3]", info.Inputs[0].Shape)
	}
}

// TestInfoMissingFile verifies the error path.
func TestInfoMissingFile(t *testing.T) {
	if _, err := Info("/nonexistent/model.onnx"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
