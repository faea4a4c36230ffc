package onnx

import (
	"fmt"
	"os"

	"github.com/vaero-ai/modelgen/internal/tensor"
)

// TensorInfo describes one declared graph input or output.
type TensorInfo struct {
	Name  string
	DType tensor.DataType
	Shape tensor.Shape
}

// ModelInfo summarizes a serialized model without preparing it for execution.
type ModelInfo struct {
	IRVersion        int64
	OpsetVersion     int64
	ProducerName     string
	ProducerVersion  string
	GraphName        string
	Inputs           []TensorInfo
	Outputs          []TensorInfo
	NodeCount        int
	InitializerCount int
	FileSize         int64
}

// Info extracts summary information from an ONNX file.
func Info(path string) (*ModelInfo, error) {
	proto, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ModelInfo{
		IRVersion:       proto.IRVersion,
		OpsetVersion:    proto.DefaultOpsetVersion(),
		ProducerName:    proto.ProducerName,
		ProducerVersion: proto.ProducerVersion,
		FileSize:        st.Size(),
	}

	if proto.Graph == nil {
		return info, nil
	}
	info.GraphName = proto.Graph.Name
	info.NodeCount = len(proto.Graph.Nodes)
	info.InitializerCount = len(proto.Graph.Initializers)

	// Inputs that name an initializer are weights with default values, not
	// feeds, and are excluded from the reported input list.
	initNames := make(map[string]bool, len(proto.Graph.Initializers))
	for i := range proto.Graph.Initializers {
		initNames[proto.Graph.Initializers[i].Name] = true
	}
	for i := range proto.Graph.Inputs {
		vi := &proto.Graph.Inputs[i]
		if initNames[vi.Name] {
			continue
		}
		ti, err := tensorInfoOf(vi)
		if err != nil {
			return nil, err
		}
		info.Inputs = append(info.Inputs, ti)
	}
	for i := range proto.Graph.Outputs {
		ti, err := tensorInfoOf(&proto.Graph.Outputs[i])
		if err != nil {
			return nil, err
		}
		info.Outputs = append(info.Outputs, ti)
	}

	return info, nil
}

// tensorInfoOf flattens a value info into name, data type, and static shape.
// Symbolic dimensions are reported as -1.
func tensorInfoOf(vi *ValueInfoProto) (TensorInfo, error) {
	ti := TensorInfo{Name: vi.Name}
	if vi.Type == nil || vi.Type.TensorType == nil {
		return ti, fmt.Errorf("value %q has no tensor type", vi.Name)
	}
	tt := vi.Type.TensorType
	dt, err := dataTypeOf(tt.ElemType)
	if err != nil {
		return ti, fmt.Errorf("value %q: %w", vi.Name, err)
	}
	ti.DType = dt
	if tt.Shape != nil {
		ti.Shape = make(tensor.Shape, len(tt.Shape.Dims))
		for i, dim := range tt.Shape.Dims {
			if dim.DimParam != "" {
				ti.Shape[i] = -1
				continue
			}
			ti.Shape[i] = int(dim.DimValue)
		}
	}
	return ti, nil
}
