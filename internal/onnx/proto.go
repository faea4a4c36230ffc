package onnx

import (
	"fmt"

	"github.com/vaero-ai/modelgen/internal/tensor"
)

// ONNX protobuf data structures (hand-written). Field numbers follow the
// upstream onnx.proto schema and are shared by the encoder and the parser.

// ModelProto is the top-level ONNX model envelope.
//
// Fields: 1=ir_version, 2=producer_name, 3=producer_version, 4=domain,
// 5=model_version, 6=doc_string, 7=graph, 8=opset_import, 14=metadata_props.
type ModelProto struct {
	IRVersion       int64               // IR format version (7 for the opset 13 era)
	OpsetImport     []OperatorSetID     // Operator set version(s)
	ProducerName    string              // Tool that produced the model
	ProducerVersion string              // Tool version
	Domain          string              // Model namespace
	ModelVersion    int64               // Model version number
	DocString       string              // Model description
	Graph           *GraphProto         // Computation graph
	MetadataProps   []StringStringEntry // Key-value metadata
}

// DefaultOpsetVersion returns the opset version imported for the default
// ONNX operator domain, or 0 if none is declared.
func (m *ModelProto) DefaultOpsetVersion() int64 {
	for _, opset := range m.OpsetImport {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			return opset.Version
		}
	}
	return 0
}

// GraphProto is the computation graph: nodes in execution order plus the
// declared inputs, outputs and embedded constant tensors.
//
// Fields: 1=node, 2=name, 5=initializer, 10=doc_string, 11=input,
// 12=output, 13=value_info.
type GraphProto struct {
	Name         string           // Graph name
	Nodes        []NodeProto      // Operation nodes, declaration order = execution order
	Inputs       []ValueInfoProto // Graph inputs
	Outputs      []ValueInfoProto // Graph outputs
	Initializers []TensorProto    // Embedded constant tensors
	DocString    string           // Graph description
	ValueInfo    []ValueInfoProto // Intermediate tensor info
}

// NodeProto is a single operation.
//
// Fields: 1=input, 2=output, 3=name, 4=op_type, 5=attribute, 6=doc_string,
// 7=domain.
type NodeProto struct {
	Name       string           // Node name (optional)
	OpType     string           // Operation type (e.g., "MatMul", "Add", "Softmax")
	Inputs     []string         // Input tensor names
	Outputs    []string         // Output tensor names
	Attributes []AttributeProto // Operation attributes
	Domain     string           // Custom operator domain (empty for default)
	DocString  string           // Node description
}

// TensorProto carries constant tensor data (initializers).
//
// Fields: 1=dims, 2=data_type, 4=float_data, 5=int32_data, 7=int64_data,
// 8=name, 9=raw_data, 12=doc_string.
type TensorProto struct {
	Name      string    // Tensor name
	DataType  int32     // Element data type
	Dims      []int64   // Tensor shape
	RawData   []byte    // Raw little-endian binary data
	FloatData []float32 // Float32 data (typed field)
	Int32Data []int32   // Int32 data (typed field)
	Int64Data []int64   // Int64 data (typed field)
	DocString string    // Tensor description
}

// NumElements returns the element count implied by Dims, or 0 when any
// dimension is negative.
func (t *TensorProto) NumElements() int64 {
	n := int64(1)
	for _, dim := range t.Dims {
		if dim < 0 {
			return 0
		}
		n *= dim
	}
	return n
}

// ValueInfoProto declares the name and type of a graph input or output.
//
// Fields: 1=name, 2=type, 3=doc_string.
type ValueInfoProto struct {
	Name      string     // Tensor name
	Type      *TypeProto // Tensor type information
	DocString string     // Description
}

// TypeProto wraps the type variants; only tensor types are used here.
type TypeProto struct {
	TensorType *TensorTypeProto // field 1
}

// TensorTypeProto pairs an element type with a shape.
type TensorTypeProto struct {
	ElemType int32             // field 1
	Shape    *TensorShapeProto // field 2
}

// TensorShapeProto lists the dimensions of a tensor type.
type TensorShapeProto struct {
	Dims []DimensionProto // field 1
}

// DimensionProto is one dimension: a fixed value or a symbolic name.
// Exactly one of the two is meaningful (oneof in the upstream schema).
type DimensionProto struct {
	DimValue int64  // field 1: static dimension value
	DimParam string // field 2: symbolic dimension name (e.g., "batch")
}

// AttributeProto is a named operator attribute.
//
// Fields: 1=name, 2=f, 3=i, 4=s, 7=floats, 8=ints, 9=strings, 13=doc_string,
// 20=type.
type AttributeProto struct {
	Name      string    // Attribute name
	Type      int32     // Attribute type (AttributeProto* constants)
	F         float32   // FLOAT value
	I         int64     // INT value
	S         []byte    // STRING value
	Floats    []float32 // FLOATS array
	Ints      []int64   // INTS array
	Strings   [][]byte  // STRINGS array
	DocString string    // Description
}

// OperatorSetID declares an operator domain and the opset version used.
//
// Fields: 1=domain, 2=version.
type OperatorSetID struct {
	Domain  string // Operator domain (empty for default)
	Version int64  // Opset version number
}

// StringStringEntry is a key-value metadata pair.
//
// Fields: 1=key, 2=value.
type StringStringEntry struct {
	Key   string
	Value string
}

// ONNX element data types (TensorProto.DataType).
const (
	TensorProtoUndefined  = 0
	TensorProtoFloat      = 1  // float32
	TensorProtoUint8      = 2  // uint8
	TensorProtoInt8       = 3  // int8
	TensorProtoUint16     = 4  // uint16
	TensorProtoInt16      = 5  // int16
	TensorProtoInt32      = 6  // int32
	TensorProtoInt64      = 7  // int64
	TensorProtoString     = 8  // string
	TensorProtoBool       = 9  // bool
	TensorProtoFloat16    = 10 // float16
	TensorProtoDouble     = 11 // float64
	TensorProtoUint32     = 12 // uint32
	TensorProtoUint64     = 13 // uint64
	TensorProtoComplex64  = 14 // complex64
	TensorProtoComplex128 = 15 // complex128
	TensorProtoBfloat16   = 16 // bfloat16
)

// ONNX attribute types (AttributeProto.Type).
const (
	AttributeProtoUndefined = 0
	AttributeProtoFloat     = 1  // FLOAT
	AttributeProtoInt       = 2  // INT
	AttributeProtoString    = 3  // STRING
	AttributeProtoTensor    = 4  // TENSOR
	AttributeProtoGraph     = 5  // GRAPH
	AttributeProtoFloats    = 6  // FLOATS
	AttributeProtoInts      = 7  // INTS
	AttributeProtoStrings   = 8  // STRINGS
	AttributeProtoTensors   = 9  // TENSORS
	AttributeProtoGraphs    = 10 // GRAPHS
)

// validElemType reports whether t is a defined, non-UNDEFINED element type.
func validElemType(t int32) bool {
	return t >= TensorProtoFloat && t <= TensorProtoBfloat16
}

// dataTypeOf maps an ONNX element type to the runtime tensor data type.
func dataTypeOf(elemType int32) (tensor.DataType, error) {
	switch elemType {
	case TensorProtoFloat:
		return tensor.Float32, nil
	case TensorProtoDouble:
		return tensor.Float64, nil
	case TensorProtoInt32:
		return tensor.Int32, nil
	case TensorProtoInt64:
		return tensor.Int64, nil
	case TensorProtoUint8:
		return tensor.Uint8, nil
	case TensorProtoBool:
		return tensor.Bool, nil
	default:
		return 0, fmt.Errorf("unsupported element type: %d", elemType)
	}
}
