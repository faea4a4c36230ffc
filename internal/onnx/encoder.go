package onnx

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Marshal serializes a model to ONNX binary protobuf bytes.
//
// Fields are written in ascending field-number order with fixed packing,
// so equal models always serialize to identical bytes.
func Marshal(m *ModelProto) []byte {
	return marshalModelProto(m)
}

// WriteFile serializes a model and writes it to path.
func WriteFile(path string, m *ModelProto) error {
	if err := os.WriteFile(path, Marshal(m), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// encoder implements a minimal protobuf wire format encoder, the write-side
// counterpart of parser.
type encoder struct {
	data []byte
}

func marshalModelProto(m *ModelProto) []byte {
	e := &encoder{}
	e.writeVarintField(1, m.IRVersion)
	e.writeStringField(2, m.ProducerName)
	e.writeStringField(3, m.ProducerVersion)
	e.writeStringField(4, m.Domain)
	e.writeVarintField(5, m.ModelVersion)
	e.writeStringField(6, m.DocString)
	if m.Graph != nil {
		e.writeMessage(7, marshalGraphProto(m.Graph))
	}
	for i := range m.OpsetImport {
		e.writeMessage(8, marshalOperatorSetID(&m.OpsetImport[i]))
	}
	for i := range m.MetadataProps {
		e.writeMessage(14, marshalStringStringEntry(&m.MetadataProps[i]))
	}
	return e.data
}

func marshalGraphProto(m *GraphProto) []byte {
	e := &encoder{}
	for i := range m.Nodes {
		e.writeMessage(1, marshalNodeProto(&m.Nodes[i]))
	}
	e.writeStringField(2, m.Name)
	for i := range m.Initializers {
		e.writeMessage(5, marshalTensorProto(&m.Initializers[i]))
	}
	e.writeStringField(10, m.DocString)
	for i := range m.Inputs {
		e.writeMessage(11, marshalValueInfoProto(&m.Inputs[i]))
	}
	for i := range m.Outputs {
		e.writeMessage(12, marshalValueInfoProto(&m.Outputs[i]))
	}
	for i := range m.ValueInfo {
		e.writeMessage(13, marshalValueInfoProto(&m.ValueInfo[i]))
	}
	return e.data
}

func marshalNodeProto(m *NodeProto) []byte {
	e := &encoder{}
	// Empty names in the input list are positional placeholders for
	// optional operator inputs and must be preserved.
	e.writeRepeatedString(1, m.Inputs)
	e.writeRepeatedString(2, m.Outputs)
	e.writeStringField(3, m.Name)
	e.writeStringField(4, m.OpType)
	for i := range m.Attributes {
		e.writeMessage(5, marshalAttributeProto(&m.Attributes[i]))
	}
	e.writeStringField(6, m.DocString)
	e.writeStringField(7, m.Domain)
	return e.data
}

func marshalTensorProto(m *TensorProto) []byte {
	e := &encoder{}
	e.writePackedVarints(1, m.Dims)
	e.writeVarintField(2, int64(m.DataType))
	e.writePackedFloats(4, m.FloatData)
	e.writePackedInt32s(5, m.Int32Data)
	e.writePackedVarints(7, m.Int64Data)
	e.writeStringField(8, m.Name)
	e.writeBytesField(9, m.RawData)
	e.writeStringField(12, m.DocString)
	return e.data
}

func marshalValueInfoProto(m *ValueInfoProto) []byte {
	e := &encoder{}
	e.writeStringField(1, m.Name)
	if m.Type != nil {
		e.writeMessage(2, marshalTypeProto(m.Type))
	}
	e.writeStringField(3, m.DocString)
	return e.data
}

func marshalTypeProto(m *TypeProto) []byte {
	e := &encoder{}
	if m.TensorType != nil {
		e.writeMessage(1, marshalTensorTypeProto(m.TensorType))
	}
	return e.data
}

func marshalTensorTypeProto(m *TensorTypeProto) []byte {
	e := &encoder{}
	e.writeVarintField(1, int64(m.ElemType))
	if m.Shape != nil {
		e.writeMessage(2, marshalTensorShapeProto(m.Shape))
	}
	return e.data
}

func marshalTensorShapeProto(m *TensorShapeProto) []byte {
	e := &encoder{}
	for i := range m.Dims {
		e.writeMessage(1, marshalDimensionProto(&m.Dims[i]))
	}
	return e.data
}

func marshalDimensionProto(m *DimensionProto) []byte {
	e := &encoder{}
	// dim_value and dim_param form a oneof; the set member is written even
	// when it is the zero value.
	if m.DimParam != "" {
		e.writeTag(2, wireBytes)
		e.writeBytes([]byte(m.DimParam))
		return e.data
	}
	e.writeTag(1, wireVarint)
	e.writeVarint(m.DimValue)
	return e.data
}

func marshalAttributeProto(m *AttributeProto) []byte {
	e := &encoder{}
	e.writeStringField(1, m.Name)
	switch m.Type {
	case AttributeProtoFloat:
		e.writeTag(2, wire32Bit)
		e.writeFloat32(m.F)
	case AttributeProtoInt:
		e.writeTag(3, wireVarint)
		e.writeVarint(m.I)
	case AttributeProtoString:
		e.writeTag(4, wireBytes)
		e.writeBytes(m.S)
	}
	e.writePackedFloats(7, m.Floats)
	e.writePackedVarints(8, m.Ints)
	for _, s := range m.Strings {
		e.writeTag(9, wireBytes)
		e.writeBytes(s)
	}
	e.writeStringField(13, m.DocString)
	e.writeVarintField(20, int64(m.Type))
	return e.data
}

func marshalOperatorSetID(m *OperatorSetID) []byte {
	e := &encoder{}
	e.writeStringField(1, m.Domain)
	e.writeVarintField(2, m.Version)
	return e.data
}

func marshalStringStringEntry(m *StringStringEntry) []byte {
	e := &encoder{}
	e.writeStringField(1, m.Key)
	e.writeStringField(2, m.Value)
	return e.data
}

// writeTag writes a protobuf field tag.
func (e *encoder) writeTag(fieldNum, wireType int) {
	e.writeUvarint(uint64(fieldNum)<<3 | uint64(wireType)) //nolint:gosec // G115: ONNX field numbers are small positive constants.
}

// writeUvarint writes an unsigned varint.
func (e *encoder) writeUvarint(v uint64) {
	for v >= 0x80 {
		e.data = append(e.data, byte(v)|0x80)
		v >>= 7
	}
	e.data = append(e.data, byte(v))
}

// writeVarint writes a varint-encoded int64. Negative values encode as
// ten-byte two's complement varints, matching protobuf int64 semantics.
func (e *encoder) writeVarint(v int64) {
	e.writeUvarint(uint64(v)) //nolint:gosec // G115: two's complement conversion is the protobuf encoding.
}

// writeBytes writes a length-delimited byte slice.
func (e *encoder) writeBytes(data []byte) {
	e.writeUvarint(uint64(len(data)))
	e.data = append(e.data, data...)
}

// writeFloat32 writes a 32-bit float in little-endian order.
func (e *encoder) writeFloat32(f float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
	e.data = append(e.data, buf[:]...)
}

// writeVarintField writes a varint field, omitting the zero value.
func (e *encoder) writeVarintField(fieldNum int, v int64) {
	if v == 0 {
		return
	}
	e.writeTag(fieldNum, wireVarint)
	e.writeVarint(v)
}

// writeStringField writes a string field, omitting the empty string.
func (e *encoder) writeStringField(fieldNum int, s string) {
	if s == "" {
		return
	}
	e.writeTag(fieldNum, wireBytes)
	e.writeBytes([]byte(s))
}

// writeBytesField writes a bytes field, omitting empty slices.
func (e *encoder) writeBytesField(fieldNum int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.writeTag(fieldNum, wireBytes)
	e.writeBytes(b)
}

// writeRepeatedString writes every element of a repeated string field,
// including empty strings.
func (e *encoder) writeRepeatedString(fieldNum int, vals []string) {
	for _, s := range vals {
		e.writeTag(fieldNum, wireBytes)
		e.writeBytes([]byte(s))
	}
}

// writeMessage writes a length-delimited submessage.
func (e *encoder) writeMessage(fieldNum int, sub []byte) {
	e.writeTag(fieldNum, wireBytes)
	e.writeBytes(sub)
}

// writePackedVarints writes a packed repeated int64 field.
func (e *encoder) writePackedVarints(fieldNum int, vals []int64) {
	if len(vals) == 0 {
		return
	}
	sub := &encoder{}
	for _, v := range vals {
		sub.writeVarint(v)
	}
	e.writeMessage(fieldNum, sub.data)
}

// writePackedInt32s writes a packed repeated int32 field.
func (e *encoder) writePackedInt32s(fieldNum int, vals []int32) {
	if len(vals) == 0 {
		return
	}
	sub := &encoder{}
	for _, v := range vals {
		sub.writeVarint(int64(v))
	}
	e.writeMessage(fieldNum, sub.data)
}

// writePackedFloats writes a packed repeated float field.
func (e *encoder) writePackedFloats(fieldNum int, vals []float32) {
	if len(vals) == 0 {
		return
	}
	sub := &encoder{}
	for _, f := range vals {
		sub.writeFloat32(f)
	}
	e.writeMessage(fieldNum, sub.data)
}
