package onnx

import (
	"testing"
)

// TestParseSkipsUnknownFields verifies forward compatibility: fields this
// codec does not know are skipped by wire type.
func TestParseSkipsUnknownFields(t *testing.T) {
	e := &encoder{}
	e.writeTag(99, wireVarint)
	e.writeVarint(1)
	e.writeTag(98, wireBytes)
	e.writeBytes([]byte("junk"))
	e.writeTag(97, wire32Bit)
	e.writeFloat32(3.5)
	e.writeTag(96, wire64Bit)
	e.data = append(e.data, 0, 0, 0, 0, 0, 0, 0, 0)
	e.data = append(e.data, Marshal(testModel())...)

	model, err := Parse(e.data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.IRVersion != 7 {
		t.Errorf("IRVersion = %d, want 7", model.IRVersion)
	}
	if model.Graph == nil || len(model.Graph.Nodes) != 3 {
		t.Error("model content lost while skipping unknown fields")
	}
}

// TestParseUnpackedDims verifies the decoder accepts dims written one
// varint field at a time instead of packed.
func TestParseUnpackedDims(t *testing.T) {
	e := &encoder{}
	e.writeTag(1, wireVarint)
	e.writeVarint(3)
	e.writeTag(1, wireVarint)
	e.writeVarint(2)
	e.writeVarintField(2, TensorProtoFloat)
	e.writeStringField(8, "W")

	tensor := TensorProto{}
	p := &parser{data: e.data}
	if err := p.readTensorProto(&tensor); err != nil {
		t.Fatalf("readTensorProto failed: %v", err)
	}
	if len(tensor.Dims) != 2 || tensor.Dims[0] != 3 || tensor.Dims[1] != 2 {
		t.Errorf("dims = %v, want [3 2]", tensor.Dims)
	}
	if tensor.Name != "W" {
		t.Errorf("name = %q, want %q", tensor.Name, "W")
	}
}

// TestParseTruncatedField verifies a length-delimited field cut short
// surfaces an error.
func TestParseTruncatedField(t *testing.T) {
	e := &encoder{}
	e.writeStringField(2, "producer")

	_, err := Parse(e.data[:len(e.data)-1])
	if err == nil {
		t.Error("expected error for truncated field, got nil")
	}
}

// TestParseVarintOverflow verifies runaway varints are rejected.
func TestParseVarintOverflow(t *testing.T) {
	data := []byte{0x08} // field 1, varint
	for i := 0; i < 10; i++ {
		data = append(data, 0xff)
	}
	data = append(data, 0x01)

	_, err := Parse(data)
	if err == nil {
		t.Error("expected varint overflow error, got nil")
	}
}

// TestParseUnknownWireType verifies undecodable wire types are rejected
// rather than silently skipped.
func TestParseUnknownWireType(t *testing.T) {
	// Field 99 with reserved wire type 3 (start-group).
	data := []byte{0x9b, 0x06}

	_, err := Parse(data)
	if err == nil {
		t.Error("expected unknown wire type error, got nil")
	}
}

// TestParseEmptyData verifies empty input yields an empty model.
func TestParseEmptyData(t *testing.T) {
	model, err := Parse([]byte{})
	if err != nil {
		t.Fatalf("Parse failed on empty data: %v", err)
	}
	if model.IRVersion != 0 || model.Graph != nil {
		t.Errorf("empty data produced non-empty model: %+v", model)
	}
}

// TestParseInvalidFile verifies the error path for a missing file.
func TestParseInvalidFile(t *testing.T) {
	_, err := ParseFile("/nonexistent/file.onnx")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
