// Package onnx provides ONNX model authoring, validation, and serialization.
//
// ONNX (Open Neural Network Exchange) is an open format for representing
// machine learning models. This package implements a hand-written protobuf
// codec for .onnx files without external dependencies: models are assembled
// as plain Go structs, checked against the structural schema, and written
// as deterministic binary protobuf.
//
// Key components:
//   - ModelProto: Top-level ONNX model envelope with metadata and graph
//   - GraphProto: Computation graph with nodes, inputs, outputs, and initializers
//   - Marshal/WriteFile: Deterministic protobuf wire format encoder
//   - Parse/ParseFile: Protobuf wire format decoder
//   - CheckModel: Structural schema validation (names, arity, attributes, sizes)
//   - Info: Summary of a serialized model (shapes, opset, producer, file size)
//
// Example usage:
//
//	model := &onnx.ModelProto{
//	    IRVersion:    7,
//	    ProducerName: "my-exporter",
//	    OpsetImport:  []onnx.OperatorSetID{{Version: 13}},
//	    Graph:        graph,
//	}
//	if err := onnx.CheckModel(model); err != nil {
//	    log.Fatal(err)
//	}
//	if err := onnx.WriteFile("model.onnx", model); err != nil {
//	    log.Fatal(err)
//	}
package onnx
