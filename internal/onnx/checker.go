package onnx

import "fmt"

// opSchema describes the structural contract of an operator: input/output
// arity bounds and the attributes it accepts. maxInputs < 0 means unbounded.
type opSchema struct {
	minInputs  int
	maxInputs  int
	minOutputs int
	maxOutputs int
	attributes map[string]attrSchema
}

// attrSchema pins an attribute to its type and whether it must be present.
type attrSchema struct {
	attrType int32
	required bool
}

// operatorSchemas maps default-domain operator types to their contracts.
// Operators outside this table fail validation.
var operatorSchemas = map[string]opSchema{
	"Add":    {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"Sub":    {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"Mul":    {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"Div":    {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"MatMul": {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"Gemm": {minInputs: 2, maxInputs: 3, minOutputs: 1, maxOutputs: 1, attributes: map[string]attrSchema{
		"alpha":  {attrType: AttributeProtoFloat},
		"beta":   {attrType: AttributeProtoFloat},
		"transA": {attrType: AttributeProtoInt},
		"transB": {attrType: AttributeProtoInt},
	}},
	"Relu":    {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1},
	"Sigmoid": {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1},
	"Tanh":    {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1},
	"Softmax": {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1, attributes: map[string]attrSchema{
		"axis": {attrType: AttributeProtoInt},
	}},
	"Flatten": {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1, attributes: map[string]attrSchema{
		"axis": {attrType: AttributeProtoInt},
	}},
	"Transpose": {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1, attributes: map[string]attrSchema{
		"perm": {attrType: AttributeProtoInts},
	}},
	"Reshape":  {minInputs: 2, maxInputs: 2, minOutputs: 1, maxOutputs: 1},
	"Identity": {minInputs: 1, maxInputs: 1, minOutputs: 1, maxOutputs: 1},
	"Concat": {minInputs: 1, maxInputs: -1, minOutputs: 1, maxOutputs: 1, attributes: map[string]attrSchema{
		"axis": {attrType: AttributeProtoInt, required: true},
	}},
}

// CheckModel validates the structural schema of a model: envelope metadata,
// tensor declarations, operator contracts, and name resolution in node
// declaration order. It performs no cross-node shape inference, so it sees
// exactly what a runtime's model loader would reject up front.
func CheckModel(m *ModelProto) error {
	if m == nil {
		return &ValidationError{Type: "missing_model", Details: "model is nil"}
	}
	if m.IRVersion <= 0 {
		return &ValidationError{Type: "missing_ir_version", Details: "ir_version must be set"}
	}
	if len(m.OpsetImport) == 0 {
		return &ValidationError{Type: "missing_opset", Details: "model declares no operator set imports"}
	}

	domains := make(map[string]bool, len(m.OpsetImport))
	for _, opset := range m.OpsetImport {
		if opset.Version < 1 {
			return &ValidationError{
				Type:    "bad_opset_version",
				Details: fmt.Sprintf("domain %q: version %d (must be >= 1)", opset.Domain, opset.Version),
			}
		}
		domains[opset.Domain] = true
		// The default ONNX domain is spelled both "" and "ai.onnx".
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			domains[""] = true
			domains["ai.onnx"] = true
		}
	}

	if m.Graph == nil {
		return &ValidationError{Type: "missing_graph", Details: "model has no graph"}
	}
	return checkGraph(m.Graph, domains)
}

//nolint:gocognit,gocyclo,cyclop // Validation walks every declaration kind in one pass.
func checkGraph(g *GraphProto, domains map[string]bool) error {
	if g.Name == "" {
		return &ValidationError{Type: "missing_graph_name", Details: "graph name must be non-empty"}
	}

	// produced tracks every value name available to later consumers:
	// graph inputs, initializers, then node outputs in declaration order.
	produced := make(map[string]bool)

	seenInit := make(map[string]bool, len(g.Initializers))
	for i := range g.Initializers {
		t := &g.Initializers[i]
		if err := checkInitializer(t); err != nil {
			return err
		}
		if seenInit[t.Name] {
			return &ValidationError{Type: "duplicate_initializer", Tensor: t.Name, Details: "initializer name declared twice"}
		}
		seenInit[t.Name] = true
		produced[t.Name] = true
	}

	seenInput := make(map[string]bool, len(g.Inputs))
	for i := range g.Inputs {
		vi := &g.Inputs[i]
		if err := checkValueInfo(vi, "input"); err != nil {
			return err
		}
		if seenInput[vi.Name] {
			return &ValidationError{Type: "duplicate_input", Tensor: vi.Name, Details: "input name declared twice"}
		}
		seenInput[vi.Name] = true
		produced[vi.Name] = true
	}

	for i := range g.Nodes {
		node := &g.Nodes[i]
		if err := checkNode(node, i, domains, produced); err != nil {
			return err
		}
		for _, out := range node.Outputs {
			produced[out] = true
		}
	}

	seenOutput := make(map[string]bool, len(g.Outputs))
	for i := range g.Outputs {
		vi := &g.Outputs[i]
		if err := checkValueInfo(vi, "output"); err != nil {
			return err
		}
		if seenOutput[vi.Name] {
			return &ValidationError{Type: "duplicate_output", Tensor: vi.Name, Details: "output name declared twice"}
		}
		seenOutput[vi.Name] = true
		if !produced[vi.Name] {
			return &ValidationError{
				Type:    "unresolved_output",
				Tensor:  vi.Name,
				Details: "graph output is not produced by any node, input, or initializer",
			}
		}
	}

	return nil
}

// checkInitializer validates an embedded constant tensor: known element
// type, non-negative dims, and data consistent with the declared shape.
//
//nolint:gocognit,gocyclo,cyclop // One branch per data field variant.
func checkInitializer(t *TensorProto) error {
	if t.Name == "" {
		return &ValidationError{Type: "missing_name", Details: "initializer has no name"}
	}
	if !validElemType(t.DataType) {
		return &ValidationError{
			Type:    "bad_elem_type",
			Tensor:  t.Name,
			Details: fmt.Sprintf("element type %d is not a valid ONNX data type", t.DataType),
		}
	}
	for i, dim := range t.Dims {
		if dim < 0 {
			return &ValidationError{
				Type:    "bad_dims",
				Tensor:  t.Name,
				Details: fmt.Sprintf("dimension %d is %d (must be >= 0)", i, dim),
			}
		}
	}

	populated := 0
	if len(t.FloatData) > 0 {
		populated++
	}
	if len(t.Int32Data) > 0 {
		populated++
	}
	if len(t.Int64Data) > 0 {
		populated++
	}
	if len(t.RawData) > 0 {
		populated++
	}
	if populated > 1 {
		return &ValidationError{Type: "ambiguous_data", Tensor: t.Name, Details: "more than one data field populated"}
	}

	want := t.NumElements()
	switch {
	case len(t.FloatData) > 0:
		if t.DataType != TensorProtoFloat {
			return &ValidationError{
				Type:    "wrong_data_field",
				Tensor:  t.Name,
				Details: fmt.Sprintf("float_data populated but element type is %d", t.DataType),
			}
		}
		if int64(len(t.FloatData)) != want {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("float_data has %d elements, dims %v imply %d", len(t.FloatData), t.Dims, want),
			}
		}
	case len(t.Int64Data) > 0:
		if t.DataType != TensorProtoInt64 {
			return &ValidationError{
				Type:    "wrong_data_field",
				Tensor:  t.Name,
				Details: fmt.Sprintf("int64_data populated but element type is %d", t.DataType),
			}
		}
		if int64(len(t.Int64Data)) != want {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("int64_data has %d elements, dims %v imply %d", len(t.Int64Data), t.Dims, want),
			}
		}
	case len(t.Int32Data) > 0:
		if int64(len(t.Int32Data)) != want {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("int32_data has %d elements, dims %v imply %d", len(t.Int32Data), t.Dims, want),
			}
		}
	case len(t.RawData) > 0:
		dt, err := dataTypeOf(t.DataType)
		if err != nil {
			// Raw byte layouts for the exotic element types are not
			// modeled; the enum check above already passed.
			return nil
		}
		wantBytes := want * int64(dt.Size())
		if int64(len(t.RawData)) != wantBytes {
			return &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("raw_data has %d bytes, dims %v imply %d", len(t.RawData), t.Dims, wantBytes),
			}
		}
	default:
		if want > 0 {
			return &ValidationError{
				Type:    "missing_data",
				Tensor:  t.Name,
				Details: fmt.Sprintf("dims %v imply %d elements but no data field is populated", t.Dims, want),
			}
		}
	}

	return nil
}

// checkValueInfo validates a declared graph input or output.
func checkValueInfo(vi *ValueInfoProto, kind string) error {
	if vi.Name == "" {
		return &ValidationError{Type: "missing_name", Details: "graph " + kind + " has no name"}
	}
	if vi.Type == nil || vi.Type.TensorType == nil {
		return &ValidationError{Type: "missing_type", Tensor: vi.Name, Details: "graph " + kind + " has no tensor type"}
	}
	tt := vi.Type.TensorType
	if !validElemType(tt.ElemType) {
		return &ValidationError{
			Type:    "bad_elem_type",
			Tensor:  vi.Name,
			Details: fmt.Sprintf("element type %d is not a valid ONNX data type", tt.ElemType),
		}
	}
	if tt.Shape == nil {
		return &ValidationError{Type: "missing_shape", Tensor: vi.Name, Details: "graph " + kind + " declares no shape"}
	}
	for i, dim := range tt.Shape.Dims {
		if dim.DimParam == "" && dim.DimValue < 0 {
			return &ValidationError{
				Type:    "bad_dims",
				Tensor:  vi.Name,
				Details: fmt.Sprintf("dimension %d is %d (must be >= 0 or symbolic)", i, dim.DimValue),
			}
		}
	}
	return nil
}

// checkNode validates one operation against its operator schema and the set
// of value names produced so far.
//
//nolint:gocognit,gocyclo,cyclop // Arity, resolution, and attribute checks in one pass.
func checkNode(n *NodeProto, idx int, domains, produced map[string]bool) error {
	label := n.Name
	if label == "" {
		label = fmt.Sprintf("%s#%d", n.OpType, idx)
	}

	if n.OpType == "" {
		return &ValidationError{Type: "missing_op_type", Node: label, Details: "node has no operator type"}
	}
	if !domains[n.Domain] {
		return &ValidationError{
			Type:    "unknown_domain",
			Node:    label,
			Details: fmt.Sprintf("operator domain %q has no opset import", n.Domain),
		}
	}
	schema, ok := operatorSchemas[n.OpType]
	if !ok {
		return &ValidationError{
			Type:    "unknown_operator",
			Node:    label,
			Details: fmt.Sprintf("unsupported operator: %s", n.OpType),
		}
	}

	if len(n.Inputs) < schema.minInputs || (schema.maxInputs >= 0 && len(n.Inputs) > schema.maxInputs) {
		want := fmt.Sprintf("%d-%d", schema.minInputs, schema.maxInputs)
		if schema.maxInputs < 0 {
			want = fmt.Sprintf("at least %d", schema.minInputs)
		}
		return &ValidationError{
			Type:    "bad_arity",
			Node:    label,
			Details: fmt.Sprintf("%s takes %s inputs, got %d", n.OpType, want, len(n.Inputs)),
		}
	}
	if len(n.Outputs) < schema.minOutputs || len(n.Outputs) > schema.maxOutputs {
		return &ValidationError{
			Type:    "bad_arity",
			Node:    label,
			Details: fmt.Sprintf("%s yields %d-%d outputs, got %d", n.OpType, schema.minOutputs, schema.maxOutputs, len(n.Outputs)),
		}
	}

	// Empty input names are placeholders for omitted optional inputs.
	for _, in := range n.Inputs {
		if in == "" {
			continue
		}
		if !produced[in] {
			return &ValidationError{
				Type:    "dangling_input",
				Node:    label,
				Tensor:  in,
				Details: "consumed before any node, input, or initializer produces it",
			}
		}
	}
	for _, out := range n.Outputs {
		if out == "" {
			return &ValidationError{Type: "missing_output_name", Node: label, Details: "node output has no name"}
		}
		if produced[out] {
			return &ValidationError{
				Type:    "duplicate_value",
				Node:    label,
				Tensor:  out,
				Details: "value name produced more than once",
			}
		}
	}

	seenAttr := make(map[string]bool, len(n.Attributes))
	for i := range n.Attributes {
		attr := &n.Attributes[i]
		if attr.Name == "" {
			return &ValidationError{Type: "missing_attribute_name", Node: label, Details: "attribute has no name"}
		}
		if seenAttr[attr.Name] {
			return &ValidationError{
				Type:    "duplicate_attribute",
				Node:    label,
				Details: fmt.Sprintf("attribute %q declared twice", attr.Name),
			}
		}
		seenAttr[attr.Name] = true

		sch, ok := schema.attributes[attr.Name]
		if !ok {
			return &ValidationError{
				Type:    "unknown_attribute",
				Node:    label,
				Details: fmt.Sprintf("%s does not accept attribute %q", n.OpType, attr.Name),
			}
		}
		if attr.Type != sch.attrType {
			return &ValidationError{
				Type:    "bad_attribute_type",
				Node:    label,
				Details: fmt.Sprintf("attribute %q has type %d, schema requires %d", attr.Name, attr.Type, sch.attrType),
			}
		}
	}
	for name, sch := range schema.attributes {
		if sch.required && !seenAttr[name] {
			return &ValidationError{
				Type:    "missing_attribute",
				Node:    label,
				Details: fmt.Sprintf("%s requires attribute %q", n.OpType, name),
			}
		}
	}

	return nil
}
