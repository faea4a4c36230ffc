package onnx

import "fmt"

// ValidationError describes a structural schema violation found by CheckModel.
type ValidationError struct {
	Type    string // Violation kind (e.g., "dangling_input", "size_mismatch")
	Node    string // Node involved (name, or "OpType#index" when unnamed)
	Tensor  string // Tensor or value name involved
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Node != "" && e.Tensor != "":
		return fmt.Sprintf("%s: node %q: value %q: %s", e.Type, e.Node, e.Tensor, e.Details)
	case e.Node != "":
		return fmt.Sprintf("%s: node %q: %s", e.Type, e.Node, e.Details)
	case e.Tensor != "":
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Details)
	}
}
