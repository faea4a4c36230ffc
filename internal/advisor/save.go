package advisor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vaero-ai/modelgen/internal/onnx"
)

// DefaultModelPath is where the generator writes the advisor: a models
// directory one level above the working directory.
const DefaultModelPath = "../models/weather-advisor.onnx"

// Save writes the envelope to path, creating missing parent directories.
// Callers validate the envelope first; Save only performs I/O.
func Save(model *onnx.ModelProto, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return onnx.WriteFile(path, model)
}
