// Package main generates the weather advisor ONNX model.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vaero-ai/modelgen/internal/advisor"
	"github.com/vaero-ai/modelgen/internal/onnx"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("modelgen %s\n", version)
		return
	}

	fmt.Println("Creating simple ONNX weather model...")

	model, err := advisor.BuildModel()
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}

	if err := onnx.CheckModel(model); err != nil {
		fmt.Printf("❌ Model validation failed: %v\n", err)
		return
	}
	fmt.Println("✅ Model validation passed")

	if err := advisor.Save(model, advisor.DefaultModelPath); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	fmt.Printf("✅ Model saved to %s\n", advisor.DefaultModelPath)

	info, err := onnx.Info(advisor.DefaultModelPath)
	if err != nil {
		log.Fatalf("Failed to inspect saved model: %v", err)
	}
	fmt.Printf("📊 Model size: %.1f KB\n", float64(info.FileSize)/1024)
	fmt.Printf("📊 Input shape: %s (%s)\n", info.Inputs[0].Shape, strings.Join(advisor.FeatureNames, ", "))
	fmt.Printf("📊 Output shape: %s (advice categories)\n", info.Outputs[0].Shape)
}
