package tensor

import "testing"

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		name  string
	}{
		{Float32, "float32"},
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
		{Uint8, "uint8"},
		{Bool, "bool"},
		{DataType(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.name {
			t.Errorf("DataType(%d).String() = %q, want %q", int(tt.dtype), got, tt.name)
		}
	}
}
