package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "fetch", false},
		{"valid with dash", "fetch-users", false},
		{"valid uuid", "4f8c2f0e-6f1b-4a55-9b1e-2c7b5a3f9d10", false},
		{"valid with spaces inside", "load users", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " foo", true},
		{"trailing space", "foo ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateItemID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidID)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"normal", 200, 100, false},
		{"negative width", -1, 100, true},
		{"negative height", 100, -1, true},
		{"nan", math.NaN(), 100, true},
		{"inf", 100, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize("n", tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  Code
	}{
		{"json", "graph.json", ""},
		{"toml", "dir/graph.TOML", ""},
		{"empty", "", ErrCodeInvalidInput},
		{"yaml", "graph.yaml", ErrCodeUnsupported},
		{"no extension", "graph", ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.input)
			if got := GetCode(err); got != tt.code {
				t.Errorf("ValidateDocumentPath(%q) code = %q, want %q", tt.input, got, tt.code)
			}
		})
	}
}
