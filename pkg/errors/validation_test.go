package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   [3]float64
		wantErr bool
	}{
		{"unit z", [3]float64{0, 0, 1}, false},
		{"diagonal", [3]float64{1, 0, 1}, false},
		{"negative", [3]float64{0, -1, 0}, false},

		{"zero", [3]float64{0, 0, 0}, true},
		{"nan", [3]float64{math.NaN(), 0, 1}, true},
		{"inf", [3]float64{0, math.Inf(1), 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirection(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDirection) {
				t.Errorf("expected %s, got %v", ErrCodeInvalidDirection, err)
			}
		})
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "slice", false},
		{"empty", "", false},
		{"with dash", "layer-", false},

		{"too long", strings.Repeat("a", 65), true},
		{"space", "my slice", true},
		{"tab", "a\tb", true},
		{"control char", "foo\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
