package main

import (
	"context"
	"fmt"
	"testing"

	bserrors "github.com/matzehuels/bandslicer/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("slice: %w", context.Canceled), 130},
		{"band lookup", bserrors.New(bserrors.ErrCodeIndexOutOfRange, "band 7"), 2},
		{"bad input", bserrors.New(bserrors.ErrCodeInvalidInput, "mesh"), 1},
		{"plain", fmt.Errorf("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
