package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// ToJSON encodes res as indented JSON.
func ToJSON(res *slicer.Result) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON decodes a result previously written by [ToJSON].
func FromJSON(data []byte) (*slicer.Result, error) {
	var res slicer.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &res, nil
}
