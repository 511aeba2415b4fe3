package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// StandardScaler applies (x - mean) / scale per feature. It is the JSON
// export of a fitted sklearn StandardScaler.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

type scalerFile struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler has %d centers and %d scales", len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("scaler feature %d has invalid scale %v", i, s)
		}
	}
	return &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}, nil
}

func LoadStandardScaler(path string) (*StandardScaler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f scalerFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	return NewStandardScaler(f.Mean, f.Scale)
}

func (s *StandardScaler) Width() int {
	return len(s.mean)
}

var errWidthMismatch = errors.New("feature width mismatch")

// Transform returns a new slice; the input is left untouched.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("%w: scaler expects %d, got %d", errWidthMismatch, len(s.mean), len(features))
	}
	out := make([]float64, len(features))
	for i, x := range features {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
