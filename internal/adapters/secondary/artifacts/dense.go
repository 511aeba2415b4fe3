package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

type Activation string

const (
	ActivationLinear  Activation = "linear"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationTanh    Activation = "tanh"
)

func (a Activation) apply(x float64) float64 {
	switch a {
	case ActivationReLU:
		return math.Max(0, x)
	case ActivationSigmoid:
		return 1 / (1 + math.Exp(-x))
	case ActivationTanh:
		return math.Tanh(x)
	default:
		return x
	}
}

func (a Activation) valid() bool {
	switch a {
	case ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationTanh, "":
		return true
	}
	return false
}

// DenseLayer mirrors a Keras Dense layer; Weights is the kernel laid out [in][out].
type DenseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation Activation  `json:"activation"`
}

func (l DenseLayer) inputs() int  { return len(l.Weights) }
func (l DenseLayer) outputs() int { return len(l.Bias) }

// DenseNetwork is a feed-forward regressor exported from a Keras Sequential
// model of Dense layers. It is read-only after load.
type DenseNetwork struct {
	layers []DenseLayer
}

type denseFile struct {
	InputWidth int          `json:"input_width"`
	Layers     []DenseLayer `json:"layers"`
}

func NewDenseNetwork(inputWidth int, layers []DenseLayer) (*DenseNetwork, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("network has no layers")
	}
	width := inputWidth
	for i, l := range layers {
		if !l.Activation.valid() {
			return nil, fmt.Errorf("layer %d: unsupported activation %q", i, l.Activation)
		}
		if l.inputs() != width {
			return nil, fmt.Errorf("layer %d: expects %d inputs, previous width is %d", i, l.inputs(), width)
		}
		for r, row := range l.Weights {
			if len(row) != l.outputs() {
				return nil, fmt.Errorf("layer %d: kernel row %d has %d columns, bias has %d", i, r, len(row), l.outputs())
			}
		}
		width = l.outputs()
	}
	if width != 1 {
		return nil, fmt.Errorf("network output width is %d, want 1", width)
	}
	return &DenseNetwork{layers: layers}, nil
}

func LoadDenseNetwork(path string, inputWidth int) (*DenseNetwork, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f denseFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	if f.InputWidth != 0 && f.InputWidth != inputWidth {
		return nil, fmt.Errorf("network input width is %d, want %d", f.InputWidth, inputWidth)
	}
	return NewDenseNetwork(inputWidth, f.Layers)
}

func (n *DenseNetwork) Predict(ctx context.Context, features []float64) (float64, error) {
	if len(features) != n.layers[0].inputs() {
		return 0, fmt.Errorf("%w: network expects %d, got %d", errWidthMismatch, n.layers[0].inputs(), len(features))
	}

	x := features
	for _, l := range n.layers {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		out := make([]float64, l.outputs())
		copy(out, l.Bias)
		for i, xi := range x {
			row := l.Weights[i]
			for j := range out {
				out[j] += xi * row[j]
			}
		}
		for j := range out {
			out[j] = l.Activation.apply(out[j])
		}
		x = out
	}
	return x[0], nil
}
