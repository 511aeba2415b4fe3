package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"vehicle-inference-service/internal/core/domain"
)

// CategoricalColumn is one one-hot encoded input column with its fitted levels.
type CategoricalColumn struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

// LinearPipeline is the JSON export of an sklearn pipeline made of a column
// transformer (one-hot categoricals, numeric passthrough) and a
// LinearRegression. Coefficients follow the transformer output order: every
// one-hot block in declared order, then the numeric columns.
type LinearPipeline struct {
	categorical []CategoricalColumn
	index       []map[string]int
	numeric     []string
	coef        []float64
	intercept   float64
}

type pipelineFile struct {
	Categorical []CategoricalColumn `json:"categorical"`
	Numeric     []string            `json:"numeric"`
	Coef        []float64           `json:"coef"`
	Intercept   float64             `json:"intercept"`
}

func NewLinearPipeline(categorical []CategoricalColumn, numeric []string, coef []float64, intercept float64) (*LinearPipeline, error) {
	var probe domain.CarRecord
	width := 0
	index := make([]map[string]int, len(categorical))
	for i, c := range categorical {
		if _, ok := probe.Categorical(c.Column); !ok {
			return nil, fmt.Errorf("pipeline references unknown categorical column %q", c.Column)
		}
		if len(c.Categories) == 0 {
			return nil, fmt.Errorf("column %q has no categories", c.Column)
		}
		index[i] = make(map[string]int, len(c.Categories))
		for j, level := range c.Categories {
			index[i][level] = width + j
		}
		width += len(c.Categories)
	}
	for _, col := range numeric {
		if _, ok := probe.Numeric(col); !ok {
			return nil, fmt.Errorf("pipeline references unknown numeric column %q", col)
		}
	}
	width += len(numeric)
	if len(coef) != width {
		return nil, fmt.Errorf("pipeline has %d coefficients, transformer produces %d features", len(coef), width)
	}

	return &LinearPipeline{
		categorical: categorical,
		index:       index,
		numeric:     numeric,
		coef:        coef,
		intercept:   intercept,
	}, nil
}

func LoadLinearPipeline(path string) (*LinearPipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f pipelineFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	return NewLinearPipeline(f.Categorical, f.Numeric, f.Coef, f.Intercept)
}

// Predict encodes the record and scores it. A level the encoder was not
// fitted on is an error, as with handle_unknown="error".
func (p *LinearPipeline) Predict(ctx context.Context, record domain.CarRecord) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sum := p.intercept
	for i, c := range p.categorical {
		value, _ := record.Categorical(c.Column)
		pos, ok := p.index[i][value]
		if !ok {
			return 0, fmt.Errorf("%w %q in column %q", domain.ErrUnknownCategory, value, c.Column)
		}
		sum += p.coef[pos]
	}

	offset := len(p.coef) - len(p.numeric)
	for i, col := range p.numeric {
		value, _ := record.Numeric(col)
		sum += p.coef[offset+i] * value
	}
	return sum, nil
}
