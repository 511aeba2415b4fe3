package artifacts

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortOnce sync.Once
	ortErr  error
)

func initOnnxRuntime(libPath string) error {
	ortOnce.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// OnnxRegressor runs a fuel-efficiency graph exported to ONNX. The graph must
// take a float32 [1, width] input and produce a float32 [1, 1] output.
type OnnxRegressor struct {
	session *ort.DynamicAdvancedSession
	width   int
}

func LoadOnnxRegressor(path, libPath, inputName, outputName string, width int) (*OnnxRegressor, error) {
	if err := initOnnxRuntime(libPath); err != nil {
		return nil, fmt.Errorf("init onnxruntime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(path, []string{inputName}, []string{outputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &OnnxRegressor{session: session, width: width}, nil
}

func (m *OnnxRegressor) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(features) != m.width {
		return 0, fmt.Errorf("%w: onnx model expects %d, got %d", errWidthMismatch, m.width, len(features))
	}

	data := make([]float32, len(features))
	for i, f := range features {
		data[i] = float32(f)
	}

	in, err := ort.NewTensor(ort.NewShape(1, int64(m.width)), data)
	if err != nil {
		return 0, err
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, err
	}
	defer out.Destroy()

	if err := m.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return 0, fmt.Errorf("session run error: %w", err)
	}
	return float64(out.GetData()[0]), nil
}

func (m *OnnxRegressor) Close() error {
	return m.session.Destroy()
}
