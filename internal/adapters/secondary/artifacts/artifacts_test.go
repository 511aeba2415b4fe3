package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-inference-service/internal/config"
	"vehicle-inference-service/internal/core/domain"
)

const (
	scalerJSON = `{"mean":[5,200,100,3000,15,75,1],"scale":[2,100,50,1000,5,5,1]}`

	// Single linear layer: output = sum of scaled features + 20.
	denseJSON = `{"input_width":7,"layers":[
		{"weights":[[1],[1],[1],[1],[1],[1],[1]],"bias":[20],"activation":"linear"}]}`

	pipelineJSON = `{
		"categorical":[
			{"column":"name","categories":["Maruti Swift","Hyundai i20"]},
			{"column":"company","categories":["Maruti","Hyundai"]},
			{"column":"fuel_type","categories":["Petrol","Diesel"]}],
		"numeric":["year","kms_driven"],
		"coef":[1000,2000,100,200,10,20,50,-0.5],
		"intercept":-100000}`

	referenceCSV = `,name,company,year,Price,kms_driven,fuel_type
0,Maruti Swift,Maruti,2015,350000,30000,Petrol
1,Hyundai i20,Hyundai,2017,520000,12000,Diesel
2,Maruti Swift,Maruti,2012,250000,60000,Petrol
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeFixtures(t *testing.T) *config.ArtifactsConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.ArtifactsConfig{
		ScalerPath:     writeFile(t, dir, "scaler.json", scalerJSON),
		FuelModelPath:  writeFile(t, dir, "model.json", denseJSON),
		PriceModelPath: writeFile(t, dir, "price_model.json", pipelineJSON),
		ReferencePath:  writeFile(t, dir, "Cleaned_Car_data.csv", referenceCSV),
	}
}

func TestStandardScaler_Transform(t *testing.T) {
	s, err := NewStandardScaler([]float64{1, 10}, []float64{2, 5})
	require.NoError(t, err)

	in := []float64{5, 0}
	out, err := s.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, -2}, out)
	assert.Equal(t, []float64{5, 0}, in, "input must not be modified")

	_, err = s.Transform([]float64{1})
	assert.ErrorIs(t, err, errWidthMismatch)
}

func TestStandardScaler_RejectsBadShapes(t *testing.T) {
	_, err := NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = NewStandardScaler([]float64{1}, []float64{0})
	assert.Error(t, err)
}

func TestDenseNetwork_Predict(t *testing.T) {
	n, err := NewDenseNetwork(2, []DenseLayer{
		{Weights: [][]float64{{1, -1}, {1, 1}}, Bias: []float64{0, 0}, Activation: ActivationReLU},
		{Weights: [][]float64{{2}, {3}}, Bias: []float64{1}, Activation: ActivationLinear},
	})
	require.NoError(t, err)

	// hidden = relu([1+2, -1+2]) = [3, 1]; out = 2*3 + 3*1 + 1
	got, err := n.Predict(context.Background(), []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	// hidden = relu([-3, 1]) = [0, 1]; out = 3 + 1
	got, err = n.Predict(context.Background(), []float64{-2, -1})
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestDenseNetwork_Validation(t *testing.T) {
	tests := []struct {
		name   string
		layers []DenseLayer
	}{
		{"no layers", nil},
		{"input mismatch", []DenseLayer{{Weights: [][]float64{{1}}, Bias: []float64{0}}}},
		{"ragged kernel", []DenseLayer{{Weights: [][]float64{{1}, {1, 2}}, Bias: []float64{0}}}},
		{"wide output", []DenseLayer{{Weights: [][]float64{{1, 1}, {1, 1}}, Bias: []float64{0, 0}}}},
		{"bad activation", []DenseLayer{{Weights: [][]float64{{1}, {1}}, Bias: []float64{0}, Activation: "softmax"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDenseNetwork(2, tt.layers)
			assert.Error(t, err)
		})
	}
}

func TestDenseNetwork_RespectsCancellation(t *testing.T) {
	n, err := NewDenseNetwork(1, []DenseLayer{{Weights: [][]float64{{1}}, Bias: []float64{0}}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Predict(ctx, []float64{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLinearPipeline_Predict(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadLinearPipeline(writeFile(t, dir, "p.json", pipelineJSON))
	require.NoError(t, err)

	record := domain.CarRecord{Name: "Maruti Swift", Company: "Maruti", Year: 2015, KmsDriven: 30000, FuelType: "Petrol"}
	got, err := p.Predict(context.Background(), record)
	require.NoError(t, err)
	// -100000 + 1000 + 100 + 10 + 50*2015 - 0.5*30000
	assert.InDelta(t, -13140.0, got, 1e-9)

	// Identical input, identical output.
	again, err := p.Predict(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestLinearPipeline_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	p, err := LoadLinearPipeline(writeFile(t, dir, "p.json", pipelineJSON))
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), domain.CarRecord{Name: "Tata Nano", Company: "Tata", Year: 2012, FuelType: "Petrol"})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "Tata Nano")
}

func TestLinearPipeline_CoefficientCount(t *testing.T) {
	_, err := NewLinearPipeline(
		[]CategoricalColumn{{Column: "company", Categories: []string{"A", "B"}}},
		[]string{"year"}, []float64{1, 2}, 0)
	assert.Error(t, err)

	_, err = NewLinearPipeline(
		[]CategoricalColumn{{Column: "colour", Categories: []string{"red"}}},
		nil, []float64{1}, 0)
	assert.Error(t, err)
}

func TestReadReferenceTable(t *testing.T) {
	table, err := ReadReferenceTable(strings.NewReader(referenceCSV))
	require.NoError(t, err)

	cars := table.Cars()
	require.Len(t, cars, 3)
	assert.Equal(t, domain.ReferenceCar{
		Name: "Hyundai i20", Company: "Hyundai", Year: 2017, Price: 520000, KmsDriven: 12000, FuelType: "Diesel",
	}, cars[1])
	assert.True(t, table.HasCompany("Maruti"))
	assert.False(t, table.HasCompany("maruti"))
	assert.True(t, table.HasCarModel("Hyundai", "Hyundai i20"))
	assert.False(t, table.HasCarModel("Maruti", "Hyundai i20"))
	assert.True(t, table.HasFuelType("Petrol"))
	assert.False(t, table.HasFuelType("LPG"))

	cars[0].Company = "changed"
	assert.Equal(t, "Maruti", table.Cars()[0].Company, "Cars must return a copy")
}

func TestReadReferenceTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"missing column", "name,company,year,Price,fuel_type\nA,B,2015,1,Petrol\n"},
		{"bad year", "name,company,year,Price,kms_driven,fuel_type\nA,B,soon,1,2,Petrol\n"},
		{"no rows", "name,company,year,Price,kms_driven,fuel_type\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadReferenceTable(strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg := writeFixtures(t)

	store, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, domain.FuelFeatureCount, store.FuelScaler().Width())

	scaled, err := store.FuelScaler().Transform([]float64{5, 200, 100, 3000, 15, 75, 1})
	require.NoError(t, err)
	got, err := store.FuelModel().Predict(context.Background(), scaled)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)

	assert.True(t, store.Reference().HasCompany("Hyundai"))
	_, err = store.PriceModel().Predict(context.Background(), domain.CarRecord{
		Name: "Hyundai i20", Company: "Hyundai", Year: 2017, KmsDriven: 12000, FuelType: "Diesel",
	})
	assert.NoError(t, err)
}

func TestLoad_MissingArtifactIsFatal(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.ScalerPath = filepath.Join(t.TempDir(), "absent.json")

	store, err := Load(context.Background(), cfg)
	assert.Nil(t, store)

	var loadErr *domain.ArtifactLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "scaler", loadErr.Artifact)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ScalerWidthMustMatchFeatures(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.ScalerPath = writeFile(t, t.TempDir(), "scaler.json", `{"mean":[1,2],"scale":[1,1]}`)

	_, err := Load(context.Background(), cfg)
	var loadErr *domain.ArtifactLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "scaler", loadErr.Artifact)
}

func TestLoad_CorruptModel(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.FuelModelPath = writeFile(t, t.TempDir(), "model.json", `{"layers":`)

	_, err := Load(context.Background(), cfg)
	var loadErr *domain.ArtifactLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "fuel model", loadErr.Artifact)
}
