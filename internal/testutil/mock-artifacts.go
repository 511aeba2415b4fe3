package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// MockScaler is a mock of Scaler.
type MockScaler struct {
	mock.Mock
}

func (m *MockScaler) Transform(features []float64) ([]float64, error) {
	args := m.Called(features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockScaler) Width() int {
	args := m.Called()
	return args.Int(0)
}

// MockRegressor is a mock of Regressor.
type MockRegressor struct {
	mock.Mock
}

func (m *MockRegressor) Predict(ctx context.Context, features []float64) (float64, error) {
	args := m.Called(ctx, features)
	return args.Get(0).(float64), args.Error(1)
}

// MockPricePipeline is a mock of PricePipeline.
type MockPricePipeline struct {
	mock.Mock
}

func (m *MockPricePipeline) Predict(ctx context.Context, record domain.CarRecord) (float64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(float64), args.Error(1)
}

// RegressorFunc adapts a function to Regressor, for behaviour mocks cannot
// express (blocking, panicking).
type RegressorFunc func(ctx context.Context, features []float64) (float64, error)

func (f RegressorFunc) Predict(ctx context.Context, features []float64) (float64, error) {
	return f(ctx, features)
}

// IdentityScaler passes features through unchanged.
type IdentityScaler struct{ N int }

func (s IdentityScaler) Transform(features []float64) ([]float64, error) {
	out := make([]float64, len(features))
	copy(out, features)
	return out, nil
}

func (s IdentityScaler) Width() int { return s.N }

// StaticReference is an in-memory ReferenceData.
type StaticReference struct {
	Rows []domain.ReferenceCar
}

func (r StaticReference) Cars() []domain.ReferenceCar {
	out := make([]domain.ReferenceCar, len(r.Rows))
	copy(out, r.Rows)
	return out
}

func (r StaticReference) HasCompany(company string) bool {
	for _, c := range r.Rows {
		if c.Company == company {
			return true
		}
	}
	return false
}

func (r StaticReference) HasCarModel(company, name string) bool {
	for _, c := range r.Rows {
		if c.Company == company && c.Name == name {
			return true
		}
	}
	return false
}

func (r StaticReference) HasFuelType(fuelType string) bool {
	for _, c := range r.Rows {
		if c.FuelType == fuelType {
			return true
		}
	}
	return false
}

// SampleCars is a small reference table shared by tests.
func SampleCars() []domain.ReferenceCar {
	return []domain.ReferenceCar{
		{Name: "Maruti Swift", Company: "Maruti", Year: 2015, Price: 350000, KmsDriven: 30000, FuelType: "Petrol"},
		{Name: "Hyundai i20", Company: "Hyundai", Year: 2017, Price: 520000, KmsDriven: 12000, FuelType: "Diesel"},
		{Name: "Maruti Alto", Company: "Maruti", Year: 2012, Price: 180000, KmsDriven: 60000, FuelType: "Petrol"},
		{Name: "Hyundai Verna", Company: "Hyundai", Year: 2015, Price: 600000, KmsDriven: 45000, FuelType: "LPG"},
	}
}

// Artifacts is a hand-assembled ArtifactStore.
type Artifacts struct {
	Scale ports.Scaler
	Fuel  ports.Regressor
	Price ports.PricePipeline
	Ref   ports.ReferenceData
}

func (a *Artifacts) FuelScaler() ports.Scaler        { return a.Scale }
func (a *Artifacts) FuelModel() ports.Regressor      { return a.Fuel }
func (a *Artifacts) PriceModel() ports.PricePipeline { return a.Price }
func (a *Artifacts) Reference() ports.ReferenceData  { return a.Ref }
