package ports

import (
	"context"
	"time"

	"vehicle-inference-service/internal/core/domain"
)

// Scaler is the pre-processing transform paired with the fuel model.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
	Width() int
}

// Regressor predicts one scalar from a scaled numeric vector.
type Regressor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// PricePipeline encodes and scores a labeled car record in one step.
type PricePipeline interface {
	Predict(ctx context.Context, record domain.CarRecord) (float64, error)
}

// ReferenceData is the read-only historical car table.
type ReferenceData interface {
	Cars() []domain.ReferenceCar
	HasCompany(company string) bool
	HasCarModel(company, name string) bool
	HasFuelType(fuelType string) bool
}

// ArtifactStore exposes the artifacts loaded at start-up.
type ArtifactStore interface {
	FuelScaler() Scaler
	FuelModel() Regressor
	PriceModel() PricePipeline
	Reference() ReferenceData
}

// InferenceObserver records the outcome and latency of each model call.
type InferenceObserver interface {
	ObserveInference(variant domain.Variant, outcome string, elapsed time.Duration)
}
