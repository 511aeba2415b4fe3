package services

import (
	"context"

	"vehicle-inference-service/internal/core/domain"
)

// FuelEfficiencyService validates, assembles and scores a fuel-efficiency request.
type FuelEfficiencyService struct {
	validator *Validator
	engine    *InferenceEngine
}

func NewFuelEfficiencyService(validator *Validator, engine *InferenceEngine) *FuelEfficiencyService {
	return &FuelEfficiencyService{validator: validator, engine: engine}
}

func (s *FuelEfficiencyService) Predict(ctx context.Context, in FuelInput) (*domain.PredictionResult, error) {
	req, err := s.validator.ValidateFuel(in)
	if err != nil {
		return nil, err
	}

	value, err := s.engine.PredictFuel(ctx, AssembleFuelFeatures(req))
	if err != nil {
		return nil, err
	}

	return &domain.PredictionResult{Variant: domain.VariantFuelEfficiency, Value: value}, nil
}

// Fields describes the accepted input, for rendering the form.
func (s *FuelEfficiencyService) Fields() []FieldRule {
	return FuelFieldRules()
}
