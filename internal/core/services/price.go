package services

import (
	"context"

	"vehicle-inference-service/internal/core/domain"
)

// CarPriceService validates a car-price request and runs the price pipeline.
type CarPriceService struct {
	validator *Validator
	engine    *InferenceEngine
}

func NewCarPriceService(validator *Validator, engine *InferenceEngine) *CarPriceService {
	return &CarPriceService{validator: validator, engine: engine}
}

func (s *CarPriceService) Predict(ctx context.Context, in PriceInput) (*domain.PredictionResult, error) {
	req, err := s.validator.ValidatePrice(in)
	if err != nil {
		return nil, err
	}

	value, err := s.engine.PredictPrice(ctx, AssembleCarRecord(req))
	if err != nil {
		return nil, err
	}

	return &domain.PredictionResult{Variant: domain.VariantCarPrice, Value: value}, nil
}
