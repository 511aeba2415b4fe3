package dto

import (
	"github.com/google/uuid"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/services"
)

type FuelPredictionResponse struct {
	Prediction float64 `json:"prediction"`
}

type PricePredictionResponse struct {
	CarPricePrediction float64 `json:"car_price_prediction"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Stage string `json:"stage,omitempty"`
}

type AccountResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Username: a.Username, Email: a.Email}
}

type FieldsResponse struct {
	Fields []services.FieldRule `json:"fields"`
}

type ChoicesResponse struct {
	Companies []string `json:"companies"`
	CarModels []string `json:"car_models"`
	Years     []int    `json:"years"`
	FuelTypes []string `json:"fuel_types"`
}

func ToChoicesResponse(c domain.CarChoices) ChoicesResponse {
	return ChoicesResponse{
		Companies: c.Companies,
		CarModels: c.CarModels,
		Years:     c.Years,
		FuelTypes: c.FuelTypes,
	}
}
