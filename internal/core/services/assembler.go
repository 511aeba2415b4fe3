package services

import "vehicle-inference-service/internal/core/domain"

// AssembleFuelFeatures orders the fields exactly as the scaler and model were
// fitted: cylinders, displacement, horsepower, weight, acceleration,
// model_year, origin.
func AssembleFuelFeatures(req domain.FuelRequest) []float64 {
	return []float64{
		float64(req.Cylinders),
		req.Displacement,
		req.Horsepower,
		req.Weight,
		req.Acceleration,
		float64(req.ModelYear),
		float64(req.Origin),
	}
}

// AssembleCarRecord builds the labeled record the price pipeline reads by column name.
func AssembleCarRecord(req domain.PriceRequest) domain.CarRecord {
	return domain.CarRecord{
		Name:      req.CarName,
		Company:   req.Company,
		Year:      req.Year,
		KmsDriven: req.KmsDriven,
		FuelType:  req.FuelType,
	}
}
