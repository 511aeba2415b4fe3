package domain

// Variant tags which prediction flow produced a result.
type Variant string

const (
	VariantFuelEfficiency Variant = "fuel_efficiency"
	VariantCarPrice       Variant = "car_price"
)

// FuelFeatureCount is the width of the fuel-efficiency feature vector.
const FuelFeatureCount = 7

// FuelRequest is a validated fuel-efficiency request.
type FuelRequest struct {
	Cylinders    int
	Displacement float64
	Horsepower   float64
	Weight       float64
	Acceleration float64
	ModelYear    int
	Origin       int
}

// PriceRequest is a validated car-price request.
type PriceRequest struct {
	Company   string
	CarName   string
	Year      int
	FuelType  string
	KmsDriven int
}

// CarRecord is the labeled row the price pipeline consumes. Columns are
// resolved by name.
type CarRecord struct {
	Name      string
	Company   string
	Year      int
	KmsDriven int
	FuelType  string
}

// Categorical returns the value of a categorical column.
func (r CarRecord) Categorical(column string) (string, bool) {
	switch column {
	case "name":
		return r.Name, true
	case "company":
		return r.Company, true
	case "fuel_type":
		return r.FuelType, true
	}
	return "", false
}

// Numeric returns the value of a numeric column.
func (r CarRecord) Numeric(column string) (float64, bool) {
	switch column {
	case "year":
		return float64(r.Year), true
	case "kms_driven":
		return float64(r.KmsDriven), true
	}
	return 0, false
}

// PredictionResult is a single rounded prediction.
type PredictionResult struct {
	Variant Variant
	Value   float64
}

// ReferenceCar is one row of the historical car table.
type ReferenceCar struct {
	Name      string
	Company   string
	Year      int
	Price     float64
	KmsDriven int
	FuelType  string
}

// CarChoices are the enumerations offered on the price form.
type CarChoices struct {
	Companies []string
	CarModels []string
	Years     []int
	FuelTypes []string
}
