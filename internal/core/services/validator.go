package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// FieldKind is the primitive type a raw field must parse to.
type FieldKind string

const (
	FieldInteger FieldKind = "integer"
	FieldNumber  FieldKind = "number"
)

// FieldRule declares one fuel-efficiency field: its form key, parse type and domain bounds.
type FieldRule struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"type"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Allowed []int     `json:"allowed,omitempty"`
	Message string    `json:"message"`
}

var fuelFieldRules = []FieldRule{
	{Name: "cylinders", Label: "Cylinders", Kind: FieldInteger, Min: 3, Max: 12,
		Message: "Cylinders must be between 3 and 12"},
	{Name: "displacement", Label: "Displacement", Kind: FieldNumber, Min: 50, Max: 600,
		Message: "Displacement must be between 50 and 600"},
	{Name: "horsepower", Label: "Horsepower", Kind: FieldNumber, Min: 40, Max: 500,
		Message: "Horsepower must be between 40 and 500"},
	{Name: "weight", Label: "Weight", Kind: FieldNumber, Min: 1000, Max: 7000,
		Message: "Weight must be between 1000 and 7000"},
	{Name: "acceleration", Label: "Acceleration", Kind: FieldNumber, Min: 5, Max: 30,
		Message: "Acceleration must be between 5 and 30 seconds"},
	{Name: "model_year", Label: "Model year", Kind: FieldInteger, Min: 60, Max: 90,
		Message: "Model year must be between 60 and 90"},
	{Name: "origin", Label: "Origin", Kind: FieldInteger, Min: 1, Max: 3, Allowed: []int{1, 2, 3},
		Message: "Origin must be 1 (USA), 2 (Europe), or 3 (Japan)"},
}

// FuelFieldRules returns the fuel-efficiency constraint table in validation order.
func FuelFieldRules() []FieldRule {
	rules := make([]FieldRule, len(fuelFieldRules))
	copy(rules, fuelFieldRules)
	return rules
}

// FuelInput holds raw, untrusted fuel-efficiency form values.
type FuelInput struct {
	Cylinders    string
	Displacement string
	Horsepower   string
	Weight       string
	Acceleration string
	ModelYear    string
	Origin       string
}

func (in FuelInput) values() []string {
	return []string{in.Cylinders, in.Displacement, in.Horsepower, in.Weight, in.Acceleration, in.ModelYear, in.Origin}
}

// PriceInput holds raw, untrusted car-price form values.
type PriceInput struct {
	Company    string
	CarModel   string
	Year       string
	FuelType   string
	KiloDriven string
}

// Validator parses raw input and enforces domain bounds. It stops at the
// first violation in field order.
type Validator struct {
	reference       ports.ReferenceData
	checkCategories bool
}

func NewValidator(reference ports.ReferenceData, checkCategories bool) *Validator {
	return &Validator{reference: reference, checkCategories: checkCategories}
}

func (v *Validator) ValidateFuel(in FuelInput) (domain.FuelRequest, error) {
	parsed := make([]float64, len(fuelFieldRules))
	for i, raw := range in.values() {
		value, err := fuelFieldRules[i].check(raw)
		if err != nil {
			return domain.FuelRequest{}, err
		}
		parsed[i] = value
	}

	return domain.FuelRequest{
		Cylinders:    int(parsed[0]),
		Displacement: parsed[1],
		Horsepower:   parsed[2],
		Weight:       parsed[3],
		Acceleration: parsed[4],
		ModelYear:    int(parsed[5]),
		Origin:       int(parsed[6]),
	}, nil
}

func (r FieldRule) check(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, requiredError(r.Name, r.Label)
	}

	var value float64
	switch r.Kind {
	case FieldInteger:
		n, err := parseInteger(r.Name, r.Label, raw)
		if err != nil {
			return 0, err
		}
		value = float64(n)
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, parseError(r.Name, r.Label, FieldNumber)
		}
		value = f
	}

	if len(r.Allowed) > 0 {
		for _, a := range r.Allowed {
			if float64(a) == value {
				return value, nil
			}
		}
		return 0, r.violation()
	}
	if value < r.Min || value > r.Max {
		return 0, r.violation()
	}
	return value, nil
}

func (r FieldRule) violation() error {
	constraint := fmt.Sprintf("must be between %g and %g", r.Min, r.Max)
	if len(r.Allowed) > 0 {
		constraint = fmt.Sprintf("must be one of %v", r.Allowed)
	}
	return &domain.ValidationError{Field: r.Name, Constraint: constraint, Message: r.Message}
}

func (v *Validator) ValidatePrice(in PriceInput) (domain.PriceRequest, error) {
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return domain.PriceRequest{}, requiredError("company", "Company")
	}
	carName := strings.TrimSpace(in.CarModel)
	if carName == "" {
		return domain.PriceRequest{}, requiredError("car_models", "Car model")
	}
	yearRaw := strings.TrimSpace(in.Year)
	if yearRaw == "" {
		return domain.PriceRequest{}, requiredError("year", "Year")
	}
	year, err := parseInteger("year", "Year", yearRaw)
	if err != nil {
		return domain.PriceRequest{}, err
	}
	fuelType := strings.TrimSpace(in.FuelType)
	if fuelType == "" {
		return domain.PriceRequest{}, requiredError("fuel_type", "Fuel type")
	}
	kmsRaw := strings.TrimSpace(in.KiloDriven)
	if kmsRaw == "" {
		return domain.PriceRequest{}, requiredError("kilo_driven", "Kilometers driven")
	}
	kms, err := parseInteger("kilo_driven", "Kilometers driven", kmsRaw)
	if err != nil {
		return domain.PriceRequest{}, err
	}

	if v.checkCategories && v.reference != nil {
		switch {
		case !v.reference.HasCompany(company):
			return domain.PriceRequest{}, unknownChoice("company", "Company", company)
		case !v.reference.HasCarModel(company, carName):
			return domain.PriceRequest{}, unknownChoice("car_models", "Car model", carName)
		case !v.reference.HasFuelType(fuelType):
			return domain.PriceRequest{}, unknownChoice("fuel_type", "Fuel type", fuelType)
		}
	}

	return domain.PriceRequest{
		Company:   company,
		CarName:   carName,
		Year:      year,
		FuelType:  fuelType,
		KmsDriven: kms,
	}, nil
}

func parseInteger(field, label, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, parseError(field, label, FieldInteger)
	}
	return n, nil
}

func parseError(field, label string, kind FieldKind) error {
	constraint := fmt.Sprintf("is not parseable as %s", kind)
	return &domain.ValidationError{Field: field, Constraint: constraint, Message: label + " " + constraint}
}

func requiredError(field, label string) error {
	return &domain.ValidationError{Field: field, Constraint: "is required", Message: label + " is required"}
}

func unknownChoice(field, label, value string) error {
	return &domain.ValidationError{
		Field:      field,
		Constraint: "is not a known choice",
		Message:    fmt.Sprintf("%s '%s' is not a known choice", label, value),
	}
}
