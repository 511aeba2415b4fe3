package services

import (
	"slices"
	"sort"

	"vehicle-inference-service/internal/core/domain"
	"vehicle-inference-service/internal/core/ports/output"
)

// CatalogService derives the price-form enumerations from the reference table.
// The full set is computed once; callers always get fresh slices.
type CatalogService struct {
	reference ports.ReferenceData
	choices   domain.CarChoices
}

func NewCatalogService(reference ports.ReferenceData) *CatalogService {
	return &CatalogService{reference: reference, choices: buildChoices(reference.Cars(), "")}
}

// Choices returns companies and car models sorted, years descending and fuel
// types in first-seen order. A non-empty company narrows the car models.
func (s *CatalogService) Choices(company string) domain.CarChoices {
	out := domain.CarChoices{
		Companies: slices.Clone(s.choices.Companies),
		Years:     slices.Clone(s.choices.Years),
		FuelTypes: slices.Clone(s.choices.FuelTypes),
	}
	if company == "" {
		out.CarModels = slices.Clone(s.choices.CarModels)
	} else {
		out.CarModels = buildChoices(s.reference.Cars(), company).CarModels
	}
	return out
}

func buildChoices(cars []domain.ReferenceCar, company string) domain.CarChoices {
	companies := map[string]struct{}{}
	models := map[string]struct{}{}
	years := map[int]struct{}{}
	fuelSeen := map[string]struct{}{}
	choices := domain.CarChoices{
		Companies: []string{},
		CarModels: []string{},
		Years:     []int{},
		FuelTypes: []string{},
	}

	for _, car := range cars {
		companies[car.Company] = struct{}{}
		years[car.Year] = struct{}{}
		if _, ok := fuelSeen[car.FuelType]; !ok {
			fuelSeen[car.FuelType] = struct{}{}
			choices.FuelTypes = append(choices.FuelTypes, car.FuelType)
		}
		if company == "" || car.Company == company {
			models[car.Name] = struct{}{}
		}
	}

	for c := range companies {
		choices.Companies = append(choices.Companies, c)
	}
	for m := range models {
		choices.CarModels = append(choices.CarModels, m)
	}
	for y := range years {
		choices.Years = append(choices.Years, y)
	}
	sort.Strings(choices.Companies)
	sort.Strings(choices.CarModels)
	sort.Sort(sort.Reverse(sort.IntSlice(choices.Years)))
	return choices
}
