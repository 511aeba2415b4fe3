package artifacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vehicle-inference-service/internal/core/domain"
)

var referenceColumns = []string{"name", "company", "year", "price", "kms_driven", "fuel_type"}

// ReferenceTable is the historical car table. Rows and lookup sets are built
// once and only read afterwards.
type ReferenceTable struct {
	cars      []domain.ReferenceCar
	companies map[string]struct{}
	models    map[string]map[string]struct{} // company -> car names
	fuelTypes map[string]struct{}
}

func NewReferenceTable(cars []domain.ReferenceCar) *ReferenceTable {
	t := &ReferenceTable{
		cars:      cars,
		companies: make(map[string]struct{}),
		models:    make(map[string]map[string]struct{}),
		fuelTypes: make(map[string]struct{}),
	}
	for _, c := range cars {
		t.companies[c.Company] = struct{}{}
		if t.models[c.Company] == nil {
			t.models[c.Company] = make(map[string]struct{})
		}
		t.models[c.Company][c.Name] = struct{}{}
		t.fuelTypes[c.FuelType] = struct{}{}
	}
	return t
}

func LoadReferenceTable(path string) (*ReferenceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReferenceTable(f)
}

// ReadReferenceTable parses CSV with a header row. Header names are matched
// case-insensitively and unknown columns (such as a leading index) are ignored.
func ReadReferenceTable(r io.Reader) (*ReferenceTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reference data is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range referenceColumns {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("reference data is missing column %q", col)
		}
	}

	var cars []domain.ReferenceCar
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		car, err := parseReferenceRow(rec, pos)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cars = append(cars, car)
	}
	if len(cars) == 0 {
		return nil, fmt.Errorf("reference data has no rows")
	}
	return NewReferenceTable(cars), nil
}

func parseReferenceRow(rec []string, pos map[string]int) (domain.ReferenceCar, error) {
	field := func(col string) (string, error) {
		i := pos[col]
		if i >= len(rec) {
			return "", fmt.Errorf("missing %s", col)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	var car domain.ReferenceCar
	var err error
	if car.Name, err = field("name"); err != nil {
		return car, err
	}
	if car.Company, err = field("company"); err != nil {
		return car, err
	}
	if car.FuelType, err = field("fuel_type"); err != nil {
		return car, err
	}

	raw, err := field("year")
	if err != nil {
		return car, err
	}
	if car.Year, err = strconv.Atoi(raw); err != nil {
		return car, fmt.Errorf("year %q: %w", raw, err)
	}
	if raw, err = field("kms_driven"); err != nil {
		return car, err
	}
	if car.KmsDriven, err = strconv.Atoi(raw); err != nil {
		return car, fmt.Errorf("kms_driven %q: %w", raw, err)
	}
	if raw, err = field("price"); err != nil {
		return car, err
	}
	if car.Price, err = strconv.ParseFloat(raw, 64); err != nil {
		return car, fmt.Errorf("price %q: %w", raw, err)
	}
	return car, nil
}

// Cars returns a copy so callers cannot reorder the shared table.
func (t *ReferenceTable) Cars() []domain.ReferenceCar {
	out := make([]domain.ReferenceCar, len(t.cars))
	copy(out, t.cars)
	return out
}

func (t *ReferenceTable) HasCompany(company string) bool {
	_, ok := t.companies[company]
	return ok
}

// HasCarModel reports whether name is listed under company.
func (t *ReferenceTable) HasCarModel(company, name string) bool {
	_, ok := t.models[company][name]
	return ok
}

func (t *ReferenceTable) HasFuelType(fuelType string) bool {
	_, ok := t.fuelTypes[fuelType]
	return ok
}
