package dto

import (
	"net/http"
	"strings"

	"github.com/gorilla/schema"

	"vehicle-inference-service/internal/core/services"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeForm fills dst from the request's URL-encoded or multipart form.
// Every field is a string; type checks belong to the validator.
func DecodeForm(r *http.Request, dst any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return err
		}
	} else if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

type FuelForm struct {
	Cylinders    string `schema:"cylinders"`
	Displacement string `schema:"displacement"`
	Horsepower   string `schema:"horsepower"`
	Weight       string `schema:"weight"`
	Acceleration string `schema:"acceleration"`
	ModelYear    string `schema:"model_year"`
	Origin       string `schema:"origin"`
}

func (f FuelForm) ToInput() services.FuelInput {
	return services.FuelInput{
		Cylinders:    f.Cylinders,
		Displacement: f.Displacement,
		Horsepower:   f.Horsepower,
		Weight:       f.Weight,
		Acceleration: f.Acceleration,
		ModelYear:    f.ModelYear,
		Origin:       f.Origin,
	}
}

type PriceForm struct {
	Company    string `schema:"company"`
	CarModel   string `schema:"car_models"`
	Year       string `schema:"year"`
	FuelType   string `schema:"fuel_type"`
	KiloDriven string `schema:"kilo_driven"`
}

func (f PriceForm) ToInput() services.PriceInput {
	return services.PriceInput{
		Company:    f.Company,
		CarModel:   f.CarModel,
		Year:       f.Year,
		FuelType:   f.FuelType,
		KiloDriven: f.KiloDriven,
	}
}

type SignupForm struct {
	Username string `schema:"username"`
	Email    string `schema:"email"`
	Password string `schema:"password"`
}

type LoginForm struct {
	Email    string `schema:"email"`
	Password string `schema:"password"`
}
