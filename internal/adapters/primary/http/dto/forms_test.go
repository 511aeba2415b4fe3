package dto

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/result", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestDecodeForm_Fuel(t *testing.T) {
	req := formRequest(url.Values{
		"cylinders":    {"4"},
		"displacement": {"150.5"},
		"horsepower":   {"100"},
		"weight":       {"3000"},
		"acceleration": {"15"},
		"model_year":   {"80"},
		"origin":       {"1"},
		"submit":       {"Predict"},
	})

	var form FuelForm
	require.NoError(t, DecodeForm(req, &form))

	in := form.ToInput()
	assert.Equal(t, "4", in.Cylinders)
	assert.Equal(t, "150.5", in.Displacement)
	assert.Equal(t, "80", in.ModelYear)
	assert.Equal(t, "1", in.Origin)
}

func TestDecodeForm_MissingFieldsStayEmpty(t *testing.T) {
	req := formRequest(url.Values{"company": {"Maruti"}, "car_models": {"Maruti Swift"}})

	var form PriceForm
	require.NoError(t, DecodeForm(req, &form))

	in := form.ToInput()
	assert.Equal(t, "Maruti", in.Company)
	assert.Equal(t, "Maruti Swift", in.CarModel)
	assert.Empty(t, in.Year)
	assert.Empty(t, in.KiloDriven)
}

func TestDecodeForm_IgnoresQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login?email=query@example.com",
		strings.NewReader(url.Values{"password": {"pw"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var form LoginForm
	require.NoError(t, DecodeForm(req, &form))
	assert.Empty(t, form.Email)
	assert.Equal(t, "pw", form.Password)
}
