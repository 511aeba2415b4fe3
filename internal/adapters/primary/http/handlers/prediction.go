package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-inference-service/internal/adapters/primary/http/dto"
)

// FuelForm lists the fields POST /result accepts with their bounds.
func (h *Handler) FuelForm(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FieldsResponse{Fields: h.fuelSvc.Fields()})
}

func (h *Handler) PredictFuel(c *gin.Context) {
	var form dto.FuelForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed form body"})
		return
	}

	result, err := h.fuelSvc.Predict(c.Request.Context(), form.ToInput())
	if err != nil {
		h.writePredictionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FuelPredictionResponse{Prediction: result.Value})
}

// CarChoices lists the values the price form offers. ?company= narrows the
// car models.
func (h *Handler) CarChoices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToChoicesResponse(h.catalogSvc.Choices(c.Query("company"))))
}

func (h *Handler) PredictPrice(c *gin.Context) {
	var form dto.PriceForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed form body"})
		return
	}

	result, err := h.priceSvc.Predict(c.Request.Context(), form.ToInput())
	if err != nil {
		h.writePredictionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PricePredictionResponse{CarPricePrediction: result.Value})
}
