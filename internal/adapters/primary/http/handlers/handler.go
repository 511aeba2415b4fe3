package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"vehicle-inference-service/internal/adapters/primary/http/middleware"
	"vehicle-inference-service/internal/core/services"
)

// Options carries the HTTP-facing settings the handlers need.
type Options struct {
	CookieName      string
	CookieSecure    bool
	SessionTTL      time.Duration
	LegacyAlways200 bool
}

type Handler struct {
	fuelSvc    *services.FuelEfficiencyService
	priceSvc   *services.CarPriceService
	catalogSvc *services.CatalogService
	accountSvc *services.AccountService
	opts       Options
}

func New(
	fuelSvc *services.FuelEfficiencyService,
	priceSvc *services.CarPriceService,
	catalogSvc *services.CatalogService,
	accountSvc *services.AccountService,
	opts Options,
) *Handler {
	return &Handler{
		fuelSvc:    fuelSvc,
		priceSvc:   priceSvc,
		catalogSvc: catalogSvc,
		accountSvc: accountSvc,
		opts:       opts,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	// Public
	r.GET("/healthz", h.Healthz)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	gated := r.Group("", middleware.RequireSession(h.accountSvc, h.opts.CookieName))

	gated.POST("/logout", h.Logout)

	// Fuel efficiency
	gated.GET("/predict", h.FuelForm)
	gated.POST("/result", h.PredictFuel)

	// Car price
	gated.GET("/car_predict", h.CarChoices)
	gated.POST("/car_result", h.PredictPrice)
}
