package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"vehicle-inference-service/internal/adapters/primary/http/dto"
	"vehicle-inference-service/internal/adapters/primary/http/middleware"
)

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.accountSvc.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed form body"})
		return
	}

	account, err := h.accountSvc.Signup(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *Handler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed form body"})
		return
	}

	account, token, err := h.accountSvc.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.opts.SessionTTL.Seconds()))
	log.WithField("account_id", account.ID).Info("login")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	if account := middleware.CurrentAccount(c); account != nil {
		log.WithField("account_id", account.ID).Info("logout")
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, value, maxAge, "/", "", h.opts.CookieSecure, true)
}
