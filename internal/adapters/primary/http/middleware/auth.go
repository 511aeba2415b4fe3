package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"vehicle-inference-service/internal/core/domain"
)

const ContextAccount = "account"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

// RequireSession is the access gate in front of the prediction routes. The
// token comes from the session cookie, or from an Authorization bearer header
// for non-browser clients.
func RequireSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := auth.Authenticate(c.Request.Context(), SessionToken(c, cookieName))
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				log.WithError(err).Error("session lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}

func SessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// CurrentAccount returns the account set by RequireSession, or nil.
func CurrentAccount(c *gin.Context) *domain.Account {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil
	}
	account, _ := v.(*domain.Account)
	return account
}
