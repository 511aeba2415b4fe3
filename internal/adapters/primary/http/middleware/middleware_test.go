package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vehicle-inference-service/internal/core/domain"
)

type authFunc func(ctx context.Context, token string) (*domain.Account, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	return f(ctx, token)
}

type observedRequest struct {
	method, route string
	status        int
}

type fakeObserver struct{ seen []observedRequest }

func (o *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	o.seen = append(o.seen, observedRequest{method, route, status})
}

func gatedRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireSession(auth, "session"), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentAccount(c).Username)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	auth := authFunc(func(_ context.Context, token string) (*domain.Account, error) {
		switch token {
		case "cookie-token", "bearer-token":
			return &domain.Account{Username: token}, nil
		case "broken":
			return nil, errors.New("connection refused")
		default:
			return nil, domain.ErrUnauthenticated
		}
	})
	r := gatedRouter(auth)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
		}, http.StatusOK, "cookie-token"},
		{"bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer bearer-token")
		}, http.StatusOK, "bearer-token"},
		{"missing", func(*http.Request) {}, http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"store down", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "session", Value: "broken"})
		}, http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/cars/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/cars/1", "/cars/2", "/nowhere"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []observedRequest{
		{http.MethodGet, "/cars/:id", http.StatusNoContent},
		{http.MethodGet, "/cars/:id", http.StatusNoContent},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}, observer.seen)
}
