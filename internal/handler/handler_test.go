package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")
	os.Exit(m.Run())
}

func newTestHandler(limiter *stubLimiter, traffic *zap.Logger) *Handler {
	services := service.New(zap.NewNop(), &repository.Repository{}, nil, nil)
	if limiter == nil {
		return New(services, nil, traffic)
	}
	return New(services, limiter, traffic)
}

type stubLimiter struct {
	allowed bool
	keys    []string
}

func (l *stubLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, nil
}

func TestAuthMiddleware_MissingBearer(t *testing.T) {
	r := newTestHandler(nil, nil).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/followingposts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	r := newTestHandler(nil, nil).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/followingposts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestHandler(nil, nil).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	r := newTestHandler(limiter, nil).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/create/user", strings.NewReader("{}"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Len(t, limiter.keys, 1)
	assert.Contains(t, limiter.keys[0], "rate-limit:auth:")
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	r := newTestHandler(limiter, nil).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/create/user", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// past the limiter, the empty body fails validation instead
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrafficLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestHandler(nil, zap.New(core)).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/", fields["path"])
	assert.NotEmpty(t, fields["ip"])
}
