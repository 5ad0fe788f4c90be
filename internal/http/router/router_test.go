package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/config"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/http/handlers"
	dashboardHandler "github.com/ignatzorin/complaints-dashboard/internal/interface/http/handler"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
	"github.com/ignatzorin/complaints-dashboard/internal/ws"
)

type stubAuthorizer struct {
	err error
}

func (s stubAuthorizer) Authorize(ctx context.Context, claims *service.AccessClaims) (*entity.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Profile{ID: claims.ProfileID, Role: valueobject.RoleAdmin, Status: valueobject.UserStatusActive}, nil
}

func testConfig(t *testing.T, env string) *config.Config {
	return &config.Config{
		Env:              env,
		AllowedOrigins:   []string{"*"},
		MediaBaseURL:     "/media",
		MediaStoragePath: t.TempDir(),
		Tunables: config.Tunables{
			RateLimitLimit:  100,
			RateLimitPeriod: time.Minute,
			AuthRateLimit:   1,
		},
	}
}

func testHandlers() Handlers {
	return Handlers{
		Auth:       handlers.NewAuthHandler(nil),
		Health:     handlers.NewHealthHandler(nil, nil),
		WS:         handlers.NewWSHandler(ws.NewHub(), nil),
		Seed:       handlers.NewSeedHandler(nil),
		Complaints: dashboardHandler.NewComplaintHandler(dashboardHandler.ComplaintUseCases{}, 1<<20),
		Users:      dashboardHandler.NewProfileHandler(dashboardHandler.ProfileUseCases{}),
		Dashboard:  dashboardHandler.NewDashboardHandler(nil),
		Preference: dashboardHandler.NewPreferenceHandler(nil),
	}
}

func issueToken(t *testing.T, tokens *service.TokenManager) string {
	t.Helper()
	pair, _, err := tokens.GeneratePair(&entity.Profile{ID: uuid.New(), Role: valueobject.RoleAdmin}, uuid.New())
	require.NoError(t, err)
	return pair.AccessToken
}

func serve(r http.Handler, method, path, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)
	r := SetupRouter(testConfig(t, "test"), testHandlers(), tokens, stubAuthorizer{})

	w := serve(r, http.MethodGet, "/api/admin/complaints", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminGuardRejectsNonAdmin(t *testing.T) {
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)
	r := SetupRouter(testConfig(t, "test"), testHandlers(), tokens, stubAuthorizer{err: apperror.ErrForbidden})

	w := serve(r, http.MethodGet, "/api/admin/users", issueToken(t, tokens), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_IDValidators(t *testing.T) {
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)
	r := SetupRouter(testConfig(t, "test"), testHandlers(), tokens, stubAuthorizer{})
	token := issueToken(t, tokens)

	w := serve(r, http.MethodGet, "/api/admin/complaints/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/api/admin/users/42", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)
	r := SetupRouter(testConfig(t, "test"), testHandlers(), tokens, stubAuthorizer{})

	w := serve(r, http.MethodPost, "/api/auth/login", "", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/api/auth/login", "", "{}")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_SeedOnlyInDevelopment(t *testing.T) {
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)

	prod := SetupRouter(testConfig(t, "staging"), testHandlers(), tokens, stubAuthorizer{})
	w := serve(prod, http.MethodPost, "/api/seed", "", "{")
	assert.Equal(t, http.StatusNotFound, w.Code)

	dev := SetupRouter(testConfig(t, "development"), testHandlers(), tokens, stubAuthorizer{})
	w = serve(dev, http.MethodPost, "/api/seed", "", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenManager("a", "b", time.Minute, time.Hour)
	r := SetupRouter(testConfig(t, "test"), testHandlers(), tokens, stubAuthorizer{})

	w := serve(r, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
