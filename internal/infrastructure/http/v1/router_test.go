package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edr/internal/domain/auth"
	"edr/internal/domain/dashboard"
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/settings"
	"edr/internal/domain/suppliers"
	v1 "edr/internal/infrastructure/http/v1"
	"edr/internal/infrastructure/storage"
	"edr/pkg/logger"
)

const (
	testAdminEmail    = "admin@edr-solution.fr"
	testAdminPassword = "changeme123"
)

type testAPI struct {
	router  *gin.Engine
	token   string
	jwt     *auth.JWTService
	backend *storage.Backend
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	backend, err := storage.New(ctx, storage.Config{Kind: storage.KindMemory})
	require.NoError(t, err)
	t.Cleanup(backend.Close)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	authService := auth.NewService(backend.Users, jwtService, auth.DefaultServiceConfig())
	require.NoError(t, authService.EnsureAdmin(ctx, testAdminEmail, testAdminPassword))

	settingsService := settings.NewService(backend.Settings, backend.Trail)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:        log,
		AuthService:   authService,
		Interventions: interventions.NewService(backend.Interventions, backend.TxManager, backend.Trail),
		Quotes:        quotes.NewService(backend.Quotes, backend.TxManager, backend.Trail, backend.Numerator, settingsService),
		Inventory:     inventory.NewService(backend.Inventory, backend.TxManager, backend.Trail),
		Suppliers:     suppliers.NewService(backend.Suppliers, backend.TxManager, backend.Trail),
		Employees:     hr.NewEmployeeService(backend.Employees, backend.TxManager, backend.Trail),
		Leaves:        hr.NewLeaveService(backend.Leaves, backend.Employees, backend.TxManager, backend.Trail),
		Projects:      projects.NewService(backend.Projects, backend.TxManager, backend.Trail),
		Settings:      settingsService,
		Dashboard:     dashboard.NewService(backend.Interventions, backend.Quotes, backend.Inventory, backend.Trail),
	})

	api := &testAPI{router: router, jwt: jwtService, backend: backend}
	api.token = api.login(t, testAdminEmail, testAdminPassword)
	return api
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Code
}

func TestHealth_LiveNeedsNoAuth(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutes_RejectMissingToken(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/interventions", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
}

func TestProtectedRoutes_RejectBadToken(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/interventions", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_WrongPasswordIs401(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"wrong"}`, testAdminEmail))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInterventions_CreateListFilter(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/interventions", api.token,
		`{"title":"Panne alarme","client":"Banque Populaire","technician":"Julien Moreau","status":"En cours","priority":"Critique","type":"Panne"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	w = api.do(t, http.MethodPost, "/api/v1/interventions", api.token,
		`{"title":"Maintenance caméras","client":"Translog","technician":"Sophie Bernard"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/interventions?status=En%20cours", api.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items      []interventions.Intervention `json:"items"`
		TotalCount int                          `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, "Panne alarme", list.Items[0].Title)
}

func TestInterventions_InvalidTransitionIs422(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/interventions", api.token,
		`{"title":"Nouvelle","client":"Translog","technician":"Julien Moreau"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/interventions/1/status", api.token,
		`{"status":"Terminée"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", errorCode(t, w))
}

func TestInterventions_ArchiveIs204AndHidden(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/interventions", api.token,
		`{"title":"À archiver","client":"Translog","technician":"Julien Moreau"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/interventions/1", api.token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/interventions", api.token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		TotalCount int `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Zero(t, list.TotalCount)
}

func TestQuotes_ItemFlowThroughAPI(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/quotes", api.token,
		`{"client":{"name":"Clinique du Parc"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/v1/quotes/1/items", api.token,
		`{"type":"Produit","name":"Lecteur de badge","unitPrice":100,"quantity":2,"taxRate":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var q quotes.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 200.0, q.Subtotal)
	assert.Equal(t, 240.0, q.Total)
	require.Len(t, q.Items, 1)
	assert.NotEmpty(t, q.Reference)

	w = api.do(t, http.MethodDelete, "/api/v1/quotes/1/items/"+q.Items[0].ID, api.token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Zero(t, q.Total)
	assert.Empty(t, q.Items)
}

func TestQuotes_UnknownRecordIs404(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/quotes/99", api.token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestInventory_AdjustAndLowStock(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/inventory", api.token,
		`{"name":"Caméra IP","quantity":3,"minQuantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/v1/inventory/1/adjust", api.token, `{"delta":-4}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, w))

	w = api.do(t, http.MethodGet, "/api/v1/inventory/low-stock", api.token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var low struct {
		Items      []inventory.Item `json:"items"`
		TotalCount int              `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &low))
	assert.Equal(t, 1, low.TotalCount)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "Caméra IP", low.Items[0].Name)
}

func TestSettings_GetReturnsDefaults(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/settings", api.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg settings.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "EDR Solution", cfg.CompanyName)
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	api := setupAPI(t)

	user := auth.NewUser("j.moreau@edr-solution.fr", "irrelevant")
	user.ID = 42
	token, _, err := api.jwt.GenerateAccessToken(user)
	require.NoError(t, err)

	w := api.do(t, http.MethodPost, "/api/v1/admin/database/verify", token, `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestDashboard_Summary(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/interventions", api.token,
		`{"title":"Ticket","client":"Translog","technician":"Julien Moreau"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/dashboard", api.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary dashboard.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.OpenInterventions)
	assert.NotEmpty(t, summary.RecentActivity)
}
