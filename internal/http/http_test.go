package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/users/internal/config"
	"github.com/allisson/users/internal/metrics"
	userHTTP "github.com/allisson/users/internal/user/http"
	"github.com/allisson/users/internal/user/repository"
	"github.com/allisson/users/internal/user/usecase"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubCounter struct {
	count int
	err   error
}

func (s stubCounter) Count(context.Context) (int, error) { return s.count, s.err }

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:       "localhost",
		ServerPort:       8080,
		LogLevel:         "error",
		UserMinAge:       18,
		MetricsNamespace: "test_app",
	}
}

// newTestAPI wires a server over the in-memory repository.
func newTestAPI(t *testing.T, cfg *config.Config) (*Server, http.Handler) {
	t.Helper()

	repo := repository.NewInMemoryUserRepository()
	uc := usecase.NewUserUseCase(repo, usecase.Config{
		MinAge: cfg.UserMinAge,
		Now:    func() time.Time { return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC) },
	})
	handler := userHTTP.NewUserHandler(uc, discardLogger())

	server := NewServer(cfg.ServerHost, cfg.ServerPort, discardLogger(), repo)
	server.SetupRouter(cfg, handler, nil)
	t.Cleanup(func() { server.stop() })

	return server, server.GetHandler()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthHandler(t *testing.T) {
	server := NewServer("localhost", 8080, discardLogger(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeMap(t, w)["status"])
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		counter        UserCounter
		shutdown       bool
		expectedStatus int
		expectedState  string
	}{
		{name: "ready", counter: stubCounter{count: 3}, expectedStatus: http.StatusOK, expectedState: "ready"},
		{name: "nil store", counter: nil, expectedStatus: http.StatusServiceUnavailable, expectedState: "not_ready"},
		{
			name:           "store error",
			counter:        stubCounter{err: errors.New("unavailable")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
		},
		{
			name:           "shutting down",
			counter:        stubCounter{},
			shutdown:       true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer("localhost", 8080, discardLogger(), tt.counter)
			server.shutdown.Store(tt.shutdown)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedState, decodeMap(t, w)["status"])
		})
	}

	t.Run("reports user count", func(t *testing.T) {
		server := NewServer("localhost", 8080, discardLogger(), stubCounter{count: 3})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)

		response := decodeMap(t, w)
		assert.Equal(t, float64(3), response["users"])
		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ok", components["user_store"])
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/api/user/:userId", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/9?verbose=1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/user/9", entry["path"])
	assert.Equal(t, "verbose=1", entry["query"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_ProbesAndRequestID(t *testing.T) {
	_, handler := newTestAPI(t, testConfig())

	w := doJSON(t, handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsed)

	w = doJSON(t, handler, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeMap(t, w)["users"])

	w = doJSON(t, handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics are served by the metrics server only")
}

func TestRouter_UserLifecycle(t *testing.T) {
	_, handler := newTestAPI(t, testConfig())

	adult := `{"email":"john@example.com","firstName":"John","lastName":"Doe","birthDate":"1990-05-10"}`

	// create assigns ids from zero
	w := doJSON(t, handler, http.MethodPost, "/api/user", adult)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(0), decodeMap(t, w)["id"])

	w = doJSON(t, handler, http.MethodPost, "/api/user",
		`{"email":"jane@example.com","firstName":"Jane","lastName":"Roe","birthDate":"1985-02-01","phoneNumber":"0123456789"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), decodeMap(t, w)["id"])

	// lookup
	w = doJSON(t, handler, http.MethodGet, "/api/user/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane", decodeMap(t, w)["firstName"])

	// partial update leaves other fields untouched and skips validation
	w = doJSON(t, handler, http.MethodPut, "/api/user/update/0", `{"address":"Main St","email":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeMap(t, w)
	assert.Equal(t, "Main St", updated["address"])
	assert.Equal(t, "john@example.com", updated["email"])

	// full replace clears absent fields
	w = doJSON(t, handler, http.MethodPut, "/api/user/updateAll/0",
		`{"email":"johnny@example.com","firstName":"Johnny","lastName":"Doe","birthDate":"1990-05-10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	replaced := decodeMap(t, w)
	assert.Equal(t, "johnny@example.com", replaced["email"])
	assert.Nil(t, replaced["address"])

	// search bounds are exclusive
	w = doJSON(t, handler, http.MethodGet, "/api/user/searchByBirthDate?from=1985-02-01&to=2000-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	var found []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, float64(0), found[0]["id"])

	// delete, then the id is gone and never reused
	w = doJSON(t, handler, http.MethodDelete, "/api/user/delete/0", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, handler, http.MethodDelete, "/api/user/delete/0", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, handler, http.MethodGet, "/api/user/0", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, handler, http.MethodPost, "/api/user", adult)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(2), decodeMap(t, w)["id"])

	w = doJSON(t, handler, http.MethodGet, "/api/user/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, float64(1), all[0]["id"])
	assert.Equal(t, float64(2), all[1]["id"])
}

func TestRouter_Rejections(t *testing.T) {
	_, handler := newTestAPI(t, testConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "violations are listed",
			method:         http.MethodPost,
			path:           "/api/user",
			body:           `{"email":"bad","phoneNumber":"12"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"Invalid phone number"`,
		},
		{
			name:           "too young",
			method:         http.MethodPost,
			path:           "/api/user",
			body:           `{"email":"kid@example.com","firstName":"Kid","lastName":"Doe","birthDate":"2020-01-01"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "minimum age",
		},
		{
			name:           "future birth date",
			method:         http.MethodPost,
			path:           "/api/user",
			body:           `{"email":"kid@example.com","firstName":"Kid","lastName":"Doe","birthDate":"2030-01-01"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "Birth date must be in past",
		},
		{
			name:           "malformed json",
			method:         http.MethodPost,
			path:           "/api/user",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "update unknown user",
			method:         http.MethodPut,
			path:           "/api/user/update/99",
			body:           `{"firstName":"X"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "replace unknown user",
			method:         http.MethodPut,
			path:           "/api/user/updateAll/99",
			body:           `{"email":"john@example.com","firstName":"John","lastName":"Doe","birthDate":"1990-05-10"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "inverted range",
			method:         http.MethodGet,
			path:           "/api/user/searchByBirthDate?from=2000-01-01&to=1990-01-01",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "bad time range",
		},
		{
			name:           "non numeric id",
			method:         http.MethodGet,
			path:           "/api/user/abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody), w.Body.String())
			}
		})
	}
}

func TestRouter_RateLimitAppliesToUserRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.1
	cfg.RateLimitBurst = 1

	_, handler := newTestAPI(t, cfg)

	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/api/user/all", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, handler, http.MethodGet, "/api/user/all", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(t, handler, http.MethodGet, "/health", "").Code)
}

func TestRouter_HTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	cfg := testConfig()
	repo := repository.NewInMemoryUserRepository()
	handler := userHTTP.NewUserHandler(usecase.NewUserUseCase(repo, usecase.Config{}), discardLogger())
	server := NewServer(cfg.ServerHost, cfg.ServerPort, discardLogger(), repo)
	server.SetupRouter(cfg, handler, provider.MeterProvider())
	defer server.stop()

	doJSON(t, server.GetHandler(), http.MethodGet, "/api/user/all", "")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `path="/api/user/all"`)
}

func TestServer_StartRequiresRouter(t *testing.T) {
	server := NewServer("localhost", 0, discardLogger(), nil)

	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	cfg := testConfig()
	cfg.ServerPort = 0
	server, _ := newTestAPI(t, cfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
	assert.True(t, server.shutdown.Load())
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	// User routes are not served on the metrics port
	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/all", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsServer_WithoutProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
