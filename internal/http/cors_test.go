package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func corsRouter(enabled bool, origins string) *gin.Engine {
	router := gin.New()
	if middleware := createCORSMiddleware(enabled, origins, discardLogger()); middleware != nil {
		router.Use(middleware)
	}
	router.GET("/api/user/all", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	router.PUT("/api/user/update/:userId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("userId")})
	})
	return router
}

func TestCreateCORSMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		origins  string
		expected bool
	}{
		{name: "disabled", enabled: false, origins: "https://example.com", expected: false},
		{name: "enabled without origins", enabled: true, origins: "", expected: false},
		{name: "enabled with only separators", enabled: true, origins: " , ,", expected: false},
		{name: "enabled with origins", enabled: true, origins: "https://app.example.com,https://admin.example.com", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, discardLogger())
			assert.Equal(t, tt.expected, middleware != nil)
		})
	}
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"https://app.example.com", "https://admin.example.com"},
		parseOrigins(" https://app.example.com , https://admin.example.com "),
	)
	assert.Equal(t, []string{"https://app.example.com"}, parseOrigins("https://app.example.com,,"))
	assert.Nil(t, parseOrigins(""))
}

func TestCORSIntegration_AllowedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := corsRouter(true, "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := corsRouter(false, "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_PreflightForUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := corsRouter(true, "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/user/update/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORSConfig(t *testing.T) {
	t.Run("explicit origins", func(t *testing.T) {
		config := corsConfig([]string{"https://app.example.com"})
		assert.False(t, config.AllowAllOrigins)
		assert.Equal(t, []string{"https://app.example.com"}, config.AllowOrigins)
		assert.False(t, config.AllowCredentials)
	})

	t.Run("wildcard allows every origin", func(t *testing.T) {
		config := corsConfig([]string{"https://app.example.com", "*"})
		assert.True(t, config.AllowAllOrigins)
		assert.Empty(t, config.AllowOrigins)
	})
}

func TestCORSIntegration_Wildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := corsRouter(true, "*")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_DisallowedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := corsRouter(true, "https://app.example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
