package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/allisson/users/internal/user/usecase/mocks"
)

// createTestContext creates a test Gin context with the given request.
// String bodies are sent verbatim; anything else is JSON encoded.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// setupTestHandler creates a test handler with a mocked use case.
func setupTestHandler(t *testing.T) (*UserHandler, *mocks.MockUserUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockUserUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewUserHandler(mockUseCase, logger), mockUseCase
}
