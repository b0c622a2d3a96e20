// Package http provides HTTP handlers for user management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/users/internal/httputil"
	"github.com/allisson/users/internal/user/http/dto"
	"github.com/allisson/users/internal/user/usecase"
)

const userIDParam = "userId"

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterRoutes mounts the user routes on group, usually /api/user.
// Static segments are registered alongside :userId and take precedence over it.
func (h *UserHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateHandler)
	group.PUT("/update/:userId", h.UpdateFieldsHandler)
	group.PUT("/updateAll/:userId", h.ReplaceAllHandler)
	group.DELETE("/delete/:userId", h.DeleteHandler)
	group.GET("/searchByBirthDate", h.SearchByBirthDateHandler)
	group.GET("/all", h.ListAllHandler)
	group.GET("/:userId", h.GetHandler)
}

// CreateHandler validates and stores a new user.
// POST /api/user - Returns 201 Created with the stored user.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// UpdateFieldsHandler overwrites only the fields present in the body.
// PUT /api/user/update/:userId - Returns 200 OK with the updated user.
func (h *UserHandler) UpdateFieldsHandler(c *gin.Context) {
	id, err := httputil.ParseInt64Param(c, userIDParam)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateFields(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// ReplaceAllHandler validates the body and overwrites every field with it.
// PUT /api/user/updateAll/:userId - Returns 200 OK with the replaced user.
func (h *UserHandler) ReplaceAllHandler(c *gin.Context) {
	id, err := httputil.ParseInt64Param(c, userIDParam)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.ReplaceAll(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler removes a user.
// DELETE /api/user/delete/:userId - Returns 204 No Content, also for unknown ids.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	id, err := httputil.ParseInt64Param(c, userIDParam)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// SearchByBirthDateHandler lists users born strictly between from and to.
// GET /api/user/searchByBirthDate?from=yyyy-MM-dd&to=yyyy-MM-dd
func (h *UserHandler) SearchByBirthDateHandler(c *gin.Context) {
	var query dto.BirthDateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := query.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	from, to, err := query.Bounds()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.SearchByBirthDateRange(c.Request.Context(), from, to)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToResponse(users))
}

// ListAllHandler lists every stored user ordered by id.
// GET /api/user/all
func (h *UserHandler) ListAllHandler(c *gin.Context) {
	users, err := h.userUseCase.ListAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToResponse(users))
}

// GetHandler returns one user.
// GET /api/user/:userId
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseInt64Param(c, userIDParam)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
