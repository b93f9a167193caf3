package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/developer-d723/user-service/internal/service"
	"github.com/developer-d723/user-service/pkg/middleware"
	"github.com/developer-d723/user-service/pkg/models"
)

// UserService is the core contract the handlers depend on.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.UserResponse, error)
	FindUserByID(ctx context.Context, id string) (models.UserResponse, error)
	FindAllUsers(ctx context.Context) ([]models.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	Users UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// CreateUser godoc
// @Summary      Create a new user
// @Description  Creates a new user and publishes a USER_CREATED notification
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateUserRequest  true  "Create user request"
// @Success      201      {object}  UserResource
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	log.Printf("[API] CreateUser correlation_id=%s", correlationID)

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, correlationID)
		return
	}

	resource := NewUserResource(user)
	c.Header("Location", resource.Links["self"])
	c.JSON(http.StatusCreated, resource)
}

// GetUser godoc
// @Summary      Get a user by ID
// @Description  Returns a single user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  UserResource
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")

	user, err := h.Users.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, NewUserResource(user))
}

// ListUsers godoc
// @Summary      List all users
// @Description  Returns all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  UserCollection
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	users, err := h.Users.FindAllUsers(c.Request.Context())
	if err != nil {
		writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, NewUserCollection(users))
}

// UpdateUser godoc
// @Summary      Update an existing user
// @Description  Replaces name, email and age of an existing user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      models.UpdateUserRequest  true  "Update user request"
// @Success      200      {object}  UserResource
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] UpdateUser id=%s correlation_id=%s", userID, correlationID)

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err, correlationID)
		return
	}

	c.JSON(http.StatusOK, NewUserResource(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user and publishes a USER_DELETED notification
// @Tags         users
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	userID := c.Param("id")
	log.Printf("[API] DeleteUser id=%s correlation_id=%s", userID, correlationID)

	if err := h.Users.DeleteUser(c.Request.Context(), userID); err != nil {
		writeError(c, err, correlationID)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError translates core error kinds into wire status codes.
func writeError(c *gin.Context, err error, correlationID string) {
	switch {
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] Internal error: %v correlation_id=%s", err, correlationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
