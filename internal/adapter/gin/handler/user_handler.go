package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

const (
	msgUserCreated = "User created successfully"
	msgUserUpdated = "User updated successfully"
	msgUserDeleted = "User deleted successfully"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	BirthDate string `json:"birth_date" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Absent (or null) fields are left untouched.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birth_date"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

// MessageResponse confirms a write and names the affected user
type MessageResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// bodyFields maps request struct fields to their JSON keys
var bodyFields = map[string]string{
	"Name":      domain.FieldName,
	"Email":     domain.FieldEmail,
	"BirthDate": domain.FieldBirthDate,
}

func serializeUser(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		BirthDate: domain.FormatBirthDate(u.BirthDate),
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid create user request", zap.Error(err))
		h.handleError(c, bindError(err))
		return
	}

	log.Info("CreateUser request", zap.String("name", req.Name), zap.String("email", req.Email))

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{
		Message: msgUserCreated,
		UserID:  resp.ID,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = serializeUser(u)
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, serializeUser(resp.User))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	log := logger.WithContext(c.Request.Context(), h.log)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid update user request", zap.Int64("id", id), zap.Error(err))
		// An unknown id wins over a broken body
		if _, getErr := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id}); getErr != nil {
			h.handleError(c, getErr)
			return
		}
		h.handleError(c, bindError(err))
		return
	}

	log.Info("UpdateUser request", zap.Int64("id", id))

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message: msgUserUpdated,
		UserID:  resp.ID,
	})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Message: msgUserDeleted,
		UserID:  resp.ID,
	})
}

// userID reads the :id path parameter. Anything that is not a positive
// integer cannot name a stored user and is answered like an unknown id.
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.WithContext(c.Request.Context(), h.log).Debug("unroutable user id", zap.String("id", raw))
		h.handleError(c, pkgerrors.NewNotFoundError("user", "user not found"))
		return 0, false
	}
	return id, true
}

// bindError turns a gin binding failure into a MalformedRequestError
func bindError(err error) error {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		field := bodyFields[verrs[0].Field()]
		return pkgerrors.NewMalformedRequestError(field, "field is required")
	case errors.As(err, &typeErr):
		return pkgerrors.NewMalformedRequestError(typeErr.Field, "must be a string")
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return pkgerrors.NewMalformedRequestError("", "request body must be a JSON object")
	default:
		return pkgerrors.NewMalformedRequestError("", err.Error())
	}
}

// handleError converts usecase errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context(), h.log)
	status := pkgerrors.HTTPStatus(err)

	var (
		malformed *pkgerrors.MalformedRequestError
		invalid   *pkgerrors.ValidationError
		notFound  *pkgerrors.NotFoundError
	)

	switch {
	case errors.As(err, &malformed):
		log.Warn("malformed request", zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "malformed_request", Message: malformed.Error()})
	case errors.As(err, &invalid):
		log.Warn("validation failed", zap.String("field", invalid.Field), zap.String("value", invalid.Value))
		c.JSON(status, ErrorResponse{Error: "validation_error", Message: invalid.Error()})
	case errors.As(err, &notFound):
		log.Debug("resource not found", zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "not_found", Message: notFound.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
