package auth

import (
	"errors"
	"net/http"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.PUT("/auth/me", h.UpdateMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Passwords do not match")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists")
		case errors.Is(err, ErrPhoneTaken):
			response.Error(c, http.StatusConflict, "PHONE_TAKEN", "An account with this phone already exists")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, AuthResponse{
		Token: token,
		User:  toUserPayload(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to sign in")
		return
	}

	response.Success(c, http.StatusOK, AuthResponse{
		Token: token,
		User:  toUserPayload(user),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserPayload(user)})
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFullName):
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Full name cannot be empty")
		case errors.Is(err, ErrPhoneTaken):
			response.Error(c, http.StatusConflict, "PHONE_TAKEN", "An account with this phone already exists")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Profile not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserPayload(user)})
}

func toUserPayload(u *domain.Profile) *UserPayload {
	return &UserPayload{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     string(u.Role),
	}
}
