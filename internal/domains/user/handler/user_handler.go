package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

// UserHandler serves the /api/auth endpoints
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register - POST /api/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// 1. Bind request
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validationf("invalid request body", err))
		return
	}

	// 2. Call service
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Login - POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validationf("invalid request body", err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
