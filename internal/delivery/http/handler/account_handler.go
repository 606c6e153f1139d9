package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-occupancy-tracker/internal/usecase/account"
	"classroom-occupancy-tracker/pkg/utils"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterPublicRoutes binds the endpoints that need no session token.
func (h *AccountHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
	router.POST("/reset-password-request", h.ForgotPassword)
	router.POST("/reset-password", h.ResetPassword)
}

// RegisterProtectedRoutes binds the endpoints behind the auth middleware.
// Account creation requires a logged-in caller; the admin passkey gate in
// front of it is purely client-side.
func (h *AccountHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	if err := h.service.Register(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Account created successfully", nil)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   resp.Token,
	})
}

func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req account.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username is required")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset instructions sent to your email", nil)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req account.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Username, token and new password are required")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
