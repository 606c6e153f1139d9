package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainAccount "classroom-occupancy-tracker/internal/domain/account"
	domainStatus "classroom-occupancy-tracker/internal/domain/status"
	"classroom-occupancy-tracker/internal/logger"
	"classroom-occupancy-tracker/internal/middleware"
	appErrors "classroom-occupancy-tracker/pkg/errors"
	"classroom-occupancy-tracker/pkg/utils"
)

// respondWithError converts service errors to the wire taxonomy: 400 for
// validation failures, duplicates and bad reset tokens, 401 for bad
// credentials, 404 for unknown usernames on reset requests, 500 otherwise.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainAccount.ErrUsernameTaken):
		utils.ErrorResponse(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domainAccount.ErrAccountNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Username not found")
	case errors.Is(err, domainAccount.ErrInvalidResetToken):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, domainStatus.ErrUnknownKind):
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown status kind")
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
