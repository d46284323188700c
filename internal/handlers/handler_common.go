package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// requestScope pulls the caller's identity out of the request context. It
// writes the 401 response itself when the identity is missing.
func requestScope(c *gin.Context) (userID, companyID string, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	companyID, ok = middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, companyID, true
}

// bindingErrorMessage turns a request binding failure into a client-facing
// message, naming the first offending field when the failure came from
// struct validation.
func bindingErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid request: field %s failed on %s", fe.Field(), fe.Tag())
	}
	return "Invalid request format"
}

// respondServiceError translates service errors into HTTP responses. A
// rejected entry set returns the full validation result; everything else
// maps by error kind.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, defaultMsg string) {
	var validationErr *services.ValidationFailedError
	if errors.As(err, &validationErr) {
		logger.Warn("Validation failed", slog.Int("errors", len(validationErr.Result.Errors)))
		c.JSON(http.StatusBadRequest, dto.ValidationFailureResponse{
			Code:     "VALIDATION_FAILED",
			Errors:   validationErr.Result.Errors,
			Warnings: validationErr.Result.Warnings,
		})
		return
	}

	var conflictErr *services.ErrStateConflict
	if errors.As(err, &conflictErr) {
		logger.Warn("State conflict", slog.String("error", conflictErr.Error()))
		c.JSON(http.StatusConflict, gin.H{"code": conflictErr.Code(), "error": conflictErr.Error()})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= 500 {
			logger.Error(defaultMsg, slog.String("error", appErr.Error()))
			c.JSON(appErr.Code, gin.H{"error": defaultMsg})
		} else {
			logger.Warn(defaultMsg, slog.String("error", appErr.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		}
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(defaultMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": defaultMsg})
	}
}
