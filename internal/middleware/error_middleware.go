package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the failure envelope. Controllers
// funnel every error through here so the status mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	status := statusForError(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(status, dto.NewErrorResponse(status, "Internal server error"))
		return
	}

	c.JSON(status, dto.NewErrorResponse(status, err.Error()))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrCodeMismatch),
		errors.Is(err, apperrors.ErrAlreadyVerified):
		return http.StatusBadRequest

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrAccountBanned),
		errors.Is(err, apperrors.ErrAccountNotVerified),
		errors.Is(err, apperrors.ErrSuperAdminImmutable):
		return http.StatusForbidden

	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCommitteeNotFound),
		errors.Is(err, apperrors.ErrMemberNotFound):
		return http.StatusNotFound

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrMemberAlreadyAdded):
		return http.StatusConflict

	case errors.Is(err, apperrors.ErrEmailDelivery):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// HandleValidationError turns a request binding failure into a 400 envelope
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, err.Error()))
}
