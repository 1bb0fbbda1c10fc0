package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"wrong code", apperrors.ErrCodeMismatch, http.StatusBadRequest},
		{"already verified", apperrors.ErrAlreadyVerified, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token invalid", apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"banned", apperrors.ErrAccountBanned, http.StatusForbidden},
		{"not verified", apperrors.ErrAccountNotVerified, http.StatusForbidden},
		{"superadmin immutable", apperrors.ErrSuperAdminImmutable, http.StatusForbidden},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"committee not found", apperrors.ErrCommitteeNotFound, http.StatusNotFound},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"member already added", apperrors.ErrMemberAlreadyAdded, http.StatusConflict},
		{"email delivery", apperrors.ErrEmailDelivery, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped custom", apperrors.NewCustomError(apperrors.ErrTokenInvalid, "nope"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/boom", nil)

	HandleAPIError(c, errors.New("pgx: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleAPIErrorKeepsClientMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/42", nil)

	HandleAPIError(c, apperrors.NewNotFoundError("Couldn't find any user account! Please register."))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Couldn't find any user account! Please register.")
	assert.Contains(t, w.Body.String(), `"success":false`)
}
