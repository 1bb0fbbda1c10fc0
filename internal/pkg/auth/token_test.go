package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

func newTestTokenService(verifyTTL, resetTTL time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret: "test-access-secret",
		VerifySecret: "test-verify-secret",
		ResetSecret:  "test-reset-secret",
		AccessTTL:    time.Hour,
		VerifyTTL:    verifyTTL,
		ResetTTL:     resetTTL,
		Issuer:       "kin.test",
		CodeCost:     bcrypt.MinCost,
	})
}

func TestGenerateCode(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	code, codeHash, err := svc.GenerateCode(DefaultCodeLength)
	require.NoError(t, err)
	require.Len(t, code, DefaultCodeLength)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "code must be numeric, got %q", code)
	}

	assert.NoError(t, svc.CheckCode(code, codeHash))
	assert.ErrorIs(t, svc.CheckCode("0000", codeHash), apperrors.ErrCodeMismatch)
}

func TestGenerateCodeDefaultsLength(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	code, _, err := svc.GenerateCode(0)
	require.NoError(t, err)
	assert.Len(t, code, DefaultCodeLength)
}

func TestCodeTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	_, codeHash, err := svc.GenerateCode(DefaultCodeLength)
	require.NoError(t, err)

	token, err := svc.IssueCodeToken(PurposeVerify, "user@kin.org", codeHash, 3)
	require.NoError(t, err)

	claims, err := svc.VerifyCodeToken(token, PurposeVerify)
	require.NoError(t, err)
	assert.Equal(t, "user@kin.org", claims.Email)
	assert.Equal(t, codeHash, claims.CodeHash)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, string(PurposeVerify), claims.Purpose)
}

func TestCodeTokenPurposeIsolation(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	verifyToken, err := svc.IssueCodeToken(PurposeVerify, "user@kin.org", "hash", 0)
	require.NoError(t, err)
	resetToken, err := svc.IssueCodeToken(PurposeReset, "user@kin.org", "hash", 0)
	require.NoError(t, err)

	// A token minted for one workflow must never verify in the other
	_, err = svc.VerifyCodeToken(verifyToken, PurposeReset)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	_, err = svc.VerifyCodeToken(resetToken, PurposeVerify)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestCodeTokenExpiry(t *testing.T) {
	svc := newTestTokenService(-time.Minute, 5*time.Minute)

	token, err := svc.IssueCodeToken(PurposeVerify, "user@kin.org", "hash", 0)
	require.NoError(t, err)

	_, err = svc.VerifyCodeToken(token, PurposeVerify)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestCodeTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)
	other := NewTokenService(TokenConfig{
		AccessSecret: "other-access",
		VerifySecret: "other-verify",
		ResetSecret:  "other-reset",
		VerifyTTL:    5 * time.Minute,
		ResetTTL:     5 * time.Minute,
		CodeCost:     bcrypt.MinCost,
	})

	token, err := other.IssueCodeToken(PurposeVerify, "user@kin.org", "hash", 0)
	require.NoError(t, err)

	_, err = svc.VerifyCodeToken(token, PurposeVerify)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestVerifyCodeTokenGarbage(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	_, err := svc.VerifyCodeToken("not-a-token", PurposeVerify)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	user := &models.User{
		ID:    42,
		Email: "admin@kin.org",
		Role:  models.RoleAdmin,
	}

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin@kin.org", claims.Email)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestAccessTokenRejectsCodeToken(t *testing.T) {
	svc := newTestTokenService(5*time.Minute, 5*time.Minute)

	codeToken, err := svc.IssueCodeToken(PurposeVerify, "user@kin.org", "hash", 0)
	require.NoError(t, err)

	// Signed with the verify secret, not the access secret
	_, err = svc.VerifyAccessToken(codeToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTTL(t *testing.T) {
	svc := newTestTokenService(3*time.Minute, 7*time.Minute)

	assert.Equal(t, 3*time.Minute, svc.TTL(PurposeVerify))
	assert.Equal(t, 7*time.Minute, svc.TTL(PurposeReset))
	assert.Equal(t, time.Duration(0), svc.TTL(TokenPurpose("bogus")))
	assert.Equal(t, time.Hour, svc.AccessTTL())
}
