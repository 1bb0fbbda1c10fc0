package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/pkg/apperrors"
)

// TokenPurpose scopes a code token to exactly one workflow. A token minted
// for one purpose is signed with that purpose's secret and carries the
// purpose as a claim, so it can never be accepted by the other workflow.
type TokenPurpose string

const (
	// PurposeVerify scopes a token to account activation
	PurposeVerify TokenPurpose = "verify"
	// PurposeReset scopes a token to password reset
	PurposeReset TokenPurpose = "reset"
)

// DefaultCodeLength is the length of generated one-time codes
const DefaultCodeLength = 4

// TokenConfig defines signing secrets and lifetimes for all token kinds
type TokenConfig struct {
	AccessSecret string
	VerifySecret string
	ResetSecret  string
	AccessTTL    time.Duration
	VerifyTTL    time.Duration
	ResetTTL     time.Duration
	Issuer       string
	// CodeCost is the bcrypt cost for one-time code hashes. The code hash
	// travels inside the token, so it must be a salted slow hash.
	CodeCost int
}

// TokenService issues and verifies signed tokens
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new TokenService
func NewTokenService(config TokenConfig) *TokenService {
	if config.CodeCost < bcrypt.MinCost || config.CodeCost > bcrypt.MaxCost {
		config.CodeCost = DefaultPasswordCost
	}
	return &TokenService{config: config}
}

// CodeClaims is the payload of a verification or reset token. The plaintext
// one-time code is never embedded, only its bcrypt hash.
type CodeClaims struct {
	Email        string `json:"email"`
	CodeHash     string `json:"code"`
	TokenVersion int    `json:"tokenVersion"`
	Purpose      string `json:"purpose"`
	jwt.RegisteredClaims
}

// AccessClaims is the payload of a login access token
type AccessClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateCode produces a fixed-length random numeric code together with its
// bcrypt hash. The plaintext code goes out-of-band (email); the hash goes
// into the signed token.
func (s *TokenService) GenerateCode(length int) (code string, codeHash string, err error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", "", fmt.Errorf("failed to generate random code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	code = string(digits)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(code), s.config.CodeCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash code: %w", err)
	}

	return code, string(hashBytes), nil
}

// CheckCode compares a submitted plaintext code against the hash carried by
// a verified token.
func (s *TokenService) CheckCode(code, codeHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(code)); err != nil {
		return apperrors.ErrCodeMismatch
	}
	return nil
}

// IssueCodeToken mints a purpose-scoped token carrying the email, the code
// hash and the user's current token version. Expiry is absolute from now,
// per the purpose's TTL.
func (s *TokenService) IssueCodeToken(purpose TokenPurpose, email, codeHash string, tokenVersion int) (string, error) {
	secret, ttl, err := s.purposeParams(purpose)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &CodeClaims{
		Email:        email,
		CodeHash:     codeHash,
		TokenVersion: tokenVersion,
		Purpose:      string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   email,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", purpose, err)
	}
	return signed, nil
}

// VerifyCodeToken checks signature, expiry and purpose in a single call.
// Every failure collapses to ErrTokenInvalid so the caller cannot leak which
// check failed; the concrete cause stays available via errors.Unwrap for
// server-side logging.
func (s *TokenService) VerifyCodeToken(tokenString string, purpose TokenPurpose) (*CodeClaims, error) {
	secret, _, err := s.purposeParams(purpose)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &CodeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	claims, ok := token.Claims.(*CodeClaims)
	if !ok || !token.Valid || claims.Purpose != string(purpose) {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	return claims, nil
}

// IssueAccessToken mints a long-lived login token for a user
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates a login token and returns its claims
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessSecret), nil
	})
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid || claims.UserID <= 0 || claims.Email == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "invalid or expired token")
	}

	return claims, nil
}

// TTL returns the configured lifetime for a token kind; cookie maxAge must
// match it.
func (s *TokenService) TTL(purpose TokenPurpose) time.Duration {
	_, ttl, err := s.purposeParams(purpose)
	if err != nil {
		return 0
	}
	return ttl
}

// AccessTTL returns the configured access token lifetime
func (s *TokenService) AccessTTL() time.Duration {
	return s.config.AccessTTL
}

func (s *TokenService) purposeParams(purpose TokenPurpose) (secret string, ttl time.Duration, err error) {
	switch purpose {
	case PurposeVerify:
		return s.config.VerifySecret, s.config.VerifyTTL, nil
	case PurposeReset:
		return s.config.ResetSecret, s.config.ResetTTL, nil
	default:
		return "", 0, errors.New("unknown token purpose")
	}
}
