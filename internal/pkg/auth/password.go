package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt cost used when none is configured.
// Kept tunable so the hashing work factor can be lowered for tests and
// raised for production without touching callers.
const DefaultPasswordCost = 12

// PasswordHasher hashes and verifies user passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to DefaultPasswordCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes a plaintext password
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check verifies a plaintext password against a stored hash
func (h *PasswordHasher) Check(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
