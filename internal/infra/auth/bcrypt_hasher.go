package auth

import (
	"strings"
	"unicode"

	"cadastre/config"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/service"
	"cadastre/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var forbiddenPasswordWords = []string{"password", "admin", "qwerty", "letmein", "welcome"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher using bcrypt.DefaultCost.
func NewBcryptHasher() service.PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost factor.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// NewPasswordHasher reads the cost factor from the auth configuration.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil || cfg.Auth.BcryptCost == 0 {
		return NewBcryptHasher()
	}

	return NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

// Hash checks the password strength and then generates a salted bcrypt hash.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the staff password policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	switch {
	case len([]rune(password)) < minPasswordLength:
		return domainerrors.ErrPasswordTooShort
	case !h.hasLowercase(password):
		return domainerrors.ErrPasswordNoLowercase
	case !h.hasUppercase(password):
		return domainerrors.ErrPasswordNoUppercase
	case !h.hasNumbers(password):
		return domainerrors.ErrPasswordNoNumber
	case !h.hasSpecialChars(password):
		return domainerrors.ErrPasswordNoSpecialChar
	case h.containsForbiddenWords(password, forbiddenPasswordWords):
		return domainerrors.ErrPasswordForbiddenWords
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}

	return false
}
