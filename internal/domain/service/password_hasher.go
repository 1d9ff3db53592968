// Package service declares the technical services the registry depends on:
// password hashing, staff tokens, photo storage and event publishing.
package service

// PasswordHasher hashes staff passwords and enforces the password policy.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool

	// ValidatePasswordStrength returns the first policy rule the password breaks.
	ValidatePasswordStrength(password string) error
}
