package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword is returned when the submitted passphrase does not match.
var ErrWrongPassword = errors.New("wrong password")

// HashPassword returns a bcrypt hash for the provided plaintext.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func CheckPassword(hash, password string) error {
	// timing-safe comparison inside bcrypt
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Passphrase holds the admin secret as a bcrypt hash so the plaintext is not
// kept in memory after startup.
type Passphrase struct {
	hash string
}

// NewPassphrase hashes plaintext. Use NewPassphraseFromHash when the
// operator supplies a precomputed hash.
func NewPassphrase(plaintext string) (*Passphrase, error) {
	hash, err := HashPassword(plaintext)
	if err != nil {
		return nil, err
	}
	return &Passphrase{hash: hash}, nil
}

// NewPassphraseFromHash wraps an existing bcrypt hash after checking its format.
func NewPassphraseFromHash(hash string) (*Passphrase, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, err
	}
	return &Passphrase{hash: hash}, nil
}

// Check returns ErrWrongPassword unless password matches.
func (p *Passphrase) Check(password string) error {
	if err := CheckPassword(p.hash, password); err != nil {
		return ErrWrongPassword
	}
	return nil
}
