package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")
	ErrPasswordTooWeak  = errors.New("password must contain a letter and a digit")
	ErrPasswordMismatch = errors.New("password does not match")
)

// bcrypt truncates input beyond 72 bytes, so longer passwords are rejected
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// PasswordService handles password hashing and verification
// #IMPLEMENTATION_DECISION: bcrypt with default cost; tuning happens via redeploy, not config
type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
	ValidateStrength(password string) error
}

type passwordService struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() PasswordService {
	return &passwordService{cost: bcrypt.DefaultCost}
}

// Hash hashes a password with bcrypt
func (s *passwordService) Hash(password string) (string, error) {
	if err := s.ValidateStrength(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a password against its stored hash
func (s *passwordService) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateStrength enforces the minimum password policy
// #BUSINESS_RULE: At least 8 characters with one letter and one digit
func (s *passwordService) ValidateStrength(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}
