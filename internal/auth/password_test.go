package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestPasswordService_ValidateStrength(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"Valid password", "correcth0rse", nil},
		{"Too short", "ab1", ErrPasswordTooShort},
		{"Too long", strings.Repeat("a1", 40), ErrPasswordTooLong},
		{"Letters only", "onlyletters", ErrPasswordTooWeak},
		{"Digits only", "123456789", ErrPasswordTooWeak},
		{"Exactly eight chars", "abcde123", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateStrength(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStrength() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordService_HashAndCompare(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("Hash() returned the plaintext password")
	}

	if err := svc.Compare(hash, "s3cret-pass"); err != nil {
		t.Errorf("Compare() with correct password error = %v", err)
	}
	if err := svc.Compare(hash, "wrong-pass1"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Compare() with wrong password error = %v, want %v", err, ErrPasswordMismatch)
	}
}

func TestPasswordService_HashRejectsWeakPasswords(t *testing.T) {
	svc := NewPasswordService()

	if _, err := svc.Hash("short1"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Hash() error = %v, want %v", err, ErrPasswordTooShort)
	}
}
