package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for every stored admin hash.
const BcryptCost = 12

// MaxPasswordBytes is bcrypt's input limit. Longer inputs are truncated on
// both hash and verify so they keep authenticating.
const MaxPasswordBytes = 72

// ErrEmptyPassword is returned when hashing an empty password
var ErrEmptyPassword = errors.New("password cannot be empty")

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}

// HashPassword hashes a password with a fresh random salt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	bytes, err := bcrypt.GenerateFromPassword(truncate(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches hashedPassword. It returns
// false for empty input and for anything that is not a bcrypt hash.
func CheckPassword(hashedPassword, password string) bool {
	if password == "" || !isBcryptHash(hashedPassword) {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), truncate(password))
	return err == nil
}

func isBcryptHash(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
