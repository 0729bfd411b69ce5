package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost fixes the bcrypt work factor at 10 rounds.
const hashCost = bcrypt.DefaultCost

// ErrInvalidHashFormat signals a stored hash that bcrypt cannot decode.
var ErrInvalidHashFormat = errors.New("crypto: invalid password hash format")

// HashPassword hashes plaintext using bcrypt. Each call salts independently,
// so hashing the same password twice yields different outputs.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// mismatch is a false result, not an error; only a malformed hash errors.
func VerifyPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHashFormat
	}
}
