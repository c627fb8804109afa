package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Costo fijo de bcrypt; el salt aleatorio va embebido en cada digest.
const bcryptCost = 10

// HashPassword genera un hash bcrypt irreversible del password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara en tiempo constante. Un mismatch devuelve
// (false, nil); solo un digest malformado produce error.
func CheckPassword(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
