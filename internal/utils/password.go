package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash suitable for the users table.
// bcrypt truncates input at 72 bytes; signup validation keeps
// passwords well under that.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports nil when password matches the stored hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
