package auth

import "golang.org/x/crypto/bcrypt"

// Raising bcryptCost invalidates no hashes, but existing ones stay at the
// old cost until the user next changes their password.
const bcryptCost = 6

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
