package util

import "golang.org/x/crypto/bcrypt"

// PasswordCost is lowered by tests to keep hashing fast.
var PasswordCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
