package utils

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword encodes a password with argon2id using the library
// defaults. The encoded form carries its own salt and parameters.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
