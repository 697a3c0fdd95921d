package utils

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// CompareCpf re-derives the hash with the stored salt and compares in
// constant time. A nil return means the credential matches.
func CompareCpf(cpf, stored string) error {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return errors.New("invalid hash format")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return errors.New("invalid hash format")
	}
	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return errors.New("invalid hash format")
	}

	derived := argon2.IDKey([]byte(cpf), salt, 1, 64*1024, 4, 32)

	if len(hash) != len(derived) || subtle.ConstantTimeCompare(hash, derived) != 1 {
		return errors.New("incorrect credential")
	}
	return nil
}
