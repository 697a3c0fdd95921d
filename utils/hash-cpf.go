package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/argon2"
)

// HashCpf derives a salted argon2id hash of the CPF credential and encodes
// it as "salt.hash" in base64. The plaintext is never stored.
func HashCpf(cpf string) (string, error) {
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	if err != nil {
		log.Println(err)
		return "", errors.New("unable to create salt")
	}

	hash := argon2.IDKey([]byte(cpf), salt, 1, 64*1024, 4, 32)

	saltBase64 := base64.StdEncoding.EncodeToString(salt)
	hashBase64 := base64.StdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s.%s", saltBase64, hashBase64), nil
}
