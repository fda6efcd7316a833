package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the random PBKDF2 salt prefixed to sealed output.
	SaltSize = 16

	// NonceSize is the secretbox nonce length.
	NonceSize = 24

	// KeySize is the derived key length.
	KeySize = 32

	// KDFIterations is the PBKDF2-HMAC-SHA256 work factor.
	KDFIterations = 100_000
)

// DeriveKey stretches password into a secretbox key.
func DeriveKey(password string, salt []byte) *[KeySize]byte {
	derived := pbkdf2.Key([]byte(password), salt, KDFIterations, KeySize, sha256.New)
	var key [KeySize]byte
	copy(key[:], derived)
	return &key
}

// NewSalt returns SaltSize bytes from crypto/rand.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// SealWithPassword encrypts plaintext under a key derived from password.
// The output layout is salt || nonce || secretbox, and the salt is also
// returned on its own so callers can record it.
func SealWithPassword(plaintext []byte, password string) (sealed []byte, salt []byte, err error) {
	if password == "" {
		return nil, nil, fmt.Errorf("empty password")
	}

	salt, err = NewSalt()
	if err != nil {
		return nil, nil, err
	}
	key := DeriveKey(password, salt)

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, SaltSize+NonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)
	return out, salt, nil
}

// OpenWithPassword reverses SealWithPassword.
func OpenWithPassword(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < SaltSize+NonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(sealed))
	}

	salt := sealed[:SaltSize]
	var nonce [NonceSize]byte
	copy(nonce[:], sealed[SaltSize:SaltSize+NonceSize])

	key := DeriveKey(password, salt)
	plaintext, ok := secretbox.Open(nil, sealed[SaltSize+NonceSize:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("failed to decrypt ciphertext with secretbox")
	}
	return plaintext, nil
}
