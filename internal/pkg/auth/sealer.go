// internal/pkg/auth/sealer.go
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrUnseal is returned when sealed data was tampered with or the secret changed
var ErrUnseal = errors.New("failed to unseal data")

// Sealer encrypts small blobs at rest with a key derived from a shared secret
type Sealer struct {
	key [32]byte
}

// NewSealer derives a secretbox key from secret
func NewSealer(secret string) (*Sealer, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("sealing secret must be at least 16 characters long")
	}
	return &Sealer{key: blake2b.Sum256([]byte(secret))}, nil
}

// Seal encrypts and authenticates plaintext; the nonce is prepended
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &s.key), nil
}

// Open reverses Seal
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrUnseal
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrUnseal
	}
	return plaintext, nil
}
