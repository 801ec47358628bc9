// Package secrets implements authenticated encryption for stored ad-network
// credentials. Credentials are sealed with XChaCha20-Poly1305 under an
// application-managed symmetric key before they are written to the
// network_accounts table, and opened again only at fetch time.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidKey is returned when the master key is not a 32-byte hex string.
var ErrInvalidKey = errors.New("master key must be 64 hex characters (32 bytes)")

// ErrCiphertextTooShort is returned when a stored blob is shorter than the
// nonce prefix and cannot possibly be valid.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Box seals and opens credential blobs. The zero value is unusable; construct
// with NewBox. Safe for concurrent use.
type Box struct {
	key []byte
}

// NewBox parses a hex-encoded 32-byte master key.
func NewBox(hexKey string) (*Box, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return &Box{key: key}, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext. A fresh random
// 24-byte nonce is generated per call, so sealing the same plaintext twice
// yields different blobs.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal. Tampered or truncated blobs fail
// authentication and return an error.
func (b *Box) Open(blob []byte) ([]byte, error) {
	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, ErrCiphertextTooShort
	}
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return nil, err
	}
	nonce, ciphertext := blob[:chacha20poly1305.NonceSizeX], blob[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ciphertext, nil)
}

// GenerateKey returns a fresh random master key in hex form, suitable for
// MASTER_KEY. Used by deployment tooling and tests.
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
