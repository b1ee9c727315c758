// Package envelope provides authenticated encryption for the guest passport
// field. Values are stored as a (nonce, ciphertext) pair produced by
// AES-256-GCM under a key resolved once at startup by infras/keyring.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the required key length in bytes (256 bits).
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes (96 bits).
	NonceSize = 12
)

var (
	// ErrAuthentication is returned when decryption fails for any reason:
	// tag mismatch, truncated input, or a wrong key. No partially decrypted
	// data is ever returned alongside it.
	ErrAuthentication = errors.New("envelope: message authentication failed")

	ErrKeySize = errors.New("envelope: key must be 32 bytes")
)

// Cipher seals and opens passport values. Safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random 96-bit nonce. Nonces never
// repeat under one key, so the pair is safe to persist together.
func (c *Cipher) Encrypt(plaintext []byte) (nonce, ciphertext []byte, err error) {
	nonce = make([]byte, NonceSize)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = c.aead.Seal(nil, nonce, plaintext, nil)

	return nonce, ciphertext, nil
}

// Decrypt opens a (nonce, ciphertext) pair. It fails closed: any malformed
// input or integrity-tag mismatch yields ErrAuthentication.
func (c *Cipher) Decrypt(nonce, ciphertext []byte) ([]byte, error) {
	if len(nonce) != NonceSize || len(ciphertext) == 0 {
		return nil, ErrAuthentication
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
