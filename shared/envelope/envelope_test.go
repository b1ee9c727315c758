package envelope_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostitut/shared/envelope"
)

func newCipher(t *testing.T) *envelope.Cipher {
	t.Helper()

	key := make([]byte, envelope.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := envelope.NewCipher(key)
	require.NoError(t, err)

	return cipher
}

func TestNewCipher_RejectsBadKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33, 64} {
		_, err := envelope.NewCipher(make([]byte, size))
		assert.ErrorIs(t, err, envelope.ErrKeySize, "key size %d", size)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	cipher := newCipher(t)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "passport number", plaintext: []byte("4509 123456")},
		{name: "utf8", plaintext: []byte("паспорт 4509 №123456")},
		{name: "empty", plaintext: []byte{}},
		{name: "binary", plaintext: []byte{0x00, 0xff, 0x10, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonce, ciphertext, err := cipher.Encrypt(tt.plaintext)
			require.NoError(t, err)
			assert.Len(t, nonce, envelope.NonceSize)

			plaintext, err := cipher.Decrypt(nonce, ciphertext)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.plaintext, plaintext))
		})
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	cipher := newCipher(t)

	seen := map[string]bool{}
	for range 100 {
		nonce, _, err := cipher.Encrypt([]byte("same plaintext"))
		require.NoError(t, err)
		assert.False(t, seen[string(nonce)], "nonce repeated")
		seen[string(nonce)] = true
	}
}

func TestDecrypt_FailsClosedOnTamper(t *testing.T) {
	cipher := newCipher(t)

	nonce, ciphertext, err := cipher.Encrypt([]byte("4509 123456"))
	require.NoError(t, err)

	// Every single-byte flip of the ciphertext must be rejected.
	for i := range ciphertext {
		tampered := bytes.Clone(ciphertext)
		tampered[i] ^= 0x01

		plaintext, err := cipher.Decrypt(nonce, tampered)
		assert.ErrorIs(t, err, envelope.ErrAuthentication, "byte %d", i)
		assert.Nil(t, plaintext)
	}

	// A flipped nonce byte is just as fatal.
	badNonce := bytes.Clone(nonce)
	badNonce[0] ^= 0x01
	_, err = cipher.Decrypt(badNonce, ciphertext)
	assert.ErrorIs(t, err, envelope.ErrAuthentication)
}

func TestDecrypt_MalformedInput(t *testing.T) {
	cipher := newCipher(t)

	tests := []struct {
		name       string
		nonce      []byte
		ciphertext []byte
	}{
		{name: "nil nonce", nonce: nil, ciphertext: []byte("junk")},
		{name: "short nonce", nonce: make([]byte, 8), ciphertext: []byte("junk")},
		{name: "empty ciphertext", nonce: make([]byte, envelope.NonceSize), ciphertext: nil},
		{name: "garbage ciphertext", nonce: make([]byte, envelope.NonceSize), ciphertext: []byte("not a valid sealed value")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cipher.Decrypt(tt.nonce, tt.ciphertext)
			assert.ErrorIs(t, err, envelope.ErrAuthentication)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	nonce, ciphertext, err := newCipher(t).Encrypt([]byte("4509 123456"))
	require.NoError(t, err)

	_, err = newCipher(t).Decrypt(nonce, ciphertext)
	assert.ErrorIs(t, err, envelope.ErrAuthentication)
}
