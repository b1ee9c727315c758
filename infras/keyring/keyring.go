// Package keyring resolves the passport encryption key exactly once at
// startup. Resolution order, first success wins: a base64-encoded 256-bit
// key from configuration, a previously persisted local key blob, or a
// freshly generated key persisted with restricted permissions for reuse.
// A malformed configured key never aborts startup; it is reported and
// resolution falls through to the local blob.
package keyring

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"gostitut/config"
	"gostitut/shared/envelope"
)

const keyFileMode = 0o600

// Load resolves the 256-bit passport key per the chain above.
func Load(cfg *config.Config) ([]byte, error) {
	if cfg.Crypto.Key != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.Crypto.Key)
		if err == nil && len(key) == envelope.KeySize {
			log.Info().Msg("Passport key loaded from environment")

			return key, nil
		}

		log.Error().
			Err(err).
			Int("length", len(key)).
			Msg("Configured passport key is not a valid base64 256-bit key, falling back to local key blob")
	}

	return loadOrCreateFile(cfg.Crypto.KeyPath)
}

func loadOrCreateFile(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != envelope.KeySize {
			return nil, fmt.Errorf("key blob %s has invalid length %d", path, len(key))
		}

		log.Info().Str("path", path).Msg("Passport key loaded from local blob")

		return key, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key blob: %w", err)
	}

	key = make([]byte, envelope.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate passport key: %w", err)
	}

	if err := os.WriteFile(path, key, keyFileMode); err != nil {
		return nil, fmt.Errorf("failed to persist passport key: %w", err)
	}

	log.Warn().
		Str("path", path).
		Msg("No passport key configured, generated one and saved it locally. For production supply a base64 key via CRYPTO_KEY.")

	return key, nil
}
