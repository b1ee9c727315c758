package di

import (
	"gostitut/config"
	"gostitut/infras/keyring"
	"gostitut/shared/envelope"
)

func provideCipher(cfg *config.Config) (*envelope.Cipher, error) {
	key, err := keyring.Load(cfg)
	if err != nil {
		return nil, err
	}

	return envelope.NewCipher(key)
}
