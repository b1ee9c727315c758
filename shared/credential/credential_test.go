package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gostitut/shared/credential"
)

func TestHash_KnownVector(t *testing.T) {
	// sha256("admin"), matching the seeded default administrator row.
	assert.Equal(t,
		"8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918",
		credential.Hash("admin"))
}

func TestVerify(t *testing.T) {
	stored := credential.Hash("s3cret")

	assert.NoError(t, credential.Verify("s3cret", stored))
	assert.ErrorIs(t, credential.Verify("wrong", stored), credential.ErrInvalidCredentials)
	assert.ErrorIs(t, credential.Verify("", stored), credential.ErrInvalidCredentials)
	assert.ErrorIs(t, credential.Verify("s3cret", ""), credential.ErrInvalidCredentials)
}
