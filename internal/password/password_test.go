package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)

	assert.True(t, Verify("s3cret", digest))
	assert.False(t, Verify("wrong", digest))
}

func TestHashSaltsEveryCall(t *testing.T) {
	first, err := Hash("same-plaintext")
	require.NoError(t, err)
	second, err := Hash("same-plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("same-plaintext", first))
	assert.True(t, Verify("same-plaintext", second))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-digest"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify("anything", tt.digest))
		})
	}
}
