package token

import (
	"testing"
	"time"

	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := New("test_secret", time.Hour)

	tokenStr, err := svc.NewToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	uid, err := svc.UserId(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestExpiredToken(t *testing.T) {
	svc := New("test_secret", -time.Minute)

	tokenStr, err := svc.NewToken(1)
	require.NoError(t, err)

	_, err = svc.UserId(tokenStr)
	require.Error(t, err)
	assert.True(t, internal_errors.IsUnauthorized(err))
}

func TestWrongKey(t *testing.T) {
	tokenStr, err := New("key_one", time.Hour).NewToken(1)
	require.NoError(t, err)

	_, err = New("key_two", time.Hour).UserId(tokenStr)
	require.Error(t, err)
	assert.True(t, internal_errors.IsUnauthorized(err))
}

func TestGarbageToken(t *testing.T) {
	svc := New("test_secret", time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.UserId(tokenStr)
		assert.Error(t, err, "token %q should not verify", tokenStr)
	}
}
