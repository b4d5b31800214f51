package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret-value", 45*time.Minute)

	credential, err := codec.Issue(7, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, credential)

	username, err := codec.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestCodecRejectsExpired(t *testing.T) {
	codec := NewCodec("test-secret-value", -time.Minute)

	credential, err := codec.Issue(7, "alice")
	require.NoError(t, err)

	_, err = codec.Verify(credential)
	assert.Error(t, err)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-one-value", time.Hour)
	verifier := NewCodec("secret-two-value", time.Hour)

	credential, err := issuer.Issue(7, "alice")
	require.NoError(t, err)

	_, err = verifier.Verify(credential)
	assert.Error(t, err)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret-value", time.Hour)

	_, err := codec.Verify("not.a.token")
	assert.Error(t, err)

	_, err = codec.Verify("")
	assert.Error(t, err)
}

func TestCodecFreshTokensDiffer(t *testing.T) {
	codec := NewCodec("test-secret-value", time.Hour)

	first, err := codec.Issue(7, "alice")
	require.NoError(t, err)
	second, err := codec.Issue(7, "alice")
	require.NoError(t, err)

	// Each login gets its own jti.
	assert.NotEqual(t, first, second)
}
