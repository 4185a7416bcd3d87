package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_EncodeDecode(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	token, err := codec.Encode(42, "amal@example.com", "Amal", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), session.UserID)
	assert.Equal(t, "amal@example.com", session.Email)
	assert.Equal(t, "Amal", session.Name)
	assert.Equal(t, RoleUser, session.Role)
	assert.False(t, session.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestCodec_DecodeRejectsWrongSecret(t *testing.T) {
	token, err := NewCodec("secret-a", time.Hour).Encode(1, "a@example.com", "A", RoleAdmin)
	require.NoError(t, err)

	_, err = NewCodec("secret-b", time.Hour).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DecodeRejectsTamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	token, err := codec.Encode(1, "a@example.com", "A", RoleUser)
	require.NoError(t, err)

	// Swap the payload segment for one from a token claiming admin.
	forged, err := codec.Encode(1, "a@example.com", "A", RoleAdmin)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DecodeRejectsExpired(t *testing.T) {
	codec := &Codec{secret: []byte("test-secret"), ttl: -time.Minute}
	token, err := codec.Encode(1, "a@example.com", "A", RoleUser)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DecodeRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestCodec_DecodeUnverifiedAcceptsForeignSignature(t *testing.T) {
	// The unverified path only checks structure and expiry, so a token
	// signed with a different secret still parses.
	token, err := NewCodec("other-secret", time.Hour).Encode(7, "b@example.com", "B", RoleAdmin)
	require.NoError(t, err)

	session, err := NewCodec("test-secret", time.Hour).DecodeUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), session.UserID)
	assert.True(t, session.IsAdmin())
}

func TestCodec_DecodeUnverifiedRejectsExpired(t *testing.T) {
	expired := &Codec{secret: []byte("test-secret"), ttl: -time.Minute}
	token, err := expired.Encode(7, "b@example.com", "B", RoleUser)
	require.NoError(t, err)

	_, err = NewCodec("test-secret", time.Hour).DecodeUnverified(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, NewCodec("s", 0).TTL())
	assert.Equal(t, time.Hour, NewCodec("s", time.Hour).TTL())
}
