package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-inference-service/internal/config"
)

func newIssuer(secret string, ttl time.Duration) *jwtIssuer {
	return NewJWTIssuer(&config.SessionConfig{Secret: secret, TTL: ttl}).(*jwtIssuer)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	iss := newIssuer("s3cret", time.Hour)
	id := uuid.New()

	token, err := iss.Issue(id)
	require.NoError(t, err)

	got, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	token, err := newIssuer("one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = newIssuer("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Expired(t *testing.T) {
	iss := newIssuer("s3cret", time.Minute)
	start := time.Now()
	iss.now = func() time.Time { return start }

	token, err := iss.Issue(uuid.New())
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Garbage(t *testing.T) {
	_, err := newIssuer("s3cret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
