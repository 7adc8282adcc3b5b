package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisguard/server/internal/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &domain.User{
		ID:   uuid.New(),
		Name: "Ravi Kumar",
		Role: "Admin", // mixed case in storage
	}

	token, err := issuer.Issue(user, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.ID)
	assert.Equal(t, "Ravi Kumar", p.Name)
	assert.Equal(t, domain.RoleAdmin, p.Role)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	user := &domain.User{ID: uuid.New(), Role: "inspector"}

	token, err := issuer.Issue(user, time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: uuid.New(), Role: "inspector"}, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	_, err := issuer.Verify("not.a.token")
	require.Error(t, err)
}
