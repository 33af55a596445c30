package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexispparra/roots-sub000/internal/storage/memory"
)

func newTestAuth(t *testing.T) (*Service, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	return NewService(users, NewTokenIssuer("test-secret", time.Hour)), users
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestAuth(t)

	u, token, err := s.Register("Ana", "A@X.com", "supersecreta")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email, "email is normalized")
	assert.NotEmpty(t, token)

	t.Run("login with right password", func(t *testing.T) {
		logged, token, err := s.Login("a@x.com", "supersecreta")
		require.NoError(t, err)
		assert.Equal(t, u.ID, logged.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := s.Login("a@x.com", "equivocada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := s.Register("Otra Ana", "a@x.com", "otraclave123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, _, err := s.Register("Beto", "b@x.com", "corta")
		assert.Error(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("a@x.com", "Ana")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewTokenIssuer("otro-secreto", time.Hour)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := NewTokenIssuer("test-secret", -time.Minute)
		token, err := expired.Issue("a@x.com", "Ana")
		require.NoError(t, err)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestChangePassword(t *testing.T) {
	s, _ := newTestAuth(t)
	_, _, err := s.Register("Ana", "a@x.com", "supersecreta")
	require.NoError(t, err)

	require.Error(t, s.ChangePassword("a@x.com", "equivocada", "nuevaclave123"))
	require.NoError(t, s.ChangePassword("a@x.com", "supersecreta", "nuevaclave123"))

	_, _, err = s.Login("a@x.com", "nuevaclave123")
	require.NoError(t, err)
}

func TestPasswordReset(t *testing.T) {
	s, _ := newTestAuth(t)
	_, _, err := s.Register("Ana", "a@x.com", "supersecreta")
	require.NoError(t, err)

	token, err := s.RequestPasswordReset("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("unknown account looks the same", func(t *testing.T) {
		token, err := s.RequestPasswordReset("desconocida@x.com")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		err := s.ResetPassword("a@x.com", "token-falso", "nuevaclave123")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("valid token consumed once", func(t *testing.T) {
		require.NoError(t, s.ResetPassword("a@x.com", token, "nuevaclave123"))
		_, _, err := s.Login("a@x.com", "nuevaclave123")
		require.NoError(t, err)

		err = s.ResetPassword("a@x.com", token, "otraclave123")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestUpdateProfile(t *testing.T) {
	s, _ := newTestAuth(t)
	_, _, err := s.Register("Ana", "a@x.com", "supersecreta")
	require.NoError(t, err)

	u, err := s.UpdateProfile("a@x.com", "Ana María")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
}
