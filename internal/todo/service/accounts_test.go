package service

import (
	"testing"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	t.Run("stores a fresh account", func(t *testing.T) {
		require.NoError(t, svc.Register("alice", "pw1"))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		err := svc.Register("alice", "other")
		require.Error(t, err)
		require.True(t, domain.IsKind(err, domain.KindConflict))
	})

	t.Run("duplicate password conflicts too", func(t *testing.T) {
		err := svc.Register("bob", "pw1")
		require.Error(t, err)
		require.True(t, domain.IsKind(err, domain.KindConflict))
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	require.NoError(t, svc.Register("alice", "pw1"))

	t.Run("exact credential match", func(t *testing.T) {
		u, err := svc.Authenticate("alice", "pw1")
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
	})

	t.Run("wrong password is not found", func(t *testing.T) {
		_, err := svc.Authenticate("alice", "nope")
		require.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		_, err := svc.Authenticate("mallory", "pw1")
		require.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
