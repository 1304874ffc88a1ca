package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

func TestEnsureIdentity_FreshDatabase(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	candidate := domain.Identity{UserID: "user_1700000000000_abc123", DisplayName: "Pengguna_170000"}

	ident, err := s.EnsureIdentity(candidate)
	require.NoError(t, err)
	assert.Equal(t, candidate, ident)
}

func TestEnsureIdentity_Stable(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	first, err := s.EnsureIdentity(domain.Identity{UserID: "user_1_aaa", DisplayName: "Pengguna_1"})
	require.NoError(t, err)

	// A different candidate must not replace the stored identity.
	second, err := s.EnsureIdentity(domain.Identity{UserID: "user_2_bbb", DisplayName: "Pengguna_2"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureIdentity_HealsMissingDisplayName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.EnsureIdentity(domain.Identity{UserID: "user_1700000000000_abc", DisplayName: "Custom Name"})
	require.NoError(t, err)

	require.NoError(t, s.delete([]byte(keyDisplayName)))

	ident, err := s.EnsureIdentity(domain.Identity{UserID: "ignored", DisplayName: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "user_1700000000000_abc", ident.UserID)
	assert.Equal(t, "Pengguna_170000", ident.DisplayName)
}

func TestSetDisplayName(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.EnsureIdentity(domain.Identity{UserID: "user_1_aaa", DisplayName: "Pengguna_1"})
	require.NoError(t, err)

	require.NoError(t, s.SetDisplayName("Budi"))

	ident, err := s.EnsureIdentity(domain.Identity{})
	require.NoError(t, err)
	assert.Equal(t, "Budi", ident.DisplayName)
}
