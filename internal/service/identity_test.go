package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

func setupIdentityService(t *testing.T) (*IdentityService, *CollectionService) {
	t.Helper()

	st := setupStore(t)
	collections := setupCollectionService(t, st, false)

	svc, err := NewIdentityService(st, collections, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return svc, collections
}

func TestNewIdentityService_GeneratesIdentity(t *testing.T) {
	svc, _ := setupIdentityService(t)

	ident := svc.Current()
	assert.True(t, strings.HasPrefix(ident.UserID, "user_"))
	assert.True(t, strings.HasPrefix(ident.DisplayName, "Pengguna_"))
}

func TestNewIdentityService_IdentityIsStable(t *testing.T) {
	st := setupStore(t)
	collections := setupCollectionService(t, st, false)

	first, err := NewIdentityService(st, collections, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	second, err := NewIdentityService(st, collections, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	assert.Equal(t, first.Current(), second.Current())
}

func TestSetDisplayName(t *testing.T) {
	svc, _ := setupIdentityService(t)

	ident, err := svc.SetDisplayName(context.Background(), "  Budi Santoso  ")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", ident.DisplayName)
	assert.Equal(t, "Budi Santoso", svc.Current().DisplayName)
}

func TestSetDisplayName_Validation(t *testing.T) {
	svc, _ := setupIdentityService(t)

	tests := []struct {
		name  string
		input string
	}{
		{"too short", "B"},
		{"only whitespace", "   "},
		{"too long", strings.Repeat("x", 51)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetDisplayName(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}

	// The stored name is untouched by failed updates.
	assert.True(t, strings.HasPrefix(svc.Current().DisplayName, "Pengguna_"))
}

func TestSetDisplayName_Propagates(t *testing.T) {
	svc, collections := setupIdentityService(t)
	ctx := context.Background()

	in := validInput()
	in.IsPublic = true
	_, err := collections.Add(ctx, svc.Current(), in)
	require.NoError(t, err)

	_, err = svc.SetDisplayName(ctx, "Budi")
	require.NoError(t, err)

	ident := svc.Current()
	books := collections.Load(ctx, ident)
	require.Len(t, books, 1)
	assert.Equal(t, "Budi", books[0].OwnerName)

	public := collections.store.GetPublicBooks()
	require.Len(t, public, 1)
	assert.Equal(t, "Budi", public[0].OwnerName)
}
