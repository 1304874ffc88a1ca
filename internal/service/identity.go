package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/errors"
	"github.com/bookselfapp/bookself-server/internal/id"
	"github.com/bookselfapp/bookself-server/internal/store"
)

// Display name length bounds, matching what clients have always enforced.
const (
	minDisplayName = 2
	maxDisplayName = 50
)

// IdentityService manages the pseudonymous local identity.
type IdentityService struct {
	store       store.Store
	collections *CollectionService
	logger      *slog.Logger

	mu    sync.RWMutex
	ident domain.Identity
}

// NewIdentityService resolves the stored identity, generating one on first
// run, and returns a service bound to it.
func NewIdentityService(st store.Store, collections *CollectionService, logger *slog.Logger) (*IdentityService, error) {
	userID := id.NewUserID()
	candidate := domain.Identity{
		UserID:      userID,
		DisplayName: domain.DefaultDisplayName(userID),
	}

	ident, err := st.EnsureIdentity(candidate)
	if err != nil {
		return nil, err
	}

	logger.Info("identity resolved", "user_id", ident.UserID, "display_name", ident.DisplayName)

	return &IdentityService{
		store:       st,
		collections: collections,
		logger:      logger,
		ident:       ident,
	}, nil
}

// Current returns the active identity.
func (s *IdentityService) Current() domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident
}

// SetDisplayName validates and persists a new display name, then propagates
// it into the collection and the public listing.
func (s *IdentityService) SetDisplayName(ctx context.Context, name string) (domain.Identity, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minDisplayName || len(trimmed) > maxDisplayName {
		return domain.Identity{}, errors.Validationf(
			"display name must be between %d and %d characters", minDisplayName, maxDisplayName)
	}

	if err := s.store.SetDisplayName(trimmed); err != nil {
		return domain.Identity{}, errors.Wrap(err, errors.CodeStorage, "failed to save display name")
	}

	s.mu.Lock()
	s.ident.DisplayName = trimmed
	ident := s.ident
	s.mu.Unlock()

	if err := s.collections.RenameOwner(ctx, ident); err != nil {
		s.logger.Warn("failed to propagate display name into collection",
			"user_id", ident.UserID, "error", err)
	}

	s.logger.Info("display name changed", "user_id", ident.UserID, "display_name", trimmed)
	return ident, nil
}
