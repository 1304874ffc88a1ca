package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookselfapp/bookself-server/internal/config"
	"github.com/bookselfapp/bookself-server/internal/logger"
	"github.com/bookselfapp/bookself-server/internal/service"
	"github.com/bookselfapp/bookself-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCollectionService provides the personal collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.BadgerStore, indexHandle.Index, validator, log.Logger, cfg.Demo.Enabled), nil
}

// ProvideIdentityService provides the identity service, generating and
// persisting the server identity on first run.
func ProvideIdentityService(i do.Injector) (*service.IdentityService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	collections := do.MustInvoke[*service.CollectionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc, err := service.NewIdentityService(storeHandle.BadgerStore, collections, log.Logger)
	if err != nil {
		return nil, err
	}

	ident := svc.Current()
	log.Info("Identity ready", "user_id", ident.UserID, "display_name", ident.DisplayName)

	return svc, nil
}

// ProvidePublicService provides the shared listing service and warms the
// search index from the stored projection.
func ProvidePublicService(i do.Injector) (*service.PublicService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewPublicService(storeHandle.BadgerStore, indexHandle.Index, log.Logger)

	// The index is memory-only; rebuild it from persisted data at startup.
	if err := svc.RebuildIndex(); err != nil {
		log.Warn("Failed to warm search index", "error", err)
	}

	return svc, nil
}

// ProvideTransferService provides the export/import service.
func ProvideTransferService(i do.Injector) (*service.TransferService, error) {
	collections := do.MustInvoke[*service.CollectionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTransferService(collections, log.Logger), nil
}
