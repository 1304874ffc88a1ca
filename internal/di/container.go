// Package di provides dependency injection configuration for the BookSelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookselfapp/bookself-server/internal/config"
	"github.com/bookselfapp/bookself-server/internal/di/providers"
	"github.com/bookselfapp/bookself-server/internal/logger"
	"github.com/bookselfapp/bookself-server/internal/service"
	"github.com/bookselfapp/bookself-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage and search
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideIdentityService)
	do.Provide(injector, providers.ProvidePublicService)
	do.Provide(injector, providers.ProvideTransferService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.IdentityService](injector)
	_ = do.MustInvoke[*service.PublicService](injector)
	_ = do.MustInvoke[*service.TransferService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
