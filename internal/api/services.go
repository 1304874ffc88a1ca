package api

import (
	"github.com/bookselfapp/bookself-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Identity   *service.IdentityService
	Collection *service.CollectionService
	Public     *service.PublicService
	Transfer   *service.TransferService
}
