package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerIdentityRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getIdentity",
		Method:      http.MethodGet,
		Path:        "/api/v1/identity",
		Summary:     "Get identity",
		Description: "Returns the pseudonymous identity this server is operating under",
		Tags:        []string{"Identity"},
	}, s.handleGetIdentity)

	huma.Register(s.api, huma.Operation{
		OperationID: "setDisplayName",
		Method:      http.MethodPut,
		Path:        "/api/v1/identity",
		Summary:     "Set display name",
		Description: "Updates the display name and propagates it to all owned books",
		Tags:        []string{"Identity"},
	}, s.handleSetDisplayName)
}

// IdentityResponse contains identity data in API responses.
type IdentityResponse struct {
	UserID      string `json:"userId" doc:"Generated pseudonymous user ID"`
	DisplayName string `json:"displayName" doc:"User-editable display name"`
}

// IdentityOutput wraps the identity response for Huma.
type IdentityOutput struct {
	Body IdentityResponse
}

// SetDisplayNameRequest is the request body for updating the display name.
type SetDisplayNameRequest struct {
	DisplayName string `json:"displayName" doc:"New display name, 2-50 characters after trimming"`
}

// SetDisplayNameInput wraps the display name request for Huma.
type SetDisplayNameInput struct {
	Body SetDisplayNameRequest
}

func (s *Server) handleGetIdentity(_ context.Context, _ *struct{}) (*IdentityOutput, error) {
	ident := s.services.Identity.Current()
	return &IdentityOutput{Body: IdentityResponse{
		UserID:      ident.UserID,
		DisplayName: ident.DisplayName,
	}}, nil
}

func (s *Server) handleSetDisplayName(ctx context.Context, input *SetDisplayNameInput) (*IdentityOutput, error) {
	ident, err := s.services.Identity.SetDisplayName(ctx, input.Body.DisplayName)
	if err != nil {
		return nil, err
	}

	return &IdentityOutput{Body: IdentityResponse{
		UserID:      ident.UserID,
		DisplayName: ident.DisplayName,
	}}, nil
}
