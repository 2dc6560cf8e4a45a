// Package profile bundles the synchronization engine with its HTTP transport.
package profile

import (
	"log/slog"

	"wordwatch/internal/profile/handler"
	"wordwatch/internal/profile/service"
)

// Service runs the counter synchronization protocol across server and user
// profiles.
type Service = service.Service

// Handler wires the profile routes to the service.
type Handler = handler.Handler

// NewService constructs the profile service with its two stores.
func NewService(servers service.ServerStore, users service.UserStore, opts ...service.Option) *Service {
	return service.New(servers, users, opts...)
}

// NewHandler constructs the HTTP handler for the profile routes.
func NewHandler(s *Service, logger *slog.Logger, opts ...handler.Option) *Handler {
	return handler.New(s, logger, opts...)
}
