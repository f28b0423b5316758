// Package services wires the per-session service registry.
package services

import (
	"log/slog"

	"selfservice/internal/services/handler"
	"selfservice/internal/services/service"
)

// Service exposes the registry operations.
type Service = service.Service

// Handler serves the registry pages.
type Handler = handler.Handler

// NewService constructs the registry service over a session-scoped store.
func NewService(registries service.RegistryStore, opts ...service.Option) *Service {
	return service.New(registries, opts...)
}

// NewHandler constructs the page handler for the registry.
func NewHandler(s *Service, logger *slog.Logger, opts ...handler.Option) (*Handler, error) {
	return handler.New(s, logger, opts...)
}

// WithSessionEnder lets the sign-out page clear the session cookie.
func WithSessionEnder(sessions handler.SessionEnder) handler.Option {
	return handler.WithSessionEnder(sessions)
}
