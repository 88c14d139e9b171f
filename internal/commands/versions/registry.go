package versionscmd

import (
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the version command handlers produced by RegisterVersionCommands.
type HandlerSet struct {
	Update *UpdateVersionsHandler
}

// RegisterVersionCommands builds version command handlers and registers them
// with the provided registry.
func RegisterVersionCommands(reg CommandRegistry, service interfaces.VersionService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...commands.HandlerOption[UpdateVersionsCommand]) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("versions command registration: service is nil")
	}

	logger := commands.CommandLogger(provider, "versions")
	updateHandler := NewUpdateVersionsHandler(service, logger, gates, opts...)

	if reg != nil {
		if err := reg.RegisterCommand(updateHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Update: updateHandler}, nil
}
