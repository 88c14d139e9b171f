package registrycmd

import (
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the registry command handlers produced by RegisterRegistryCommands.
type HandlerSet struct {
	Sync *SyncRegistryHandler
}

// RegisterRegistryCommands builds registry command handlers and registers them
// with the provided registry.
func RegisterRegistryCommands(reg CommandRegistry, corpus interfaces.CorpusService, registry interfaces.RegistryService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...commands.HandlerOption[SyncRegistryCommand]) (*HandlerSet, error) {
	if corpus == nil {
		return nil, errors.New("registry command registration: corpus service is nil")
	}
	if registry == nil {
		return nil, errors.New("registry command registration: registry service is nil")
	}

	logger := commands.CommandLogger(provider, "registry")
	syncHandler := NewSyncRegistryHandler(corpus, registry, logger, gates, opts...)

	if reg != nil {
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Sync: syncHandler}, nil
}
