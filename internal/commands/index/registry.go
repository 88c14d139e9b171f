package indexcmd

import (
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the index command handlers produced by RegisterIndexCommands.
type HandlerSet struct {
	Build  *BuildIndexHandler
	Verify *VerifyIndexHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	buildHandlerOpts  []commands.HandlerOption[BuildIndexCommand]
	verifyHandlerOpts []commands.HandlerOption[VerifyIndexCommand]
}

// WithBuildHandlerOptions forwards options to the BuildIndexHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildIndexCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// WithVerifyHandlerOptions forwards options to the VerifyIndexHandler constructor.
func WithVerifyHandlerOptions(opts ...commands.HandlerOption[VerifyIndexCommand]) Option {
	return func(cfg *options) {
		cfg.verifyHandlerOpts = append(cfg.verifyHandlerOpts, opts...)
	}
}

// RegisterIndexCommands builds index command handlers and registers them with
// the provided registry.
func RegisterIndexCommands(reg CommandRegistry, service interfaces.IndexService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("index command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "index")

	buildHandler := NewBuildIndexHandler(service, logger, gates, cfg.buildHandlerOpts...)
	verifyHandler := NewVerifyIndexHandler(service, logger, gates, cfg.verifyHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(verifyHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Build:  buildHandler,
		Verify: verifyHandler,
	}, nil
}
