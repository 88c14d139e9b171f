package headerscmd

import (
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/validation"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the header command handlers produced by RegisterHeaderCommands.
type HandlerSet struct {
	Apply    *ApplyHeadersHandler
	Validate *ValidateCorpusHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	applyHandlerOpts    []commands.HandlerOption[ApplyHeadersCommand]
	validateHandlerOpts []commands.HandlerOption[ValidateCorpusCommand]
}

// WithApplyHandlerOptions forwards options to the ApplyHeadersHandler constructor.
func WithApplyHandlerOptions(opts ...commands.HandlerOption[ApplyHeadersCommand]) Option {
	return func(cfg *options) {
		cfg.applyHandlerOpts = append(cfg.applyHandlerOpts, opts...)
	}
}

// WithValidateHandlerOptions forwards options to the ValidateCorpusHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateCorpusCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// RegisterHeaderCommands builds header command handlers and registers them with
// the provided registry.
func RegisterHeaderCommands(reg CommandRegistry, service interfaces.HeaderService, schema *validation.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("headers command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "headers")

	applyHandler := NewApplyHeadersHandler(service, logger, gates, cfg.applyHandlerOpts...)
	validateHandler := NewValidateCorpusHandler(service, schema, logger, gates, cfg.validateHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(applyHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(validateHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Apply:    applyHandler,
		Validate: validateHandler,
	}, nil
}
