package linkscmd

import (
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the link command handlers produced by RegisterLinkCommands.
type HandlerSet struct {
	Check *CheckLinksHandler
}

// RegisterLinkCommands builds link command handlers and registers them with the
// provided registry. The HandlerSet is returned so callers can wire additional
// integrations (dispatcher, cron) as needed.
func RegisterLinkCommands(reg CommandRegistry, service interfaces.LinkCheckService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...commands.HandlerOption[CheckLinksCommand]) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("links command registration: service is nil")
	}

	logger := commands.CommandLogger(provider, "links")
	checkHandler := NewCheckLinksHandler(service, logger, gates, opts...)

	if reg != nil {
		if err := reg.RegisterCommand(checkHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{Check: checkHandler}, nil
}
