package registrycmd

import (
	"context"
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const syncOperation = "registry.sync"

// ErrRegistryFeatureDisabled is returned when the registry feature flag is disabled at runtime.
var ErrRegistryFeatureDisabled = errors.New("registry command: feature disabled")

var _ command.Commander[SyncRegistryCommand] = (*SyncRegistryHandler)(nil)

// FeatureGates exposes runtime feature toggles required by registry command handlers.
type FeatureGates struct {
	RegistryEnabled func() bool
}

func (g FeatureGates) registryEnabled() bool {
	if g.RegistryEnabled == nil {
		return true
	}
	return g.RegistryEnabled()
}

// SyncRegistryHandler orchestrates registry reconciliation via the shared
// command handler foundation.
type SyncRegistryHandler struct {
	inner *commands.Handler[SyncRegistryCommand]
}

// NewSyncRegistryHandler creates a handler bound to the corpus and registry services.
func NewSyncRegistryHandler(corpus interfaces.CorpusService, registry interfaces.RegistryService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncRegistryCommand]) *SyncRegistryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncRegistryCommand) error {
		if !gates.registryEnabled() {
			return ErrRegistryFeatureDisabled
		}

		docs, err := corpus.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{})
		if err != nil {
			return err
		}

		result, err := registry.Sync(ctx, docs, interfaces.RegistrySyncOptions{
			DeleteOrphaned: msg.DeleteOrphaned,
			DryRun:         msg.DryRun,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"created_count":   result.Created,
			"updated_count":   result.Updated,
			"deleted_count":   result.Deleted,
			"skipped_count":   result.Skipped,
			"error_count":     len(result.Errors),
			"delete_orphaned": msg.DeleteOrphaned,
			"dry_run":         msg.DryRun,
		}).Info("registry.command.sync.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncRegistryCommand]{
		commands.WithLogger[SyncRegistryCommand](baseLogger),
		commands.WithOperation[SyncRegistryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncRegistryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncRegistryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncRegistryCommand].
func (h *SyncRegistryHandler) Execute(ctx context.Context, msg SyncRegistryCommand) error {
	return h.inner.Execute(ctx, msg)
}
