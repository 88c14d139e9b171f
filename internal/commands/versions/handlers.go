package versionscmd

import (
	"context"
	"errors"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const updateOperation = "versions.update"

// ErrVersionsFeatureDisabled is returned when the versions feature flag is disabled at runtime.
var ErrVersionsFeatureDisabled = errors.New("versions command: feature disabled")

var _ command.Commander[UpdateVersionsCommand] = (*UpdateVersionsHandler)(nil)

// FeatureGates exposes runtime feature toggles required by version command handlers.
type FeatureGates struct {
	VersionsEnabled func() bool
}

func (g FeatureGates) versionsEnabled() bool {
	if g.VersionsEnabled == nil {
		return true
	}
	return g.VersionsEnabled()
}

// UpdateVersionsHandler orchestrates version marker maintenance via the shared
// command handler foundation.
type UpdateVersionsHandler struct {
	inner *commands.Handler[UpdateVersionsCommand]
}

// NewUpdateVersionsHandler creates a handler bound to the supplied version service.
func NewUpdateVersionsHandler(service interfaces.VersionService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UpdateVersionsCommand]) *UpdateVersionsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg UpdateVersionsCommand) error {
		if !gates.versionsEnabled() {
			return ErrVersionsFeatureDisabled
		}

		result, err := service.UpdateDirectory(ctx, msg.Directory, interfaces.VersionUpdateOptions{
			DryRun: msg.DryRun,
			Stamp:  msg.Stamp,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"updated_count":    len(result.Updated),
			"markers_replaced": result.MarkersReplaced,
			"unknown_markers":  len(result.UnknownMarkers),
			"skipped_count":    result.Skipped,
			"error_count":      len(result.Errors),
			"dry_run":          msg.DryRun,
		}).Info("versions.command.update.completed")

		for _, marker := range result.UnknownMarkers {
			baseLogger.Warn("versions.command.unknown_marker", "marker", marker)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateVersionsCommand]{
		commands.WithLogger[UpdateVersionsCommand](baseLogger),
		commands.WithOperation[UpdateVersionsCommand](updateOperation),
		commands.WithMessageFields(func(msg UpdateVersionsCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.Stamp {
				fields["stamp"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateVersionsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateVersionsCommand].
func (h *UpdateVersionsHandler) Execute(ctx context.Context, msg UpdateVersionsCommand) error {
	return h.inner.Execute(ctx, msg)
}
