package indexcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	buildOperation  = "index.build"
	verifyOperation = "index.verify"
)

var (
	// ErrIndexFeatureDisabled is returned when the index feature flag is disabled at runtime.
	ErrIndexFeatureDisabled = errors.New("index command: feature disabled")
	// ErrDocumentsUnindexed is returned when verification finds documents missing from the index.
	ErrDocumentsUnindexed = errors.New("index command: documents missing from index")
)

var (
	_ command.Commander[BuildIndexCommand]  = (*BuildIndexHandler)(nil)
	_ command.Commander[VerifyIndexCommand] = (*VerifyIndexHandler)(nil)
)

// FeatureGates exposes runtime feature toggles required by index command handlers.
type FeatureGates struct {
	IndexEnabled func() bool
}

func (g FeatureGates) indexEnabled() bool {
	if g.IndexEnabled == nil {
		return true
	}
	return g.IndexEnabled()
}

// BuildIndexHandler orchestrates index generation via the shared command handler foundation.
type BuildIndexHandler struct {
	inner *commands.Handler[BuildIndexCommand]
}

// NewBuildIndexHandler creates a handler bound to the supplied index service.
func NewBuildIndexHandler(service interfaces.IndexService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildIndexCommand]) *BuildIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildIndexCommand) error {
		if !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		result, err := service.Build(ctx, interfaces.IndexBuildOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"entries": result.Entries,
			"changed": result.Changed,
			"dry_run": msg.DryRun,
		}).Info("index.command.build.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildIndexCommand]{
		commands.WithLogger[BuildIndexCommand](baseLogger),
		commands.WithOperation[BuildIndexCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildIndexCommand) map[string]any {
			fields := map[string]any{}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildIndexCommand].
func (h *BuildIndexHandler) Execute(ctx context.Context, msg BuildIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyIndexHandler orchestrates index verification via the shared command handler foundation.
type VerifyIndexHandler struct {
	inner *commands.Handler[VerifyIndexCommand]
}

// NewVerifyIndexHandler creates a handler bound to the supplied index service.
func NewVerifyIndexHandler(service interfaces.IndexService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[VerifyIndexCommand]) *VerifyIndexHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg VerifyIndexCommand) error {
		if !gates.indexEnabled() {
			return ErrIndexFeatureDisabled
		}

		result, err := service.Verify(ctx)
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"entries":       result.Entries,
			"missing_count": len(result.Missing),
		}).Info("index.command.verify.completed")

		if result.Failed() {
			return fmt.Errorf("%w: %d missing", ErrDocumentsUnindexed, len(result.Missing))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[VerifyIndexCommand]{
		commands.WithLogger[VerifyIndexCommand](baseLogger),
		commands.WithOperation[VerifyIndexCommand](verifyOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifyIndexHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[VerifyIndexCommand].
func (h *VerifyIndexHandler) Execute(ctx context.Context, msg VerifyIndexCommand) error {
	return h.inner.Execute(ctx, msg)
}
