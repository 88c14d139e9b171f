package linkscmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const checkOperation = "links.check"

var (
	// ErrLinksFeatureDisabled is returned when the links feature flag is disabled at runtime.
	ErrLinksFeatureDisabled = errors.New("links command: feature disabled")
	// ErrBrokenLinks is returned when a check run finds broken links.
	ErrBrokenLinks = errors.New("links command: broken links found")
)

var _ command.Commander[CheckLinksCommand] = (*CheckLinksHandler)(nil)

// FeatureGates exposes runtime feature toggles required by link command handlers.
type FeatureGates struct {
	LinksEnabled func() bool
}

func (g FeatureGates) linksEnabled() bool {
	if g.LinksEnabled == nil {
		return true
	}
	return g.LinksEnabled()
}

// CheckLinksHandler orchestrates corpus link checks via the shared command handler foundation.
type CheckLinksHandler struct {
	inner *commands.Handler[CheckLinksCommand]
}

// NewCheckLinksHandler creates a handler bound to the supplied link check service.
func NewCheckLinksHandler(service interfaces.LinkCheckService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CheckLinksCommand]) *CheckLinksHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CheckLinksCommand) error {
		if !gates.linksEnabled() {
			return ErrLinksFeatureDisabled
		}

		report, err := service.CheckDirectory(ctx, msg.Directory, interfaces.CheckOptions{
			Workers:      msg.Workers,
			CheckAnchors: msg.CheckAnchors,
			Pattern:      msg.Pattern,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"documents_checked": report.DocumentsChecked,
			"links_checked":     report.LinksChecked,
			"links_skipped":     report.LinksSkipped,
			"broken_count":      len(report.Broken),
		}).Info("links.command.check.completed")

		if report.Failed() {
			return fmt.Errorf("%w: %d broken in %d documents", ErrBrokenLinks, len(report.Broken), report.DocumentsChecked)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckLinksCommand]{
		commands.WithLogger[CheckLinksCommand](baseLogger),
		commands.WithOperation[CheckLinksCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckLinksCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Workers > 0 {
				fields["workers"] = msg.Workers
			}
			if msg.CheckAnchors != nil {
				fields["check_anchors"] = *msg.CheckAnchors
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckLinksHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckLinksCommand].
func (h *CheckLinksHandler) Execute(ctx context.Context, msg CheckLinksCommand) error {
	return h.inner.Execute(ctx, msg)
}
