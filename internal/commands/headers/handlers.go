package headerscmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayat/go-standards/internal/commands"
	"github.com/bayat/go-standards/internal/logging"
	"github.com/bayat/go-standards/internal/validation"
	"github.com/bayat/go-standards/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	applyOperation    = "headers.apply"
	validateOperation = "corpus.validate"
)

var (
	// ErrHeadersFeatureDisabled is returned when the headers feature flag is disabled at runtime.
	ErrHeadersFeatureDisabled = errors.New("headers command: feature disabled")
	// ErrHeaderIssues is returned when validation finds header policy violations.
	ErrHeaderIssues = errors.New("headers command: policy violations found")
	// ErrSchemaIssues is returned when frontmatter schema validation fails.
	ErrSchemaIssues = errors.New("headers command: schema violations found")
)

var (
	_ command.Commander[ApplyHeadersCommand]   = (*ApplyHeadersHandler)(nil)
	_ command.Commander[ValidateCorpusCommand] = (*ValidateCorpusHandler)(nil)
)

// FeatureGates exposes runtime feature toggles required by header command handlers.
type FeatureGates struct {
	HeadersEnabled func() bool
}

func (g FeatureGates) headersEnabled() bool {
	if g.HeadersEnabled == nil {
		return true
	}
	return g.HeadersEnabled()
}

// ApplyHeadersHandler orchestrates header insertion via the shared command handler foundation.
type ApplyHeadersHandler struct {
	inner *commands.Handler[ApplyHeadersCommand]
}

// NewApplyHeadersHandler creates a handler bound to the supplied header service.
func NewApplyHeadersHandler(service interfaces.HeaderService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ApplyHeadersCommand]) *ApplyHeadersHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ApplyHeadersCommand) error {
		if !gates.headersEnabled() {
			return ErrHeadersFeatureDisabled
		}

		result, err := service.ApplyDirectory(ctx, msg.Directory, interfaces.HeaderApplyOptions{
			DryRun: msg.DryRun,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"updated_count": len(result.Updated),
			"skipped_count": result.Skipped,
			"error_count":   len(result.Errors),
			"dry_run":       msg.DryRun,
		}).Info("headers.command.apply.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ApplyHeadersCommand]{
		commands.WithLogger[ApplyHeadersCommand](baseLogger),
		commands.WithOperation[ApplyHeadersCommand](applyOperation),
		commands.WithMessageFields(func(msg ApplyHeadersCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ApplyHeadersHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ApplyHeadersCommand].
func (h *ApplyHeadersHandler) Execute(ctx context.Context, msg ApplyHeadersCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateCorpusHandler runs header inspection and schema validation as one command.
type ValidateCorpusHandler struct {
	inner *commands.Handler[ValidateCorpusCommand]
}

// NewValidateCorpusHandler creates a handler bound to the header and schema validation services.
func NewValidateCorpusHandler(service interfaces.HeaderService, schema *validation.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ValidateCorpusCommand]) *ValidateCorpusHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ValidateCorpusCommand) error {
		if !gates.headersEnabled() {
			return ErrHeadersFeatureDisabled
		}

		issues, err := service.InspectDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		schemaIssues := 0
		if schema != nil {
			report, err := schema.ValidateDirectory(ctx)
			if err != nil {
				return err
			}
			schemaIssues = len(report.Issues)
		}

		logging.WithFields(baseLogger, map[string]any{
			"header_issues": len(issues),
			"schema_issues": schemaIssues,
		}).Info("headers.command.validate.completed")

		if len(issues) > 0 {
			return fmt.Errorf("%w: %d issues", ErrHeaderIssues, len(issues))
		}
		if schemaIssues > 0 {
			return fmt.Errorf("%w: %d issues", ErrSchemaIssues, schemaIssues)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateCorpusCommand]{
		commands.WithLogger[ValidateCorpusCommand](baseLogger),
		commands.WithOperation[ValidateCorpusCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateCorpusCommand) map[string]any {
			return map[string]any{
				"directory": msg.Directory,
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateCorpusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateCorpusCommand].
func (h *ValidateCorpusHandler) Execute(ctx context.Context, msg ValidateCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}
