package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/bayat/go-standards/pkg/interfaces"
)

const (
	rootModule       = "standards"
	linksModule      = "standards.links"
	headersModule    = "standards.headers"
	validationModule = "standards.validation"
	versionsModule   = "standards.versions"
	indexModule      = "standards.index"
	registryModule   = "standards.registry"
	watchModule      = "standards.watch"
)

const (
	fieldDocumentPath = "document"
	fieldCategory     = "category"
	fieldAction       = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LinksLogger returns the logger namespace reserved for link checking.
func LinksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, linksModule)
}

// ValidationLogger returns the logger namespace reserved for frontmatter
// schema validation.
func ValidationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validationModule)
}

// HeadersLogger returns the logger namespace reserved for header policy runs.
func HeadersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, headersModule)
}

// VersionsLogger returns the logger namespace reserved for version updates.
func VersionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, versionsModule)
}

// IndexLogger returns the logger namespace reserved for index maintenance.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// RegistryLogger returns the logger namespace reserved for the document registry.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// WatchLogger returns the logger namespace reserved for the corpus watcher.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithDocumentContext enriches the provided logger with common document fields
// such as file path, category, and the action being performed. Empty values
// are ignored.
func WithDocumentContext(logger interfaces.Logger, path, category, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldCategory] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
