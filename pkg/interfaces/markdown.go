package interfaces

import "context"

// MarkdownParser defines how raw markdown bytes are converted into HTML.
// Implementations should be safe for reuse across goroutines so a single
// instance can serve the whole corpus.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CorpusService exposes the document workflows the toolkit is built on:
// loading convention documents from disk and rendering their bodies.
type CorpusService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	// CategoryOverrides maps category identifiers to glob expressions
	// relative to the corpus root.
	CategoryOverrides map[string]string
	Parser            ParseOptions
}
