package interfaces

import "context"

// VersionUpdateOptions tunes a version stamp maintenance run.
type VersionUpdateOptions struct {
	DryRun bool
	// Stamp rewrites the frontmatter last_updated field on changed documents.
	Stamp bool
}

// VersionUpdateResult reports the outcome of a corpus-wide version update.
type VersionUpdateResult struct {
	// Updated lists documents whose version markers changed.
	Updated []string `json:"updated,omitempty"`
	// MarkersReplaced counts individual marker substitutions.
	MarkersReplaced int `json:"markers_replaced"`
	// UnknownMarkers lists marker names absent from the manifest, keyed by
	// "document:name" for stable reporting.
	UnknownMarkers []string `json:"unknown_markers,omitempty"`
	Skipped        int      `json:"skipped"`
	Errors         []error  `json:"-"`
}

// VersionService maintains tool/framework version stamps embedded in the
// corpus from a central manifest.
type VersionService interface {
	UpdateDirectory(ctx context.Context, dir string, opts VersionUpdateOptions) (*VersionUpdateResult, error)
	// BumpDocument rewrites the frontmatter version field of a single
	// document and stamps last_updated.
	BumpDocument(ctx context.Context, path, version string) error
}
