package interfaces

import "context"

// IndexBuildOptions controls index generation.
type IndexBuildOptions struct {
	DryRun bool
}

// IndexBuildResult reports whether the index document changed.
type IndexBuildResult struct {
	Changed bool `json:"changed"`
	// Entries counts documents listed in the generated index.
	Entries int `json:"entries"`
}

// IndexVerifyResult lists corpus documents missing from the index region.
type IndexVerifyResult struct {
	Missing []string `json:"missing,omitempty"`
	Entries int      `json:"entries"`
}

// Failed reports whether verification found unindexed documents.
func (r *IndexVerifyResult) Failed() bool {
	return r != nil && len(r.Missing) > 0
}

// IndexService maintains the category-grouped corpus index embedded in the
// index document (README.md by default).
type IndexService interface {
	Build(ctx context.Context, opts IndexBuildOptions) (*IndexBuildResult, error)
	Verify(ctx context.Context) (*IndexVerifyResult, error)
}
