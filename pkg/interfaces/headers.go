package interfaces

import "context"

// HeaderIssue captures a single header policy violation in a document.
type HeaderIssue struct {
	DocumentPath string `json:"document"`
	Field        string `json:"field,omitempty"`
	Reason       string `json:"reason"`
}

// HeaderApplyOptions controls header insertion runs.
type HeaderApplyOptions struct {
	// DryRun collects the documents that would change without writing them.
	DryRun bool
}

// HeaderApplyResult reports the outcome of a header insertion run.
type HeaderApplyResult struct {
	// Updated lists documents whose header was inserted or completed.
	Updated []string `json:"updated,omitempty"`
	// Skipped counts documents already satisfying the policy.
	Skipped int     `json:"skipped"`
	Errors  []error `json:"-"`
}

// HeaderService enforces the corpus header policy: every convention document
// opens with a frontmatter block carrying the required fields.
type HeaderService interface {
	InspectDirectory(ctx context.Context, dir string) ([]HeaderIssue, error)
	ApplyDirectory(ctx context.Context, dir string, opts HeaderApplyOptions) (*HeaderApplyResult, error)
}
