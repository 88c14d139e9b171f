package interfaces

import "context"

// LinkKind classifies a markdown link target.
type LinkKind string

const (
	// LinkExternal covers targets with a URL scheme (http, https, mailto, …).
	LinkExternal LinkKind = "external"
	// LinkAnchor covers fragment-only targets (`#section`).
	LinkAnchor LinkKind = "anchor"
	// LinkRelative covers paths resolved against the document directory,
	// falling back to the corpus root.
	LinkRelative LinkKind = "relative"
	// LinkRootAbsolute covers `/path` targets resolved against the corpus root.
	LinkRootAbsolute LinkKind = "root-absolute"
)

// Link describes a single link occurrence inside a document body. Fenced code
// blocks never produce links, matching the corpus validation contract.
type Link struct {
	// Target is the raw destination as authored.
	Target string `json:"target"`
	// Path and Fragment are the decoded target split on `#`.
	Path     string   `json:"path"`
	Fragment string   `json:"fragment,omitempty"`
	Kind     LinkKind `json:"kind"`
	// Line is the 1-based line number in the source file.
	Line int `json:"line"`
	// Image marks image destinations, which follow the same resolution rules.
	Image bool `json:"image,omitempty"`
}

// BrokenLink pairs a failed link with the document that contains it.
type BrokenLink struct {
	DocumentPath string `json:"document"`
	Link         Link   `json:"link"`
	Reason       string `json:"reason"`
}

// LinkReport summarises a corpus check run. Ordering is deterministic:
// broken links sort by document path, then line.
type LinkReport struct {
	DocumentsChecked int          `json:"documents_checked"`
	LinksChecked     int          `json:"links_checked"`
	LinksSkipped     int          `json:"links_skipped"`
	Broken           []BrokenLink `json:"broken,omitempty"`
}

// Failed reports whether the run found broken links; callers translate it
// into a non-zero exit status.
func (r *LinkReport) Failed() bool {
	return r != nil && len(r.Broken) > 0
}

// CheckOptions tunes a link check run.
type CheckOptions struct {
	// Workers bounds the number of documents checked concurrently. Zero or
	// negative values fall back to the configured default.
	Workers int
	// CheckAnchors toggles `path#anchor` verification against the target
	// document's heading anchors. Nil keeps the configured default.
	CheckAnchors *bool
	Pattern      string
	Recursive    *bool
}

// LinkCheckService validates every markdown link in a corpus directory.
type LinkCheckService interface {
	CheckDirectory(ctx context.Context, dir string, opts CheckOptions) (*LinkReport, error)
}
