package interfaces

import "time"

// Document represents a convention document: a markdown file with parsed
// header metadata and body content. The struct is shared between the
// interfaces package and internal implementations so consumers can depend on
// a stable contract.
type Document struct {
	// Path is the slash-separated location of the file relative to the corpus root.
	Path string
	// Category groups related documents (frontmatter wins over the path segment).
	Category     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// and validation workflows can detect changes without re-reading files.
	Checksum []byte
}

// FrontMatter models the header metadata every convention document carries.
// Known fields map onto the corpus header policy; Custom keeps
// document-specific values round-trippable.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Category    string         `yaml:"category" json:"category"`
	Status      string         `yaml:"status" json:"status"`
	Version     string         `yaml:"version" json:"version"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Author      string         `yaml:"author" json:"author"`
	LastUpdated time.Time      `yaml:"last_updated" json:"last_updated"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
	// Problems records header values that did not fit the typed fields.
	// Decoding stays lenient so one loose header cannot abort a corpus run;
	// the header policy reports these per document instead.
	Problems []string `yaml:"-" json:"problems,omitempty"`
}

// IsEmpty reports whether no header metadata was parsed at all. Documents
// without a frontmatter block parse with an empty Raw map.
func (f FrontMatter) IsEmpty() bool {
	return len(f.Raw) == 0
}
