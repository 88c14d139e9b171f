package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/bayat/go-standards/pkg/interfaces"
)

// ParseFrontMatter extracts header metadata and markdown body content from
// the provided source bytes. It returns the structured frontmatter, the body
// without delimiters, and any error encountered. Documents without a header
// parse with an empty frontmatter and the full source as body.
//
// Headers that do not fit the typed fields never abort the parse. The values
// are recovered into Raw where possible and the decode failure is recorded in
// FrontMatter.Problems so the header policy can report it per document.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err == nil {
		return envelopeToFrontMatter(meta), body, nil
	}

	var raw map[string]any
	body, rawErr := frontmatter.Parse(bytes.NewReader(source), &raw)
	if rawErr != nil {
		fm := interfaces.FrontMatter{
			Custom:   map[string]any{},
			Raw:      map[string]any{},
			Problems: []string{fmt.Sprintf("decode frontmatter: %v", rawErr)},
		}
		return fm, stripHeaderBlock(source), nil
	}

	fm := looseFrontMatter(raw)
	fm.Problems = []string{fmt.Sprintf("decode frontmatter: %v", err)}
	return fm, body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// category, raw content, and modification time. BodyHTML is intentionally
// left empty so callers can render lazily.
func BuildDocument(path string, category string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	if fmCategory := meta.Category; fmCategory != "" {
		category = fmCategory
	}

	return &interfaces.Document{
		Path:         path,
		Category:     category,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Category    string         `yaml:"category"`
	Status      string         `yaml:"status"`
	Version     string         `yaml:"version"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	LastUpdated time.Time      `yaml:"last_updated"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Category != "" {
		raw["category"] = env.Category
	}
	if env.Status != "" {
		raw["status"] = env.Status
	}
	if env.Version != "" {
		raw["version"] = env.Version
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.LastUpdated.IsZero() {
		raw["last_updated"] = env.LastUpdated
	}
	if env.Draft {
		raw["draft"] = true
	}

	return interfaces.FrontMatter{
		Title:       env.Title,
		Slug:        env.Slug,
		Category:    env.Category,
		Status:      env.Status,
		Version:     env.Version,
		Tags:        append([]string(nil), env.Tags...),
		Author:      env.Author,
		LastUpdated: env.LastUpdated,
		Draft:       env.Draft,
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

// looseFrontMatter recovers what it can from a header whose values failed the
// typed decode. Every key stays reachable through Raw.
func looseFrontMatter(raw map[string]any) interfaces.FrontMatter {
	fm := interfaces.FrontMatter{
		Title:    looseString(raw["title"]),
		Slug:     looseString(raw["slug"]),
		Category: looseString(raw["category"]),
		Status:   looseString(raw["status"]),
		Version:  looseString(raw["version"]),
		Author:   looseString(raw["author"]),
		Tags:     looseStrings(raw["tags"]),
		Raw:      cloneMap(raw),
	}

	switch stamp := raw["last_updated"].(type) {
	case time.Time:
		fm.LastUpdated = stamp
	case string:
		if parsed, perr := time.Parse("2006-01-02", stamp); perr == nil {
			fm.LastUpdated = parsed
		}
	}
	if draft, ok := raw["draft"].(bool); ok {
		fm.Draft = draft
	}

	custom := map[string]any{}
	for key, value := range raw {
		switch key {
		case "title", "slug", "category", "status", "version", "tags", "author", "last_updated", "draft":
		default:
			custom[key] = value
		}
	}
	fm.Custom = custom

	return fm
}

func looseString(value any) string {
	s, _ := value.(string)
	return s
}

func looseStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// stripHeaderBlock drops a leading delimiter block when the header cannot be
// decoded at all, keeping the body usable for link and marker scans.
func stripHeaderBlock(source []byte) []byte {
	delim := []byte("---")
	if !bytes.HasPrefix(source, delim) {
		return source
	}

	rest := source[len(delim):]
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return source
	}

	rest = rest[idx+len("\n---"):]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		return rest[nl+1:]
	}
	return nil
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
