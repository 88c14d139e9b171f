package headers

import "strings"

// Policy names the frontmatter fields every convention document must carry
// and optionally restricts the values of category and status.
type Policy struct {
	RequiredFields    []string
	AllowedStatuses   []string
	AllowedCategories []string
	DefaultVersion    string
}

// DefaultPolicy mirrors the corpus-wide header contract.
func DefaultPolicy() Policy {
	return Policy{
		RequiredFields: []string{"title", "category", "version", "last_updated"},
		DefaultVersion: "1.0.0",
	}
}

func (p Policy) normalized() Policy {
	out := Policy{
		DefaultVersion: strings.TrimSpace(p.DefaultVersion),
	}
	if out.DefaultVersion == "" {
		out.DefaultVersion = "1.0.0"
	}
	for _, field := range p.RequiredFields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out.RequiredFields = append(out.RequiredFields, trimmed)
		}
	}
	for _, status := range p.AllowedStatuses {
		if trimmed := strings.TrimSpace(status); trimmed != "" {
			out.AllowedStatuses = append(out.AllowedStatuses, trimmed)
		}
	}
	for _, category := range p.AllowedCategories {
		if trimmed := strings.TrimSpace(category); trimmed != "" {
			out.AllowedCategories = append(out.AllowedCategories, trimmed)
		}
	}
	return out
}

func (p Policy) statusAllowed(status string) bool {
	return valueAllowed(status, p.AllowedStatuses)
}

func (p Policy) categoryAllowed(category string) bool {
	return valueAllowed(category, p.AllowedCategories)
}

func valueAllowed(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, value) {
			return true
		}
	}
	return false
}
