package index

import (
	"path"
	"sort"
	"strings"

	"github.com/bayat/go-standards/pkg/interfaces"
)

// Entry is a single index line: a document title linking to its path.
type Entry struct {
	Title string
	Path  string
}

// Section groups index entries under a category heading.
type Section struct {
	Category string
	Entries  []Entry
}

// BuildSections folds corpus documents into sorted index sections. Draft
// documents and the index document itself are excluded.
func BuildSections(docs []*interfaces.Document, indexFile string) []Section {
	grouped := map[string][]Entry{}

	for _, doc := range docs {
		if doc == nil || doc.FrontMatter.Draft || doc.Path == indexFile {
			continue
		}

		category := doc.Category
		if category == "" {
			category = "general"
		}

		grouped[category] = append(grouped[category], Entry{
			Title: entryTitle(doc),
			Path:  doc.Path,
		})
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	sections := make([]Section, 0, len(categories))
	for _, category := range categories {
		entries := grouped[category]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Title != entries[j].Title {
				return entries[i].Title < entries[j].Title
			}
			return entries[i].Path < entries[j].Path
		})
		sections = append(sections, Section{Category: category, Entries: entries})
	}
	return sections
}

// Render produces the markdown placed between the index markers.
func Render(sections []Section) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("### ")
		b.WriteString(headingFor(section.Category))
		b.WriteString("\n\n")
		for _, entry := range section.Entries {
			b.WriteString("- [")
			b.WriteString(entry.Title)
			b.WriteString("](")
			b.WriteString(entry.Path)
			b.WriteString(")\n")
		}
	}
	return b.String()
}

func entryTitle(doc *interfaces.Document) string {
	if title := strings.TrimSpace(doc.FrontMatter.Title); title != "" {
		return title
	}
	base := strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}

func headingFor(category string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(category))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
