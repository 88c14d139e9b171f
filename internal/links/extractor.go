package links

import (
	"bytes"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/bayat/go-standards/pkg/interfaces"
)

// extractEngine parses documents with the same extension set the corpus
// renderer uses so reference links and GFM autolinks resolve identically.
// The engine is stateless and shared.
var extractEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
)

// Extract returns every link and image destination found in the markdown
// body, with 1-based line numbers relative to the supplied source. Fenced and
// indented code blocks, and inline code spans, produce no link nodes, so
// their contents are excluded by construction.
func Extract(source []byte) []interfaces.Link {
	root := extractEngine.Parser().Parse(text.NewReader(source))
	lines := newLineIndex(source)

	var found []interfaces.Link

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Link:
			found = append(found, interfaces.Link{
				Target: string(n.Destination),
				Line:   lines.lineAt(nodeOffset(node)),
			})
		case *ast.Image:
			found = append(found, interfaces.Link{
				Target: string(n.Destination),
				Line:   lines.lineAt(nodeOffset(node)),
				Image:  true,
			})
		case *ast.AutoLink:
			found = append(found, interfaces.Link{
				Target: string(n.URL(source)),
				Line:   lines.lineAt(nodeOffset(node)),
			})
		}
		return ast.WalkContinue, nil
	})

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Line < found[j].Line
	})
	return found
}

// Heading describes a single document heading and its anchor identifier.
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

// ExtractHeadings returns the document's headings with GitHub-style anchors.
// Duplicate anchors receive -1, -2, … suffixes in document order.
func ExtractHeadings(source []byte) []Heading {
	root := extractEngine.Parser().Parse(text.NewReader(source))

	var headings []Heading
	seen := map[string]int{}

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		title := textOf(h, source)
		anchor := anchorFor(title)
		if count := seen[anchor]; count > 0 {
			seen[anchor] = count + 1
			anchor = anchorWithSuffix(anchor, count)
		} else {
			seen[anchor] = 1
		}

		headings = append(headings, Heading{
			Level:  h.Level,
			Text:   title,
			Anchor: anchor,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// AnchorSet returns the set of valid anchors for the supplied source.
func AnchorSet(source []byte) map[string]struct{} {
	headings := ExtractHeadings(source)
	anchors := make(map[string]struct{}, len(headings))
	for _, h := range headings {
		anchors[h.Anchor] = struct{}{}
	}
	return anchors
}

func anchorFor(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(strings.Join(strings.Fields(title), "-"))
	}
	return normalized
}

func anchorWithSuffix(anchor string, count int) string {
	var b strings.Builder
	b.WriteString(anchor)
	b.WriteByte('-')
	b.WriteString(itoa(count))
	return b.String()
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

// nodeOffset locates a byte offset for an inline node by finding the first
// descendant carrying a text segment, falling back to the nearest ancestor
// block's first line.
func nodeOffset(node ast.Node) int {
	if off, ok := descendantOffset(node); ok {
		return off
	}
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if lines := parent.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	return 0
}

func descendantOffset(node ast.Node) (int, bool) {
	if t, ok := node.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if off, ok := descendantOffset(child); ok {
			return off, true
		}
	}
	return 0, false
}

func textOf(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (l *lineIndex) lineAt(offset int) int {
	lo, hi := 0, len(l.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
