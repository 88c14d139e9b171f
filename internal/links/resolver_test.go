package links

import (
	"reflect"
	"testing"

	"github.com/bayat/go-standards/pkg/interfaces"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		kind     interfaces.LinkKind
		path     string
		fragment string
	}{
		{name: "https", target: "https://example.com/page", kind: interfaces.LinkExternal},
		{name: "http", target: "http://example.com", kind: interfaces.LinkExternal},
		{name: "mailto", target: "mailto:docs@example.com", kind: interfaces.LinkExternal},
		{name: "other scheme", target: "ftp://host/file.txt", kind: interfaces.LinkExternal},
		{name: "empty", target: "", kind: interfaces.LinkExternal},
		{name: "anchor only", target: "#usage", kind: interfaces.LinkAnchor, fragment: "usage"},
		{name: "relative", target: "guide.md", kind: interfaces.LinkRelative, path: "guide.md"},
		{name: "relative parent", target: "../shared/style.md", kind: interfaces.LinkRelative, path: "../shared/style.md"},
		{name: "relative with fragment", target: "other.md#setup", kind: interfaces.LinkRelative, path: "other.md", fragment: "setup"},
		{name: "root absolute", target: "/docs/setup.md", kind: interfaces.LinkRootAbsolute, path: "docs/setup.md"},
		{name: "root absolute with fragment", target: "/docs/setup.md#install", kind: interfaces.LinkRootAbsolute, path: "docs/setup.md", fragment: "install"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link := Classify(interfaces.Link{Target: tc.target})
			if link.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, link.Kind)
			}
			if link.Path != tc.path {
				t.Fatalf("expected path %q, got %q", tc.path, link.Path)
			}
			if link.Fragment != tc.fragment {
				t.Fatalf("expected fragment %q, got %q", tc.fragment, link.Fragment)
			}
		})
	}
}

func TestResolveCandidatesPrefersDocumentDirectory(t *testing.T) {
	link := Classify(interfaces.Link{Target: "setup.md"})

	candidates := resolveCandidates(link, "guides/intro.md")
	expected := []string{"guides/setup.md", "setup.md"}
	if !reflect.DeepEqual(candidates, expected) {
		t.Fatalf("expected candidates %v, got %v", expected, candidates)
	}
}

func TestResolveCandidatesRootDocument(t *testing.T) {
	link := Classify(interfaces.Link{Target: "guides/setup.md"})

	candidates := resolveCandidates(link, "README.md")
	if len(candidates) != 1 || candidates[0] != "guides/setup.md" {
		t.Fatalf("expected single candidate guides/setup.md, got %v", candidates)
	}
}

func TestResolveCandidatesRootAbsolute(t *testing.T) {
	link := Classify(interfaces.Link{Target: "/docs/setup.md"})

	candidates := resolveCandidates(link, "guides/deep/intro.md")
	if len(candidates) != 1 || candidates[0] != "docs/setup.md" {
		t.Fatalf("expected single root candidate, got %v", candidates)
	}
}

func TestEscapesRoot(t *testing.T) {
	if !escapesRoot("..") {
		t.Fatal("expected .. to escape the corpus root")
	}
	if !escapesRoot("../outside.md") {
		t.Fatal("expected ../outside.md to escape the corpus root")
	}
	if escapesRoot("guides/setup.md") {
		t.Fatal("expected corpus-relative path to stay inside the root")
	}
}
