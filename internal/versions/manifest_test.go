package versions

import (
	"reflect"
	"testing"
)

func TestParseManifest(t *testing.T) {
	manifest, err := ParseManifest([]byte("versions:\n  go: \"1.23\"\n  node: \"22.1\"\n  unity: 2023.2.1f1\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}

	version, ok := manifest.Lookup("go")
	if !ok || version != "1.23" {
		t.Fatalf("expected go 1.23, got %q (%v)", version, ok)
	}
	if _, ok := manifest.Lookup("rust"); ok {
		t.Fatal("did not expect rust entry")
	}

	names := manifest.Names()
	if !reflect.DeepEqual(names, []string{"go", "node", "unity"}) {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestParseManifestTrimsEntries(t *testing.T) {
	manifest, err := ParseManifest([]byte("versions:\n  \"  go  \": \"  1.23  \"\n  empty: \"   \"\n"))
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}

	version, ok := manifest.Lookup("go")
	if !ok || version != "1.23" {
		t.Fatalf("expected trimmed go entry, got %q (%v)", version, ok)
	}
	if _, ok := manifest.Lookup("empty"); ok {
		t.Fatal("expected blank version to be dropped")
	}
}

func TestParseManifestInvalidYAML(t *testing.T) {
	if _, err := ParseManifest([]byte("versions: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLookupNilManifest(t *testing.T) {
	var manifest *Manifest
	if _, ok := manifest.Lookup("go"); ok {
		t.Fatal("expected nil manifest to miss")
	}
	if names := manifest.Names(); names != nil {
		t.Fatalf("expected nil names, got %v", names)
	}
}
