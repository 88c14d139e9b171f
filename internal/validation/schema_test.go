package validation

import (
	"errors"
	"testing"
)

func TestValidateSchemaDefault(t *testing.T) {
	if err := ValidateSchema(DefaultFrontMatterSchema()); err != nil {
		t.Fatalf("expected default schema to compile, got %v", err)
	}
}

func TestValidateSchemaInvalid(t *testing.T) {
	err := ValidateSchema(map[string]any{"type": 42})
	if err == nil {
		t.Fatal("expected schema compilation to fail")
	}
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadAcceptsValidFrontMatter(t *testing.T) {
	payload := map[string]any{
		"title":    "Error Handling",
		"category": "conventions",
		"version":  "1.0.0",
		"tags":     []string{"go", "errors"},
		"draft":    false,
	}
	if err := ValidatePayload(DefaultFrontMatterSchema(), payload); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatePayloadCollectsIssues(t *testing.T) {
	payload := map[string]any{
		"title": "",
		"tags":  []any{"go", 42},
	}

	err := ValidatePayload(DefaultFrontMatterSchema(), payload)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) < 2 {
		t.Fatalf("expected issues for title and tags, got %v", issues)
	}
}

func TestValidatePayloadEmptySchema(t *testing.T) {
	if err := ValidatePayload(nil, map[string]any{"anything": "goes"}); err != nil {
		t.Fatalf("expected empty schema to accept all payloads, got %v", err)
	}
}

func TestIssuesFromPlainError(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("expected single generic issue, got %v", issues)
	}
}
