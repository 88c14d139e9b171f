package versionscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const updateVersionsMessageType = "standards.versions.update"

// UpdateVersionsCommand rewrites manifest-driven version markers across the
// corpus directory.
type UpdateVersionsCommand struct {
	// Directory selects the corpus-relative directory to process ("." for the whole corpus).
	Directory string `json:"directory"`
	// DryRun collects the documents that would change without writing them.
	DryRun bool `json:"dry_run,omitempty"`
	// Stamp rewrites the frontmatter last_updated field on changed documents.
	Stamp bool `json:"stamp,omitempty"`
}

// Type implements command.Message.
func (UpdateVersionsCommand) Type() string { return updateVersionsMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd UpdateVersionsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("standards.versions.update.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
