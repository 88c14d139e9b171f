package headerscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	applyHeadersMessageType   = "standards.headers.apply"
	validateCorpusMessageType = "standards.corpus.validate"
)

// ApplyHeadersCommand inserts or completes frontmatter headers across the
// corpus directory, honouring the configured header policy.
type ApplyHeadersCommand struct {
	// Directory selects the corpus-relative directory to process ("." for the whole corpus).
	Directory string `json:"directory"`
	// DryRun collects the documents that would change without writing them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ApplyHeadersCommand) Type() string { return applyHeadersMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ApplyHeadersCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("standards.headers.apply.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ValidateCorpusCommand runs header policy inspection plus frontmatter schema
// validation over the corpus directory without modifying any document.
type ValidateCorpusCommand struct {
	// Directory selects the corpus-relative directory to validate ("." for the whole corpus).
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ValidateCorpusCommand) Type() string { return validateCorpusMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("standards.corpus.validate.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
