package linkscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const checkLinksMessageType = "standards.links.check"

// CheckLinksCommand triggers a corpus-wide link check under Directory. The
// command mirrors interfaces.LinkCheckService CheckDirectory semantics.
type CheckLinksCommand struct {
	// Directory selects the corpus-relative directory to check ("." for the whole corpus).
	Directory string `json:"directory"`
	// Workers bounds concurrent document checks. Zero keeps the configured default.
	Workers int `json:"workers,omitempty"`
	// CheckAnchors toggles fragment verification. Nil keeps the configured default.
	CheckAnchors *bool `json:"check_anchors,omitempty"`
	// Pattern narrows the run to files matching the glob. Empty keeps the default.
	Pattern string `json:"pattern,omitempty"`
}

// Type implements command.Message.
func (CheckLinksCommand) Type() string { return checkLinksMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckLinksCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("standards.links.check.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Workers, validation.Min(0)),
	)
}
