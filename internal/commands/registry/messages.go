package registrycmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const syncRegistryMessageType = "standards.registry.sync"

// SyncRegistryCommand reconciles the persisted registry against the corpus
// directory, mirroring interfaces.RegistryService Sync semantics.
type SyncRegistryCommand struct {
	// Directory selects the corpus-relative directory to reconcile ("." for the whole corpus).
	Directory string `json:"directory"`
	// DeleteOrphaned removes records whose document no longer exists.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// DryRun counts the changes a run would make without persisting them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SyncRegistryCommand) Type() string { return syncRegistryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncRegistryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("standards.registry.sync.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
