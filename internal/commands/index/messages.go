package indexcmd

const (
	buildIndexMessageType  = "standards.index.build"
	verifyIndexMessageType = "standards.index.verify"
)

// BuildIndexCommand regenerates the marker-delimited index region from the
// current corpus contents.
type BuildIndexCommand struct {
	// DryRun reports whether the index would change without writing it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildIndexCommand) Type() string { return buildIndexMessageType }

// VerifyIndexCommand checks that every corpus document appears in the index.
type VerifyIndexCommand struct{}

// Type implements command.Message.
func (VerifyIndexCommand) Type() string { return verifyIndexMessageType }
