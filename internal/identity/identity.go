// Package identity derives deterministic UUIDs for corpus records so repeated
// syncs of the same document converge on the same row.
package identity

import (
	"strings"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const documentNamespace = "standards:document:"

// DocumentID returns the stable UUID for a corpus-relative document path.
func DocumentID(path string) uuid.UUID {
	return deterministicUUID(documentNamespace + strings.TrimSpace(path))
}

func deterministicUUID(value string) uuid.UUID {
	trimmed := strings.TrimSpace(value)

	id, err := hashid.NewUUID(trimmed,
		hashid.WithHashAlgorithm(hashid.SHA256),
		hashid.WithNormalization(true),
	)
	if err == nil {
		return id
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
}
