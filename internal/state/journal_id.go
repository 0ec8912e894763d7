package state

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeJournalID computes a stable journal ID from a resolved root
// directory. The ID names the journal file, so it is safe to use as a file name.
func ComputeJournalID(root string) string {
	hash := sha256.Sum256([]byte(root))
	return hex.EncodeToString(hash[:])
}
