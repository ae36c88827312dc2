package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/spacesedan/sentiscope/internal/models"
)

// Fingerprint identifies the inputs a result was computed from.
type Fingerprint [sha256.Size]byte

// NewFingerprint hashes the dataset identity, the column and the canonical
// params. Fields are NUL separated so no two input triples collide by
// concatenation.
func NewFingerprint(identity, column string, p models.Params) Fingerprint {
	h := sha256.New()
	h.Write([]byte(identity))
	h.Write([]byte{0})
	h.Write([]byte(column))
	h.Write([]byte{0})
	h.Write([]byte(p.Canonical()))

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}
