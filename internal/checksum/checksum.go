package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data. The pipeline uses it to
// fingerprint corpus snapshots so watch mode can skip no-op output rewrites.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
