package playbook

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns an opaque 128-bit random identifier.
func NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
