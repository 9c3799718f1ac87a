package share

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies one encoded payload for duplicate-import
// suppression. It hashes the whole payload: a prefix would let two
// distinct payloads collide.
func Fingerprint(payload string) string {
	return strconv.FormatUint(xxhash.Sum64String(payload), 16)
}
