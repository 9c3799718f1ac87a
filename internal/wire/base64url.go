package wire

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ToBase64URL encodes raw with the URL-safe alphabet and padding stripped,
// the form carried in share URLs and generated documents.
func ToBase64URL(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// FromBase64URL decodes a payload in either the URL-safe or the legacy
// standard alphabet. Older shared links used standard base64; the two are
// distinguished by the presence of '-' or '_'. Stripped '=' padding is
// restored before decoding.
func FromBase64URL(s string) ([]byte, error) {
	// Query parsing turns a legacy payload's '+' into spaces; undo that
	// before looking at the alphabet.
	s = strings.ReplaceAll(s, " ", "+")
	for len(s)%4 != 0 {
		s += "="
	}
	enc := base64.StdEncoding
	if strings.ContainsAny(s, "-_") {
		enc = base64.URLEncoding
	}
	raw, err := enc.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}
	return raw, nil
}
