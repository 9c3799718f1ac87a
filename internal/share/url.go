package share

import (
	"net/url"
	"strings"
)

// ParseShareParam extracts the encoded payload from a share link. The
// `share=` query parameter takes precedence over the legacy `#share=`
// fragment form when both are present.
func ParseShareParam(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	if payload := u.Query().Get("share"); payload != "" {
		return payload, true
	}
	frag := u.EscapedFragment()
	if rest, ok := strings.CutPrefix(frag, "share="); ok && rest != "" {
		// PathUnescape, not QueryUnescape: legacy payloads in the
		// standard base64 alphabet carry literal '+'.
		if decoded, err := url.PathUnescape(rest); err == nil {
			return decoded, true
		}
		return rest, true
	}
	return "", false
}
