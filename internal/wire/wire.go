package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrDecode covers every malformed-payload failure in the decode leg:
// bad base64, corrupt compressed bytes, or unparsable JSON. Callers surface
// it as "link invalid or corrupted" and never retry.
var ErrDecode = errors.New("wire: payload invalid or corrupted")

// Encode serializes v to JSON, compresses it, and returns the URL-safe
// base64 text form.
func Encode(v any) (string, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("wire: marshal: %w", err)
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(text); err != nil {
		zw.Close()
		return "", fmt.Errorf("wire: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("wire: compress: %w", err)
	}
	return ToBase64URL(buf.Bytes()), nil
}

// Decode reverses Encode and returns the parsed JSON value. Minified
// payloads come back as []any; full documents as map[string]any. The
// caller decides which by version sniffing.
func Decode(s string) (any, error) {
	raw, err := FromBase64URL(s)
	if err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrDecode, err)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: inflate: %v", ErrDecode, err)
	}
	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrDecode, err)
	}
	return v, nil
}
