// Package wire owns the byte-level transport encoding.
//
// Ownership boundary:
// - JSON serialize / parse
// - zlib compress / decompress
// - base64url text encoding, tolerant of the legacy standard alphabet
//
// The pipeline is content-agnostic: it moves any JSON-marshalable value
// and knows nothing about playbooks or the positional codec.
package wire
