// Package share orchestrates moving a playbook between two independent
// contexts with no server in between.
//
// Ownership boundary:
// - export: minify -> wire-encode -> share URL / redirector document / file
// - import: payload sniffing, confirm-then-commit flow, atomic store write
// - payload fingerprint suppression of re-triggered imports
// - handshake session wiring (see the session subpackage)
//
// Three delivery mechanisms share one decode path: a share URL parameter,
// a generated self-contained redirector document, and a live window
// handshake. A decode failure on any of them leaves the stored collection
// untouched.
package share
