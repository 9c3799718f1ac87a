// Package session owns the cross-context handshake sub-protocol.
//
// Ownership boundary:
// - the two-message wire vocabulary (ready ping, import payload)
// - the symmetric ping-until-acknowledged signaller and its lifecycle
// - clock and port abstractions so tests run without wall-clock delays
//
// Both ends of a transfer run a signaller: each pings readiness on a fixed
// interval and gives up after a bounded timeout. Whichever side's ping is
// observed first by the other triggers the data leg, so the protocol is
// insensitive to load-order races. Timing out is silent and non-fatal; the
// sending artifact stays valid for a retry.
package session
