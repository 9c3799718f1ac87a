// Package playbook owns the document model for play diagrams.
//
// Ownership boundary:
// - entity definitions (Playbook, Play, Player, RouteSegment, PlayTag)
// - grid cell assignment contract
// - route upsert and motion mutation contracts
// - field geometry clamping
//
// Entity ids are opaque random strings. Duplicate ids within one container
// are a caller obligation: ids come from NewID, which is collision
// resistant, and the package does not re-validate uniqueness.
package playbook
