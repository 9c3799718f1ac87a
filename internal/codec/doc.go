// Package codec owns the compact positional-array form of a playbook.
//
// Ownership boundary:
// - version-3 tuple layout (field order is defined here and nowhere else)
// - route type enum table
// - half-yard coordinate quantization
// - version sniffing (IsMinified) and pass-through of foreign versions
//
// The tuple layout per entity:
//
//	playbook [3, id, name, columnNames, plays]
//	play     [id, name, players, tags, gridPosition|null, ballPosition|null]
//	player   [id, role, label, color, position, motion|null, routes]
//	route    [id, typeCode, points, preset|null]
//	tag      [id, text, color]
//	point    [halfYardsX, halfYardsY]
//
// Timestamps are deliberately absent: the pipeline transmits content, not
// provenance, and Expand re-stamps CreatedAt/UpdatedAt at import time.
package codec
