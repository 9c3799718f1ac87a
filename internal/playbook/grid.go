package playbook

import (
	"errors"
	"fmt"
)

var (
	ErrCellOccupied   = errors.New("playbook: grid cell occupied")
	ErrCellOutOfRange = errors.New("playbook: grid cell out of range")
	ErrPlayNotFound   = errors.New("playbook: play not found")
)

// PlayAt returns the play occupying (row, col), if any. The grid mapping is
// derived from the plays' GridPosition fields; there is no separate index.
func (b *Playbook) PlayAt(row, col int) (*Play, bool) {
	for i := range b.Plays {
		gp := b.Plays[i].GridPosition
		if gp != nil && gp.Row == row && gp.Column == col {
			return &b.Plays[i], true
		}
	}
	return nil, false
}

// AssignToCell places the play with playID at (row, col). The contract is
// clear-then-assign: if another play occupies the cell the call fails with
// ErrCellOccupied and the caller must RemoveFromCell first. Re-assigning a
// play to its own cell is a no-op.
func (b *Playbook) AssignToCell(playID string, row, col int) error {
	if row < 0 || row >= GridRows || col < 0 || col >= GridColumns {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOutOfRange, row, col)
	}
	if occ, ok := b.PlayAt(row, col); ok {
		if occ.ID == playID {
			return nil
		}
		return fmt.Errorf("%w: (%d,%d) held by %s", ErrCellOccupied, row, col, occ.ID)
	}
	for i := range b.Plays {
		if b.Plays[i].ID == playID {
			b.Plays[i].GridPosition = &GridPosition{Row: row, Column: col}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPlayNotFound, playID)
}

// RemoveFromCell clears (row, col). Clearing an empty cell is a no-op.
func (b *Playbook) RemoveFromCell(row, col int) {
	if p, ok := b.PlayAt(row, col); ok {
		p.GridPosition = nil
	}
}
