package playbook

import (
	"errors"
	"testing"
	"time"
)

func gridFixture() *Playbook {
	pb := New("test", time.Now())
	pb.Plays = []Play{
		{ID: "playX", Name: "X"},
		{ID: "playY", Name: "Y"},
	}
	return pb
}

func TestAssignToCellExclusive(t *testing.T) {
	pb := gridFixture()
	if err := pb.AssignToCell("playX", 1, 2); err != nil {
		t.Fatalf("assign playX: %v", err)
	}
	err := pb.AssignToCell("playY", 1, 2)
	if !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	// playX must still hold the cell exclusively.
	occ, ok := pb.PlayAt(1, 2)
	if !ok || occ.ID != "playX" {
		t.Fatalf("cell occupant changed: ok=%v id=%q", ok, occ.ID)
	}
	if pb.Plays[1].GridPosition != nil {
		t.Fatalf("rejected assignment must not set gridPosition")
	}
}

func TestAssignToCellAfterClear(t *testing.T) {
	pb := gridFixture()
	if err := pb.AssignToCell("playX", 1, 2); err != nil {
		t.Fatalf("assign playX: %v", err)
	}
	pb.RemoveFromCell(1, 2)
	if err := pb.AssignToCell("playY", 1, 2); err != nil {
		t.Fatalf("assign playY after clear: %v", err)
	}
	occ, ok := pb.PlayAt(1, 2)
	if !ok || occ.ID != "playY" {
		t.Fatalf("expected playY in cell, got ok=%v id=%q", ok, occ.ID)
	}
}

func TestAssignToCellSelfIsNoop(t *testing.T) {
	pb := gridFixture()
	if err := pb.AssignToCell("playX", 0, 0); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := pb.AssignToCell("playX", 0, 0); err != nil {
		t.Fatalf("re-assign to own cell should succeed: %v", err)
	}
}

func TestAssignToCellBounds(t *testing.T) {
	pb := gridFixture()
	cases := [][2]int{{-1, 0}, {0, -1}, {GridRows, 0}, {0, GridColumns}}
	for _, c := range cases {
		if err := pb.AssignToCell("playX", c[0], c[1]); !errors.Is(err, ErrCellOutOfRange) {
			t.Fatalf("cell (%d,%d): expected ErrCellOutOfRange, got %v", c[0], c[1], err)
		}
	}
}

func TestAssignToCellMissingPlay(t *testing.T) {
	pb := gridFixture()
	if err := pb.AssignToCell("ghost", 0, 0); !errors.Is(err, ErrPlayNotFound) {
		t.Fatalf("expected ErrPlayNotFound, got %v", err)
	}
}

func TestRemoveFromEmptyCell(t *testing.T) {
	pb := gridFixture()
	pb.RemoveFromCell(3, 4) // no-op
	if _, ok := pb.PlayAt(3, 4); ok {
		t.Fatalf("empty cell reported occupant")
	}
}
