package codec

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/coachtools/playctl/internal/playbook"
)

// fixture returns a playbook whose coordinates sit on the half-yard grid
// (multiples of 12.5px at the default 25px scale), as the editor produces.
func fixture() *playbook.Playbook {
	motion := playbook.Point{X: 150, Y: 287.5}
	ball := playbook.Point{X: 312.5, Y: 400}
	return &playbook.Playbook{
		ID:   "pb1",
		Name: "Trips Right",
		GridConfig: playbook.GridConfig{
			ColumnNames: []string{"A", "B", "C", "D", "E"},
		},
		CreatedAt: 1,
		UpdatedAt: 2,
		Plays: []playbook.Play{
			{
				ID:   "play1",
				Name: "Slant Flood",
				Players: []playbook.Player{
					{
						ID:       "p1",
						Role:     "QB",
						Label:    "Q",
						Color:    "#ef4444",
						Position: playbook.Point{X: 312.5, Y: 500},
						Routes:   []playbook.RouteSegment{},
					},
					{
						ID:       "p2",
						Role:     "WR-L",
						Label:    "X",
						Color:    "#3b82f6",
						Position: playbook.Point{X: 100, Y: 487.5},
						Motion:   &motion,
						Routes: []playbook.RouteSegment{
							{
								ID:   "r1",
								Type: playbook.RoutePrimary,
								Points: []playbook.Point{
									{X: 100, Y: 487.5},
									{X: 100, Y: 375},
									{X: 212.5, Y: 300},
								},
								Preset: "slant",
							},
							{
								ID:   "r2",
								Type: playbook.RouteOption,
								Points: []playbook.Point{
									{X: 100, Y: 487.5},
									{X: 50, Y: 437.5},
								},
							},
						},
					},
				},
				Tags: []playbook.PlayTag{
					{ID: "t1", Text: "3rd & long", Color: "#f59e0b"},
				},
				GridPosition: &playbook.GridPosition{Row: 1, Column: 2},
				BallPosition: &ball,
			},
			{
				ID:      "play2",
				Name:    "Empty",
				Players: []playbook.Player{},
				Tags:    []playbook.PlayTag{},
			},
		},
	}
}

func TestRoundTripLaw(t *testing.T) {
	c := Default()
	orig := fixture()
	now := time.UnixMilli(1_725_000_000_000)

	// Through JSON to exercise the same value shapes the wire produces.
	data, err := json.Marshal(c.Minify(orig))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got, handled, err := c.Expand(decoded, now)
	if err != nil || !handled {
		t.Fatalf("expand: handled=%v err=%v", handled, err)
	}
	if got.CreatedAt != now.UnixMilli() || got.UpdatedAt != now.UnixMilli() {
		t.Fatalf("timestamps not re-stamped: %d/%d", got.CreatedAt, got.UpdatedAt)
	}

	// Everything except timestamps must survive byte-for-byte.
	want := fixture()
	want.CreatedAt = got.CreatedAt
	want.UpdatedAt = got.UpdatedAt
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestQuantizationIdempotent(t *testing.T) {
	c := Default()
	for _, x := range []float64{0, 1, 12.5, 13.2, 99.99, 312.5, 624.7, 625} {
		once := c.FromHalfYards(c.ToHalfYards(x))
		twice := c.FromHalfYards(c.ToHalfYards(once))
		if once != twice {
			t.Fatalf("quantization unstable for %v: %v then %v", x, once, twice)
		}
	}
}

func TestQuantizationExactOnGrid(t *testing.T) {
	c := Default()
	// Every half-yard grid point must survive the round trip exactly.
	for q := 0; q <= 50; q++ {
		px := c.FromHalfYards(q)
		if got := c.ToHalfYards(px); got != q {
			t.Fatalf("grid point %d re-quantized to %d", q, got)
		}
	}
}

func TestQuantizationTieBreak(t *testing.T) {
	c := Codec{Scale: 2} // 1px = half a yard, so px == v in ToHalfYards
	if got := c.ToHalfYards(2.5); got != 3 {
		t.Fatalf("2.5 half-yards rounded to %d, want 3", got)
	}
	if got := c.ToHalfYards(-2.5); got != -3 {
		t.Fatalf("-2.5 half-yards rounded to %d, want -3 (away from zero)", got)
	}
}

func TestVersionPassThrough(t *testing.T) {
	c := Default()
	cases := []any{
		[]any{float64(99), "id", "name"},
		[]any{},
		map[string]any{"id": "x"},
		"not even close",
		nil,
	}
	for _, in := range cases {
		if IsMinified(in) {
			t.Fatalf("IsMinified(%v) = true", in)
		}
		_, handled, err := c.Expand(in, time.Now())
		if handled || err != nil {
			t.Fatalf("Expand(%v): handled=%v err=%v, want pass-through", in, handled, err)
		}
	}
	if !IsMinified([]any{float64(3), "id", "name", []any{}, []any{}}) {
		t.Fatalf("IsMinified rejected a version-3 tuple")
	}
}

func TestUnknownRouteCodeDefaultsToPrimary(t *testing.T) {
	c := Default()
	route := []any{"r1", float64(42), []any{}, nil}
	player := []any{"p1", "QB", "Q", "#fff", []any{float64(0), float64(0)}, nil, []any{route}}
	play := []any{"play1", "P", []any{player}, []any{}, nil, nil}
	tuple := []any{float64(3), "pb", "B", []any{"A", "B", "C", "D", "E"}, []any{play}}

	pb, handled, err := c.Expand(tuple, time.Now())
	if !handled || err != nil {
		t.Fatalf("expand: handled=%v err=%v", handled, err)
	}
	got := pb.Plays[0].Players[0].Routes[0]
	if got.Type != playbook.RoutePrimary {
		t.Fatalf("unknown code should default to primary, got %q", got.Type)
	}
}

func TestExpandMalformed(t *testing.T) {
	c := Default()
	cases := []any{
		[]any{float64(3)},                                     // truncated top tuple
		[]any{float64(3), 7, "name", []any{}, []any{}},        // id not a string
		[]any{float64(3), "id", "name", []any{7}, []any{}},    // column name not a string
		[]any{float64(3), "id", "name", []any{}, []any{"x"}},  // play not a tuple
		[]any{float64(3), "id", "name", []any{}, []any{[]any{"p", "n", []any{[]any{"p1"}}, []any{}, nil, nil}}}, // short player
	}
	for i, in := range cases {
		_, handled, err := c.Expand(in, time.Now())
		if !handled {
			t.Fatalf("case %d: not handled", i)
		}
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("case %d: expected ErrMalformed, got %v", i, err)
		}
	}
}

func TestMinifyOmitsTimestamps(t *testing.T) {
	c := Default()
	tuple := c.Minify(fixture())
	data, err := json.Marshal(tuple)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(tuple) != 5 {
		t.Fatalf("top tuple has %d elements, want 5", len(tuple))
	}
	for _, needle := range []string{"createdAt", "updatedAt", "gridConfig"} {
		if strings.Contains(string(data), needle) {
			t.Fatalf("minified form leaks field name %q", needle)
		}
	}
}
