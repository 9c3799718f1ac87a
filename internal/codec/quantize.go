package codec

import (
	"math"

	"github.com/coachtools/playctl/internal/playbook"
)

// ToHalfYards quantizes a pixel coordinate to integer half-yard units.
// Ties round half away from zero. This step is lossy: sub-half-yard
// precision is discarded, which matches the editor's input snapping.
func (c Codec) ToHalfYards(px float64) int {
	v := px / c.Scale * 2
	if v < 0 {
		return int(math.Ceil(v - 0.5))
	}
	return int(math.Floor(v + 0.5))
}

// FromHalfYards converts quantized half-yard units back to pixels. For any
// coordinate already on the half-yard grid the round trip is exact.
func (c Codec) FromHalfYards(q int) float64 {
	return float64(q) / 2 * c.Scale
}

func (c Codec) minifyPoint(p playbook.Point) []any {
	return []any{c.ToHalfYards(p.X), c.ToHalfYards(p.Y)}
}

func (c Codec) expandPoint(v any) (playbook.Point, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return playbook.Point{}, ErrMalformed
	}
	x, okX := asInt(arr[0])
	y, okY := asInt(arr[1])
	if !okX || !okY {
		return playbook.Point{}, ErrMalformed
	}
	return playbook.Point{X: c.FromHalfYards(x), Y: c.FromHalfYards(y)}, nil
}
