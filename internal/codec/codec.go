package codec

import (
	"errors"

	"github.com/coachtools/playctl/internal/playbook"
)

// Version is the current minified format version. It is always the first
// element of the top-level tuple.
const Version = 3

var ErrMalformed = errors.New("codec: malformed minified playbook")

// Codec converts between the document model and the positional-array form.
// Scale is the field scale in pixels per yard; both directions of the
// quantization use it.
type Codec struct {
	Scale float64
}

// Default returns a codec at the standard field scale.
func Default() Codec {
	return Codec{Scale: playbook.ScalePx}
}

var routeTypeCode = map[playbook.RouteType]int{
	playbook.RoutePrimary: 0,
	playbook.RouteOption:  1,
	playbook.RouteCheck:   2,
	playbook.RouteEndzone: 3,
}

var routeTypeFromCode = map[int]playbook.RouteType{
	0: playbook.RoutePrimary,
	1: playbook.RouteOption,
	2: playbook.RouteCheck,
	3: playbook.RouteEndzone,
}

// IsMinified reports whether data is a version-3 minified tuple. Anything
// else, including arrays carrying an unknown version marker, is treated as
// an already-expanded document and passed through by Expand.
func IsMinified(data any) bool {
	arr, ok := data.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	v, ok := asInt(arr[0])
	return ok && v == Version
}
