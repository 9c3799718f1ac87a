package playbook

// ScalePx is the default field scale: pixels per yard.
const ScalePx = 25

// Field is the playable rectangle in pixels.
type Field struct {
	Width  float64
	Height float64
}

// DefaultField returns the standard 25x25 yard drawing surface.
func DefaultField() Field {
	return Field{Width: 625, Height: 625}
}

// Clamp forces p inside the playable rectangle.
func (f Field) Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X > f.Width {
		p.X = f.Width
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y > f.Height {
		p.Y = f.Height
	}
	return p
}
