package playbook

import "time"

// Point is a planar field coordinate in pixels. ScalePx pixels equal one
// yard; points are clamped to the playable rectangle before storage.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteType classifies one route segment. A player holds at most one
// segment per type.
type RouteType string

const (
	RoutePrimary RouteType = "primary"
	RouteOption  RouteType = "option"
	RouteCheck   RouteType = "check"
	RouteEndzone RouteType = "endzone"
)

// RouteSegment is one drawn route: an ordered polyline of field points.
// Fewer than two points renders nothing but is storable.
type RouteSegment struct {
	ID     string    `json:"id"`
	Type   RouteType `json:"type"`
	Points []Point   `json:"points"`
	Preset string    `json:"preset,omitempty"`
}

// Player is one positioned token with its routes. Motion, when non-nil, is
// a secondary pre-snap location.
type Player struct {
	ID       string         `json:"id"`
	Role     string         `json:"role"`
	Label    string         `json:"label"`
	Color    string         `json:"color"`
	Position Point          `json:"position"`
	Motion   *Point         `json:"motion,omitempty"`
	Routes   []RouteSegment `json:"routes"`
}

// PlayTag is a small annotation badge on a play.
type PlayTag struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

// GridPosition addresses one cell of the playbook grid.
type GridPosition struct {
	Row    int `json:"row"`    // 0..3
	Column int `json:"column"` // 0..4
}

// Play is one diagram: players, optional tags, optional grid cell and ball
// spot.
type Play struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Players      []Player      `json:"players"`
	Tags         []PlayTag     `json:"tags,omitempty"`
	GridPosition *GridPosition `json:"gridPosition,omitempty"`
	BallPosition *Point        `json:"ballPosition,omitempty"`
}

// GridConfig holds the display names of the five grid columns.
type GridConfig struct {
	ColumnNames []string `json:"columnNames"`
}

// Playbook is the unit of sharing and export. CreatedAt/UpdatedAt are
// unix-millisecond stamps; they are re-stamped on import, not preserved
// across the share pipeline.
type Playbook struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Plays      []Play     `json:"plays"`
	GridConfig GridConfig `json:"gridConfig"`
	CreatedAt  int64      `json:"createdAt"`
	UpdatedAt  int64      `json:"updatedAt"`
}

// GridRows and GridColumns bound GridPosition.
const (
	GridRows    = 4
	GridColumns = 5
)

// DefaultColumnNames returns the initial grid column labels.
func DefaultColumnNames() []string {
	return []string{"A", "B", "C", "D", "E"}
}

// New constructs an empty playbook stamped at now.
func New(name string, now time.Time) *Playbook {
	ms := now.UnixMilli()
	return &Playbook{
		ID:         NewID(),
		Name:       name,
		Plays:      []Play{},
		GridConfig: GridConfig{ColumnNames: DefaultColumnNames()},
		CreatedAt:  ms,
		UpdatedAt:  ms,
	}
}

// Touch updates the modification stamp.
func (b *Playbook) Touch(now time.Time) {
	b.UpdatedAt = now.UnixMilli()
}

// UpsertRoute adds seg to the player, replacing any existing segment of the
// same type. Last write wins per type, not per id.
func (p *Player) UpsertRoute(seg RouteSegment) {
	for i := range p.Routes {
		if p.Routes[i].Type == seg.Type {
			p.Routes[i] = seg
			return
		}
	}
	p.Routes = append(p.Routes, seg)
}

// Route returns the player's segment of the given type, if any.
func (p *Player) Route(t RouteType) (RouteSegment, bool) {
	for _, r := range p.Routes {
		if r.Type == t {
			return r, true
		}
	}
	return RouteSegment{}, false
}

// ClearRoutes removes all of the player's route segments.
func (p *Player) ClearRoutes() {
	p.Routes = nil
}

// ClearMotion removes the player's pre-snap motion.
func (p *Player) ClearMotion() {
	p.Motion = nil
}

// RouteStart is where a new route for p begins: the motion end when motion
// is set, otherwise the snap position.
func RouteStart(p Player) Point {
	if p.Motion != nil {
		return *p.Motion
	}
	return p.Position
}
