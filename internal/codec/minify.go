package codec

import "github.com/coachtools/playctl/internal/playbook"

// Minify flattens pb into the version-3 positional-array form. The result
// is JSON-marshalable and carries no field names and no timestamps.
func (c Codec) Minify(pb *playbook.Playbook) []any {
	plays := make([]any, len(pb.Plays))
	for i := range pb.Plays {
		plays[i] = c.minifyPlay(pb.Plays[i])
	}
	return []any{Version, pb.ID, pb.Name, pb.GridConfig.ColumnNames, plays}
}

func (c Codec) minifyPlay(p playbook.Play) []any {
	players := make([]any, len(p.Players))
	for i := range p.Players {
		players[i] = c.minifyPlayer(p.Players[i])
	}
	tags := make([]any, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = []any{t.ID, t.Text, t.Color}
	}
	var grid any
	if p.GridPosition != nil {
		grid = []any{p.GridPosition.Row, p.GridPosition.Column}
	}
	var ball any
	if p.BallPosition != nil {
		ball = c.minifyPoint(*p.BallPosition)
	}
	return []any{p.ID, p.Name, players, tags, grid, ball}
}

func (c Codec) minifyPlayer(p playbook.Player) []any {
	routes := make([]any, len(p.Routes))
	for i := range p.Routes {
		routes[i] = c.minifyRoute(p.Routes[i])
	}
	var motion any
	if p.Motion != nil {
		motion = c.minifyPoint(*p.Motion)
	}
	return []any{p.ID, p.Role, p.Label, p.Color, c.minifyPoint(p.Position), motion, routes}
}

func (c Codec) minifyRoute(r playbook.RouteSegment) []any {
	points := make([]any, len(r.Points))
	for i := range r.Points {
		points[i] = c.minifyPoint(r.Points[i])
	}
	var preset any
	if r.Preset != "" {
		preset = r.Preset
	}
	code, ok := routeTypeCode[r.Type]
	if !ok {
		code = routeTypeCode[playbook.RoutePrimary]
	}
	return []any{r.ID, code, points, preset}
}
