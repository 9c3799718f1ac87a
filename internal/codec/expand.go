package codec

import (
	"fmt"
	"time"

	"github.com/coachtools/playctl/internal/playbook"
)

// Expand reconstructs a playbook from the version-3 minified form. When
// data is not a version-3 tuple the second return is false and the input
// must be handled by the caller as an already-expanded document; unknown
// versions are never an error. CreatedAt/UpdatedAt are stamped from now.
func (c Codec) Expand(data any, now time.Time) (*playbook.Playbook, bool, error) {
	if !IsMinified(data) {
		return nil, false, nil
	}
	arr := data.([]any)
	if len(arr) < 5 {
		return nil, true, fmt.Errorf("%w: playbook tuple has %d elements", ErrMalformed, len(arr))
	}
	id, okID := arr[1].(string)
	name, okName := arr[2].(string)
	if !okID || !okName {
		return nil, true, fmt.Errorf("%w: playbook id/name", ErrMalformed)
	}
	cols, err := asStrings(arr[3])
	if err != nil {
		return nil, true, fmt.Errorf("%w: column names", ErrMalformed)
	}
	rawPlays, ok := arr[4].([]any)
	if !ok {
		return nil, true, fmt.Errorf("%w: plays", ErrMalformed)
	}
	plays := make([]playbook.Play, len(rawPlays))
	for i, rp := range rawPlays {
		play, err := c.expandPlay(rp)
		if err != nil {
			return nil, true, fmt.Errorf("play[%d]: %w", i, err)
		}
		plays[i] = play
	}
	ms := now.UnixMilli()
	return &playbook.Playbook{
		ID:         id,
		Name:       name,
		Plays:      plays,
		GridConfig: playbook.GridConfig{ColumnNames: cols},
		CreatedAt:  ms,
		UpdatedAt:  ms,
	}, true, nil
}

func (c Codec) expandPlay(v any) (playbook.Play, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 6 {
		return playbook.Play{}, ErrMalformed
	}
	id, okID := arr[0].(string)
	name, okName := arr[1].(string)
	if !okID || !okName {
		return playbook.Play{}, ErrMalformed
	}
	rawPlayers, ok := arr[2].([]any)
	if !ok {
		return playbook.Play{}, ErrMalformed
	}
	players := make([]playbook.Player, len(rawPlayers))
	for i, rp := range rawPlayers {
		player, err := c.expandPlayer(rp)
		if err != nil {
			return playbook.Play{}, err
		}
		players[i] = player
	}
	// Absent tags decode as empty, absent grid/ball as nil. Defaults are
	// defined here once, not at call sites.
	tags := []playbook.PlayTag{}
	if rawTags, ok := arr[3].([]any); ok {
		for _, rt := range rawTags {
			tag, err := expandTag(rt)
			if err != nil {
				return playbook.Play{}, err
			}
			tags = append(tags, tag)
		}
	}
	var grid *playbook.GridPosition
	if gp, ok := arr[4].([]any); ok && len(gp) >= 2 {
		row, okR := asInt(gp[0])
		col, okC := asInt(gp[1])
		if !okR || !okC {
			return playbook.Play{}, ErrMalformed
		}
		grid = &playbook.GridPosition{Row: row, Column: col}
	}
	var ball *playbook.Point
	if arr[5] != nil {
		pt, err := c.expandPoint(arr[5])
		if err != nil {
			return playbook.Play{}, err
		}
		ball = &pt
	}
	return playbook.Play{
		ID:           id,
		Name:         name,
		Players:      players,
		Tags:         tags,
		GridPosition: grid,
		BallPosition: ball,
	}, nil
}

func (c Codec) expandPlayer(v any) (playbook.Player, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 7 {
		return playbook.Player{}, ErrMalformed
	}
	id, okID := arr[0].(string)
	role, okRole := arr[1].(string)
	label, okLabel := arr[2].(string)
	color, okColor := arr[3].(string)
	if !okID || !okRole || !okLabel || !okColor {
		return playbook.Player{}, ErrMalformed
	}
	pos, err := c.expandPoint(arr[4])
	if err != nil {
		return playbook.Player{}, err
	}
	var motion *playbook.Point
	if arr[5] != nil {
		pt, err := c.expandPoint(arr[5])
		if err != nil {
			return playbook.Player{}, err
		}
		motion = &pt
	}
	rawRoutes, ok := arr[6].([]any)
	if !ok {
		return playbook.Player{}, ErrMalformed
	}
	routes := make([]playbook.RouteSegment, len(rawRoutes))
	for i, rr := range rawRoutes {
		route, err := c.expandRoute(rr)
		if err != nil {
			return playbook.Player{}, err
		}
		routes[i] = route
	}
	return playbook.Player{
		ID:       id,
		Role:     role,
		Label:    label,
		Color:    color,
		Position: pos,
		Motion:   motion,
		Routes:   routes,
	}, nil
}

func (c Codec) expandRoute(v any) (playbook.RouteSegment, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 4 {
		return playbook.RouteSegment{}, ErrMalformed
	}
	id, okID := arr[0].(string)
	code, okCode := asInt(arr[1])
	if !okID || !okCode {
		return playbook.RouteSegment{}, ErrMalformed
	}
	// Unknown codes fall back to primary rather than failing the import.
	routeType, ok := routeTypeFromCode[code]
	if !ok {
		routeType = playbook.RoutePrimary
	}
	rawPoints, ok := arr[2].([]any)
	if !ok {
		return playbook.RouteSegment{}, ErrMalformed
	}
	points := make([]playbook.Point, len(rawPoints))
	for i, rp := range rawPoints {
		pt, err := c.expandPoint(rp)
		if err != nil {
			return playbook.RouteSegment{}, err
		}
		points[i] = pt
	}
	preset := ""
	if s, ok := arr[3].(string); ok {
		preset = s
	}
	return playbook.RouteSegment{ID: id, Type: routeType, Points: points, Preset: preset}, nil
}

func expandTag(v any) (playbook.PlayTag, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 3 {
		return playbook.PlayTag{}, ErrMalformed
	}
	id, okID := arr[0].(string)
	text, okText := arr[1].(string)
	color, okColor := arr[2].(string)
	if !okID || !okText || !okColor {
		return playbook.PlayTag{}, ErrMalformed
	}
	return playbook.PlayTag{ID: id, Text: text, Color: color}, nil
}

// asInt accepts the numeric shapes produced both by encoding/json
// (float64) and by in-process Minify output (int).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asStrings(v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out, nil
	case []any:
		out := make([]string, len(s))
		for i, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, ErrMalformed
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, ErrMalformed
	}
}
