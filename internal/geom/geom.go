// Package geom holds the small coordinate types shared by the map,
// field-of-view, pathfinding, and chunked rendering packages so none of
// them needs to import another's domain types just to talk positions.
package geom

// Pos is an integer map coordinate.
type Pos struct {
	X, Y int
}

// Add returns p shifted by (dx, dy).
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair, used for both tile counts and pixel extents
// depending on context.
type Size struct {
	W, H int
}
