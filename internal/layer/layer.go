// Package layer implements the bottom-to-top display stack that composes
// a frame's TileGrids: the screen/menu/dialog stack of a roguelike, where
// pushing a menu over the map dims (but still shows) the map beneath it,
// and only the top layer receives per-frame update calls.
package layer

import "github.com/rugg/ruggrogue/internal/tile"

// Updater is anything a Layer can drive update calls into. Only the
// top-of-stack layer's Updater is invoked per frame.
type Updater interface {
	Update(dt float64)
}

// Layer is one entry in the stack: an ordered list of TileGrids displayed
// together, and a flag controlling whether layers below it are still
// shown (dimmed) or fully obscured.
type Layer struct {
	Grids       []*tile.TileGrid
	DrawsBehind bool
	Updater     Updater
}

// Stack is the ordered bottom-to-top sequence of layers. Index 0 is the
// bottom of the stack (e.g. the map); the highest index is the most
// recently opened screen.
type Stack struct {
	layers []*Layer
}

// New creates an empty stack.
func New() *Stack { return &Stack{} }

// Push opens a new top-of-stack layer.
func (s *Stack) Push(l *Layer) { s.layers = append(s.layers, l) }

// Pop closes the top-of-stack layer. No-op on an empty stack.
func (s *Stack) Pop() {
	if len(s.layers) == 0 {
		return
	}
	s.layers = s.layers[:len(s.layers)-1]
}

// Swap replaces the top-of-stack layer with l, for transitions between
// sibling screens (e.g. swapping one menu tab for another) without an
// intermediate empty frame.
func (s *Stack) Swap(l *Layer) {
	if len(s.layers) == 0 {
		s.Push(l)
		return
	}
	s.layers[len(s.layers)-1] = l
}

// Top returns the top-of-stack layer, or nil if the stack is empty.
func (s *Stack) Top() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// Len reports the number of layers currently on the stack.
func (s *Stack) Len() int { return len(s.layers) }

// visibleFrom is the index of the lowest layer that must be displayed:
// the highest-indexed layer whose DrawsBehind is false, or 0 (the bottom
// layer) if every layer is transparent.
func (s *Stack) visibleFrom() int {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if !s.layers[i].DrawsBehind {
			return i
		}
	}
	return 0
}

// Update drives the top-of-stack layer's Updater, if any. Per the
// ordering rule, only the top-most layer receives update calls.
func (s *Stack) Update(dt float64) {
	top := s.Top()
	if top == nil || top.Updater == nil {
		return
	}
	top.Updater.Update(dt)
}

// dimAlpha is the ModAlpha applied to every grid of a layer strictly
// below the top while it is still visible (e.g. the map showing through
// behind an open menu).
const dimAlpha float32 = 0.5

// Display renders every visible layer, from visibleFrom() up to the top,
// back-to-front, so later layers composite over earlier ones. Layers
// strictly below the top have their TileGridViews' ModAlpha dimmed to
// dimAlpha for the duration of their draw call, then restored, so a
// grid's view reflects its own state rather than carrying the dim
// between frames.
func (s *Stack) Display(draw func(g *tile.TileGrid)) {
	start := s.visibleFrom()
	top := len(s.layers) - 1
	for i := start; i < len(s.layers); i++ {
		if i == top {
			for _, g := range s.layers[i].Grids {
				draw(g)
			}
			continue
		}
		for _, g := range s.layers[i].Grids {
			orig := g.View()
			dimmed := orig
			dimmed.ModAlpha = dimAlpha
			g.SetView(dimmed)
			draw(g)
			g.SetView(orig)
		}
	}
}
