// Package astar implements bounded-window A* pathfinding: a lazy sequence
// of map steps from a source towards a destination, with an axis-aligning
// heuristic that favors axis-aligned tails (so pursuers visually line up
// with their target along a corridor) and a best-effort fallback to the
// closest reachable tile when no path exists.
package astar

import (
	"container/heap"

	"github.com/rugg/ruggrogue/internal/geom"
)

// Blocker answers whether a tile blocks movement (opaque terrain or an
// occupying blocker). Only in-bounds coordinates are passed in; callers
// are expected to treat out-of-bounds neighbors as blocked by never
// producing them (see neighbors).
type Blocker interface {
	// InBounds reports whether (x, y) is a valid map coordinate.
	InBounds(x, y int) bool
	// IsBlocked reports whether (x, y) blocks movement.
	IsBlocked(x, y int) bool
}

const (
	costCardinal = 100
	costDiagonal = 141
)

// Path is the result of a search: a finite, non-cyclic sequence of steps,
// the first of which equals the source. A zero-value Path is empty.
type Path struct {
	steps []geom.Pos
}

// Len returns the number of steps in the path.
func (p Path) Len() int { return len(p.steps) }

// Empty reports whether the path has no steps at all.
func (p Path) Empty() bool { return len(p.steps) == 0 }

// At returns the i-th step.
func (p Path) At(i int) geom.Pos { return p.steps[i] }

// Steps returns a lazy cursor over the path, typically read only a step or
// two per turn by the caller.
func (p Path) Steps() *StepIter {
	return &StepIter{path: p}
}

// StepIter walks a Path one step at a time.
type StepIter struct {
	path Path
	i    int
}

// Next returns the next step, or ok=false once the path is exhausted.
func (s *StepIter) Next() (geom.Pos, bool) {
	if s.i >= len(s.path.steps) {
		return geom.Pos{}, false
	}
	step := s.path.steps[s.i]
	s.i++
	return step, true
}

// heuristic returns the axis-aligning estimate from a to b: diagonal
// moves are cheaper per-axis-unit than the true cost would suggest,
// biasing equal-cost paths to spend their diagonals early so the tail of
// the path runs cardinal.
func heuristic(a, b geom.Pos) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	lo, hi := dx, dy
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo*costDiagonal + (hi-lo)*99
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func stepCost(dx, dy int) int {
	if dx != 0 && dy != 0 {
		return costDiagonal
	}
	return costCardinal
}

// openEntry is one frontier member in the priority queue.
type openEntry struct {
	pos      geom.Pos
	priority int // g + h
	order    int // insertion order, for stable tie-breaking
	index    int // heap.Interface bookkeeping
}

type openQueue []*openEntry

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].order < q[j].order
}
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *openQueue) Push(x any) {
	e := x.(*openEntry)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *openQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// FindPath searches for a shortest path from src to dst on the sub-rectangle
// bounded by their bounding box expanded by pad tiles on every side. If no
// path reaches dst, FindPath returns an empty Path unless fallback is set,
// in which case it returns a path to whichever reachable tile had the
// smallest heuristic to dst.
func FindPath(m Blocker, src, dst geom.Pos, pad int, fallback bool) Path {
	minX, maxX := src.X, dst.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := src.Y, dst.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	minX -= pad
	minY -= pad
	maxX += pad
	maxY += pad

	inWindow := func(p geom.Pos) bool {
		return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
	}

	costSoFar := map[geom.Pos]int{src: 0}
	cameFrom := map[geom.Pos]geom.Pos{}

	frontier := &openQueue{}
	heap.Init(frontier)
	order := 0
	push := func(p geom.Pos, priority int) {
		heap.Push(frontier, &openEntry{pos: p, priority: priority, order: order})
		order++
	}
	push(src, heuristic(src, dst))

	closest := src
	closestH := heuristic(src, dst)

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(*openEntry)
		curCost, known := costSoFar[cur.pos]
		if !known {
			continue
		}
		if cur.priority != curCost+heuristic(cur.pos, dst) {
			// Stale entry: a cheaper one for the same tile was already
			// pushed and will be (or was) processed instead.
			continue
		}

		h := heuristic(cur.pos, dst)
		if h < closestH {
			closest, closestH = cur.pos, h
		}

		if cur.pos == dst {
			return rebuildPath(cameFrom, src, dst)
		}

		for _, off := range neighborOffsets {
			nx, ny := cur.pos.X+off[0], cur.pos.Y+off[1]
			np := geom.Pos{X: nx, Y: ny}
			if !inWindow(np) || !m.InBounds(nx, ny) {
				continue
			}
			if np != dst && m.IsBlocked(nx, ny) {
				continue
			}
			newCost := curCost + stepCost(off[0], off[1])
			if existing, ok := costSoFar[np]; ok && existing <= newCost {
				continue
			}
			costSoFar[np] = newCost
			cameFrom[np] = cur.pos
			push(np, newCost+heuristic(np, dst))
		}
	}

	if fallback {
		return rebuildPath(cameFrom, src, closest)
	}
	return Path{}
}

// rebuildPath walks cameFrom backwards from dst to src and reverses the
// result in place so the first step equals src.
func rebuildPath(cameFrom map[geom.Pos]geom.Pos, src, dst geom.Pos) Path {
	steps := []geom.Pos{dst}
	cur := dst
	for cur != src {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		steps = append(steps, prev)
		cur = prev
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return Path{steps: steps}
}
