// Package worldmap provides a concrete map model satisfying the fov.Map
// and astar.Blocker contracts, plus a position-to-entities occupancy
// cache: every entity with a map position is indexed there, and any
// entity that blocks pathing contributes to a blocking-count at its
// cell. Moving an entity updates both atomically.
//
// Map generation, monster AI, and combat live outside this package; it
// only supplies the minimal terrain+occupancy substrate the FOV, A*, and
// chunked-rendering components need to operate against.
package worldmap

import "github.com/rugg/ruggrogue/internal/geom"

// EntityID identifies an occupant without the map owning it — entities
// are owned by an entity.Registry (see internal/entity); the map holds
// only IDs.
type EntityID uint32

// Map is a rectangular grid of terrain plus an occupancy cache.
type Map struct {
	w, h   int
	opaque []bool // row-major, len w*h

	occupants map[geom.Pos][]EntityID
	blockers  map[geom.Pos]int // count of blocking entities per cell
	positions map[EntityID]geom.Pos
}

// New creates a w x h map with every tile passable.
func New(w, h int) *Map {
	return &Map{
		w:         w,
		h:         h,
		opaque:    make([]bool, w*h),
		occupants: make(map[geom.Pos][]EntityID),
		blockers:  make(map[geom.Pos]int),
		positions: make(map[EntityID]geom.Pos),
	}
}

// Width and Height report the map's dimensions.
func (m *Map) Width() int  { return m.w }
func (m *Map) Height() int { return m.h }

// InBounds reports whether (x, y) is within the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.w && y >= 0 && y < m.h
}

// IsOpaque reports whether (x, y) blocks sight. Out-of-bounds coordinates
// are treated as opaque (a safe default per §7).
func (m *Map) IsOpaque(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.opaque[y*m.w+x]
}

// SetOpaque marks (x, y) as opaque or passable. Out-of-bounds is a no-op.
func (m *Map) SetOpaque(x, y int, opaque bool) {
	if !m.InBounds(x, y) {
		return
	}
	m.opaque[y*m.w+x] = opaque
}

// IsBlocked reports whether (x, y) blocks movement: opaque terrain or at
// least one blocking occupant. Out-of-bounds is blocked (a safe default).
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	if m.opaque[y*m.w+x] {
		return true
	}
	return m.blockers[geom.Pos{X: x, Y: y}] > 0
}

// Occupants returns the entities currently at (x, y). The returned slice
// must not be retained or mutated by the caller.
func (m *Map) Occupants(x, y int) []EntityID {
	return m.occupants[geom.Pos{X: x, Y: y}]
}

// PositionOf reports the current position of id, if it is placed on the map.
func (m *Map) PositionOf(id EntityID) (geom.Pos, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// Place puts id at p for the first time (or re-places an unplaced entity).
// blocksPath indicates whether the entity contributes to the
// blocking-count cache. Placing an already-placed entity is a programmer
// error; call Move instead.
func (m *Map) Place(id EntityID, p geom.Pos, blocksPath bool) {
	if _, already := m.positions[id]; already {
		panic("worldmap: entity already placed, use Move")
	}
	m.positions[id] = p
	m.occupants[p] = append(m.occupants[p], id)
	if blocksPath {
		m.blockers[p]++
	}
}

// Move atomically updates id's stored position and both occupancy caches.
// blocksPath must match the value passed to Place (or the previous Move)
// so the blocking count stays balanced.
func (m *Map) Move(id EntityID, to geom.Pos, blocksPath bool) {
	from, ok := m.positions[id]
	if !ok {
		panic("worldmap: entity not placed, use Place")
	}
	m.removeOccupant(from, id)
	if blocksPath {
		m.blockers[from]--
		if m.blockers[from] <= 0 {
			delete(m.blockers, from)
		}
	}

	m.positions[id] = to
	m.occupants[to] = append(m.occupants[to], id)
	if blocksPath {
		m.blockers[to]++
	}
}

// Remove strips id from the map entirely (occupancy cache and position),
// decrementing the blocking count if it was a blocker. Called by the
// entity registry's despawn path (see internal/entity).
func (m *Map) Remove(id EntityID, blocksPath bool) {
	pos, ok := m.positions[id]
	if !ok {
		return
	}
	m.removeOccupant(pos, id)
	if blocksPath {
		m.blockers[pos]--
		if m.blockers[pos] <= 0 {
			delete(m.blockers, pos)
		}
	}
	delete(m.positions, id)
}

func (m *Map) removeOccupant(p geom.Pos, id EntityID) {
	list := m.occupants[p]
	for i, existing := range list {
		if existing == id {
			list[i] = list[len(list)-1]
			m.occupants[p] = list[:len(list)-1]
			break
		}
	}
	if len(m.occupants[p]) == 0 {
		delete(m.occupants, p)
	}
}
