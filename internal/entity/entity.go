// Package entity implements an ownership graph over map entities: every
// entity is owned by a single registry, the map holds only weak IDs (see
// internal/worldmap), and despawn is the one entry point that cascades
// removal through the registry, the map's occupancy cache, and any
// inventory/equipment lists referencing the entity.
package entity

import "github.com/rugg/ruggrogue/internal/worldmap"

// ID identifies an entity. The zero value is never assigned by Registry.
type ID = worldmap.EntityID

// Despawner removes an entity from a cache it participates in.
// worldmap.Map satisfies it; Inventory does not, and is cleaned up through
// its own removeReference/dropAll methods, called from Registry.Despawn.
type Despawner interface {
	Remove(id ID, blocksPath bool)
}

// Inventory tracks which entities are held by which other entity (carried
// items, equipped gear). It is the "equipment/inventory list" referenced
// by the reachability rule in §9.
type Inventory struct {
	heldBy map[ID][]ID // owner -> held item IDs
}

// NewInventory creates an empty inventory tracker.
func NewInventory() *Inventory {
	return &Inventory{heldBy: make(map[ID][]ID)}
}

// Give records that owner holds item.
func (inv *Inventory) Give(owner, item ID) {
	inv.heldBy[owner] = append(inv.heldBy[owner], item)
}

// Items returns the items held by owner. Must not be mutated by the caller.
func (inv *Inventory) Items(owner ID) []ID {
	return inv.heldBy[owner]
}

// dropAll deletes owner's held-item list and returns the items it held, so
// the caller can cascade the despawn to them. It does not touch other
// owners' lists; removeReference strips an item from those. Registry.Despawn
// calls dropAll once per removed ID, so the cascade reaches every level.
func (inv *Inventory) dropAll(owner ID) []ID {
	items := inv.heldBy[owner]
	delete(inv.heldBy, owner)
	return items
}

func (inv *Inventory) removeReference(item ID) {
	for owner, items := range inv.heldBy {
		for i, held := range items {
			if held == item {
				items[i] = items[len(items)-1]
				inv.heldBy[owner] = items[:len(items)-1]
				break
			}
		}
	}
}

// Registry owns the set of live entities. Entities blocking pathing are
// tracked so despawn can balance the map's blocking-count cache correctly.
type Registry struct {
	m          *worldmap.Map
	inventory  *Inventory
	live       map[ID]bool
	blockers   map[ID]bool
	player     ID
	hasPlayer  bool
	difficulty ID
	hasDiff    bool
}

// NewRegistry creates a registry bound to a map and inventory tracker.
func NewRegistry(m *worldmap.Map, inv *Inventory) *Registry {
	return &Registry{
		m:         m,
		inventory: inv,
		live:      make(map[ID]bool),
		blockers:  make(map[ID]bool),
	}
}

// Spawn registers a new live entity. blocksPath records whether it should
// decrement the map's blocking count on despawn.
func (r *Registry) Spawn(id ID, blocksPath bool) {
	r.live[id] = true
	if blocksPath {
		r.blockers[id] = true
	}
}

// SetPlayer marks id as the owned-global player entity (always reachable).
func (r *Registry) SetPlayer(id ID) {
	r.player = id
	r.hasPlayer = true
}

// SetDifficultyTracker marks id as the owned-global difficulty tracker.
func (r *Registry) SetDifficultyTracker(id ID) {
	r.difficulty = id
	r.hasDiff = true
}

// IsLive reports whether id is currently registered.
func (r *Registry) IsLive(id ID) bool {
	return r.live[id]
}

// Reachable reports whether id is reachable per §9: it is an owned global,
// has a map position, or is held in a reachable entity's inventory. This
// implementation checks the first two directly and, for inventory
// membership, walks ownership chains from the player, the difficulty
// tracker, and every map-placed entity — any entity not found by that walk
// is a leak.
func (r *Registry) Reachable(id ID) bool {
	if !r.live[id] {
		return false
	}
	if r.hasPlayer && id == r.player {
		return true
	}
	if r.hasDiff && id == r.difficulty {
		return true
	}
	if _, onMap := r.m.PositionOf(id); onMap {
		return true
	}
	visited := make(map[ID]bool)
	var roots []ID
	if r.hasPlayer {
		roots = append(roots, r.player)
	}
	if r.hasDiff {
		roots = append(roots, r.difficulty)
	}
	for _, placed := range r.walkMapRoots() {
		roots = append(roots, placed)
	}
	for _, root := range roots {
		if r.reachesFrom(root, id, visited) {
			return true
		}
	}
	return false
}

// walkMapRoots yields every entity currently placed on the map, since any
// of them may (transitively) hold id in their inventory.
func (r *Registry) walkMapRoots() []ID {
	var roots []ID
	for id := range r.live {
		if _, onMap := r.m.PositionOf(id); onMap {
			roots = append(roots, id)
		}
	}
	return roots
}

func (r *Registry) reachesFrom(root, target ID, visited map[ID]bool) bool {
	if root == target {
		return true
	}
	if visited[root] {
		return false
	}
	visited[root] = true
	for _, item := range r.inventory.Items(root) {
		if r.reachesFrom(item, target, visited) {
			return true
		}
	}
	return false
}

// Despawn is the single entry point for removing an entity: it strips id
// from the registry, the map's occupancy cache, and every inventory list
// referencing it, then cascades to anything id itself was holding.
func (r *Registry) Despawn(id ID) {
	if !r.live[id] {
		return
	}
	blocksPath := r.blockers[id]

	if _, onMap := r.m.PositionOf(id); onMap {
		r.m.Remove(id, blocksPath)
	}
	r.inventory.removeReference(id)

	held := r.inventory.dropAll(id)

	delete(r.live, id)
	delete(r.blockers, id)

	for _, child := range held {
		r.Despawn(child)
	}
}
