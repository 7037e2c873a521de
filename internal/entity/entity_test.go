package entity

import (
	"testing"

	"github.com/rugg/ruggrogue/internal/geom"
	"github.com/rugg/ruggrogue/internal/worldmap"
)

func TestPlayerAlwaysReachable(t *testing.T) {
	m := worldmap.New(5, 5)
	inv := NewInventory()
	r := NewRegistry(m, inv)

	const player ID = 1
	r.Spawn(player, true)
	r.SetPlayer(player)

	if !r.Reachable(player) {
		t.Fatal("player should be reachable even without a map position")
	}
}

func TestCarriedItemReachableThroughOwner(t *testing.T) {
	m := worldmap.New(5, 5)
	inv := NewInventory()
	r := NewRegistry(m, inv)

	const player, sword ID = 1, 2
	r.Spawn(player, true)
	r.SetPlayer(player)
	r.Spawn(sword, false)
	inv.Give(player, sword)

	if !r.Reachable(sword) {
		t.Fatal("sword held by the player should be reachable")
	}
}

func TestUnheldUnplacedEntityUnreachable(t *testing.T) {
	m := worldmap.New(5, 5)
	inv := NewInventory()
	r := NewRegistry(m, inv)

	const orphan ID = 3
	r.Spawn(orphan, false)

	if r.Reachable(orphan) {
		t.Fatal("an entity with no position and no owner should be unreachable")
	}
}

func TestDespawnCascadesToInventory(t *testing.T) {
	m := worldmap.New(5, 5)
	inv := NewInventory()
	r := NewRegistry(m, inv)

	const monster, potion ID = 10, 11
	r.Spawn(monster, true)
	m.Place(worldmap.EntityID(monster), geom.Pos{X: 2, Y: 2}, true)
	r.Spawn(potion, false)
	inv.Give(monster, potion)

	r.Despawn(monster)

	if r.IsLive(monster) {
		t.Fatal("monster should no longer be live")
	}
	if r.IsLive(potion) {
		t.Fatal("potion held by despawned monster should cascade-despawn")
	}
	if m.IsBlocked(2, 2) {
		t.Fatal("map cell should be unblocked after monster despawn")
	}
	if len(inv.Items(monster)) != 0 {
		t.Fatal("inventory should be cleared for despawned owner")
	}
}

func TestDespawnRemovesDanglingReferenceWithoutDoubleFree(t *testing.T) {
	m := worldmap.New(5, 5)
	inv := NewInventory()
	r := NewRegistry(m, inv)

	const owner, item ID = 20, 21
	r.Spawn(owner, false)
	r.Spawn(item, false)
	inv.Give(owner, item)

	// Despawn the item directly first; owner's list must drop the reference
	// so a later despawn of owner does not attempt to despawn item twice.
	r.Despawn(item)
	if got := inv.Items(owner); len(got) != 0 {
		t.Fatalf("owner should have no items left, got %v", got)
	}

	r.Despawn(owner)
	if r.IsLive(owner) {
		t.Fatal("owner should be despawned")
	}
}
