// Command ruggrogue runs the engine demo: a scrolling, chunked map view
// driven by keyboard input, with symmetric FOV, a wandering monster
// tracked by A*, and seeded generation wired through the library
// packages in internal/.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rugg/ruggrogue/internal/astar"
	"github.com/rugg/ruggrogue/internal/chunk"
	"github.com/rugg/ruggrogue/internal/config"
	"github.com/rugg/ruggrogue/internal/entity"
	"github.com/rugg/ruggrogue/internal/fov"
	"github.com/rugg/ruggrogue/internal/geom"
	"github.com/rugg/ruggrogue/internal/layer"
	"github.com/rugg/ruggrogue/internal/mapdebug"
	"github.com/rugg/ruggrogue/internal/rng"
	"github.com/rugg/ruggrogue/internal/tile"
	"github.com/rugg/ruggrogue/internal/worldmap"
)

const version = "0.1.0"

const (
	playerID  entity.ID = 1
	monsterID entity.ID = 2
)

// scrollAnimDuration is how long the camera takes to ease onto a new
// level's centroid, matching willow's Camera.ScrollTo usage.
const scrollAnimDuration float32 = 0.5

var (
	configPath = flag.String("config", "", "Path to a YAML options file (optional, defaults applied otherwise)")
	dumpSVG    = flag.String("dump-svg", "", "Write a debug SVG snapshot of the generated map to this path and exit")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("ruggrogue version %s\n", version)
		return
	}
	if *help {
		printHelp()
		return
	}

	var campaignSeed uint64
	if args := flag.Args(); len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ruggrogue: invalid campaign seed %q: %v\n", args[0], err)
			os.Exit(1)
		}
		campaignSeed = v
	}

	opt := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ruggrogue: %v\n", err)
			os.Exit(1)
		}
		opt = loaded
	}
	if opt.Debug {
		tile.SetDebug(true)
	}

	m, registry := generateLevel(campaignSeed, 0)

	if *dumpSVG != "" {
		if err := mapdebug.SaveToFile(m, nil, nil, *dumpSVG, mapdebug.DefaultOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "ruggrogue: writing debug SVG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote debug map snapshot to %s\n", *dumpSVG)
		return
	}

	g, err := newGame(opt, m, registry, campaignSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ruggrogue: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(opt.WindowWidth, opt.WindowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("ruggrogue (seed %d)", campaignSeed))
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "ruggrogue: %v\n", err)
		os.Exit(1)
	}
}

// generateLevel lays out a simple bordered room with scattered walls, a
// player, and a wandering monster; it stands in for a full dungeon
// generator, which is outside this engine's scope. level differentiates
// the RNG context so descending produces a new layout from the same
// campaign seed.
func generateLevel(campaignSeed uint64, level int) (*worldmap.Map, *entity.Registry) {
	const w, h = 64, 64
	m := worldmap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				m.SetOpaque(x, y, true)
			}
		}
	}

	src := rng.New(rng.MagicGenerateRoomsAndCorridors, campaignSeed, rng.U32(level))
	for i := 0; i < 12; i++ {
		x := src.Intn(2, w-2)
		y := src.Intn(2, h-2)
		m.SetOpaque(x, y, true)
	}

	registry := entity.NewRegistry(m, entity.NewInventory())
	registry.Spawn(playerID, true)
	registry.SetPlayer(playerID)
	m.Place(playerID, geom.Pos{X: w / 2, Y: h / 2}, true)

	monsterSrc := rng.New(rng.MagicSpawnMonsters, campaignSeed, rng.U32(level))
	var monsterPos geom.Pos
	for {
		monsterPos = geom.Pos{X: monsterSrc.Intn(2, w-2), Y: monsterSrc.Intn(2, h-2)}
		if !m.IsOpaque(monsterPos.X, monsterPos.Y) && monsterPos != (geom.Pos{X: w / 2, Y: h / 2}) {
			break
		}
	}
	registry.Spawn(monsterID, true)
	m.Place(monsterID, monsterPos, true)

	return m, registry
}

// game implements ebiten.Game, tying the chunked map grid, FOV, A*-driven
// monster, and player movement together into one screen.
type game struct {
	opt          config.Options
	campaignSeed uint64
	level        int

	m        *worldmap.Map
	registry *entity.Registry

	tileset *tile.Tileset
	grid    *tile.TileGrid
	stack   *layer.Stack
	chunks  *chunk.Grid

	screenTilesW, screenTilesH int
}

func newGame(opt config.Options, m *worldmap.Map, registry *entity.Registry, campaignSeed uint64) (*game, error) {
	src, charMap := tile.GenerateASCIIAtlas()
	tw, th := tile.GlyphFaceWidth, tile.GlyphFaceHeight

	ts, err := tile.LoadTileset(src, tw, th, charMap, nil, '?')
	if err != nil {
		return nil, fmt.Errorf("ruggrogue: loading tileset: %w", err)
	}

	screenTilesW := opt.WindowWidth / (tw * opt.Zoom)
	screenTilesH := opt.WindowHeight / (th * opt.Zoom)

	grid := tile.NewTileGrid(screenTilesW+2, screenTilesH+2, ts)
	view := tile.NewTileGridView(0, 0, screenTilesW+2, screenTilesH+2)
	view.Zoom = opt.Zoom
	grid.SetView(view)

	l := &layer.Layer{Grids: []*tile.TileGrid{grid}, DrawsBehind: false}
	stack := layer.New()
	stack.Push(l)

	return &game{
		opt:          opt,
		campaignSeed: campaignSeed,
		m:            m,
		registry:     registry,
		tileset:      ts,
		grid:         grid,
		stack:        stack,
		chunks:       chunk.NewGrid(opt.WindowWidth, opt.WindowHeight, tw*opt.Zoom, th*opt.Zoom),
		screenTilesW: screenTilesW,
		screenTilesH: screenTilesH,
	}, nil
}

func (g *game) Update() error {
	dx, dy := 0, 0
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		dx = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		dx = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		dy = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		dy = 1
	}
	moved := false
	if dx != 0 || dy != 0 {
		if pos, ok := g.m.PositionOf(playerID); ok {
			to := pos.Add(dx, dy)
			if g.m.InBounds(to.X, to.Y) && !g.m.IsBlocked(to.X, to.Y) {
				g.m.Move(playerID, to, true)
				g.chunks.MarkDirty(pos.X, pos.Y)
				g.chunks.MarkDirty(to.X, to.Y)
				moved = true
			}
		}
	}
	if moved {
		g.stepMonster()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.descend()
	}
	g.stack.Update(1.0 / 60.0)
	return nil
}

// stepMonster advances the wandering monster one step along the A* path
// toward the player, recomputed fresh every turn since the player moves
// between calls.
func (g *game) stepMonster() {
	if !g.registry.IsLive(monsterID) {
		return
	}
	from, ok := g.m.PositionOf(monsterID)
	if !ok {
		return
	}
	to, ok := g.m.PositionOf(playerID)
	if !ok {
		return
	}
	path := astar.FindPath(g.m, from, to, 4, true)
	steps := path.Steps()
	if _, ok := steps.Next(); !ok {
		return // path starts at from itself
	}
	next, ok := steps.Next()
	if !ok || g.m.IsBlocked(next.X, next.Y) {
		return
	}
	g.m.Move(monsterID, next, true)
	g.chunks.MarkDirty(from.X, from.Y)
	g.chunks.MarkDirty(next.X, next.Y)
}

// descend regenerates the map as a new level and eases the camera onto
// the new player centroid via the chunk grid's scroll-to animation,
// rather than snapping the view there in a single frame.
func (g *game) descend() {
	g.level++
	m, registry := generateLevel(g.campaignSeed, g.level)
	g.m = m
	g.registry = registry
	g.chunks.MarkAllDirty()

	pos, _ := m.PositionOf(playerID)
	g.chunks.ScrollTo(pos, scrollAnimDuration)
}

func (g *game) Draw(screen *ebiten.Image) {
	target, _ := g.m.PositionOf(playerID)
	camera, animating := g.chunks.Animate(target, 1.0/60.0)
	if !animating {
		camera = target
	}

	offset := g.chunks.Retile(camera, g.screenTilesW, g.screenTilesH)
	g.chunks.Dirty()

	view := fov.NewView(mapAdapter{g.m}, target, 10, fov.CirclePlus)
	visible := fov.Compute(view)

	g.grid.SetDrawOffset(offset.X, offset.Y)
	g.paintVisibleRegion(visible, camera)
	g.grid.Render()
	g.grid.Upload()

	g.stack.Display(func(tg *tile.TileGrid) {
		tg.Display(screen)
	})
}

func (g *game) paintVisibleRegion(visible *fov.Bitmap, origin geom.Pos) {
	grid := g.grid.Grid()
	w, h := grid.Width(), grid.Height()
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			mx := origin.X - w/2 + gx
			my := origin.Y - h/2 + gy
			if !g.m.InBounds(mx, my) || !visible.IsVisible(mx, my) {
				grid.Set(gx, gy, tile.BlankCell)
				continue
			}
			sym := tile.Symbol{}
			if g.m.IsOpaque(mx, my) {
				sym = tile.Char('#')
			} else {
				sym = tile.Char('.')
			}
			fg := tile.White
			if !visible.IsSymmetric(mx, my) {
				fg = tile.Color{R: 120, G: 120, B: 120}
			}
			for _, occ := range g.m.Occupants(mx, my) {
				switch occ {
				case playerID:
					sym = tile.Char('@')
				case monsterID:
					sym = tile.Char('m')
				}
			}
			grid.Set(gx, gy, tile.Cell{Symbol: sym, FG: fg, BG: tile.Black})
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opt.WindowWidth, g.opt.WindowHeight
}

// mapAdapter satisfies fov.Map using worldmap.Map's opacity cache.
type mapAdapter struct{ m *worldmap.Map }

func (a mapAdapter) InBounds(x, y int) bool { return a.m.InBounds(x, y) }
func (a mapAdapter) IsOpaque(x, y int) bool { return a.m.IsOpaque(x, y) }

func printHelp() {
	fmt.Printf("ruggrogue version %s\n\n", version)
	fmt.Println("Usage:")
	fmt.Println("  ruggrogue [options] [seed]")
	fmt.Println("\nArguments:")
	fmt.Println("  seed       Optional 64-bit unsigned campaign seed (defaults to 0 if omitted)")
	fmt.Println("\nControls:")
	fmt.Println("  Arrow keys Move the player; the monster takes one A*-tracked step in turn")
	fmt.Println("  Enter      Descend to a freshly generated level")
	fmt.Println("\nOptions:")
	fmt.Println("  -config string   Path to a YAML options file")
	fmt.Println("  -dump-svg string Write a debug SVG map snapshot and exit")
	fmt.Println("  -version         Print version and exit")
	fmt.Println("  -help            Show this help message")
}
