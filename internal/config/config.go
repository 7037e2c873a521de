// Package config loads and validates the options structure described as
// a process-wide singleton in the engine's design notes: display mode,
// tileset choice, and the few player-tunable knobs (auto-run limit,
// map-chunk margin) that are not derived from the campaign seed.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TilesetKind selects which asset the tileset loader should use.
type TilesetKind string

const (
	// TilesetASCII selects the 8x8/8x14 glyph-font tilesets.
	TilesetASCII TilesetKind = "ascii"
	// TilesetSprite selects the monochrome sprite atlas.
	TilesetSprite TilesetKind = "sprite"
)

// validTilesetKinds lists the values TilesetKind may take.
var validTilesetKinds = []TilesetKind{TilesetASCII, TilesetSprite}

// Options is the process-wide, YAML-backed settings singleton: created at
// startup (or defaulted), mutated only from the main thread, and never
// touched by any other component directly — callers read it by value.
type Options struct {
	// Tileset selects the active glyph/sprite atlas.
	Tileset TilesetKind `yaml:"tileset"`

	// WindowWidth and WindowHeight are the initial window size in pixels.
	WindowWidth  int `yaml:"windowWidth"`
	WindowHeight int `yaml:"windowHeight"`

	// Zoom is the integer tile zoom factor applied to the map TileGrid.
	Zoom int `yaml:"zoom"`

	// MaxAutoRunSteps bounds the auto-run heuristic (an external
	// collaborator): a fail-safe against runaway loops, not a semantic
	// limit on how far a player could otherwise travel in one command.
	MaxAutoRunSteps int `yaml:"maxAutoRunSteps"`

	// ChunkMarginTiles is extra chunk margin (beyond the one full chunk
	// the chunked map grid always reserves) tunable for slower displays
	// that want fewer mid-shift redraws at the cost of more upload work.
	ChunkMarginTiles int `yaml:"chunkMarginTiles"`

	// Debug enables verbose logging (missing glyph, atlas fallback, etc.)
	// across the engine.
	Debug bool `yaml:"debug"`
}

// Default returns the options a fresh install starts with.
func Default() Options {
	return Options{
		Tileset:          TilesetASCII,
		WindowWidth:      1280,
		WindowHeight:     720,
		Zoom:             1,
		MaxAutoRunSteps:  200,
		ChunkMarginTiles: 0,
		Debug:            false,
	}
}

// Load reads and validates a YAML options file at path. Fields absent
// from the file keep Default's values.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML options data, starting from Default so any
// field the document omits keeps its default value.
func LoadFromBytes(data []byte) (Options, error) {
	opt := Default()
	if err := yaml.Unmarshal(data, &opt); err != nil {
		return Options{}, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := opt.Validate(); err != nil {
		return Options{}, fmt.Errorf("config: validation failed: %w", err)
	}
	return opt, nil
}

// Validate checks the options for internally-consistent values.
func (o Options) Validate() error {
	valid := false
	for _, k := range validTilesetKinds {
		if o.Tileset == k {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("tileset must be one of %v, got %q", validTilesetKinds, o.Tileset)
	}
	if o.WindowWidth <= 0 || o.WindowHeight <= 0 {
		return errors.New("windowWidth and windowHeight must be positive")
	}
	if o.Zoom < 1 {
		return errors.New("zoom must be at least 1")
	}
	if o.MaxAutoRunSteps < 1 {
		return errors.New("maxAutoRunSteps must be at least 1")
	}
	if o.ChunkMarginTiles < 0 {
		return errors.New("chunkMarginTiles must not be negative")
	}
	return nil
}

// ToYAML serializes the options back to YAML, e.g. to write a default
// options file on first run.
func (o Options) ToYAML() ([]byte, error) {
	return yaml.Marshal(o)
}
