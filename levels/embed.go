package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	DefaultLevel = "demo.json"

	EntityPlayerSpawn = "player_spawn"
)

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a row-major tile map. Row 0 is the top row; tiles are one world
// unit wide unless TileSize says otherwise.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a placed marker in tile coordinates.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return parse(name, data)
}

// Load reads name from disk when it exists, otherwise from the embedded
// levels.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return parse(name, data)
	}
	return LoadLevelFromFS(name)
}

func parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

func (l *Level) Tile() float64 {
	if l.TileSize <= 0 {
		return 1
	}
	return l.TileSize
}

// PhysicsLayers returns the layers flagged for collision. Without layer
// metadata every layer collides.
func (l *Level) PhysicsLayers() [][]int {
	if len(l.LayerMeta) == 0 {
		return l.Layers
	}
	var out [][]int
	for i, layer := range l.Layers {
		if i < len(l.LayerMeta) && l.LayerMeta[i].Physics {
			out = append(out, layer)
		}
	}
	return out
}

// Spawn is the world position of the player spawn marker: the centre of its
// tile, +Y up. Levels without one spawn above the middle of the map.
func (l *Level) Spawn() cp.Vector {
	tile := l.Tile()
	for _, e := range l.Entities {
		if e.Type == EntityPlayerSpawn {
			return l.TileCenter(e.X, e.Y)
		}
	}
	return cp.Vector{X: float64(l.Width) * tile / 2, Y: float64(l.Height) * tile}
}

// TileCenter converts tile coordinates (row 0 at the top) to world space.
func (l *Level) TileCenter(x, y int) cp.Vector {
	tile := l.Tile()
	return cp.Vector{
		X: (float64(x) + 0.5) * tile,
		Y: (float64(l.Height-y) - 0.5) * tile,
	}
}
