package sorter

import (
	"os"
	"slices"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Level is one row of the level table.
type Level struct {
	// Speed is the carrier speed in pixels per FrameUnit.
	Speed float64 `yaml:"speed"`
	// Spacing sets spawn cadence: one carrier every Spacing/Speed milliseconds.
	Spacing float64 `yaml:"spacing"`
	// Quota is the number of processed shapes that completes the level.
	Quota int `yaml:"quota"`
}

// SpawnInterval is the time between two carrier spawns on this level.
func (l Level) SpawnInterval() time.Duration {
	return time.Duration(l.Spacing / l.Speed * float64(time.Millisecond))
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config describes one session. It is validated once by New and never
// changes afterwards.
type Config struct {
	Field       Size    `yaml:"field"`
	LaneY       float64 `yaml:"lane_y"`
	ShapeOffset Vec2    `yaml:"shape_offset"`
	SpawnX      float64 `yaml:"spawn_x"`
	RetireX     float64 `yaml:"retire_x"`

	CaptureRadius float64 `yaml:"capture_radius"`
	Reward        int     `yaml:"reward"`

	FrameUnit       time.Duration `yaml:"frame_unit"`
	FirstSpawnDelay time.Duration `yaml:"first_spawn_delay"`
	ReturnDuration  time.Duration `yaml:"return_duration"`
	TransitionDelay time.Duration `yaml:"transition_delay"`

	RestDepth int `yaml:"rest_depth"`
	DragDepth int `yaml:"drag_depth"`

	Kinds   []ShapeKind `yaml:"kinds"`
	Baskets []Basket    `yaml:"baskets"`
	Levels  []Level     `yaml:"levels"`
}

// DefaultConfig is the classic three level game on an 800x600 field.
func DefaultConfig() Config {
	return Config{
		Field:       Size{Width: 800, Height: 600},
		LaneY:       300,
		ShapeOffset: Vec2{X: 0, Y: -25},
		SpawnX:      850,
		RetireX:     -100,

		CaptureRadius: 60,
		Reward:        10,

		FrameUnit:       16 * time.Millisecond,
		FirstSpawnDelay: time.Second,
		ReturnDuration:  300 * time.Millisecond,
		TransitionDelay: 1500 * time.Millisecond,

		RestDepth: 10,
		DragDepth: 100,

		Kinds: []ShapeKind{Circle, Triangle, Square, Rectangle},
		Baskets: []Basket{
			{Kind: Circle, Position: Vec2{X: 120, Y: 150}},
			{Kind: Triangle, Position: Vec2{X: 680, Y: 150}},
			{Kind: Square, Position: Vec2{X: 120, Y: 450}},
			{Kind: Rectangle, Position: Vec2{X: 680, Y: 450}},
		},
		Levels: []Level{
			{Speed: 1, Spacing: 1600, Quota: 25},
			{Speed: 1.5, Spacing: 1500, Quota: 25},
			{Speed: 2, Spacing: 1500, Quota: 25},
		},
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig, so a file
// only needs the keys it changes, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path. An empty path yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, eris.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// YAML encodes the config in the format ParseConfig reads.
func (c Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode config")
	}
	return data, nil
}

// Validate reports the first problem found. Every error wraps one of the
// package's Err values.
func (c Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return eris.Wrapf(ErrInvalidParameter, "field %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.RetireX >= c.SpawnX {
		return eris.Wrapf(ErrInvalidTrack, "retire_x %v, spawn_x %v", c.RetireX, c.SpawnX)
	}
	if c.CaptureRadius <= 0 {
		return eris.Wrapf(ErrInvalidParameter, "capture_radius %v", c.CaptureRadius)
	}
	if c.Reward <= 0 {
		return eris.Wrapf(ErrInvalidParameter, "reward %d", c.Reward)
	}
	if c.FrameUnit <= 0 {
		return eris.Wrapf(ErrInvalidParameter, "frame_unit %v", c.FrameUnit)
	}
	if c.FirstSpawnDelay < 0 || c.ReturnDuration < 0 || c.TransitionDelay < 0 {
		return eris.Wrap(ErrInvalidParameter, "durations must not be negative")
	}
	if c.DragDepth <= c.RestDepth {
		return eris.Wrapf(ErrInvalidParameter, "drag_depth %d must exceed rest_depth %d", c.DragDepth, c.RestDepth)
	}

	if err := c.validateKinds(); err != nil {
		return err
	}

	if len(c.Levels) == 0 {
		return eris.Wrap(ErrNoLevels, "")
	}
	for i, l := range c.Levels {
		if l.Speed <= 0 || l.Spacing <= 0 || l.Quota <= 0 {
			return eris.Wrapf(ErrInvalidLevel, "level %d: %+v", i+1, l)
		}
	}
	return nil
}

func (c Config) validateKinds() error {
	if len(c.Kinds) == 0 {
		return eris.Wrap(ErrMissingBasket, "no shape kinds configured")
	}

	kinds := make(map[ShapeKind]bool, len(c.Kinds))
	for _, k := range c.Kinds {
		if !k.Valid() {
			return eris.Wrapf(ErrUnknownKind, "%d", uint8(k))
		}
		if kinds[k] {
			return eris.Wrapf(ErrDuplicateKind, "%s", k)
		}
		kinds[k] = true
	}

	covered := make(map[ShapeKind]bool, len(c.Baskets))
	for _, b := range c.Baskets {
		if !kinds[b.Kind] {
			return eris.Wrapf(ErrUnknownBasketKind, "%s", b.Kind)
		}
		if covered[b.Kind] {
			return eris.Wrapf(ErrDuplicateBasket, "%s", b.Kind)
		}
		covered[b.Kind] = true
	}
	for _, k := range c.Kinds {
		if !covered[k] {
			return eris.Wrapf(ErrMissingBasket, "%s", k)
		}
	}

	for i := range c.Baskets {
		for j := i + 1; j < len(c.Baskets); j++ {
			a, b := c.Baskets[i], c.Baskets[j]
			if d := a.Position.Dist(b.Position); d <= 2*c.CaptureRadius {
				return eris.Wrapf(ErrOverlappingBaskets, "%s and %s are %.1f apart", a.Kind, b.Kind, d)
			}
		}
	}
	return nil
}

// Clone returns a copy of c that shares no slices with it.
func (c Config) Clone() Config {
	c.Kinds = slices.Clone(c.Kinds)
	c.Baskets = slices.Clone(c.Baskets)
	c.Levels = slices.Clone(c.Levels)
	return c
}

// LevelAt returns the 1-based level n, clamped to the table.
func (c Config) LevelAt(n int) Level {
	n = max(1, min(n, len(c.Levels)))
	return c.Levels[n-1]
}
