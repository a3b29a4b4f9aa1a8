package sorter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Levels, 3)
	assert.Equal(t, 1600*time.Millisecond, cfg.Levels[0].SpawnInterval())
	assert.Equal(t, time.Second, cfg.Levels[1].SpawnInterval())
	assert.Equal(t, 750*time.Millisecond, cfg.Levels[2].SpawnInterval())
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "rectangle")

	parsed, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
reward: 25
return_duration: 500ms
levels:
  - {speed: 3, spacing: 900, quota: 4}
`))
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Reward)
	assert.Equal(t, 500*time.Millisecond, cfg.ReturnDuration)
	assert.Equal(t, []Level{{Speed: 3, Spacing: 900, Quota: 4}}, cfg.Levels)
	assert.Equal(t, DefaultConfig().Baskets, cfg.Baskets)
}

func TestParseConfigRejectsUnknownKind(t *testing.T) {
	_, err := ParseConfig([]byte("kinds: [circle, hexagon]\n"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestLoadConfigWithoutPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(t.TempDir() + "/missing.yaml")
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name: "duplicate basket kind",
			mutate: func(c *Config) {
				c.Baskets[3].Kind = Circle
			},
			want: ErrDuplicateBasket,
		},
		{
			name: "kind without basket",
			mutate: func(c *Config) {
				c.Baskets = c.Baskets[:3]
			},
			want: ErrMissingBasket,
		},
		{
			name: "basket for a kind that never spawns",
			mutate: func(c *Config) {
				c.Kinds = []ShapeKind{Circle, Triangle, Square}
			},
			want: ErrUnknownBasketKind,
		},
		{
			name: "duplicate kind",
			mutate: func(c *Config) {
				c.Kinds = append(c.Kinds, Square)
			},
			want: ErrDuplicateKind,
		},
		{
			name: "overlapping baskets",
			mutate: func(c *Config) {
				c.Baskets[1].Position = c.Baskets[0].Position.Add(Vec2{X: 2 * c.CaptureRadius})
			},
			want: ErrOverlappingBaskets,
		},
		{
			name: "no levels",
			mutate: func(c *Config) {
				c.Levels = nil
			},
			want: ErrNoLevels,
		},
		{
			name: "zero quota",
			mutate: func(c *Config) {
				c.Levels[1].Quota = 0
			},
			want: ErrInvalidLevel,
		},
		{
			name: "negative speed",
			mutate: func(c *Config) {
				c.Levels[0].Speed = -1
			},
			want: ErrInvalidLevel,
		},
		{
			name: "retire right of spawn",
			mutate: func(c *Config) {
				c.RetireX = c.SpawnX
			},
			want: ErrInvalidTrack,
		},
		{
			name: "zero capture radius",
			mutate: func(c *Config) {
				c.CaptureRadius = 0
			},
			want: ErrInvalidParameter,
		},
		{
			name: "drag depth below rest depth",
			mutate: func(c *Config) {
				c.DragDepth = c.RestDepth
			},
			want: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)

			_, err := New(cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBasketsJustOutsideOverlapAreAccepted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Baskets[1].Position = cfg.Baskets[0].Position.Add(Vec2{X: 2*cfg.CaptureRadius + 0.5})
	assert.NoError(t, cfg.Validate())
}

func TestShapeKindGeometry(t *testing.T) {
	center := Vec2{X: 100, Y: 100}

	assert.True(t, Circle.Contains(center, Vec2{X: 130, Y: 100}))
	assert.False(t, Circle.Contains(center, Vec2{X: 122, Y: 122}), "corner of the bounds is outside the circle")

	assert.True(t, Square.Contains(center, Vec2{X: 129, Y: 129}))
	assert.False(t, Square.Contains(center, Vec2{X: 131, Y: 100}))

	assert.True(t, Rectangle.Contains(center, Vec2{X: 139, Y: 119}))
	assert.False(t, Rectangle.Contains(center, Vec2{X: 100, Y: 121}))

	assert.True(t, Triangle.Contains(center, Vec2{X: 70, Y: 70}))
	assert.False(t, ShapeKind(0).Contains(center, center))

	for _, k := range AllKinds {
		parsed, err := ParseShapeKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}
