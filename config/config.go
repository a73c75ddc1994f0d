package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ringflight/curve"
	"github.com/lixenwraith/ringflight/parameter"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "RINGFLIGHT_"

// Config holds the world generation and simulation parameters
type Config struct {
	// Flight
	Speed           float64 `toml:"speed" yaml:"speed"`                       // world units per tick
	CruiseHeight    float64 `toml:"cruise_height" yaml:"cruise_height"`       // altitude between rings
	PreRingDistance float64 `toml:"pre_ring_distance" yaml:"pre_ring_distance"` // straight approach before and after a ring
	SplineTension   float64 `toml:"spline_tension" yaml:"spline_tension"`     // [0,1)
	CurveMode       string  `toml:"curve_mode" yaml:"curve_mode"`             // uniform, chordal, centripetal
	AvoidThreshold  float64 `toml:"avoid_threshold" yaml:"avoid_threshold"`   // incidental ring clearance

	// Field
	TerrainSize    float64 `toml:"terrain_size" yaml:"terrain_size"`
	RingCount      int     `toml:"ring_count" yaml:"ring_count"`
	MaxRingHeight  float64 `toml:"max_ring_height" yaml:"max_ring_height"`
	MinRingSpacing float64 `toml:"min_ring_spacing" yaml:"min_ring_spacing"`
	DroneCount     int     `toml:"drone_count" yaml:"drone_count"`

	// Effects
	PoolCapacity int  `toml:"pool_capacity" yaml:"pool_capacity"`
	Night        bool `toml:"night" yaml:"night"`

	// Gaze, seconds
	LookForward float64 `toml:"look_forward" yaml:"look_forward"`
	LookSearch  float64 `toml:"look_search" yaml:"look_search"`

	// Runtime
	TickRate int    `toml:"tick_rate" yaml:"tick_rate"`
	Addr     string `toml:"addr" yaml:"addr"`
	Seed     uint64 `toml:"seed" yaml:"seed"` // 0 seeds from the clock
	Audio    bool   `toml:"audio" yaml:"audio"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Speed:           0.25,
		CruiseHeight:    25,
		PreRingDistance: 15,
		SplineTension:   0,
		CurveMode:       curve.DefaultMode.String(),
		AvoidThreshold:  parameter.AvoidThreshold,

		TerrainSize:    300,
		RingCount:      20,
		MaxRingHeight:  10,
		MinRingSpacing: 10,
		DroneCount:     5,

		PoolCapacity: parameter.FirePoolCapacity,
		Night:        false,

		LookForward: parameter.LookForwardDuration.Seconds(),
		LookSearch:  parameter.LookSearchDuration.Seconds(),

		TickRate: parameter.TickRate,
		Addr:     ":8080",
		Seed:     0,
		Audio:    true,
	}
}

// Load reads a TOML or YAML file over the defaults, chosen by extension
func Load(path string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config TOML: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}

	return cfg, nil
}

// ApplyEnv loads an optional .env file and applies RINGFLIGHT_* and PORT overrides
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] .env: %v", err)
	}
	return c.applyLookup(os.LookupEnv)
}

// applyLookup applies overrides from an arbitrary source, separated for tests
func (c *Config) applyLookup(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(EnvPrefix + key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	float("SPEED", &c.Speed)
	float("CRUISE_HEIGHT", &c.CruiseHeight)
	float("PRE_RING_DISTANCE", &c.PreRingDistance)
	float("SPLINE_TENSION", &c.SplineTension)
	str("CURVE_MODE", &c.CurveMode)
	float("AVOID_THRESHOLD", &c.AvoidThreshold)
	float("TERRAIN_SIZE", &c.TerrainSize)
	integer("RING_COUNT", &c.RingCount)
	float("MAX_RING_HEIGHT", &c.MaxRingHeight)
	float("MIN_RING_SPACING", &c.MinRingSpacing)
	integer("DRONE_COUNT", &c.DroneCount)
	integer("POOL_CAPACITY", &c.PoolCapacity)
	boolean("NIGHT", &c.Night)
	integer("TICK_RATE", &c.TickRate)
	str("ADDR", &c.Addr)
	boolean("AUDIO", &c.Audio)

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = n
		}
	}

	// Platform convention, only when no explicit address was given
	if _, ok := lookup(EnvPrefix + "ADDR"); !ok {
		if port, ok := lookup("PORT"); ok && port != "" {
			c.Addr = ":" + port
		}
	}

	return errors.Join(errs...)
}

// Validate reports every out-of-range field
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Speed > 0, "speed must be positive, got %v", c.Speed)
	check(c.CruiseHeight > 0, "cruise_height must be positive, got %v", c.CruiseHeight)
	check(c.PreRingDistance > 0, "pre_ring_distance must be positive, got %v", c.PreRingDistance)
	check(c.SplineTension >= 0 && c.SplineTension < 1, "spline_tension must be in [0,1), got %v", c.SplineTension)
	if _, err := curve.ParseMode(c.CurveMode); err != nil {
		errs = append(errs, err)
	}
	check(c.AvoidThreshold >= 0, "avoid_threshold must not be negative, got %v", c.AvoidThreshold)
	check(c.TerrainSize > 0, "terrain_size must be positive, got %v", c.TerrainSize)
	check(c.RingCount >= 0, "ring_count must not be negative, got %d", c.RingCount)
	check(c.MaxRingHeight >= parameter.MinPostHeight, "max_ring_height must be at least %v, got %v", parameter.MinPostHeight, c.MaxRingHeight)
	check(c.MinRingSpacing >= 0, "min_ring_spacing must not be negative, got %v", c.MinRingSpacing)
	check(c.DroneCount >= 0, "drone_count must not be negative, got %d", c.DroneCount)
	check(c.PoolCapacity > 0, "pool_capacity must be positive, got %d", c.PoolCapacity)
	check(c.LookForward > 0, "look_forward must be positive, got %v", c.LookForward)
	check(c.LookSearch > 0, "look_search must be positive, got %v", c.LookSearch)
	check(c.TickRate > 0 && c.TickRate <= 1000, "tick_rate must be in (0,1000], got %d", c.TickRate)

	return errors.Join(errs...)
}

// Mode returns the parsed curve mode, falling back to the default on a bad value
func (c *Config) Mode() curve.Mode {
	m, _ := curve.ParseMode(c.CurveMode)
	return m
}
