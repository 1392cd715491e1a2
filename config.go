package physics2d

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gekko3d/physics2d/geom"
)

const (
	DefaultMaxBodies    = 1000
	DefaultMaxContacts  = 1000
	DefaultMaxObjects   = 10
	DefaultMaxLevels    = 5
	MaxCollidersPerBody = 8
)

// CapacityPolicy decides what Step does when the contact pool is full.
type CapacityPolicy uint8

const (
	// FailFast finishes the step and then reports ErrCapacityExceeded.
	FailFast CapacityPolicy = iota
	// DropAndWarn ignores the new pair and logs a warning.
	DropAndWarn
)

func (p CapacityPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case DropAndWarn:
		return "drop-and-warn"
	default:
		return fmt.Sprintf("CapacityPolicy(%d)", uint8(p))
	}
}

func ParseCapacityPolicy(s string) (CapacityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "drop-and-warn", "drop":
		return DropAndWarn, nil
	}
	return FailFast, fmt.Errorf("%w: unknown capacity policy %q", ErrInvalidConfig, s)
}

func (p *CapacityPolicy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCapacityPolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p CapacityPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}

type QuadTreeConfig struct {
	MaxObjects int `yaml:"max_objects"`
	MaxLevels  int `yaml:"max_levels"`
	// Bounds fixes the root node. When nil the root is fitted to the bodies every step.
	Bounds *geom.AABB `yaml:"bounds,omitempty"`
}

type Config struct {
	Gravity        geom.Vec2      `yaml:"gravity"`
	MaxBodies      int            `yaml:"max_bodies"`
	MaxContacts    int            `yaml:"max_contacts"`
	CapacityPolicy CapacityPolicy `yaml:"capacity_policy"`
	QuadTree       QuadTreeConfig `yaml:"quadtree"`
	Debug          bool           `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:        geom.V(0, -9.8),
		MaxBodies:      DefaultMaxBodies,
		MaxContacts:    DefaultMaxContacts,
		CapacityPolicy: FailFast,
		QuadTree: QuadTreeConfig{
			MaxObjects: DefaultMaxObjects,
			MaxLevels:  DefaultMaxLevels,
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig, so omitted keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !geom.IsFinite(c.Gravity) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	if c.MaxBodies <= 0 {
		return fmt.Errorf("%w: max_bodies must be positive, got %d", ErrInvalidConfig, c.MaxBodies)
	}
	if c.MaxContacts <= 0 {
		return fmt.Errorf("%w: max_contacts must be positive, got %d", ErrInvalidConfig, c.MaxContacts)
	}
	if c.CapacityPolicy != FailFast && c.CapacityPolicy != DropAndWarn {
		return fmt.Errorf("%w: unknown capacity policy %d", ErrInvalidConfig, c.CapacityPolicy)
	}
	if c.QuadTree.MaxObjects <= 0 {
		return fmt.Errorf("%w: quadtree.max_objects must be positive", ErrInvalidConfig)
	}
	if c.QuadTree.MaxLevels < 0 {
		return fmt.Errorf("%w: quadtree.max_levels must not be negative", ErrInvalidConfig)
	}
	if b := c.QuadTree.Bounds; b != nil && !geom.GreaterEq(b.TopRight, b.BottomLeft) {
		return fmt.Errorf("%w: quadtree.bounds top_right must not be below bottom_left", ErrInvalidConfig)
	}
	return nil
}
