package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphnest/pkg/errors"
)

// Default geometry, in scene units.
const (
	DefaultBaseNodeWidth    = 200.0
	DefaultBaseNodeHeight   = 100.0
	DefaultSpacingX         = 300.0
	DefaultSpacingY         = 220.0
	DefaultMinGapX          = 80.0
	DefaultMaxSlotsPerLevel = 4
	DefaultMaxSlotCost      = 5
)

// Config holds the geometric constants used by a layout pass.
type Config struct {
	// BaseNodeWidth is the standard node width, used when a level has no
	// usable width of its own.
	BaseNodeWidth float64 `toml:"base_node_width"`
	// BaseNodeHeight is the standard node height; a container's slot cost is
	// its height measured in multiples of it.
	BaseNodeHeight float64 `toml:"base_node_height"`
	// SpacingX is the minimum column pitch.
	SpacingX float64 `toml:"spacing_x"`
	// SpacingY is the row pitch of one slot.
	SpacingY float64 `toml:"spacing_y"`
	// MinGapX is the minimum horizontal clearance after the widest node of a level.
	MinGapX float64 `toml:"min_gap_x"`
	// MaxSlotsPerLevel bounds the effective slot cost packed into one level.
	MaxSlotsPerLevel int `toml:"max_slots_per_level"`
	// MaxSlotCost caps the slot cost of a single container.
	MaxSlotCost int `toml:"max_slot_cost"`
}

// DefaultConfig returns the standard editor geometry.
func DefaultConfig() Config {
	return Config{
		BaseNodeWidth:    DefaultBaseNodeWidth,
		BaseNodeHeight:   DefaultBaseNodeHeight,
		SpacingX:         DefaultSpacingX,
		SpacingY:         DefaultSpacingY,
		MinGapX:          DefaultMinGapX,
		MaxSlotsPerLevel: DefaultMaxSlotsPerLevel,
		MaxSlotCost:      DefaultMaxSlotCost,
	}
}

// LoadConfig reads a TOML file on top of [DefaultConfig]. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects geometry that cannot produce a layout.
func (c Config) Validate() error {
	switch {
	case c.BaseNodeWidth <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "base_node_width must be positive")
	case c.BaseNodeHeight <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "base_node_height must be positive")
	case c.SpacingX <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "spacing_x must be positive")
	case c.SpacingY <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "spacing_y must be positive")
	case c.MinGapX < 0:
		return errors.New(errors.ErrCodeInvalidInput, "min_gap_x must not be negative")
	case c.MaxSlotsPerLevel < 1:
		return errors.New(errors.ErrCodeInvalidInput, "max_slots_per_level must be at least 1")
	case c.MaxSlotCost < 1:
		return errors.New(errors.ErrCodeInvalidInput, "max_slot_cost must be at least 1")
	}
	return nil
}
