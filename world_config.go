package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig holds the tunables for one arena world. The zero value of
// any field means "use the default", so partial YAML overlays work.
type WorldConfig struct {
	Width      float64 `yaml:"width" json:"width"`
	Height     float64 `yaml:"height" json:"height"`
	WrapMargin float64 `yaml:"wrapMargin" json:"wrapMargin"`

	TurnRate    float64 `yaml:"turnRate" json:"turnRate"`
	ThrustAccel float64 `yaml:"thrustAccel" json:"thrustAccel"`
	NoseOffset  float64 `yaml:"noseOffset" json:"noseOffset"`
	LinearDrag  float64 `yaml:"linearDrag" json:"linearDrag"`
	MaxSpeed    float64 `yaml:"maxSpeed" json:"maxSpeed"`

	PickupRadius     float64 `yaml:"pickupRadius" json:"pickupRadius"`
	SpawnInset       float64 `yaml:"spawnInset" json:"spawnInset"`
	StarMinDistance  float64 `yaml:"starMinDistance" json:"starMinDistance"`
	StarSpawnRetries int     `yaml:"starSpawnRetries" json:"starSpawnRetries"`

	TickRate   int   `yaml:"tickRate" json:"tickRate"`
	MaxPlayers int   `yaml:"maxPlayers" json:"maxPlayers"` // 0 = unlimited
	Seed       int64 `yaml:"seed" json:"seed"`             // 0 = time-seeded
}

// DefaultWorldConfig returns the world the original arena shipped with.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Width:            defaultWorldWidth,
		Height:           defaultWorldHeight,
		WrapMargin:       defaultWrapMargin,
		TurnRate:         defaultTurnRate,
		ThrustAccel:      defaultThrustAccel,
		NoseOffset:       defaultNoseOffset,
		LinearDrag:       defaultLinearDrag,
		MaxSpeed:         defaultMaxSpeed,
		PickupRadius:     defaultPickupRadius,
		SpawnInset:       defaultSpawnInset,
		StarMinDistance:  defaultStarMinDistance,
		StarSpawnRetries: defaultStarSpawnRetries,
		TickRate:         defaultTickRate,
	}
}

// LoadWorldConfig reads a YAML overlay on top of the defaults.
func LoadWorldConfig(path string) (WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldConfig{}, fmt.Errorf("read world config: %w", err)
	}

	cfg := DefaultWorldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorldConfig{}, fmt.Errorf("parse world config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized backfills zero or nonsensical values with defaults.
func (cfg WorldConfig) normalized() WorldConfig {
	defaults := DefaultWorldConfig()
	if cfg.Width <= 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = defaults.Height
	}
	if cfg.WrapMargin < 0 {
		cfg.WrapMargin = defaults.WrapMargin
	}
	if cfg.TurnRate <= 0 {
		cfg.TurnRate = defaults.TurnRate
	}
	if cfg.ThrustAccel <= 0 {
		cfg.ThrustAccel = defaults.ThrustAccel
	}
	if cfg.LinearDrag < 0 {
		cfg.LinearDrag = defaults.LinearDrag
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = defaults.MaxSpeed
	}
	if cfg.PickupRadius <= 0 {
		cfg.PickupRadius = defaults.PickupRadius
	}
	if cfg.SpawnInset < 0 || cfg.SpawnInset*2 >= cfg.Width || cfg.SpawnInset*2 >= cfg.Height {
		cfg.SpawnInset = defaults.SpawnInset
	}
	if cfg.StarMinDistance < 0 {
		cfg.StarMinDistance = defaults.StarMinDistance
	}
	if cfg.StarSpawnRetries <= 0 {
		cfg.StarSpawnRetries = defaults.StarSpawnRetries
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.MaxPlayers < 0 {
		cfg.MaxPlayers = 0
	}
	return cfg
}
