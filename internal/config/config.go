// Package config provides YAML/TOML game configuration loading and
// difficulty presets for Block Breaker.
package config

import "time"

// Config contains all configuration for Block Breaker.
type Config struct {
	Field     Field     `yaml:"field" toml:"field"`
	Paddle    Paddle    `yaml:"paddle" toml:"paddle"`
	Ball      Ball      `yaml:"ball" toml:"ball"`
	Blocks    Blocks    `yaml:"blocks" toml:"blocks"`
	Collision Collision `yaml:"collision" toml:"collision"`
	Wallet    Wallet    `yaml:"wallet" toml:"wallet"`
}

// Field defines the playing surface in field units (pixels on the canvas).
type Field struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Paddle defines paddle geometry.
type Paddle struct {
	Width             float64 `yaml:"width" toml:"width"`
	Height            float64 `yaml:"height" toml:"height"`
	MaxBounceAngleDeg float64 `yaml:"max_bounce_angle_deg" toml:"max_bounce_angle_deg"`
}

// Ball defines ball size and speed rules.
type Ball struct {
	Size           float64 `yaml:"size" toml:"size"`
	InitialDX      float64 `yaml:"initial_dx" toml:"initial_dx"`
	InitialDY      float64 `yaml:"initial_dy" toml:"initial_dy"`
	SpeedIncrement float64 `yaml:"speed_increment" toml:"speed_increment"` // Factor applied on every speed-up, > 1
	MaxSpeed       float64 `yaml:"max_speed" toml:"max_speed"`
	SpeedupOnBlock bool    `yaml:"speedup_on_block" toml:"speedup_on_block"`
}

// Blocks defines the block grid.
type Blocks struct {
	Rows       int      `yaml:"rows" toml:"rows"`
	Width      float64  `yaml:"width" toml:"width"`
	Height     float64  `yaml:"height" toml:"height"`
	Gap        float64  `yaml:"gap" toml:"gap"`
	MarginLeft float64  `yaml:"margin_left" toml:"margin_left"`
	MarginTop  float64  `yaml:"margin_top" toml:"margin_top"`
	MinHits    int      `yaml:"min_hits" toml:"min_hits"`
	MaxHits    int      `yaml:"max_hits" toml:"max_hits"`
	Points     int      `yaml:"points" toml:"points"`
	Colors     []string `yaml:"colors" toml:"colors"` // Row color tags, cycled when rows exceed len
}

// CollisionMode selects how overlapping blocks are resolved within one tick.
type CollisionMode string

const (
	// CollisionFirst resolves only the first overlapping block in field order.
	CollisionFirst CollisionMode = "first"
	// CollisionAll resolves every overlapping block, ordered by penetration depth.
	CollisionAll CollisionMode = "all"
)

// Collision selects the block collision resolution mode.
type Collision struct {
	Mode CollisionMode `yaml:"mode" toml:"mode"`
}

// Wallet configures the wallet gate.
type Wallet struct {
	Enabled     bool     `yaml:"enabled" toml:"enabled"`
	RPCURL      string   `yaml:"rpc_url" toml:"rpc_url"`
	ChainID     uint64   `yaml:"chain_id" toml:"chain_id"`
	ChainName   string   `yaml:"chain_name" toml:"chain_name"`
	Currency    Currency `yaml:"currency" toml:"currency"`
	ExplorerURL string   `yaml:"explorer_url" toml:"explorer_url"`
	Timeout     Duration `yaml:"timeout" toml:"timeout"`
}

// Currency describes the native currency of the chain.
type Currency struct {
	Name     string `yaml:"name" toml:"name"`
	Symbol   string `yaml:"symbol" toml:"symbol"`
	Decimals int    `yaml:"decimals" toml:"decimals"`
}

// Duration is a time.Duration that decodes from strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for both YAML and TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
