package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return invalid("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return invalid("paddle size must be positive")
	case c.Paddle.Width > c.Field.Width:
		return invalid("paddle width %v exceeds field width %v", c.Paddle.Width, c.Field.Width)
	case c.Paddle.MaxBounceAngleDeg <= 0 || c.Paddle.MaxBounceAngleDeg >= 90:
		return invalid("max_bounce_angle_deg must be in (0, 90), got %v", c.Paddle.MaxBounceAngleDeg)
	case c.Ball.Size <= 0:
		return invalid("ball size must be positive")
	case c.Ball.InitialDX == 0 && c.Ball.InitialDY == 0:
		return invalid("initial ball velocity must be non-zero")
	case c.Ball.SpeedIncrement <= 1:
		return invalid("speed_increment must be greater than 1, got %v", c.Ball.SpeedIncrement)
	case c.Ball.MaxSpeed <= 0:
		return invalid("max_speed must be positive")
	case math.Hypot(c.Ball.InitialDX, c.Ball.InitialDY) > c.Ball.MaxSpeed:
		return invalid("initial ball speed exceeds max_speed %v", c.Ball.MaxSpeed)
	case c.Blocks.Rows <= 0:
		return invalid("blocks.rows must be positive")
	case c.Blocks.Width <= 0 || c.Blocks.Height <= 0 || c.Blocks.Gap < 0:
		return invalid("block geometry must be positive")
	case c.Blocks.MinHits < 1 || c.Blocks.MinHits > c.Blocks.MaxHits:
		return invalid("hits range [%d, %d] is empty or below 1", c.Blocks.MinHits, c.Blocks.MaxHits)
	case c.Blocks.Points < 0:
		return invalid("blocks.points must not be negative")
	case len(c.Blocks.Colors) == 0:
		return invalid("blocks.colors must not be empty")
	}

	switch c.Collision.Mode {
	case CollisionFirst, CollisionAll:
	default:
		return invalid("collision.mode must be %q or %q, got %q", CollisionFirst, CollisionAll, c.Collision.Mode)
	}

	if c.Wallet.Enabled && c.Wallet.RPCURL == "" {
		return invalid("wallet.rpc_url is required when the wallet is enabled")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
