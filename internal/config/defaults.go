package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blockbreaker.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
// It mirrors defaults/blockbreaker.yaml and is used if the embedded file fails to parse.
func Default() Config {
	return Config{
		Field: Field{
			Width:  600,
			Height: 500,
		},
		Paddle: Paddle{
			Width:             100,
			Height:            10,
			MaxBounceAngleDeg: 60,
		},
		Ball: Ball{
			Size:           10,
			InitialDX:      2,
			InitialDY:      -2,
			SpeedIncrement: 1.05,
			MaxSpeed:       8,
		},
		Blocks: Blocks{
			Rows:       5,
			Width:      60,
			Height:     20,
			Gap:        10,
			MarginLeft: 20,
			MarginTop:  50,
			MinHits:    1,
			MaxHits:    3,
			Points:     10,
			Colors:     []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD"},
		},
		Collision: Collision{
			Mode: CollisionFirst,
		},
		Wallet: Wallet{
			Enabled:   true,
			RPCURL:    "http://localhost:8545",
			ChainID:   31337,
			ChainName: "Monad",
			Currency: Currency{
				Name:     "Monad",
				Symbol:   "MON",
				Decimals: 18,
			},
			Timeout: Duration{30 * time.Second},
		},
	}
}
