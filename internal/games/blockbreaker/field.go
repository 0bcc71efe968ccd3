package blockbreaker

import (
	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
)

// Block is one brick of the field.
type Block struct {
	core.Box
	Row, Col int
	Color    string // Hex color tag of the row
	Hits     int    // Remaining hits; 0 once destroyed
	Visible  bool

	// Breaking is set when the block is destroyed so renderers can animate it out.
	Breaking bool
}

// Columns returns how many blocks fit in one row of a field of width w.
func Columns(cfg config.Blocks, w float64) int {
	cols := int((w - 2*cfg.MarginLeft) / (cfg.Width + cfg.Gap))
	if cols < 0 {
		return 0
	}
	return cols
}

// NewField builds the block grid for a field of w x h.
// Rows that would not fit above the bottom edge are dropped.
// Hit counts are drawn from rng in [MinHits, MaxHits].
func NewField(cfg config.Blocks, w, h float64, rng Rand) []Block {
	cols := Columns(cfg, w)
	blocks := make([]Block, 0, cfg.Rows*cols)

	for row := range cfg.Rows {
		y := float64(row)*(cfg.Height+cfg.Gap) + cfg.MarginTop
		if y+cfg.Height > h {
			break
		}
		color := ""
		if len(cfg.Colors) > 0 {
			color = cfg.Colors[row%len(cfg.Colors)]
		}

		for col := range cols {
			blocks = append(blocks, Block{
				Box: core.Box{
					X: float64(col)*(cfg.Width+cfg.Gap) + cfg.MarginLeft,
					Y: y,
					W: cfg.Width,
					H: cfg.Height,
				},
				Row:     row,
				Col:     col,
				Color:   color,
				Hits:    drawHits(cfg, rng),
				Visible: true,
			})
		}
	}
	return blocks
}

// Refill makes every block visible again with a fresh hit count.
// The layout is kept as is.
func Refill(blocks []Block, cfg config.Blocks, rng Rand) {
	for i := range blocks {
		blocks[i].Hits = drawHits(cfg, rng)
		blocks[i].Visible = true
		blocks[i].Breaking = false
	}
}

// CountVisible returns the number of blocks still standing.
func CountVisible(blocks []Block) int {
	n := 0
	for i := range blocks {
		if blocks[i].Visible {
			n++
		}
	}
	return n
}

func drawHits(cfg config.Blocks, rng Rand) int {
	return cfg.MinHits + rng.Intn(cfg.MaxHits-cfg.MinHits+1)
}
