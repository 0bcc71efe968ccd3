package canvas

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
)

// The debug font is 6x16 pixels per glyph.
const (
	glyphW = 6
	glyphH = 16
)

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 28, A: 255}
	paddleColor     = color.RGBA{R: 220, G: 220, B: 235, A: 255}
	ballColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dimColor        = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	toastOK         = color.RGBA{R: 40, G: 150, B: 80, A: 230}
	toastFail       = color.RGBA{R: 180, G: 40, B: 40, A: 230}
)

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := h.game.Snapshot()

	h.drawBlocks(screen, snap)

	vector.DrawFilledRect(screen,
		float32(snap.PaddleX), float32(snap.PaddleY),
		float32(snap.PaddleW), float32(snap.PaddleH),
		paddleColor, false)

	r := snap.BallSize / 2
	vector.DrawFilledCircle(screen, float32(snap.BallX+r), float32(snap.BallY+r), float32(r), ballColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 8, 4)
	if snap.Round > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Round %d", snap.Round+1), 8, 20)
	}

	h.drawOverlay(screen, snap)
	h.drawToast(screen, snap)
}

func (h *Host) drawBlocks(screen *ebiten.Image, snap blockbreaker.Snapshot) {
	for i, b := range snap.Blocks {
		c := blockColor(b.Color)

		if !b.Visible {
			p := h.breakProgress(i)
			if !b.Breaking || p >= 1 {
				continue
			}
			// Shrink toward the center while fading.
			s := 1 - p
			w, ht := b.W*s, b.H*s
			x, y := b.X+(b.W-w)/2, b.Y+(b.H-ht)/2
			r, g, bl := c.RGB255()
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(ht),
				color.NRGBA{R: r, G: g, B: bl, A: uint8(255 * s)}, false)
			continue
		}

		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
		label, x, y := hitLabel(b)
		ebitenutil.DebugPrintAt(screen, label, x, y)
	}
}

// hitLabel returns the remaining-hit count of a block and where to center it.
func hitLabel(b blockbreaker.BlockState) (string, int, int) {
	label := strconv.Itoa(b.Hits)
	return label, int(b.X+b.W/2) - glyphW*len(label)/2, int(b.Y+b.H/2) - glyphH/2
}

func (h *Host) drawOverlay(screen *ebiten.Image, snap blockbreaker.Snapshot) {
	var lines []string
	switch snap.Phase {
	case blockbreaker.PhaseNotStarted:
		if snap.Connected {
			lines = []string{blockbreaker.TextStart}
		} else {
			lines = []string{blockbreaker.TextConnect}
		}
	case blockbreaker.PhaseGameOver:
		lines = []string{
			blockbreaker.TextGameOver,
			fmt.Sprintf("Final Score: %d", snap.Score),
			blockbreaker.TextPlayAgain,
		}
	default:
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(snap.FieldW), float32(snap.FieldH), dimColor, false)
	top := int(snap.FieldH)/2 - len(lines)*glyphH/2
	for i, line := range lines {
		printCentered(screen, line, int(snap.FieldW), top+i*(glyphH+4))
	}
}

func (h *Host) drawToast(screen *ebiten.Image, snap blockbreaker.Snapshot) {
	if h.toast.text == "" {
		return
	}
	bg := toastOK
	if h.toast.failure {
		bg = toastFail
	}
	w := len(h.toast.text)*glyphW + 16
	x := (int(snap.FieldW) - w) / 2
	y := int(snap.FieldH) - glyphH - 20
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), glyphH+8, bg, false)
	ebitenutil.DebugPrintAt(screen, h.toast.text, x+8, y+4)
}

func printCentered(screen *ebiten.Image, text string, width, y int) {
	ebitenutil.DebugPrintAt(screen, text, (width-len(text)*glyphW)/2, y)
}

// blockColor parses a hex tag, falling back to gray.
func blockColor(tag string) colorful.Color {
	c, err := colorful.Hex(tag)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}
