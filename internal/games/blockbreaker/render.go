package blockbreaker

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// Visual characters for rendering
const (
	BlockChar  = '█'
	PaddleChar = '═'
	BallChar   = '●'
)

// Minimum screen size for the cell renderer.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// Overlay texts
const (
	TextConnect   = "Connect Wallet to Play"
	TextStart     = "Click to Start"
	TextGameOver  = "Game Over!"
	TextPlayAgain = "Click to play again"
)

// cellLayout maps field coordinates into the box below the HUD row.
type cellLayout struct {
	box    core.Rect // Border box
	sx, sy float64   // Cells per field unit
}

func (g *Game) layout(screenW, screenH int) cellLayout {
	box := core.NewRect(0, 1, screenW, screenH-1)
	innerW := float64(box.W - 2)
	innerH := float64(box.H - 2)
	return cellLayout{
		box: box,
		sx:  innerW / g.world.Width,
		sy:  innerH / g.world.Height,
	}
}

func (l cellLayout) col(x float64) int {
	return l.box.X + 1 + int(math.Floor(x*l.sx))
}

func (l cellLayout) row(y float64) int {
	return l.box.Y + 1 + int(math.Floor(y*l.sy))
}

// span converts [from, to) in field units into at least one cell.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to
}

// CellToField maps a screen column to the field x coordinate at the cell's center.
func (g *Game) CellToField(col, screenW int) float64 {
	l := g.layout(screenW, MinScreenH)
	if l.sx <= 0 {
		return 0
	}
	return (float64(col-l.box.X-1) + 0.5) / l.sx
}

// Render draws the game into a cell screen, scaling the field to fit.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	l := g.layout(dst.Width(), dst.Height())

	g.renderHUD(dst)
	dst.DrawBox(l.box)
	g.renderBlocks(dst, l)
	g.renderPaddle(dst, l)
	g.renderBall(dst, l)
	g.renderOverlay(dst)
}

// renderHUD draws the score and wallet status.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.world.Score))

	if g.round > 0 {
		dst.DrawTextCentered(0, fmt.Sprintf("Round %d", g.round+1))
	}

	status, color := "Wallet: not connected", core.ColorBrightRed
	if g.gate.Connected() {
		status, color = "Wallet: connected", core.ColorGreen
	}
	dst.DrawTextColored(dst.Width()-len(status)-1, 0, status, color)
}

// renderBlocks draws visible blocks with their remaining hits in the middle.
func (g *Game) renderBlocks(dst *core.Screen, l cellLayout) {
	for _, b := range g.world.Blocks {
		if !b.Visible {
			continue
		}
		x0, x1 := span(l.col(b.X), l.col(b.Right()))
		y0, y1 := span(l.row(b.Y), l.row(b.Bottom()))
		color := g.palette[b.Color]

		dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), BlockChar, color)
		dst.SetColored((x0+x1-1)/2, (y0+y1-1)/2, rune('0'+b.Hits%10), color)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, l cellLayout) {
	p := g.world.Paddle
	x0, x1 := span(l.col(p.X), l.col(p.X+p.W))
	y := l.box.Bottom() - 2
	for x := x0; x < x1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorWhite)
	}
}

func (g *Game) renderBall(dst *core.Screen, l cellLayout) {
	b := g.world.Ball
	x := core.Clamp(l.col(b.Pos.X+b.Size/2), l.box.X+1, l.box.Right()-2)
	y := core.Clamp(l.row(b.Pos.Y+b.Size/2), l.box.Y+1, l.box.Bottom()-2)
	dst.SetColored(x, y, BallChar, core.ColorBrightYellow)
}

// renderOverlay draws the start and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2

	switch g.phase {
	case PhaseNotStarted:
		if g.gate.Connected() {
			dst.DrawTextCentered(mid, TextStart)
		} else {
			dst.DrawTextCentered(mid, TextConnect)
		}
	case PhaseGameOver:
		dst.DrawTextCentered(mid-1, TextGameOver)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Final Score: %d", g.world.Score))
		dst.DrawTextCentered(mid+3, TextPlayAgain)
	}
}

// terminalRGB holds the usual xterm rendering of the cell colors blocks may use.
var terminalRGB = []struct {
	c   core.Color
	hex string
}{
	{core.ColorRed, "#cd0000"},
	{core.ColorGreen, "#00cd00"},
	{core.ColorYellow, "#cdcd00"},
	{core.ColorBlue, "#0000ee"},
	{core.ColorMagenta, "#cd00cd"},
	{core.ColorCyan, "#00cdcd"},
	{core.ColorWhite, "#e5e5e5"},
	{core.ColorBrightRed, "#ff0000"},
	{core.ColorBrightBlue, "#5c5cff"},
	{core.ColorBrightYellow, "#ffff00"},
}

// NearestCellColor maps a hex color tag to the closest cell color in Lab space.
// Unparseable tags map to the default color.
func NearestCellColor(hex string) core.Color {
	want, err := colorful.Hex(hex)
	if err != nil {
		return core.ColorDefault
	}

	best, bestDist := core.ColorDefault, math.Inf(1)
	for _, t := range terminalRGB {
		have, err := colorful.Hex(t.hex)
		if err != nil {
			continue
		}
		if d := want.DistanceLab(have); d < bestDist {
			best, bestDist = t.c, d
		}
	}
	return best
}

func buildPalette(tags []string) map[string]core.Color {
	p := make(map[string]core.Color, len(tags))
	for _, tag := range tags {
		p[tag] = NearestCellColor(tag)
	}
	return p
}
