package blockbreaker

import "math"

// BlockState is the read-only view of one block.
type BlockState struct {
	X, Y, W, H float64
	Color      string
	Hits       int
	Visible    bool
	Breaking   bool
}

// Snapshot is a copy of the game state for renderers and subscribers.
// It shares no memory with the game.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	Round     int
	Broken    int // Blocks destroyed this game
	Connected bool

	FieldW, FieldH float64

	BallX, BallY   float64
	BallVX, BallVY float64
	BallSize       float64

	PaddleX, PaddleY float64
	PaddleW, PaddleH float64

	Blocks []BlockState
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := &g.world
	blocks := make([]BlockState, len(w.Blocks))
	for i, b := range w.Blocks {
		blocks[i] = BlockState{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Color:    b.Color,
			Hits:     b.Hits,
			Visible:  b.Visible,
			Breaking: b.Breaking,
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		Score:     w.Score,
		Round:     g.round,
		Broken:    g.broken,
		Connected: g.gate.Connected(),

		FieldW: w.Width,
		FieldH: w.Height,

		BallX:    w.Ball.Pos.X,
		BallY:    w.Ball.Pos.Y,
		BallVX:   w.Ball.Vel.X,
		BallVY:   w.Ball.Vel.Y,
		BallSize: w.Ball.Size,

		PaddleX: w.Paddle.X,
		PaddleY: w.Paddle.Y,
		PaddleW: w.Paddle.W,
		PaddleH: w.Paddle.H,

		Blocks: blocks,
	}
}

// Speed returns the ball speed magnitude.
func (snap *Snapshot) Speed() float64 {
	return math.Hypot(snap.BallVX, snap.BallVY)
}

// VisibleBlocks returns the number of blocks still standing.
func (snap *Snapshot) VisibleBlocks() int {
	n := 0
	for _, b := range snap.Blocks {
		if b.Visible {
			n++
		}
	}
	return n
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Broken) //#nosec G115 -- hash computation

	for _, f := range []float64{
		snap.BallX, snap.BallY, snap.BallVX, snap.BallVY,
		snap.PaddleX, snap.PaddleW,
	} {
		h = h*31 + math.Float64bits(f)
	}

	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.Hits) //#nosec G115 -- hash computation
		if b.Visible {
			h = h*31 + 1
		} else {
			h = h * 31
		}
	}

	return h
}
