package blockbreaker

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
)

// Ball is the ball state. Pos is the top-left corner of its bounding square.
type Ball struct {
	Pos  core.Vec2
	Vel  core.Vec2 // Displacement per tick
	Size float64
}

// boxAt returns the bounding square at position p.
func (b Ball) boxAt(p core.Vec2) core.Box {
	return core.Box{X: p.X, Y: p.Y, W: b.Size, H: b.Size}
}

// Paddle is the player's paddle. Y is fixed at the bottom of the field.
type Paddle struct {
	X, Y float64
	W, H float64
}

// World is everything the simulation step reads and writes.
type World struct {
	Width, Height float64
	Ball          Ball
	Paddle        Paddle
	Blocks        []Block
	Score         int
}

// Rules are the tuning constants of the simulation step.
type Rules struct {
	SpeedIncrement float64 // Factor applied on every speed-up
	MaxSpeed       float64
	InitialSpeed   float64 // Used when a paddle hit finds a stationary ball
	MaxBounceAngle float64 // Radians from vertical at the paddle edges
	Points         int     // Awarded per destroyed block
	SpeedupOnBlock bool
	Mode           config.CollisionMode
}

// RulesFromConfig derives simulation rules from a config.
func RulesFromConfig(cfg config.Config) Rules {
	mode := cfg.Collision.Mode
	if mode == "" {
		mode = config.CollisionFirst
	}
	return Rules{
		SpeedIncrement: cfg.Ball.SpeedIncrement,
		MaxSpeed:       cfg.Ball.MaxSpeed,
		InitialSpeed:   math.Hypot(cfg.Ball.InitialDX, cfg.Ball.InitialDY),
		MaxBounceAngle: cfg.Paddle.MaxBounceAngleDeg * math.Pi / 180,
		Points:         cfg.Blocks.Points,
		SpeedupOnBlock: cfg.Ball.SpeedupOnBlock,
		Mode:           mode,
	}
}

// Outcome reports what happened during one tick.
type Outcome struct {
	Lost       bool  // Ball crossed the bottom edge; position was not committed
	WallBounce bool  // Any wall reflection
	PaddleHit  bool  // Ball was launched off the paddle
	Hit        []int // Indices of blocks struck this tick
	Broken     []int // Indices of blocks destroyed this tick
	Points     int   // Score gained this tick
}

// NextSpeed applies one speed-up step: min(max, speed*factor).
func NextSpeed(speed, factor, max float64) float64 {
	return math.Min(max, speed*factor)
}

// Simulate advances w by one tick.
// Steps: walls, paddle, blocks, bottom edge, commit.
func Simulate(w *World, r Rules) Outcome {
	var out Outcome

	ball := &w.Ball
	if !ball.Pos.IsFinite() || !ball.Vel.IsFinite() {
		panic(fmt.Sprintf("blockbreaker: non-finite ball state pos=%v vel=%v", ball.Pos, ball.Vel))
	}

	next := ball.Pos.Add(ball.Vel)
	vel := ball.Vel
	speed := ball.Vel.Len()

	// Walls. Each wall forces the component away from it.
	if next.X <= 0 {
		vel.X = wallComponent(vel.X, vel.Y, r)
		out.WallBounce = true
	} else if next.X >= w.Width-ball.Size {
		vel.X = -wallComponent(vel.X, vel.Y, r)
		out.WallBounce = true
	}
	if next.Y <= 0 {
		vel.Y = wallComponent(vel.Y, vel.X, r)
		out.WallBounce = true
	}

	// Paddle. Only a descending ball can be launched.
	p := w.Paddle
	if vel.Y > 0 && next.Y >= p.Y-ball.Size &&
		next.X+ball.Size >= p.X && next.X <= p.X+p.W {
		vel = paddleLaunch(next.X+ball.Size/2, speed, p, r)
		out.PaddleHit = true
	}

	// Blocks
	switch r.Mode {
	case config.CollisionAll:
		vel = collideAll(w, ball.boxAt(next), vel, r, &out)
	default:
		vel = collideFirst(w, ball.boxAt(next), vel, r, &out)
	}

	// Bottom edge: freeze the ball where it was.
	if next.Y >= w.Height {
		out.Lost = true
		return out
	}

	ball.Pos = next
	ball.Vel = vel
	return out
}

// wallComponent returns the magnitude of a reflected component after a speed-up.
// The other component is kept, so the reflected one is capped to keep |v| <= MaxSpeed.
func wallComponent(c, other float64, r Rules) float64 {
	limit := math.Sqrt(math.Max(0, r.MaxSpeed*r.MaxSpeed-other*other))
	return math.Min(NextSpeed(math.Abs(c), r.SpeedIncrement, r.MaxSpeed), limit)
}

// paddleLaunch maps the hit position across the paddle to a launch angle.
// Center launches straight up; the edges launch at +/-MaxBounceAngle.
// speed is the magnitude before any wall reflection in the same tick.
func paddleLaunch(centerX, speed float64, p Paddle, r Rules) core.Vec2 {
	hit := core.ClampF((centerX-p.X)/p.W, 0, 1)
	angle := (hit - 0.5) * 2 * r.MaxBounceAngle

	if speed == 0 {
		speed = r.InitialSpeed
	}
	speed = NextSpeed(speed, r.SpeedIncrement, r.MaxSpeed)

	return core.Vec2{X: speed * math.Sin(angle), Y: -speed * math.Cos(angle)}
}

// collideFirst resolves the first visible block overlapping the ball, in field order.
func collideFirst(w *World, ball core.Box, vel core.Vec2, r Rules, out *Outcome) core.Vec2 {
	for i := range w.Blocks {
		b := &w.Blocks[i]
		if !b.Visible || !ball.Overlaps(b.Box) {
			continue
		}
		if ball.PenetrationInto(b.Box).Horizontal() {
			vel.X = -vel.X
		} else {
			vel.Y = -vel.Y
		}
		strike(w, i, r, out)
		return blockSpeedup(vel, r)
	}
	return vel
}

type contact struct {
	index int
	pen   core.Penetration
}

// collideAll resolves every overlapping block, shallowest first.
// Each axis is reflected at most once per tick.
func collideAll(w *World, ball core.Box, vel core.Vec2, r Rules, out *Outcome) core.Vec2 {
	var contacts []contact
	for i := range w.Blocks {
		b := &w.Blocks[i]
		if b.Visible && ball.Overlaps(b.Box) {
			contacts = append(contacts, contact{index: i, pen: ball.PenetrationInto(b.Box)})
		}
	}
	if len(contacts) == 0 {
		return vel
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].pen.Min() < contacts[j].pen.Min()
	})

	var flippedX, flippedY bool
	for _, c := range contacts {
		if c.pen.Horizontal() {
			if !flippedX {
				vel.X = -vel.X
				flippedX = true
			}
		} else if !flippedY {
			vel.Y = -vel.Y
			flippedY = true
		}
		strike(w, c.index, r, out)
	}
	return blockSpeedup(vel, r)
}

// strike removes one hit from block i and awards points when it breaks.
func strike(w *World, i int, r Rules, out *Outcome) {
	b := &w.Blocks[i]
	if b.Hits > 0 {
		b.Hits--
	}
	out.Hit = append(out.Hit, i)
	if b.Hits == 0 && b.Visible {
		b.Visible = false
		b.Breaking = true
		w.Score += r.Points
		out.Points += r.Points
		out.Broken = append(out.Broken, i)
	}
}

func blockSpeedup(vel core.Vec2, r Rules) core.Vec2 {
	if !r.SpeedupOnBlock {
		return vel
	}
	speed := vel.Len()
	if speed == 0 {
		return vel
	}
	return vel.Scale(NextSpeed(speed, r.SpeedIncrement, r.MaxSpeed) / speed)
}
