// Package blockbreaker implements the Block Breaker game: a block field,
// a per-tick ball simulation and the controller state machine gated by a
// wallet connection.
package blockbreaker

import (
	"time"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
)

// Variant IDs
const (
	IDReference = "blockbreaker"
	IDResolved  = "blockbreaker_resolved"
)

func init() {
	registry.Register(IDReference, func(env registry.Env) registry.Game {
		return New(WithConfig(env.Config), WithGate(env.Gate), WithMode(config.CollisionFirst))
	})
	registry.Register(IDResolved, func(env registry.Env) registry.Game {
		return New(WithConfig(env.Config), WithGate(env.Gate), WithMode(config.CollisionAll))
	})
}

// Phase is the controller state.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for the first click
	PhaseRunning                 // Ticks advance the simulation
	PhaseGameOver                // Ball lost; a click restarts
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ClickResult tells the host what a click did.
type ClickResult int

const (
	ClickIgnored      ClickResult = iota // Click while running
	ClickStarted                         // NotStarted -> Running
	ClickRestarted                       // GameOver -> Running with a fresh field
	ClickNeedsConnect                    // Gate closed; host should run the connect action
)

// Option configures a Game.
type Option func(*Game)

// WithConfig sets the game configuration.
func WithConfig(cfg config.Config) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithRand injects the random source for hit counts.
// Without it, Reset seeds a SimpleRNG from RuntimeConfig.Seed.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r; g.fixedRand = true }
}

// WithGate sets the wallet gate consulted before starting and ticking.
func WithGate(gate core.Gate) Option {
	return func(g *Game) {
		if gate != nil {
			g.gate = gate
		}
	}
}

// WithMode overrides the configured block collision mode.
func WithMode(mode config.CollisionMode) Option {
	return func(g *Game) { g.mode = mode }
}

// Game is the Block Breaker controller. It owns all mutable game state.
// It is not safe for concurrent use; hosts drive it from one goroutine.
type Game struct {
	cfg   config.Config
	mode  config.CollisionMode
	rules Rules
	gate  core.Gate

	rng       Rand
	fixedRand bool
	runtime   core.RuntimeConfig

	world  World
	phase  Phase
	tick   uint64
	round  int
	broken int // Blocks destroyed this game

	subs   []subscriber
	nextID int

	palette map[string]core.Color
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New creates a game with default config and an open gate, then resets it.
func New(opts ...Option) *Game {
	g := &Game{
		cfg:  config.Default(),
		gate: core.OpenGate{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	if g.rules.Mode == config.CollisionAll {
		return IDResolved
	}
	return IDReference
}

// Title returns the display name of the variant.
func (g *Game) Title() string {
	if g.rules.Mode == config.CollisionAll {
		return "Block Breaker (Resolved)"
	}
	return "Block Breaker"
}

// Reset returns to NotStarted with a new field, score 0 and the ball at its start position.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt

	g.rules = RulesFromConfig(g.cfg)
	if g.mode != "" {
		g.rules.Mode = g.mode
	}

	if !g.fixedRand || g.rng == nil {
		seed := rt.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = NewSimpleRNG(seed)
	}
	g.palette = buildPalette(g.cfg.Blocks.Colors)

	f := g.cfg.Field
	g.world = World{
		Width:  f.Width,
		Height: f.Height,
		Paddle: Paddle{
			X: (f.Width - g.cfg.Paddle.Width) / 2,
			Y: f.Height - g.cfg.Paddle.Height,
			W: g.cfg.Paddle.Width,
			H: g.cfg.Paddle.Height,
		},
		Blocks: NewField(g.cfg.Blocks, f.Width, f.Height, g.rng),
	}
	g.serveBall()

	g.phase = PhaseNotStarted
	g.tick = 0
	g.round = 0
	g.broken = 0
	g.notify()
}

// restart begins a new game from GameOver. The paddle stays where the pointer left it.
func (g *Game) restart() {
	Refill(g.world.Blocks, g.cfg.Blocks, g.rng)
	g.world.Score = 0
	g.serveBall()
	g.tick = 0
	g.round = 0
	g.broken = 0
}

func (g *Game) serveBall() {
	g.world.Ball = Ball{
		Pos: core.Vec2{
			X: g.world.Width / 2,
			Y: g.world.Height - g.cfg.Paddle.Height - g.cfg.Ball.Size,
		},
		Vel:  core.Vec2{X: g.cfg.Ball.InitialDX, Y: g.cfg.Ball.InitialDY},
		Size: g.cfg.Ball.Size,
	}
}

// PointerMove centers the paddle on x, clamped to the field.
// It applies in every phase.
func (g *Game) PointerMove(x float64) {
	p := &g.world.Paddle
	p.X = core.ClampF(x-p.W/2, 0, g.world.Width-p.W)
	g.notify()
}

// Click starts or restarts the game. With the gate closed it only reports
// ClickNeedsConnect; the caller owns the connect action.
func (g *Game) Click() ClickResult {
	if !g.gate.Connected() {
		g.notify()
		return ClickNeedsConnect
	}

	switch g.phase {
	case PhaseNotStarted:
		g.phase = PhaseRunning
		g.notify()
		return ClickStarted
	case PhaseGameOver:
		g.restart()
		g.phase = PhaseRunning
		g.notify()
		return ClickRestarted
	default:
		return ClickIgnored
	}
}

// Tick advances the simulation once. It does nothing unless the game is
// running and the gate is open.
func (g *Game) Tick() Outcome {
	if g.phase != PhaseRunning || !g.gate.Connected() {
		return Outcome{}
	}

	out := Simulate(&g.world, g.rules)
	g.tick++
	g.broken += len(out.Broken)

	if out.Lost {
		g.phase = PhaseGameOver
	} else if CountVisible(g.world.Blocks) == 0 {
		g.world.Blocks = NewField(g.cfg.Blocks, g.world.Width, g.world.Height, g.rng)
		g.round++
	}

	g.notify()
	return out
}

// Apply handles pointer, nudge and click input without ticking.
func (g *Game) Apply(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if in.HasPointer {
		g.PointerMove(in.PointerX)
	}
	nudge := g.world.Paddle.W / 5
	center := g.world.Paddle.X + g.world.Paddle.W/2
	if in.Has(core.ActionLeft) {
		g.PointerMove(center - nudge)
	}
	if in.Has(core.ActionRight) {
		g.PointerMove(center + nudge)
	}
	if in.Has(core.ActionClick) {
		if g.Click() == ClickNeedsConnect {
			res.ConnectRequested = true
		}
	}

	res.State = g.State()
	return res
}

// Step applies input then advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	res := g.Apply(in)
	before := g.phase
	g.Tick()

	res.State = g.State()
	res.Ended = before == PhaseRunning && g.phase == PhaseGameOver
	return res
}

// State returns the summary the platform needs.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score,
		Running:  g.phase == PhaseRunning,
		GameOver: g.phase == PhaseGameOver,
		Ticks:    g.tick,
		Blocks:   g.broken,
	}
}

// Phase returns the current controller state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function unregisters it and is safe to call more than once.
func (g *Game) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	g.nextID++
	id := g.nextID
	g.subs = append(g.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range g.subs {
			if s.id == id {
				g.subs = append(g.subs[:i], g.subs[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) notify() {
	if len(g.subs) == 0 {
		return
	}
	snap := g.Snapshot()
	for _, s := range append([]subscriber(nil), g.subs...) {
		s.fn(snap)
	}
}
