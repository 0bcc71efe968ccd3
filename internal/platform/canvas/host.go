// Package canvas hosts Block Breaker in an Ebiten window.
// The field is drawn 1:1 in pixels, so pointer coordinates need no mapping.
package canvas

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

const (
	toastDuration = 3 * time.Second
	breakFrames   = 20 // Frames a destroyed block takes to fade out
)

type toast struct {
	text    string
	failure bool
	until   time.Time
}

type connectResult struct {
	result wallet.Result
	err    error
}

// input is one frame of pointer and keyboard state.
type input struct {
	pointerX   int
	hasPointer bool
	click      bool
	quit       bool
}

// Options configures a Host.
type Options struct {
	Store     *storage.Store
	Logger    *log.Logger
	Player    string
	ChainName string
}

// Host implements ebiten.Game around one blockbreaker.Game.
type Host struct {
	ctx    context.Context
	game   *blockbreaker.Game
	gate   wallet.Gate
	opts   Options
	logger *log.Logger
	now    func() time.Time

	connectCh  chan connectResult
	connecting bool
	toast      toast

	lastPointer int
	state       core.GameState
	breaking    map[int]int // block index -> frames since destruction
	round       int
}

// NewHost creates a host. Connect requests run under ctx.
func NewHost(ctx context.Context, game *blockbreaker.Game, gate wallet.Gate, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	return &Host{
		ctx:         ctx,
		game:        game,
		gate:        gate,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
		connectCh:   make(chan connectResult, 1),
		lastPointer: -1,
		breaking:    make(map[int]int),
	}
}

// Update implements ebiten.Game. It runs once per tick.
func (h *Host) Update() error {
	in := input{
		click: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace),
		quit: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
	if x, _ := ebiten.CursorPosition(); x != h.lastPointer {
		in.pointerX, in.hasPointer = x, true
	}
	if h.frame(in) {
		return ebiten.Termination
	}
	return nil
}

// frame advances the host by one tick. Returns true when the window should close.
func (h *Host) frame(in input) bool {
	if in.quit {
		return true
	}

	select {
	case res := <-h.connectCh:
		h.finishConnect(res)
	default:
	}

	frame := core.NewInputFrame()
	if in.hasPointer {
		h.lastPointer = in.pointerX
		frame.MovePointer(float64(in.pointerX))
	}
	if in.click {
		frame.Set(core.ActionClick)
	}

	wasRunning := h.state.Running
	res := h.game.Step(frame)
	h.state = res.State

	if !wasRunning && h.state.Running {
		h.logger.Info("game started", "game", h.game.ID(), "player", h.opts.Player)
	}
	if res.ConnectRequested && !h.connecting {
		h.startConnect()
	}
	if res.Ended {
		h.recordGameOver()
	}

	h.advanceBreaking()
	if h.toast.text != "" && h.now().After(h.toast.until) {
		h.toast = toast{}
	}
	return false
}

func (h *Host) startConnect() {
	h.connecting = true
	h.showToast("Connecting wallet...", false)
	h.logger.Info("wallet connect requested", "player", h.opts.Player)

	go func() {
		res, err := h.gate.Connect(h.ctx)
		h.connectCh <- connectResult{result: res, err: err}
	}()
}

func (h *Host) finishConnect(res connectResult) {
	h.connecting = false
	if res.err != nil {
		h.logger.Warn("wallet connect failed", "player", h.opts.Player, "err", res.err)
		h.showToast(wallet.FailureNotice(res.err, h.opts.ChainName), true)
		return
	}
	h.logger.Info("wallet connected", "player", h.opts.Player, "notice", res.result.Notice)
	h.showToast(res.result.Notice, false)
}

func (h *Host) showToast(text string, failure bool) {
	h.toast = toast{text: text, failure: failure, until: h.now().Add(toastDuration)}
}

func (h *Host) recordGameOver() {
	h.logger.Info("game over",
		"game", h.game.ID(),
		"player", h.opts.Player,
		"score", h.state.Score,
		"blocks", h.state.Blocks,
		"ticks", h.state.Ticks)

	if h.opts.Store == nil || h.state.Score <= 0 {
		return
	}
	if _, err := h.opts.Store.SaveScore(storage.ScoreEntry{
		GameID: h.game.ID(),
		Player: h.opts.Player,
		Score:  h.state.Score,
		Ticks:  h.state.Ticks,
		Blocks: h.state.Blocks,
	}); err != nil {
		h.logger.Error("failed to save score", "err", err)
	}
}

// advanceBreaking steps the fade-out of destroyed blocks.
// Blocks that are no longer breaking (restart, new round) drop their progress.
func (h *Host) advanceBreaking() {
	snap := h.game.Snapshot()
	if snap.Round != h.round {
		h.round = snap.Round
		clear(h.breaking)
	}
	for i, b := range snap.Blocks {
		if !b.Breaking {
			delete(h.breaking, i)
			continue
		}
		if n, ok := h.breaking[i]; !ok || n < breakFrames {
			h.breaking[i] = n + 1
		}
	}
}

// breakProgress returns how far block i has faded, in [0, 1].
func (h *Host) breakProgress(i int) float64 {
	n, ok := h.breaking[i]
	if !ok {
		return 0
	}
	return float64(n) / breakFrames
}

// Layout implements ebiten.Game. The logical screen is the field.
func (h *Host) Layout(_, _ int) (int, int) {
	cfg := h.game.Config()
	return int(cfg.Field.Width), int(cfg.Field.Height)
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, game *blockbreaker.Game, gate wallet.Gate, rt core.RuntimeConfig, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	game.Reset(rt)
	h := NewHost(ctx, game, gate, opts)
	w, ht := h.Layout(0, 0)

	ebiten.SetWindowSize(w, ht)
	ebiten.SetWindowTitle(game.Title())
	if rt.TickRate > 0 {
		ebiten.SetTPS(rt.TickRate)
	}
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}
