// Package rawterm hosts Block Breaker directly on a tcell screen.
// It reports mouse motion without a button held, which lets the paddle
// follow the pointer on terminals where Bubble Tea's mouse mode is limited.
package rawterm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

const (
	toastDuration = 3 * time.Second
	helpText      = "mouse/←→ move • click/space start • q quit"
)

var (
	helpStyle      = tcell.StyleDefault.Foreground(tcell.PaletteColor(241))
	toastStyle     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	toastFailStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
)

// Options configures a Terminal.
type Options struct {
	Store     *storage.Store
	Logger    *log.Logger
	Player    string
	ChainName string
}

type connectResult struct {
	result wallet.Result
	err    error
}

// Terminal runs one game on a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	game    registry.Game
	gate    wallet.Gate
	runtime core.RuntimeConfig
	opts    Options
	logger  *log.Logger
	now     func() time.Time

	buf        *core.Screen
	state      core.GameState
	buttonDown bool

	connectCh  chan connectResult
	connecting bool

	toast        string
	toastFailure bool
	toastUntil   time.Time
}

// New creates a terminal host. The screen is initialized by Run.
func New(screen tcell.Screen, game registry.Game, gate wallet.Gate, rt core.RuntimeConfig, opts Options) *Terminal {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	return &Terminal{
		screen:    screen,
		game:      game,
		gate:      gate,
		runtime:   rt,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		buf:       core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		connectCh: make(chan connectResult, 1),
	}
}

// Run plays until the user quits or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.setup(); err != nil {
		return err
	}
	defer t.screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.runtime.TickRate))
	defer ticker.Stop()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.handleEvent(ctx, ev) {
				return nil
			}
		case res := <-t.connectCh:
			t.finishConnect(res)
		case <-ticker.C:
			t.tick()
		}
		t.draw()
	}
}

func (t *Terminal) setup() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("rawterm: init screen: %w", err)
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()

	w, h := t.screen.Size()
	t.buf.Resize(w, max(h-1, 1))
	t.game.Reset(t.runtime)
	return nil
}

// handleEvent applies one terminal event. Returns true on quit.
func (t *Terminal) handleEvent(ctx context.Context, ev tcell.Event) bool {
	frame := core.NewInputFrame()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyLeft, ev.Key() == tcell.KeyRune && ev.Rune() == 'a':
			frame.Set(core.ActionLeft)
		case ev.Key() == tcell.KeyRight, ev.Key() == tcell.KeyRune && ev.Rune() == 'd':
			frame.Set(core.ActionRight)
		case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			frame.Set(core.ActionClick)
		default:
			return false
		}

	case *tcell.EventMouse:
		x, _ := ev.Position()
		frame.MovePointer(t.game.CellToField(x, t.buf.Width()))
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !t.buttonDown {
			frame.Set(core.ActionClick)
		}
		t.buttonDown = pressed

	case *tcell.EventResize:
		w, h := ev.Size()
		t.buf.Resize(w, max(h-1, 1))
		t.screen.Sync()
		return false

	default:
		return false
	}

	wasRunning := t.state.Running
	res := t.game.Apply(frame)
	t.state = res.State
	if !wasRunning && t.state.Running {
		t.logger.Info("game started", "game", t.game.ID(), "player", t.opts.Player)
	}
	if res.ConnectRequested && !t.connecting {
		t.startConnect(ctx)
	}
	return false
}

func (t *Terminal) tick() {
	if !t.state.Running {
		return
	}
	res := t.game.Step(core.InputFrame{})
	t.state = res.State
	if res.Ended {
		t.recordGameOver()
	}
}

func (t *Terminal) startConnect(ctx context.Context) {
	t.connecting = true
	t.showToast("Connecting wallet...", false)
	t.logger.Info("wallet connect requested", "player", t.opts.Player)

	go func() {
		res, err := t.gate.Connect(ctx)
		select {
		case t.connectCh <- connectResult{result: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (t *Terminal) finishConnect(res connectResult) {
	t.connecting = false
	if res.err != nil {
		t.logger.Warn("wallet connect failed", "player", t.opts.Player, "err", res.err)
		t.showToast(wallet.FailureNotice(res.err, t.opts.ChainName), true)
		return
	}
	t.logger.Info("wallet connected", "player", t.opts.Player, "notice", res.result.Notice)
	t.showToast(res.result.Notice, false)
}

func (t *Terminal) showToast(text string, failure bool) {
	t.toast = text
	t.toastFailure = failure
	t.toastUntil = t.now().Add(toastDuration)
}

func (t *Terminal) recordGameOver() {
	t.logger.Info("game over",
		"game", t.game.ID(),
		"player", t.opts.Player,
		"score", t.state.Score,
		"blocks", t.state.Blocks,
		"ticks", t.state.Ticks)

	if t.opts.Store == nil || t.state.Score <= 0 {
		return
	}
	if _, err := t.opts.Store.SaveScore(storage.ScoreEntry{
		GameID: t.game.ID(),
		Player: t.opts.Player,
		Score:  t.state.Score,
		Ticks:  t.state.Ticks,
		Blocks: t.state.Blocks,
	}); err != nil {
		t.logger.Error("failed to save score", "err", err)
	}
}

// draw copies the game's cell buffer and the status line to the screen.
func (t *Terminal) draw() {
	t.screen.Clear()
	t.game.Render(t.buf)

	for y := range t.buf.Height() {
		for x := range t.buf.Width() {
			cell := t.buf.GetCell(x, y)
			style := tcell.StyleDefault
			if idx := cell.Color.Index(); idx >= 0 {
				style = style.Foreground(tcell.PaletteColor(idx))
			}
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}

	text, style := helpText, helpStyle
	if t.toast != "" && t.now().Before(t.toastUntil) {
		text, style = " "+t.toast+" ", toastStyle
		if t.toastFailure {
			style = toastFailStyle
		}
	}
	x := 0
	for _, r := range text {
		t.screen.SetContent(x, t.buf.Height(), r, nil, style)
		x++
	}

	t.screen.Show()
}
