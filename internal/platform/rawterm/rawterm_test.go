package rawterm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

type fakeGate struct {
	connected bool
}

func (f *fakeGate) Connected() bool { return f.connected }

func (f *fakeGate) Connect(context.Context) (wallet.Result, error) {
	return wallet.Result{}, wallet.ErrUserRejected
}

func newTestTerminal(t *testing.T, gate *fakeGate, opts Options) (*Terminal, tcell.SimulationScreen, *blockbreaker.Game) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	game := blockbreaker.New(
		blockbreaker.WithRand(blockbreaker.NewSimpleRNG(5)),
		blockbreaker.WithGate(gate),
	)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 5}
	term := New(sim, game, gate, rt, opts)
	if err := term.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	sim.SetSize(80, 25)
	term.buf.Resize(80, 24)
	t.Cleanup(sim.Fini)
	return term, sim, game
}

func rowText(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var sb strings.Builder
	for x := range w {
		for _, r := range cells[y*w+x].Runes {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func screenText(sim tcell.SimulationScreen) string {
	_, _, h := sim.GetContents()
	lines := make([]string, h)
	for y := range h {
		lines[y] = rowText(sim, y)
	}
	return strings.Join(lines, "\n")
}

func TestMouseMotionMovesPaddle(t *testing.T) {
	term, _, game := newTestTerminal(t, &fakeGate{connected: true}, Options{})

	term.handleEvent(context.Background(), tcell.NewEventMouse(40, 5, tcell.ButtonNone, tcell.ModNone))

	snap := game.Snapshot()
	want := game.CellToField(40, 80)
	if got := snap.PaddleX + snap.PaddleW/2; got != want {
		t.Errorf("paddle center = %v, expected %v", got, want)
	}
	if term.state.Running {
		t.Error("motion should not start the game")
	}
}

func TestClickOnPressOnly(t *testing.T) {
	term, _, _ := newTestTerminal(t, &fakeGate{connected: true}, Options{})
	ctx := context.Background()

	term.handleEvent(ctx, tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone))
	if !term.state.Running {
		t.Fatal("button press should start the game")
	}
	if !term.buttonDown {
		t.Error("button should be tracked as held")
	}

	// Held button while moving is a drag, not a second click.
	term.handleEvent(ctx, tcell.NewEventMouse(41, 5, tcell.Button1, tcell.ModNone))
	term.handleEvent(ctx, tcell.NewEventMouse(41, 5, tcell.ButtonNone, tcell.ModNone))
	if term.buttonDown {
		t.Error("release should clear the held button")
	}
}

func TestKeys(t *testing.T) {
	term, _, game := newTestTerminal(t, &fakeGate{connected: true}, Options{})
	ctx := context.Background()

	before := game.Snapshot().PaddleX
	term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if after := game.Snapshot().PaddleX; after >= before {
		t.Errorf("left should move the paddle left: %v -> %v", before, after)
	}

	term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !term.state.Running {
		t.Error("space should start the game")
	}

	if !term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	term, _, _ := newTestTerminal(t, &fakeGate{connected: true}, Options{})

	term.tick()
	if term.state.Ticks != 0 {
		t.Fatal("tick advanced a game that was not started")
	}

	term.handleEvent(context.Background(), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	term.tick()
	term.tick()
	if term.state.Ticks != 2 {
		t.Errorf("Ticks = %d, expected 2", term.state.Ticks)
	}
}

func TestConnectFailureShowsToast(t *testing.T) {
	term, sim, _ := newTestTerminal(t, &fakeGate{}, Options{ChainName: "Monad"})

	term.handleEvent(context.Background(), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !term.connecting {
		t.Fatal("click with closed gate should connect")
	}

	select {
	case res := <-term.connectCh:
		term.finishConnect(res)
	case <-time.After(2 * time.Second):
		t.Fatal("connect did not finish")
	}

	term.draw()
	if got := rowText(sim, 24); !strings.Contains(got, "Wallet request rejected") {
		t.Errorf("status line = %q", got)
	}
}

func TestDrawShowsOverlayAndHelp(t *testing.T) {
	term, sim, _ := newTestTerminal(t, &fakeGate{}, Options{})

	term.draw()
	text := screenText(sim)
	if !strings.Contains(text, blockbreaker.TextConnect) {
		t.Error("closed gate should show the connect overlay")
	}
	if !strings.Contains(rowText(sim, 24), "q quit") {
		t.Error("status line should show help")
	}
}

func TestGameOverSavesScore(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	term, _, game := newTestTerminal(t, &fakeGate{connected: true}, Options{Store: store, Player: "tty"})
	term.handleEvent(context.Background(), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	// Play well until something scores, then step aside.
	for i := 0; i < 100000 && !term.state.GameOver; i++ {
		snap := game.Snapshot()
		switch {
		case snap.Score == 0:
			// Off-center hits send the ball sideways across the field.
			game.PointerMove(snap.BallX + snap.BallSize/2 + 20)
		case snap.BallX < snap.FieldW/2:
			game.PointerMove(snap.FieldW)
		default:
			game.PointerMove(0)
		}
		term.tick()
	}
	if !term.state.GameOver {
		t.Fatal("game never ended")
	}

	entries, err := store.TopScores(game.ID(), 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 1 || entries[0].Player != "tty" || entries[0].Score != term.state.Score {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	game := blockbreaker.New(blockbreaker.WithRand(blockbreaker.NewSimpleRNG(1)))
	term := New(sim, game, wallet.Open{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
