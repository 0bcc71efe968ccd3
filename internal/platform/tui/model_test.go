package tui

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

type fakeGate struct {
	connected bool
	err       error
	calls     int
}

func (f *fakeGate) Connected() bool { return f.connected }

func (f *fakeGate) Connect(context.Context) (wallet.Result, error) {
	f.calls++
	if f.err != nil {
		return wallet.Result{}, f.err
	}
	f.connected = true
	return wallet.Result{Account: "0xabc", Notice: "Already connected to Monad network!"}, nil
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}

func newTestModel(t *testing.T, gate *fakeGate, opts ...ModelOption) (Model, *blockbreaker.Game) {
	t.Helper()
	game := blockbreaker.New(
		blockbreaker.WithRand(blockbreaker.NewSimpleRNG(3)),
		blockbreaker.WithGate(gate),
	)
	m := NewModel(game, gate, testRuntime, opts...)
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func click() tea.MouseMsg {
	return tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestClickStartsGameAndTicks(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{connected: true})

	m, cmd := update(t, m, click())
	if !m.State().Running {
		t.Fatal("click should start the game")
	}
	if !m.ticking || cmd == nil {
		t.Error("starting the game should schedule a tick")
	}

	m, cmd = update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("a running game should reschedule its tick")
	}
	if m.State().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", m.State().Ticks)
	}
}

func TestNoTickBeforeStart(t *testing.T) {
	m, game := newTestModel(t, &fakeGate{connected: true})
	before := game.Snapshot()

	_, cmd := update(t, m, TickMsg{})
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	after := game.Snapshot()
	if after.Hash() != before.Hash() {
		t.Error("game advanced before it was started")
	}
}

func TestMouseMotionMovesPaddle(t *testing.T) {
	m, game := newTestModel(t, &fakeGate{})

	col := 20
	update(t, m, tea.MouseMsg{X: col, Y: 5, Action: tea.MouseActionMotion})

	snap := game.Snapshot()
	want := game.CellToField(col, testRuntime.ScreenW)
	if got := snap.PaddleX + snap.PaddleW/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("paddle center = %v, expected %v", got, want)
	}
}

func TestRightClickIgnored(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{connected: true})

	m, _ = update(t, m, tea.MouseMsg{X: 40, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.State().Running {
		t.Error("right click should not start the game")
	}
}

func TestClosedGateRequestsConnect(t *testing.T) {
	gate := &fakeGate{}
	m, _ := newTestModel(t, gate)

	m, cmd := update(t, m, click())
	if m.State().Running {
		t.Fatal("game must not start while the gate is closed")
	}
	if !m.connecting || cmd == nil {
		t.Fatal("click should start a connect")
	}
	if m.Toast().Text != "Connecting wallet..." {
		t.Errorf("toast = %q", m.Toast().Text)
	}

	// A second click while connecting must not start another request.
	m, _ = update(t, m, click())
	if !m.connecting {
		t.Error("still connecting")
	}

	res, err := gate.Connect(context.Background())
	m, _ = update(t, m, connectResultMsg{result: res, err: err})
	if m.connecting {
		t.Error("connecting should clear on result")
	}
	if m.Toast().Text != "Already connected to Monad network!" {
		t.Errorf("toast = %q", m.Toast().Text)
	}

	m, _ = update(t, m, click())
	if !m.State().Running {
		t.Error("click after connect should start the game")
	}
}

func TestConnectFailureToast(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{}, WithChainName("Monad"))

	m, _ = update(t, m, connectResultMsg{err: wallet.ErrChainSwitch})
	if got := m.Toast().Text; got != "Failed to switch to Monad network" {
		t.Errorf("toast = %q", got)
	}
	if m.Toast().Kind != toastError {
		t.Error("failure toast should use the error style")
	}
}

func TestToastExpires(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{})

	m, _ = update(t, m, connectResultMsg{err: wallet.ErrUserRejected})
	first := m.Toast().id
	m, _ = update(t, m, connectResultMsg{err: wallet.ErrChainAdd})

	// The older expiry must not clear the newer toast.
	m, _ = update(t, m, toastExpiredMsg{id: first})
	if m.Toast().Text == "" {
		t.Fatal("stale expiry cleared the current toast")
	}
	m, _ = update(t, m, toastExpiredMsg{id: m.Toast().id})
	if m.Toast().Text != "" {
		t.Error("toast should be cleared")
	}
}

func TestGameOverSavesScoreOnce(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m, game := newTestModel(t, &fakeGate{connected: true}, WithStore(store), WithPlayer("tester"))
	m, _ = update(t, m, click())

	for i := 0; i < 100000 && !m.State().GameOver; i++ {
		// Keep the paddle on the far side of the ball.
		snap := game.Snapshot()
		if snap.BallX < snap.FieldW/2 {
			game.PointerMove(snap.FieldW)
		} else {
			game.PointerMove(0)
		}
		m, _ = update(t, m, TickMsg{})
	}

	if !m.State().GameOver {
		t.Fatal("ball was never lost")
	}
	if m.ticking {
		t.Error("ticking should stop at game over")
	}

	m, _ = update(t, m, TickMsg{})

	count, err := store.Count(blockbreaker.IDReference)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	want := 0
	if m.State().Score > 0 {
		want = 1
	}
	if count != want {
		t.Errorf("saved %d scores, expected %d", count, want)
	}
}

func TestBackToMenu(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{connected: true})
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("b should be ignored without menu return")
	}

	m, _ = newTestModel(t, &fakeGate{connected: true}, WithMenuReturn())
	m, _ = update(t, m, click())
	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("b should be ignored while running")
	}

	m, _ = newTestModel(t, &fakeGate{connected: true}, WithMenuReturn())
	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b should return to the menu before the game starts")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{})
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestViewShowsGameAndStatus(t *testing.T) {
	m, _ := newTestModel(t, &fakeGate{})

	view := m.View()
	if !strings.Contains(view, blockbreaker.TextConnect) {
		t.Error("closed gate should show the connect overlay")
	}
	if !strings.Contains(view, "q quit") {
		t.Error("status line should show help")
	}
	if lines := strings.Count(view, "\n") + 1; lines != testRuntime.ScreenH {
		t.Errorf("view has %d lines, expected %d", lines, testRuntime.ScreenH)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, 'A', core.ColorRed)
	s.SetColored(1, 0, 'B', core.ColorRed)
	s.Set(2, 0, 'C')

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	for _, r := range []string{"AB", "C"} {
		if !strings.Contains(out, r) {
			t.Errorf("output %q missing %q", out, r)
		}
	}
}
