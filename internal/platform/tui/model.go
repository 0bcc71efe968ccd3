package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

const helpText = "mouse/←→ move • click/space start • q quit"

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model hosting one game.
// It implements tea.Model interface.
type Model struct {
	ctx       context.Context
	game      registry.Game
	gate      wallet.Gate
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	player    string
	chainName string
	canGoBack bool

	state      core.GameState
	ticking    bool
	connecting bool
	scoreSaved bool
	toast      Toast
	toastSeq   int

	quitting   bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithContext sets the context passed to wallet connect requests.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithStore enables saving scores at game over.
func WithStore(s *storage.Store) ModelOption {
	return func(m *Model) { m.store = s }
}

// WithLogger sets the logger for game and wallet events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlayer sets the name scores are saved under.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		if name != "" {
			m.player = name
		}
	}
}

// WithChainName sets the network name used in wallet failure notices.
func WithChainName(name string) ModelOption {
	return func(m *Model) { m.chainName = name }
}

// WithMenuReturn lets b/esc leave the game when it is not running.
func WithMenuReturn() ModelOption {
	return func(m *Model) { m.canGoBack = true }
}

// NewModel creates a new TUI model for the given game and gate.
func NewModel(game registry.Game, gate wallet.Gate, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		ctx:       context.Background(),
		game:      game,
		gate:      gate,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		logger:    log.New(io.Discard),
		player:    "local",
		chainName: "Monad",
	}
	for _, opt := range opts {
		opt(&m)
	}
	// One row is reserved for the status line.
	m.screen = core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1))
	return m
}

// Init implements tea.Model.
// The game waits for a click, so no tick is scheduled yet.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick()

	case connectResultMsg:
		return m.handleConnect(msg)

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = Toast{}
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The field keeps its own coordinates, so only the buffer changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.canGoBack && !m.state.Running && m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
		m.backToMenu = true
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m.apply(frame)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	switch msg.Action {
	case tea.MouseActionMotion:
		frame.MovePointer(m.game.CellToField(msg.X, m.screen.Width()))
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		frame.MovePointer(m.game.CellToField(msg.X, m.screen.Width()))
		frame.Set(core.ActionClick)
	default:
		return m, nil
	}
	return m.apply(frame)
}

// apply feeds input to the game without advancing it.
func (m Model) apply(frame core.InputFrame) (tea.Model, tea.Cmd) {
	wasRunning := m.state.Running
	res := m.game.Apply(frame)
	m.state = res.State

	var cmds []tea.Cmd
	if res.ConnectRequested && !m.connecting {
		m.connecting = true
		m.logger.Info("wallet connect requested", "player", m.player)
		cmds = append(cmds, m.showToast("Connecting wallet...", toastInfo), connectCmd(m.ctx, m.gate))
	}
	if !wasRunning && m.state.Running {
		m.scoreSaved = false
		m.logger.Info("game started", "game", m.game.ID(), "player", m.player)
	}
	if m.state.Running && !m.ticking {
		m.ticking = true
		cmds = append(cmds, tickCmd(m.config.TickRate))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.ticking {
		return m, nil
	}

	res := m.game.Step(core.InputFrame{})
	m.state = res.State
	if res.Ended {
		m.recordGameOver()
	}

	if !m.state.Running {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// recordGameOver saves the finished game once.
func (m *Model) recordGameOver() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	m.logger.Info("game over",
		"game", m.game.ID(),
		"player", m.player,
		"score", m.state.Score,
		"blocks", m.state.Blocks,
		"ticks", m.state.Ticks)

	if m.store == nil || m.state.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.state.Score,
		Ticks:  m.state.Ticks,
		Blocks: m.state.Blocks,
	})
	if err != nil {
		m.logger.Error("failed to save score", "err", err)
	}
}

func (m Model) handleConnect(msg connectResultMsg) (tea.Model, tea.Cmd) {
	m.connecting = false
	if msg.err != nil {
		m.logger.Warn("wallet connect failed", "player", m.player, "err", msg.err)
		return m, m.showToast(wallet.FailureNotice(msg.err, m.chainName), toastError)
	}
	m.logger.Info("wallet connected", "player", m.player, "notice", msg.result.Notice)
	return m, m.showToast(msg.result.Notice, toastSuccess)
}

func (m *Model) showToast(text string, kind toastKind) tea.Cmd {
	m.toastSeq++
	m.toast = Toast{Text: text, Kind: kind, id: m.toastSeq}
	return expireToastCmd(m.toastSeq)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if m.toast.Text != "" {
		return m.toast.Render()
	}
	help := helpText
	if m.canGoBack && !m.state.Running {
		help += " • b menu"
	}
	return helpStyle.Render(help)
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state the model observed.
func (m Model) State() core.GameState {
	return m.state
}

// Toast returns the notification currently shown.
func (m Model) Toast() Toast {
	return m.toast
}

// Run starts the Bubble Tea program for one game.
func Run(ctx context.Context, game registry.Game, gate wallet.Gate, cfg core.RuntimeConfig, opts ...ModelOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(game, gate, cfg, append(opts, WithContext(ctx))...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
