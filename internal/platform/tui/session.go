package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScoreboard
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Context context.Context
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Game    config.Config
	Player  string
	Logger  *log.Logger
}

// SessionModel manages the full session flow: menu -> game -> menu,
// with the scoreboard reachable from the menu. Each session owns its
// own wallet gate, so one player's connection never unlocks another's game.
type SessionModel struct {
	opts      SessionOptions
	gate      wallet.Gate
	view      sessionView
	menu      MenuModel
	board     ScoreboardModel
	gameModel Model
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return SessionModel{
		opts: opts,
		gate: wallet.New(opts.Game.Wallet, wallet.WithLogger(opts.Logger)),
		menu: NewMenuModel(opts.Store, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.view = viewScoreboard
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		env := registry.Env{Config: m.opts.Game, Gate: m.gate}
		game, err := registry.Create(m.menu.Selected().GameID, env)
		if err != nil {
			m.opts.Logger.Error("cannot create game", "err", err)
			m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
			return m, nil
		}

		m.gameModel = NewModel(game, m.gate, m.opts.Runtime,
			WithContext(m.opts.Context),
			WithStore(m.opts.Store),
			WithLogger(m.opts.Logger),
			WithPlayer(m.opts.Player),
			WithChainName(m.opts.Game.Wallet.ChainName),
			WithMenuReturn(),
		)
		m.view = viewGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		m.view = viewMenu
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.view = viewMenu
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.gameModel.View()
	case viewScoreboard:
		return m.board.View()
	}
	return m.menu.View()
}
