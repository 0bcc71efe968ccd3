package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
	"github.com/vovakirdan/block-breaker/internal/platform/canvas"
	"github.com/vovakirdan/block-breaker/internal/platform/rawterm"
	"github.com/vovakirdan/block-breaker/internal/platform/tui"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
	"github.com/vovakirdan/block-breaker/internal/wallet"
)

// Frontends accepted by --frontend.
const (
	frontendTUI    = "tui"
	frontendCanvas = "canvas"
	frontendTerm   = "term"
)

var flagFrontend string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: blockbreaker).

Controls:
  Mouse        - Move the paddle
  Left/Right   - Nudge the paddle
  Click/Space  - Connect wallet, start, or play again
  Q/Ctrl+C     - Quit

Frontends:
  tui     - Bubble Tea in the terminal (default)
  term    - raw tcell terminal, follows the mouse without a button held
  canvas  - 600x500 desktop window

Examples:
  blockbreaker play
  blockbreaker play blockbreaker_resolved
  blockbreaker play --difficulty easy --frontend canvas
  blockbreaker play --config ./my-blockbreaker.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTUI, "Frontend: tui, term, canvas")
}

func runPlay(cmd *cobra.Command, args []string) error {
	id := blockbreaker.IDReference
	if len(args) == 1 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 'blockbreaker list' to see variants", id)
	}

	gate := newGate()
	game, err := registry.Create(id, registry.Env{Config: appConfig, Gate: gate})
	if err != nil {
		return err
	}

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	return playGame(cmd, game, gate, store)
}

func playGame(cmd *cobra.Command, game registry.Game, gate wallet.Gate, store *storage.Store) error {
	ctx := cmd.Context()
	rt := runtimeConfig()
	player := playerName()
	chain := appConfig.Wallet.ChainName

	appLogger.Info("starting game", "game", game.ID(), "frontend", flagFrontend, "seed", rt.Seed)

	switch flagFrontend {
	case frontendTUI:
		return tui.Run(ctx, game, gate, rt,
			tui.WithStore(store),
			tui.WithLogger(appLogger),
			tui.WithPlayer(player),
			tui.WithChainName(chain),
		)

	case frontendTerm:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("cannot open terminal: %w", err)
		}
		return rawterm.New(screen, game, gate, rt, rawterm.Options{
			Store:     store,
			Logger:    appLogger,
			Player:    player,
			ChainName: chain,
		}).Run(ctx)

	case frontendCanvas:
		bb, ok := game.(*blockbreaker.Game)
		if !ok {
			return fmt.Errorf("variant %q cannot run on the canvas", game.ID())
		}
		return canvas.Run(ctx, bb, gate, rt, canvas.Options{
			Store:     store,
			Logger:    appLogger,
			Player:    player,
			ChainName: chain,
		})
	}

	return fmt.Errorf("unknown frontend %q (want tui, term or canvas)", flagFrontend)
}
