package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/platform/tui"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play and Tab for the
scoreboard. After a game you return to the menu. Scores are kept
for this session only.

Examples:
  blockbreaker menu
  blockbreaker menu --frontend canvas`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTUI, "Frontend for games: tui, term, canvas")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	// One wallet connection serves every game of the session.
	gate := newGate()
	rt := runtimeConfig()

	for {
		res, err := tui.RunMenu(store, rt)
		if err != nil {
			return err
		}
		rt = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID, registry.Env{Config: appConfig, Gate: gate})
		if err != nil {
			appLogger.Error("cannot create game", "game", res.GameID, "err", err)
			continue
		}

		if err := playGame(cmd, game, gate, store); err != nil {
			appLogger.Error("game ended with error", "game", res.GameID, "err", err)
		}
		if cmd.Context().Err() != nil {
			return nil
		}
	}
}
