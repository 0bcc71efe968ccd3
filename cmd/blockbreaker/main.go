// blockbreaker is a Breakout game for the terminal, the desktop and SSH,
// with an optional wallet gate in front of play.
//
// Usage:
//
//	blockbreaker list                 - List game variants
//	blockbreaker play [variant]       - Play a variant (default: blockbreaker)
//	blockbreaker menu                 - Pick variants interactively, with a session scoreboard
//	blockbreaker serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible block fields
//	--config <path>        - Load a YAML or TOML config file
//	--difficulty <preset>  - easy, normal or hard
//	--log-file <path>      - Write logs to a file
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbreaker",
	Short: "Block Breaker - Breakout with a wallet gate",
	Long: `Block Breaker is a Breakout game: move the paddle with the mouse,
keep the ball in play and break every block.

When the wallet gate is enabled, play starts only after a wallet has
connected and switched to the configured chain.

Available commands:
  list     - Show game variants
  play     - Play a variant directly
  menu     - Interactive variant picker with scoreboard
  serve    - Start SSH server for remote play

Examples:
  blockbreaker play
  blockbreaker play blockbreaker_resolved --difficulty hard
  blockbreaker play --frontend canvas
  blockbreaker serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}
