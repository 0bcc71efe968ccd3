package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a variant menu and its
own wallet connection. All sessions share one in-memory scoreboard
that lives as long as the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blockbreaker/host_key

Examples:
  blockbreaker serve                           # Listen on :23234
  blockbreaker serve --ssh :2222               # Listen on port 2222
  blockbreaker serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle time before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Game:        appConfig,
	}

	server, err := tui.NewSSHServer(cfg, appLogger.WithPrefix("blockbreaker-ssh"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting Block Breaker SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}
