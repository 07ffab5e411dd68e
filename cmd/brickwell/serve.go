package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickwell/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the brickwell SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the main menu. The run
history and the hall of fame are shared by all users of the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.brickwell/host_key

Examples:
  brickwell serve                           # Listen on :23234 with auto-generated key
  brickwell serve --ssh :2222               # Listen on port 2222
  brickwell serve --host-key ./my_host_key  # Use specific host key
  brickwell serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:         flagSSHAddr,
		HostKeyPath:     flagHostKey,
		DBPath:          flagDBPath,
		LeaderboardPath: flagLeaderboard,
		IdleTimeout:     time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:        tickRate(),
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("brickwell-ssh"))
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", cfg.Address)
	return server.ListenAndServe()
}
