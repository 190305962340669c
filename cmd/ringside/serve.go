package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ringside-tui/ringside/internal/logging"
	"github.com/ringside-tui/ringside/internal/platform/otel"
	"github.com/ringside-tui/ringside/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ringside SSH server",
	Long: `Start an SSH server that lets users connect and fight.

Each SSH connection gets its own session with a bout picker. Besides the
local bouts, connected players can host an online bout and share its
join code, or join one hosted by someone else.
Records are stored per-server (all users share the same tables).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.ringside/host_key

Tracing:
  Set RINGSIDE_OTEL_ENDPOINT to an OTLP/HTTP endpoint to export traces.

Examples:
  ringside serve                           # Listen on :23234 with auto-generated key
  ringside serve --ssh :2222               # Listen on port 2222
  ringside serve --host-key ./my_host_key  # Use specific host key
  ringside serve --db ./ringside.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", env.IdleTimeout, "Idle time before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := logging.New(os.Stderr, "ringside-ssh", flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	shutdown, err := otel.Setup(context.Background(), "ringside", env.OTelEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("could not flush traces", "error", err)
		}
	}()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting ringside SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
