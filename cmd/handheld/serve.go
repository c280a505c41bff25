package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld-arcade/internal/platform/tui"
)

var (
	serveAddr    string
	serveHostKey string
	serveIdle    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the simulator for SSH players",
	Long: `Host the simulator over SSH.

Every connection gets a private simulated device and the variant picker.
The SSH user name is the calibration profile, so a returning player skips
the stick sweep. Without --host-key a key is generated once under
~/.handheld/host_key and reused.

Examples:
  handheld serve
  handheld serve --ssh :2222 --idle-timeout 10m
  handheld serve --host-key ./host_key --db ./players.db

Players join with:
  ssh -p 23234 <name>@<host>`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&serveAddr, "ssh", defaults.Address, "listen address (host:port)")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "host key file (generated when empty)")
	serveCmd.Flags().DurationVar(&serveIdle, "idle-timeout", defaults.IdleTimeout, "disconnect players idle this long")
}

func runServe(_ *cobra.Command, _ []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     serveAddr,
		HostKeyPath: serveHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: serveIdle,
	}
	sim := tui.Config{
		Engine: engineCfg,
		Logger: logger,
		Seed:   flagSeed,
	}

	server, err := tui.NewSSHServer(cfg, sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("handheld: serving on %s (ssh -p %s localhost), Ctrl+C stops\n", cfg.Address, port(cfg.Address))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
