package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/leaderboard"
	"github.com/vovakirdan/bomber-legend/internal/logging"
	"github.com/vovakirdan/bomber-legend/internal/platform/tui"
)

var (
	flagServerConfig string
	flagSSHAddr      string
	flagHostKey      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu and signs
in to the leaderboard under its SSH user name. All sessions share one
leaderboard backend.

Settings come from a TOML file (--config); --ssh, --host-key, --backend,
--dsn, --db and --log-level override it when given.

Examples:
  arcade serve
  arcade serve --config ./server.toml
  arcade serve --ssh :2222 --backend postgres --dsn postgres://localhost/arcade

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "config", "", "Path to server config TOML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
}

// serverConfig loads the TOML file and applies explicitly set flags.
func serverConfig(cmd *cobra.Command) (*config.ServerConfig, error) {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flagSSHAddr != "" {
		host, port, err := net.SplitHostPort(flagSSHAddr)
		if err != nil {
			return nil, fmt.Errorf("--ssh: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("--ssh: bad port %q", port)
		}
		cfg.SSH.Host, cfg.SSH.Port = host, p
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flags.Changed("backend") {
		cfg.Leaderboard.Backend = flagBackend
	}
	if flags.Changed("dsn") {
		cfg.Leaderboard.DSN = flagDSN
	}
	if flags.Changed("db") {
		cfg.Leaderboard.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := serverConfig(cmd)
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := logging.New(cfg.Logging, "arcade")
	if err != nil {
		fail("%v", err)
	}
	logging.Install(logger)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := leaderboard.OpenBackend(ctx, cfg.Leaderboard)
	if err != nil {
		fail("opening %s leaderboard: %v", cfg.Leaderboard.Backend, err)
	}
	defer closeBackend()

	server, err := tui.NewSSHServer(cfg, backend, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting arcade SSH server on %s (leaderboard: %s)\n", server.Addr(), cfg.Leaderboard.Backend)
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.SSH.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		closeBackend()
		closeLog()
		os.Exit(1)
	}
}
