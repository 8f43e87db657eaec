package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/liberty/internal/app"
	"github.com/vovakirdan/liberty/internal/config"
	"github.com/vovakirdan/liberty/internal/platform/tui"
	"github.com/vovakirdan/liberty/internal/render"
	"github.com/vovakirdan/liberty/internal/window"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server where every connection gets its own frame loop.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.liberty/host_key

Examples:
  liberty serve                           # Listen on :23234 with auto-generated key
  liberty serve --ssh :2222               # Listen on port 2222
  liberty serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Headless = false

	logger, err := setupLogger(cfg, "liberty-ssh")
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	session := func(ctx context.Context, user string, newHost func(tui.FrameSource) *tui.Host) error {
		a, err := app.Build(cfg, app.Options{
			Logger: logger.With("user", user),
			Host: func(_ config.AppConfig, frames *render.ScreenRenderer) (window.Host, error) {
				return newHost(frames), nil
			},
		})
		if err != nil {
			return err
		}
		_, err = a.Run(ctx)
		return err
	}

	server, err := tui.NewSSHServer(sshServerConfig(cfg), session, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Learn Liberty SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -t localhost -p <port>")
	return server.ListenAndServe()
}

// sshServerConfig starts from the server defaults and applies flags and the
// loaded app config.
func sshServerConfig(cfg config.AppConfig) tui.SSHServerConfig {
	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if cfg.Title != "" {
		sshCfg.Title = cfg.Title
	}
	if cfg.Loop.TickRate > 0 {
		sshCfg.TickRate = cfg.Loop.TickRate
	}
	return sshCfg
}
