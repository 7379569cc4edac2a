package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomberman/internal/platform/tui"
	"github.com/vovakirdan/tui-bomberman/internal/storage"
)

var (
	flagAddress     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bomberman SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent game. Runs from every session
are kept in one in-memory journal that the Tab recap shows, and are lost
when the server stops. Sound is always off in this mode.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - The key is generated on first start if the file does not exist

Examples:
  bomberman serve                           # Listen on server.address from config
  bomberman serve --address :2222           # Listen on port 2222
  bomberman serve --host-key ./my_host_key  # Use specific host key
  bomberman serve --idle-timeout 5m

Users can connect with:
  ssh localhost -p 2323`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddress, "address", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	settings, source, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}
	if flagAddress != "" {
		settings.Server.Address = flagAddress
	}
	if flagHostKey != "" {
		settings.Server.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		settings.Server.IdleTimeout = flagIdleTimeout
	}

	logOut := os.Stderr
	if settings.Log.File != "" {
		f, openErr := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fail("cannot open log file: %v", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, settings.Log.Level, "")
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("settings loaded", "source", source)

	theme, err := bomberman.ThemeByName(settings.Display.Theme, settings.Display.Glyphs)
	if err != nil {
		fail("%v", err)
	}

	journal, err := storage.OpenJournal()
	if err != nil {
		fail("opening run journal: %v", err)
	}
	defer journal.Close()

	newGame := func(user string) tui.Game {
		return bomberman.New(
			bomberman.WithLogger(logger.With("user", user)),
			bomberman.WithTheme(theme),
			bomberman.WithJournal(journal, user),
		)
	}

	cfg := tui.SSHServerConfig{
		Address:     settings.Server.Address,
		HostKeyPath: settings.Server.HostKey,
		IdleTimeout: settings.Server.IdleTimeout,
		TickRate:    settings.Runtime.FPS,
		HoldTicks:   settings.Input.HoldTicks,
	}

	server, err := tui.NewSSHServer(cfg, logger, journal, newGame)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Bomberman SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}
