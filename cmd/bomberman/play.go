package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bomberman/internal/audio"
	"github.com/vovakirdan/tui-bomberman/internal/core"
	"github.com/vovakirdan/tui-bomberman/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomberman/internal/platform/tui"
	"github.com/vovakirdan/tui-bomberman/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL  - Move (hold to keep walking)
  Space/X           - Drop a bomb
  P/Esc             - Pause
  Tab               - Runs played this session
  ?                 - More keys
  Q/Ctrl+C          - Quit

After game over, any key starts a new run.

Examples:
  bomberman play
  bomberman play --seed 42 --fps 20
  bomberman play --log-file bomberman.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	settings, _, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	// The TUI owns the terminal, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if settings.Log.File != "" {
		f, openErr := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fail("cannot open log file: %v", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, settings.Log.Level, "bomberman")
	if err != nil {
		fail("%v", err)
	}

	theme, err := bomberman.ThemeByName(settings.Display.Theme, settings.Display.Glyphs)
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.Runtime.FPS,
		Seed:     settings.Runtime.Seed,
	}

	journal, err := storage.OpenJournal()
	if err != nil {
		logger.Warn("run journal unavailable", "error", err)
		journal = nil
	}

	sound := audio.New(settings.Sound, logger)

	opts := []bomberman.Option{
		bomberman.WithLogger(logger),
		bomberman.WithTheme(theme),
		bomberman.WithListener(sound),
	}
	if journal != nil {
		opts = append(opts, bomberman.WithJournal(journal, localPlayer()))
	}
	game := bomberman.New(opts...)

	runErr := tui.Run(game, cfg, tui.Options{
		Journal:   journal,
		HoldTicks: settings.Input.HoldTicks,
		Logger:    logger,
	})

	// Release the speaker and the journal before a potential exit
	sound.Close()
	if journal != nil {
		journal.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// localPlayer names the local player in the journal.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
