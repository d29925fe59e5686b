package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/scoreapi"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var flagScoreURL string

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play dodge",
	Long: `Start a game of dodge in this terminal.

Controls:
  Left/A, Right/D  - Move (hold)
  Space/X          - Dash: brief invulnerability and speed
  Enter            - Start
  R                - Retry after game over
  P                - Pause
  Esc              - Leave (when idle, paused or over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower falls, sparser drips
  normal - Original tuning
  hard   - Starts as if 30 seconds in
  fixed  - No progression, stays at the starting speed

Scores go to the local database, or to a score server with --score-url.

Examples:
  dodge play
  dodge play hard
  dodge play --config ./my-dodge.yaml
  dodge play --score-url http://localhost:8080 --player alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScoreURL, "score-url", "", "Score server base URL (default: local database)")
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		if !validPreset(args[0]) {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", args[0])
		}
		flagDifficulty = args[0]
		dodge.SetDifficultyPreset(flagDifficulty)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	// Invalid custom configs fail here instead of silently falling back
	if _, err := dodge.LoadConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	game, err := registry.Create(dodge.GameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
		if best, err := store.PlayerBest(dodge.GameID, cfg.Player); err == nil {
			cfg.Best = best
		}
	}

	switch {
	case flagScoreURL != "":
		dodge.SetScoreSink(scoreapi.NewClient(flagScoreURL, nil))
		logger.Info("reporting scores over HTTP", "url", flagScoreURL)
	case store != nil:
		dodge.SetScoreSink(storage.NewSink(store))
	}

	keys, hold := keyBindings(logger)
	if err := tui.Run(game, cfg, tui.ModelOptions{Keys: keys, Hold: hold}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return err
	}
	return nil
}
