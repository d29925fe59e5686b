package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start dodge with the title menu",
	Long: `Start dodge in interactive menu mode.

The menu lets you pick a difficulty, play, and browse the high scores.
After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter        - Select
  Tab          - High scores
  Q            - Quit

Examples:
  dodge menu
  dodge menu --fps 30
  dodge menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := dodge.LoadConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
		dodge.SetScoreSink(storage.NewSink(store))
	}

	keys, hold := keyBindings(logger)
	return tui.RunSession(runtimeConfig(), tui.SessionOptions{
		GameID: dodge.GameID,
		Store:  store,
		Keys:   keys,
		Hold:   hold,
	})
}
