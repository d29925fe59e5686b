// dodge is a terminal arcade game: steer left and right, dash through
// falling blocks, and collect coins and shields.
//
// Usage:
//
//	dodge play [difficulty]   - Play in the current terminal
//	dodge menu                - Title menu with high scores
//	dodge serve               - Start SSH server for remote play
//	dodge scores              - Show high scores
//	dodge scores serve        - Serve the score HTTP API
//	dodge simulate            - Run a headless session and print stats
//	dodge config dump         - Print the effective config as YAML
//	dodge list                - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom dodge config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--player <name>       - Name scores are saved under
//	--log-file <path>     - Log destination for terminal commands
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Dodge - an arcade survival game for your terminal",
	Long: `Dodge is a terminal arcade game. Blocks rain down in lanes, walls,
staggered rows and chunks; steer between them, dash through them, and pick
up coins for points and shields for a second chance.

Available commands:
  play      - Play directly in this terminal
  menu      - Title menu with difficulty and high scores
  serve     - Start SSH server for remote play
  scores    - View high scores or serve them over HTTP
  simulate  - Run a headless session with a scripted player
  config    - Inspect the effective configuration

Examples:
  dodge play
  dodge play hard
  dodge menu --player alice
  dodge serve --ssh :2222
  dodge scores --limit 20
  dodge scores serve --http :8080
  dodge simulate --duration 60s --strategy autopilot`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && !validPreset(flagDifficulty) {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		dodge.SetConfigPath(flagConfig)
		dodge.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom dodge config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagPlayer, "player", "", "Player name for scores (default: current user)")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for terminal commands (default: discard)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
