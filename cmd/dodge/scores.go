package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
	"github.com/vovakirdan/tui-dodge/internal/scoreapi"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	flagLimit    int
	flagMine     bool
	flagHTTPAddr string
	flagRate     float64
	flagBurst    int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores from the local database.

Examples:
  dodge scores
  dodge scores --limit 25
  dodge scores --mine --player alice`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var scoresServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scores over HTTP",
	Long: `Serve the score API backed by the local database.

Endpoints:
  POST /api/arcade/score          {"score":N,"player":"name"} -> {"ok":true,"best":N}
  GET  /api/arcade/scores?limit=N leaderboard (optional player=name)
  GET  /healthz                   liveness

Each client address is rate limited.

Examples:
  dodge scores serve
  dodge scores serve --http :9000 --rate 2 --burst 10`,
	Args: cobra.NoArgs,
	RunE: runScoresServe,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Only show scores of --player")

	scoresServeCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
	scoresServeCmd.Flags().Float64Var(&flagRate, "rate", 1, "Requests per second allowed per client")
	scoresServeCmd.Flags().IntVar(&flagBurst, "burst", 5, "Request burst allowed per client")
	scoresCmd.AddCommand(scoresServeCmd)
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	title := "High Scores - Dodge"
	if flagMine {
		player := playerName()
		title = fmt.Sprintf("High Scores - Dodge (%s)", player)
		scores, err = store.PlayerScores(dodge.GameID, player, flagLimit)
	} else {
		scores, err = store.TopScores(dodge.GameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dodge play' to set the first high score!")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Rank", "Player", "Score", "Date")
	for i, entry := range scores {
		t.Row(
			fmt.Sprintf("#%d", i+1),
			entry.Player,
			strconv.Itoa(entry.Score),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)

	stats, err := store.GetGameStats(dodge.GameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Players: %d  Average: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
	}
	return nil
}

func runScoresServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := scoreapi.NewServer(store, scoreapi.ServerOptions{
		GameID: dodge.GameID,
		Logger: logger.WithPrefix("api"),
		Rate:   rate.Limit(flagRate),
		Burst:  flagBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, flagHTTPAddr)
}
