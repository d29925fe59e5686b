package dodge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
		Player:   "bob",
		Clock:    core.NewFixedClock(16 * time.Millisecond),
	}
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
		SetScoreSink(nil)
	})
}

func TestGameRegistered(t *testing.T) {
	listed := false
	for _, info := range registry.List() {
		listed = listed || (info.ID == GameID && info.Title == "Dodge")
	}
	if !listed {
		t.Fatalf("List() = %+v, expected dodge", registry.List())
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if g.ID() != "dodge" || g.Title() != "Dodge" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestGameLifecycle(t *testing.T) {
	isolateConfig(t)
	sink := &fakeSink{res: Result{OK: true, Best: 9}}
	SetScoreSink(sink)

	g := New()
	g.Reset(testRuntime())
	if st := g.State(); st.Running || st.GameOver {
		t.Fatalf("new game state = %+v, expected idle", st)
	}

	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	g.Step(start)
	if !g.State().Running {
		t.Fatal("Start action did not start the session")
	}

	empty := core.NewInputFrame()
	for range 10 {
		g.Step(empty)
	}
	elapsed := g.session.Elapsed()
	g.Step(start)
	if g.session.Elapsed() <= elapsed {
		t.Error("Start while running reset the session")
	}

	g.session.blocks = append(g.session.blocks, onPlayer(g.session))
	res := g.Step(empty)
	if !res.Ended || !res.State.GameOver {
		t.Fatalf("StepResult = %+v, expected game over", res)
	}

	if err := g.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if subs := sink.submissions(); len(subs) != 1 || subs[0].Player != "bob" || subs[0].GameID != GameID {
		t.Errorf("submissions = %+v", subs)
	}
	if g.State().Best != 9 {
		t.Errorf("Best = %d, expected 9", g.State().Best)
	}

	retry := core.NewInputFrame()
	retry.Set(core.ActionRestart)
	g.Step(retry)
	if st := g.State(); !st.Running || st.GameOver || st.Best != 9 {
		t.Errorf("state after retry = %+v", st)
	}
}

func TestGameFlushWaitsForReplacedSession(t *testing.T) {
	isolateConfig(t)
	release := make(chan struct{})
	var got []Submission
	SetScoreSink(SinkFunc(func(ctx context.Context, sub Submission) (Result, error) {
		select {
		case <-release:
			got = append(got, sub)
			return Result{OK: true, Best: sub.Score}, nil
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}))

	g := New()
	g.Reset(testRuntime())
	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	g.Step(start)
	g.session.blocks = append(g.session.blocks, onPlayer(g.session))
	if res := g.Step(core.NewInputFrame()); !res.Ended {
		t.Fatal("overlapping block did not end the session")
	}

	// A reset while the report is in flight must not lose it.
	g.Reset(testRuntime())
	if g.Pending() != 1 {
		t.Fatalf("Pending() = %d after reset, expected 1", g.Pending())
	}

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := g.Flush(short); err == nil {
		t.Fatal("Flush() returned nil while a report was blocked")
	}

	close(release)
	if err := g.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if g.Pending() != 0 {
		t.Errorf("Pending() = %d after flush, expected 0", g.Pending())
	}
	if len(got) != 1 || got[0].Player != "bob" {
		t.Errorf("submissions = %+v, expected one from bob", got)
	}
	if err := g.Flush(context.Background()); err != nil {
		t.Errorf("second Flush() = %v, expected nil", err)
	}
}

func TestGamePauseToggle(t *testing.T) {
	isolateConfig(t)
	g := New()
	g.Reset(testRuntime())

	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	g.Step(start)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("Pause action did not pause")
	}
	elapsed := g.session.Elapsed()
	g.Step(core.NewInputFrame())
	if g.session.Elapsed() != elapsed {
		t.Error("paused game advanced")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	isolateConfig(t)
	g := New()
	g.Reset(testRuntime())
	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	g.Step(start)
	g.Step(core.NewInputFrame())

	g.Resize(100, 30)
	if !g.State().Running {
		t.Error("resize ended the session")
	}
	if w, h := g.session.Size(); w != 800 || h != 480 {
		t.Errorf("Size() = %vx%v, expected 800x480", w, h)
	}
}

func TestGameCustomConfigAndPreset(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  points_per_second: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("hard")

	g := New()
	g.Reset(testRuntime())
	cfg := g.session.Config()
	if cfg.Scoring.PointsPerSecond != 100 {
		t.Errorf("PointsPerSecond = %v, expected 100", cfg.Scoring.PointsPerSecond)
	}
	if cfg.Difficulty.TimeOffset != 30 {
		t.Errorf("TimeOffset = %v, expected 30", cfg.Difficulty.TimeOffset)
	}
}

func TestGameRuntimeDifficulty(t *testing.T) {
	isolateConfig(t)
	SetDifficultyPreset("hard")

	rt := testRuntime()
	rt.Difficulty = "fixed"

	g := New()
	g.Reset(rt)
	if g.Config().Difficulty.Enabled {
		t.Error("runtime preset fixed should disable progression")
	}

	rt.Difficulty = "bogus"
	rt.Best = 77
	g.Reset(rt)
	if got := g.State().Best; got != 77 {
		t.Errorf("State().Best = %d, expected runtime best 77", got)
	}
	if got := g.Config().Difficulty.TimeOffset; got != 30 {
		t.Errorf("unknown runtime preset TimeOffset = %v, expected process preset 30", got)
	}
}

func TestGameBadConfigFallsBack(t *testing.T) {
	isolateConfig(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := New()
	g.Reset(testRuntime())
	if got := g.session.Config().Abilities.DashCooldownMs; got != 1800 {
		t.Errorf("DashCooldownMs = %v, expected default 1800", got)
	}
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() with missing file expected error")
	}
}

func TestAutopilotSteersAway(t *testing.T) {
	s := startedSession(quietConfig(), 1)
	p := s.Player()
	s.blocks = append(s.blocks, Block{X: p.X, Y: p.Y - 40, W: p.W, H: 20, VY: 200})

	in := Autopilot(s).Poll()
	if !in.Has(core.ActionLeft) && !in.Has(core.ActionRight) {
		t.Error("autopilot ignored a block about to land")
	}
	// Impact in 0.1s with dash ready.
	if !in.Has(core.ActionDash) {
		t.Error("autopilot did not dash before an imminent hit")
	}
}

func TestAutopilotChasesCoins(t *testing.T) {
	s := startedSession(quietConfig(), 1)
	s.coins = append(s.coins, Coin{X: 10, Y: 0, R: 8})

	if in := Autopilot(s).Poll(); !in.Has(core.ActionLeft) {
		t.Error("autopilot did not head for the coin")
	}
}
