package dodge

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// InputSource supplies one input frame per simulation step.
type InputSource interface {
	Poll() core.InputFrame
}

// InputFunc adapts a function to InputSource.
type InputFunc func() core.InputFrame

// Poll calls f.
func (f InputFunc) Poll() core.InputFrame {
	return f()
}

// DriverOptions configures a Driver. Zero values fall back to the session's config.
type DriverOptions struct {
	Sink          ScoreSink
	Logger        *log.Logger
	GameID        string
	Player        string
	ReportTimeout time.Duration
	MaxFrame      time.Duration
}

// Driver runs a Session from a clock, owns its start/retry lifecycle and
// pause state, and reports the final score when a session ends.
type Driver struct {
	session *Session
	clock   core.Clock
	sink    ScoreSink
	log     *log.Logger

	gameID        string
	player        string
	reportTimeout time.Duration
	maxFrame      time.Duration

	paused   bool
	best     int
	reports  chan reportOutcome
	inflight sync.WaitGroup
	pending  atomic.Int32
}

// NewDriver wires a session to a clock. A nil clock uses the wall clock.
func NewDriver(s *Session, clock core.Clock, opts DriverOptions) *Driver {
	if clock == nil {
		clock = core.NewWallClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	eng := s.Config().Engine
	if opts.ReportTimeout <= 0 {
		opts.ReportTimeout = time.Duration(eng.ReportTimeoutMs) * time.Millisecond
	}
	if opts.MaxFrame <= 0 {
		opts.MaxFrame = time.Duration(eng.MaxFrameMs) * time.Millisecond
	}
	if opts.GameID == "" {
		opts.GameID = GameID
	}

	return &Driver{
		session:       s,
		clock:         clock,
		sink:          opts.Sink,
		log:           logger,
		gameID:        opts.GameID,
		player:        opts.Player,
		reportTimeout: opts.ReportTimeout,
		maxFrame:      opts.MaxFrame,
		reports:       make(chan reportOutcome, 8),
	}
}

// Session returns the driven session.
func (d *Driver) Session() *Session {
	return d.session
}

// Start begins a new session. It is ignored while a session is running.
func (d *Driver) Start() bool {
	if d.session.Running() {
		return false
	}
	d.session.Start()
	d.paused = false
	if r, ok := d.clock.(core.Resettable); ok {
		r.Reset()
	}
	d.log.Debug("session started", "player", d.player)
	return true
}

// Retry starts over after game over. It is ignored while a session is running.
func (d *Driver) Retry() bool {
	return d.Start()
}

// TogglePause pauses or resumes a running session.
func (d *Driver) TogglePause() {
	if d.session.Running() {
		d.paused = !d.paused
	}
}

// Paused reports whether the session is paused.
func (d *Driver) Paused() bool {
	return d.paused
}

// Best returns the best score last reported by the sink.
func (d *Driver) Best() int {
	return d.best
}

// SetBest seeds the best score shown before the first report.
func (d *Driver) SetBest(best int) {
	d.best = best
}

// Frame reads the clock and advances the session by the elapsed time.
// Paused and idle frames still consume clock time so that resuming never
// replays the gap as a spawn burst.
func (d *Driver) Frame(in core.InputFrame) StepOutcome {
	d.drainReports()

	dt := d.clock.Tick()
	if dt > d.maxFrame {
		dt = d.maxFrame
	}
	if d.paused {
		return StepOutcome{}
	}

	out := d.session.Step(dt.Seconds(), InputFromFrame(in))
	if out.Ended {
		score := d.session.Score()
		d.log.Info("game over", "player", d.player, "score", score, "elapsed", d.session.Elapsed())
		d.report(score)
	}
	return out
}

// Run steps the session until it ends or ctx is cancelled, calling draw
// after every step.
func (d *Driver) Run(ctx context.Context, src InputSource, draw func(*Session)) error {
	for d.session.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Frame(src.Poll())
		if draw != nil {
			draw(d.session)
		}
	}
	return nil
}
