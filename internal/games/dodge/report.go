package dodge

import (
	"context"
	"errors"
	"fmt"
)

// ErrReportRejected is returned when a score sink answers without error
// but does not accept the score.
var ErrReportRejected = errors.New("dodge: score report rejected")

// Submission is the final result of one session.
type Submission struct {
	GameID string
	Player string
	Score  int
}

// Result is the sink's answer to a submission.
type Result struct {
	OK   bool
	Best int
}

// ScoreSink receives final scores at game over.
type ScoreSink interface {
	Submit(ctx context.Context, sub Submission) (Result, error)
}

// SinkFunc adapts a function to ScoreSink.
type SinkFunc func(ctx context.Context, sub Submission) (Result, error)

// Submit calls f.
func (f SinkFunc) Submit(ctx context.Context, sub Submission) (Result, error) {
	return f(ctx, sub)
}

type reportOutcome struct {
	sub Submission
	res Result
	err error
}

// report submits the final score on its own goroutine. The outcome is
// applied by the next Frame, so the step loop never waits on the sink.
func (d *Driver) report(score int) {
	if d.sink == nil {
		return
	}
	sub := Submission{GameID: d.gameID, Player: d.player, Score: score}

	d.inflight.Add(1)
	d.pending.Add(1)
	go func() {
		defer d.inflight.Done()
		defer d.pending.Add(-1)

		ctx, cancel := context.WithTimeout(context.Background(), d.reportTimeout)
		defer cancel()

		res, err := d.sink.Submit(ctx, sub)
		if err == nil && !res.OK {
			err = ErrReportRejected
		}

		select {
		case d.reports <- reportOutcome{sub: sub, res: res, err: err}:
		default:
			d.log.Warn("dropping score report, queue full", "score", sub.Score)
		}
	}()
}

// drainReports applies finished reports without blocking.
func (d *Driver) drainReports() {
	for {
		select {
		case r := <-d.reports:
			d.applyReport(r)
		default:
			return
		}
	}
}

func (d *Driver) applyReport(r reportOutcome) {
	if r.err != nil {
		d.log.Error("score report failed", "player", r.sub.Player, "score", r.sub.Score, "error", r.err)
		return
	}
	// A remote board may know less than the local store.
	d.best = max(d.best, r.res.Best)
	d.log.Debug("score reported", "player", r.sub.Player, "score", r.sub.Score, "best", r.res.Best)
}

// Pending returns the number of reports still waiting on the sink.
func (d *Driver) Pending() int {
	return int(d.pending.Load())
}

// WaitReports blocks until every in-flight report has finished and applies
// them, or until ctx is done.
func (d *Driver) WaitReports(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.drainReports()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dodge: %d score reports unfinished: %w", d.Pending(), ctx.Err())
	}
}
