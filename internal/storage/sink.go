package storage

import (
	"context"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
)

// Sink reports final scores into the local store.
type Sink struct {
	store *Store
}

// NewSink wraps a store as a dodge.ScoreSink.
func NewSink(store *Store) *Sink {
	return &Sink{store: store}
}

// Submit saves the score and answers with the player's best.
func (s *Sink) Submit(ctx context.Context, sub dodge.Submission) (dodge.Result, error) {
	best, err := s.store.RecordScore(ctx, sub.GameID, sub.Player, sub.Score)
	if err != nil {
		return dodge.Result{}, err
	}
	return dodge.Result{OK: true, Best: best}, nil
}

var _ dodge.ScoreSink = (*Sink)(nil)
