// Package scoreapi carries final dodge scores over HTTP: a client that
// acts as a score sink and a server backed by the local score store.
package scoreapi

import "time"

// ScorePath is where final scores are posted.
const ScorePath = "/api/arcade/score"

// ScoresPath lists the leaderboard.
const ScoresPath = "/api/arcade/scores"

type scoreRequest struct {
	Score  *int   `json:"score"`
	Player string `json:"player,omitempty"`
}

type scoreResponse struct {
	OK    bool   `json:"ok"`
	Best  int    `json:"best"`
	Error string `json:"error,omitempty"`
}

// Entry is one leaderboard row.
type Entry struct {
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type scoresResponse struct {
	Game   string  `json:"game"`
	Scores []Entry `json:"scores"`
}
