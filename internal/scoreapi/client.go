package scoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/games/dodge"
)

// Client posts final scores to a score server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL. A nil hc uses a
// client with a ten second timeout; per-call deadlines come from ctx.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Submit implements dodge.ScoreSink.
func (c *Client) Submit(ctx context.Context, sub dodge.Submission) (dodge.Result, error) {
	score := sub.Score
	body, err := json.Marshal(scoreRequest{Score: &score, Player: sub.Player})
	if err != nil {
		return dodge.Result{}, fmt.Errorf("scoreapi: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ScorePath, bytes.NewReader(body))
	if err != nil {
		return dodge.Result{}, fmt.Errorf("scoreapi: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out scoreResponse
	if err := c.do(req, &out); err != nil {
		return dodge.Result{}, err
	}
	return dodge.Result{OK: out.OK, Best: out.Best}, nil
}

// TopScores fetches the leaderboard. An empty player lists everyone.
func (c *Client) TopScores(ctx context.Context, player string, limit int) ([]Entry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if player != "" {
		q.Set("player", player)
	}
	u := c.baseURL + ScoresPath
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("scoreapi: request: %w", err)
	}

	var out scoresResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Scores, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoreapi: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("scoreapi: %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("scoreapi: decode response: %w", err)
	}
	return nil
}

var _ dodge.ScoreSink = (*Client)(nil)
