package scoreapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-dodge/internal/storage"
)

func newTestServer(t *testing.T, opts ServerOptions) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer(store, opts), store
}

func unlimited() ServerOptions {
	return ServerOptions{GameID: "dodge", Rate: rate.Inf, Burst: 1}
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, ScorePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerSubmit(t *testing.T) {
	srv, store := newTestServer(t, unlimited())
	h := srv.Handler()

	tests := []struct {
		body     string
		expected int
	}{
		{`{"score":40,"player":"alice"}`, 40},
		{`{"score":15,"player":"alice"}`, 40},
		{`{"score":90,"player":"alice"}`, 90},
	}

	for _, tt := range tests {
		rec := post(t, h, tt.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s status = %d, expected 200", tt.body, rec.Code)
		}
		var resp scoreResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !resp.OK || resp.Best != tt.expected {
			t.Errorf("POST %s = %+v, expected ok best %d", tt.body, resp, tt.expected)
		}
	}

	best, err := store.PlayerBest("dodge", "alice")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best != 90 {
		t.Errorf("PlayerBest() = %d, expected 90", best)
	}
}

func TestServerSubmitAnonymous(t *testing.T) {
	srv, store := newTestServer(t, unlimited())

	rec := post(t, srv.Handler(), `{"score":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if best, _ := store.PlayerBest("dodge", anonymousPlayer); best != 7 {
		t.Errorf("anonymous best = %d, expected 7", best)
	}
}

func TestServerSubmitRejects(t *testing.T) {
	srv, store := newTestServer(t, unlimited())
	h := srv.Handler()

	tests := []struct {
		name string
		body string
	}{
		{"negative", `{"score":-1,"player":"x"}`},
		{"missing score", `{"player":"x"}`},
		{"malformed", `{"score":`},
		{"wrong type", `{"score":"ten"}`},
		{"too large", `{"score":1,"player":"` + strings.Repeat("a", 2*maxBodyBytes) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", rec.Code)
			}
		})
	}

	if rows, _ := store.TopScores("dodge", 10); len(rows) != 0 {
		t.Errorf("rejected submissions stored %d rows", len(rows))
	}
}

func TestServerScores(t *testing.T) {
	srv, store := newTestServer(t, unlimited())
	h := srv.Handler()

	store.SaveScore("dodge", "alice", 10)
	store.SaveScore("dodge", "bob", 30)
	store.SaveScore("dodge", "alice", 20)
	store.SaveScore("other", "carol", 999)

	get := func(target string) (*httptest.ResponseRecorder, scoresResponse) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		var out scoresResponse
		if rec.Code == http.StatusOK {
			if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
		}
		return rec, out
	}

	rec, out := get(ScoresPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET scores status = %d", rec.Code)
	}
	if out.Game != "dodge" || len(out.Scores) != 3 {
		t.Fatalf("GET scores = %+v, expected 3 dodge entries", out)
	}
	if out.Scores[0].Player != "bob" || out.Scores[0].Score != 30 {
		t.Errorf("top entry = %+v, expected bob/30", out.Scores[0])
	}

	_, out = get(ScoresPath + "?limit=1")
	if len(out.Scores) != 1 {
		t.Errorf("limit=1 returned %d entries", len(out.Scores))
	}

	_, out = get(ScoresPath + "?player=alice")
	if len(out.Scores) != 2 || out.Scores[0].Score != 20 {
		t.Errorf("player=alice = %+v, expected 20 then 10", out.Scores)
	}

	for _, bad := range []string{"?limit=0", "?limit=-3", "?limit=abc"} {
		if rec, _ := get(ScoresPath + bad); rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, expected 400", bad, rec.Code)
		}
	}
}

func TestServerHealthAndMethods(t *testing.T) {
	srv, _ := newTestServer(t, unlimited())
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d", rec.Code)
	}

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, ScorePath, http.StatusMethodNotAllowed},
		{http.MethodDelete, ScorePath, http.StatusMethodNotAllowed},
		{http.MethodPost, ScoresPath, http.StatusMethodNotAllowed},
		{http.MethodPost, "/healthz", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/arcade/nope", http.StatusNotFound},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s status = %d, expected %d", tt.method, tt.path, rec.Code, tt.want)
			continue
		}
		if tt.want != http.StatusMethodNotAllowed {
			continue
		}
		var resp scoreResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Errorf("%s %s: decode failed: %v", tt.method, tt.path, err)
		} else if resp.OK || resp.Error == "" {
			t.Errorf("%s %s response = %+v, expected an error", tt.method, tt.path, resp)
		}
	}
}

func TestServerRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, ServerOptions{GameID: "dodge", Rate: rate.Every(time.Hour), Burst: 2})
	h := srv.Handler()

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, ScorePath, bytes.NewBufferString(`{"score":1}`))
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := range 2 {
		if code := send("10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, expected 200", i, code)
		}
	}
	if code := send("10.0.0.1:2000"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, expected 429", code)
	}
	if code := send("10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("other client status = %d, expected 200", code)
	}

	// Health checks are not limited
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "10.0.0.1:3000"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz while limited = %d", rec.Code)
	}
}
