package scoreapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-dodge/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	maxBodyBytes = 1 << 10

	anonymousPlayer = "anonymous"

	// Limiters idle this long are dropped on the next sweep.
	limiterIdle = 10 * time.Minute
)

// ServerOptions configures a Server.
type ServerOptions struct {
	GameID string
	Logger *log.Logger

	// Rate and Burst bound requests per client address.
	Rate  rate.Limit
	Burst int
}

// DefaultServerOptions returns options for the dodge leaderboard.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		GameID: "dodge",
		Rate:   rate.Every(time.Second),
		Burst:  5,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Server exposes the score store over HTTP.
type Server struct {
	store  *storage.Store
	router *mux.Router
	gameID string
	log    *log.Logger

	rate  rate.Limit
	burst int

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

// NewServer creates a server backed by store.
func NewServer(store *storage.Store, opts ServerOptions) *Server {
	def := DefaultServerOptions()
	if opts.GameID == "" {
		opts.GameID = def.GameID
	}
	if opts.Rate <= 0 {
		opts.Rate = def.Rate
	}
	if opts.Burst <= 0 {
		opts.Burst = def.Burst
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Server{
		store:   store,
		router:  mux.NewRouter().StrictSlash(true),
		gameID:  opts.GameID,
		log:     opts.Logger,
		rate:    opts.Rate,
		burst:   opts.Burst,
		clients: make(map[string]*client),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	notAllowed := http.HandlerFunc(s.handleMethodNotAllowed)
	s.router.MethodNotAllowedHandler = notAllowed
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// A subrouter answers 404 for a known path with the wrong method
	// unless it has its own handler.
	api := s.router.PathPrefix("/api/arcade").Subrouter()
	api.MethodNotAllowedHandler = notAllowed
	api.Use(s.rateLimit)
	api.HandleFunc("/score", s.handleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/scores", s.handleScores).Methods(http.MethodGet)
}

// Handler returns the router wrapped with access logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	std := s.log.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
	logged := handlers.LoggingHandler(std.Writer(), s.router)
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.log.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)(logged)
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting score API", "addr", addr, "game", s.gameID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Stopping score API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !s.limiter(ip).Allow() {
			s.log.Warn("Rate limited", "ip", ip, "path", r.URL.Path)
			writeJSON(w, http.StatusTooManyRequests, scoreResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSweep) > limiterIdle {
		for k, c := range s.clients {
			if now.Sub(c.lastSeen) > limiterIdle {
				delete(s.clients, k)
			}
		}
		s.lastSweep = now
	}

	c, ok := s.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, scoreResponse{Error: "method " + r.Method + " not allowed"})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, scoreResponse{Error: "invalid JSON body"})
		return
	}
	if req.Score == nil {
		writeJSON(w, http.StatusBadRequest, scoreResponse{Error: "missing score"})
		return
	}
	if *req.Score < 0 {
		writeJSON(w, http.StatusBadRequest, scoreResponse{Error: "score must not be negative"})
		return
	}

	player := req.Player
	if player == "" {
		player = anonymousPlayer
	}

	best, err := s.store.RecordScore(r.Context(), s.gameID, player, *req.Score)
	if err != nil {
		s.log.Error("Failed to record score", "player", player, "score", *req.Score, "err", err)
		writeJSON(w, http.StatusInternalServerError, scoreResponse{Error: "cannot record score"})
		return
	}

	s.log.Debug("Score recorded", "player", player, "score", *req.Score, "best", best)
	writeJSON(w, http.StatusOK, scoreResponse{OK: true, Best: best})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, scoreResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxLimit)
	}

	var (
		rows []storage.ScoreEntry
		err  error
	)
	if player := r.URL.Query().Get("player"); player != "" {
		rows, err = s.store.PlayerScores(s.gameID, player, limit)
	} else {
		rows, err = s.store.TopScores(s.gameID, limit)
	}
	if err != nil {
		s.log.Error("Failed to list scores", "err", err)
		writeJSON(w, http.StatusInternalServerError, scoreResponse{Error: "cannot list scores"})
		return
	}

	out := scoresResponse{Game: s.gameID, Scores: make([]Entry, 0, len(rows))}
	for _, e := range rows {
		out.Scores = append(out.Scores, Entry{Player: e.Player, Score: e.Score, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
