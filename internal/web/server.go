// Package web serves stored jam results and simulated jams over HTTP.
// The API is read-only: results are written by the terminal and SSH
// frontends, never by web clients.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/codejam/internal/autoplay"
	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/registry"
	"github.com/vovakirdan/codejam/internal/storage"
)

const (
	defaultLimit   = 10
	maxLimit       = 100
	defaultTimeout = 60 * time.Second
)

var errNoStore = errors.New("results are not stored on this server")

// Config holds the web server settings.
type Config struct {
	Store  *storage.Store // Optional; result routes answer 503 without it
	Game   config.GameConfig
	Filler string
	Logger *log.Logger

	TickRate       int           // Simulated ticks per second
	MaxSimSeconds  float64       // Upper bound for simulated jams
	FrameInterval  time.Duration // Wall-clock pause between live frames
	RequestTimeout time.Duration
}

// DefaultConfig returns the settings used by the web command.
func DefaultConfig() Config {
	return Config{
		Game:           config.DefaultGameConfig(),
		TickRate:       30,
		MaxSimSeconds:  1800,
		FrameInterval:  100 * time.Millisecond,
		RequestTimeout: defaultTimeout,
	}
}

// Server is the HTTP frontend.
type Server struct {
	cfg      Config
	log      *log.Logger
	catalog  *economy.Catalog
	upgrader websocket.Upgrader
	mux      *chi.Mux
}

// New validates the game config and builds the router.
func New(cfg Config) (*Server, error) {
	defaults := DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.MaxSimSeconds <= 0 {
		cfg.MaxSimSeconds = defaults.MaxSimSeconds
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	catalog, err := economy.CatalogFromConfig(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		log:     logger,
		catalog: catalog,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux: chi.NewRouter(),
	}
	s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		// Hijacked connections must not see the timeout writer.
		r.Get("/live", s.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
			r.Get("/results", s.handleResults)
			r.Get("/results/{id}", s.handleResult)
			r.Get("/stats", s.handleStats)
			r.Get("/catalog", s.handleCatalog)
			r.Get("/strategies", s.handleStrategies)
			r.Get("/simulate", s.handleSimulate)
		})
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"remote", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		return
	}

	results, err := s.cfg.Store.TopResults(r.URL.Query().Get("mode"), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	out := make([]resultDTO, 0, len(results))
	for _, res := range results {
		out = append(out, newResultDTO(res))
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	id := chi.URLParam(r, "id")
	res, err := s.cfg.Store.ResultByID(id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no result with id %q", id))
		return
	}
	writeJSON(w, http.StatusOK, newResultDTO(*res))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return
	}
	stats, err := s.cfg.Store.ModeStats()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	out := make([]statsDTO, 0, len(stats))
	for _, st := range stats {
		out = append(out, statsDTO{
			Mode:        st.Mode,
			Count:       st.Count,
			BestOverall: st.BestOverall,
			AvgOverall:  st.AvgOverall,
			TotalLines:  st.TotalLines,
			LastPlayed:  st.LastPlayed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	writeJSON(w, http.StatusOK, map[string]any{"modes": out})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	techDebt, err := queryFloat(r, "tech_debt", 0)
	if err != nil || !(techDebt >= 0) || math.IsInf(techDebt, 1) {
		writeError(w, http.StatusBadRequest, "tech_debt must be a non-negative number")
		return
	}
	out := make([]upgradeDTO, 0, s.catalog.Len())
	for _, kind := range s.catalog.All() {
		out = append(out, newUpgradeDTO(s.catalog.Get(kind), techDebt))
	}
	sequence := s.cfg.Game.Sequence
	if sequence == nil {
		sequence = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tech_debt": techDebt,
		"upgrades":  out,
		"sequence":  sequence,
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	infos := registry.List()
	out := make([]strategyDTO, 0, len(infos))
	for _, info := range infos {
		out = append(out, newStrategyDTO(info))
	}
	writeJSON(w, http.StatusOK, map[string]any{"strategies": out})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	opts, strategy, err := s.runOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := autoplay.Run(r.Context(), s.cfg.Game, strategy, opts)
	if autoplay.IsCancelled(err) {
		writeError(w, http.StatusServiceUnavailable, "simulation cancelled")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRunDTO(res))
}

// runOptions reads strategy, seed and seconds from the query.
// Seconds above MaxSimSeconds are clamped.
func (s *Server) runOptions(r *http.Request) (autoplay.Options, string, error) {
	q := r.URL.Query()
	strategy := strings.TrimSpace(q.Get("strategy"))
	if strategy == "" {
		strategy = "greedy"
	}
	if !registry.Exists(strategy) {
		return autoplay.Options{}, "", fmt.Errorf("unknown strategy %q", strategy)
	}

	opts := autoplay.DefaultOptions()
	opts.TickRate = s.cfg.TickRate
	opts.Filler = s.cfg.Filler
	opts.Logger = s.log

	seed, err := queryInt64(r, "seed", opts.Seed)
	if err != nil {
		return autoplay.Options{}, "", errors.New("seed must be an integer")
	}
	opts.Seed = seed

	seconds, err := queryFloat(r, "seconds", opts.MaxSeconds)
	if err != nil || !(seconds > 0) {
		return autoplay.Options{}, "", errors.New("seconds must be a positive number")
	}
	opts.MaxSeconds = min(seconds, s.cfg.MaxSimSeconds)
	return opts, strategy, nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func queryInt64(r *http.Request, key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

// writeJSON encodes before writing the header, so a payload that fails
// to encode becomes a 500 instead of a 200 with a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"cannot encode response"}`+"\n")
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
