// Package httpapi realizes spec.md §6's control-message surface over HTTP
// and WebSocket, the way MJE43-stake-pf-replay-go's engine/internal/api
// builds its scan API on chi. It is a collaborator: pkg/sim and
// pkg/genetic never import it, and it exists only to exercise the control
// message contract, not to be a finished product.
package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"evocell/internal/store"
	"evocell/pkg/genetic"
	"evocell/pkg/lattice"
	"evocell/pkg/rule"
	"evocell/pkg/sim"
)

// Server holds the one simulation session and the one GA run this process
// supports. A production collaborator would key both by session id; a
// single-session server is enough to exercise the control surface.
type Server struct {
	sim   *session
	ga    *gaRun
	store *store.Store
}

// NewServer returns a Server with a fresh, uninitialized session and no
// persistence backing.
func NewServer() *Server {
	return &Server{sim: newSession(), ga: newGARun()}
}

// NewServerWithStore returns a Server that records every completed GA run
// to db.
func NewServerWithStore(db *store.Store) *Server {
	return &Server{sim: newSession(), ga: newGARun(), store: db}
}

// Routes builds the chi router for every control message named in spec §6.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/health"))

	r.Route("/sim", func(r chi.Router) {
		r.Post("/init", s.handleSimInit)
		r.Post("/step", s.handleSimStep)
		r.Post("/run", s.handleSimRun)
		r.Post("/pause", s.handleSimPause)
		r.Post("/randomize", s.handleSimRandomize)
		r.Post("/load", s.handleSimLoad)
		r.Post("/benchmark", s.handleSimBenchmark)
		r.Get("/frames", s.handleSimFrames)
	})

	r.Route("/ga", func(r chi.Router) {
		r.Post("/run", s.handleGARun)
		r.Post("/cancel", s.handleGACancel)
		r.Get("/progress", s.handleGAProgress)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// simInitRequest is the wire shape of spec §6's init{config, seed?}.
type simInitRequest struct {
	Lattice   string `json:"lattice"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Rule      string `json:"rule"`
	Toroidal  bool   `json:"toroidal"`
	MaxPeriod int    `json:"maxPeriod"`
	Seed      []byte `json:"seed,omitempty"`
}

func (s *Server) handleSimInit(w http.ResponseWriter, r *http.Request) {
	var req simInitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lat := lattice.Square
	if req.Lattice == "hex" {
		lat = lattice.Hex
	}

	parsed, err := rule.Parse(req.Rule)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := sim.Config{
		Lattice:   lat,
		Width:     req.Width,
		Height:    req.Height,
		Rule:      parsed,
		Toroidal:  req.Toroidal,
		MaxPeriod: req.MaxPeriod,
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.sim.init(cfg, req.Seed); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleSimStep(w http.ResponseWriter, r *http.Request) {
	frame, err := s.sim.step()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleSimRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed int `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Speed < 1 {
		req.Speed = 1
	}
	if err := s.sim.run(req.Speed); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

func (s *Server) handleSimPause(w http.ResponseWriter, r *http.Request) {
	s.sim.pause()
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

func (s *Server) handleSimRandomize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Density float64 `json:"density"`
		Seed    int64   `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.sim.randomize(req.Density, req.Seed); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "randomized"})
}

func (s *Server) handleSimLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cells   []byte `json:"cells,omitempty"`
		Pattern string `json:"pattern,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var err error
	if req.Pattern != "" {
		err = s.sim.loadPattern(req.Pattern)
	} else {
		err = s.sim.load(req.Cells)
	}
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

func (s *Server) handleSimBenchmark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DurationMS int `json:"durationMs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rate, err := s.sim.benchmark(req.DurationMS)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"generationsPerSecond": rate})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleSimFrames upgrades to a WebSocket and streams frame{…} messages as
// they are published, until the client disconnects.
func (s *Server) handleSimFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	frames, id := s.sim.hub.SubscribeFrames()
	defer s.sim.hub.UnsubscribeFrames(id)

	for frame := range frames {
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

// gaRunRequest is the wire shape of spec §6's run{config, options:{iterations, seedWindow}}.
type gaRunRequest struct {
	Config struct {
		PopulationSize int     `json:"populationSize"`
		MutationRate   float64 `json:"mutationRate"`
		EliteCount     int     `json:"eliteCount"`
		MaxGenerations int     `json:"maxGenerations"`
		GridSize       int     `json:"gridSize"`
		Lattice        string  `json:"lattice"`
		Rule           string  `json:"rule"`
		Toroidal       bool    `json:"toroidal"`
		BorderPenalty  float64 `json:"borderPenalty"`
	} `json:"config"`
	Options struct {
		Iterations int `json:"iterations"`
		SeedWindow int `json:"seedWindow"`
	} `json:"options"`
	Seed int64 `json:"seed"`
}

func (s *Server) handleGARun(w http.ResponseWriter, r *http.Request) {
	var req gaRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lat := lattice.Square
	if req.Config.Lattice == "hex" {
		lat = lattice.Hex
	}

	cfg := genetic.GAConfig{
		PopulationSize: req.Config.PopulationSize,
		MutationRate:   req.Config.MutationRate,
		EliteCount:     req.Config.EliteCount,
		MaxGenerations: req.Config.MaxGenerations,
		GridSize:       req.Config.GridSize,
		Lattice:        lat,
		Rule:           req.Config.Rule,
		Toroidal:       req.Config.Toroidal,
		BorderPenalty:  req.Config.BorderPenalty,
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := genetic.RunOptions{Iterations: req.Options.Iterations, SeedWindow: req.Options.SeedWindow}
	if err := s.ga.start(cfg, opts, req.Seed, s.recordRun); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

// recordRun persists a completed GA run, if this Server was built with a
// store. Failures are logged, not surfaced, since the GA result has
// already been delivered to the collaborator over the progress stream.
func (s *Server) recordRun(cfg genetic.GAConfig, opts genetic.RunOptions, result genetic.Result) {
	if s.store == nil {
		return
	}
	genome, err := json.Marshal(result.BestGenome.Cells)
	if err != nil {
		log.Printf("httpapi: marshal best genome: %v", err)
		return
	}
	record := store.RunRecord{
		Rule:        cfg.Rule,
		Lattice:     cfg.Lattice.String(),
		GridSize:    cfg.GridSize,
		SeedWindow:  opts.SeedWindow,
		Iterations:  opts.Iterations,
		BestFitness: result.BestFitness,
		BestGenome:  string(genome),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.store.SaveRun(ctx, record); err != nil {
		log.Printf("httpapi: save run: %v", err)
	}
}

func (s *Server) handleGACancel(w http.ResponseWriter, r *http.Request) {
	if err := s.ga.cancel(); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelling"})
}

// handleGAProgress upgrades to a WebSocket and streams progress{data}
// messages, finishing with a result{genome, fitness} message if the run
// completes without cancellation.
func (s *Server) handleGAProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, id := s.ga.hub.SubscribeProgress()
	defer s.ga.hub.UnsubscribeProgress(id)

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}

	if result := s.ga.resultJSON(); result != nil {
		conn.WriteMessage(websocket.TextMessage, result)
	}
}
