// Package server exposes human-versus-engine games over HTTP and
// streams state updates to spectators over websockets.
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tetress/agent"
	"tetress/game"
	"tetress/searcher"
)

const defaultMoveBudget = 2 * time.Second

// session holds one running game. The human plays red, the engine blue.
type session struct {
	mu       sync.Mutex
	id       uuid.UUID
	board    game.Board
	engine   *agent.MCTSAgent
	gen      game.Generator
	hub      *hub
	lastMove string
}

type Server struct {
	mu    sync.Mutex
	games map[uuid.UUID]*session
}

func New() *Server {
	return &Server{games: make(map[uuid.UUID]*session)}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/games", s.createGame)
	r.Get("/api/games/{id}", s.getGame)
	r.Post("/api/games/{id}/moves", s.postMove)
	r.Get("/api/games/{id}/ws", s.watchGame)
	return r
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
	}

	var board game.Board
	if req.Backend == "sim" {
		board = game.NewSimBoard()
	} else {
		board = game.NewBitBoard()
	}

	budget := defaultMoveBudget
	if req.BudgetMs > 0 {
		budget = time.Duration(req.BudgetMs) * time.Millisecond
	}
	searchOptions := []searcher.Option{searcher.WithMetrics()}
	if req.Seed != 0 {
		searchOptions = append(searchOptions, searcher.WithRand(rand.New(rand.NewSource(req.Seed))))
	}
	options := []agent.MCTSOption{
		agent.WithFixedBudget(budget),
		agent.WithSearchOptions(searchOptions...),
	}
	if req.Steps > 0 {
		options = append(options, agent.WithStepBudget(req.Steps))
	}
	if req.SimCeiling > 0 {
		options = append(options, agent.WithSimulationCeiling(req.SimCeiling))
	}
	engine, err := agent.NewMCTS(game.Blue, board, options...)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	sess := &session{
		id:     uuid.New(),
		board:  board,
		engine: engine,
		gen:    game.StandardGenerator{},
		hub:    newHub(),
	}
	s.mu.Lock()
	s.games[sess.id] = sess
	s.mu.Unlock()

	log.Info().Stringer("game", sess.id).Msg("game created")
	writeJSON(w, http.StatusCreated, stateDTO(sess.id.String(), board, ""))
}

func (s *Server) lookup(r *http.Request) *session {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[id]
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(r)
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game"})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, stateDTO(sess.id.String(), sess.board, sess.lastMove))
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(r)
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game"})
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.board.GameOver() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "game is over"})
		return
	}
	if sess.board.TurnColor() != game.Red {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "not your turn"})
		return
	}

	move := req.toAction()
	if !sess.isLegal(move) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "illegal move"})
		return
	}

	sess.apply(move)
	state := stateDTO(sess.id.String(), sess.board, sess.lastMove)
	if !sess.board.GameOver() {
		reply, err := sess.engine.Action()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		sess.apply(reply)
		metrics := sess.engine.Metrics()
		state = stateDTO(sess.id.String(), sess.board, sess.lastMove)
		state.Search = &searchStatsDTO{
			DurationMs:   metrics.Duration.Milliseconds(),
			Episodes:     metrics.Episodes,
			FullPlayouts: metrics.FullPlayouts,
			TreeReused:   metrics.TreeReused,
		}
	}
	sess.hub.publish(state)
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) watchGame(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(r)
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game"})
		return
	}
	sess.mu.Lock()
	snapshot := stateDTO(sess.id.String(), sess.board, sess.lastMove)
	sess.mu.Unlock()
	serveWS(sess.hub, w, r, snapshot)
}

func (sess *session) isLegal(move game.PlaceAction) bool {
	for _, legal := range sess.gen.GenerateAll(sess.board, sess.board.TurnColor()) {
		if legal == move {
			return true
		}
	}
	return false
}

// apply commits a real move to the shared board and the engine's tree.
func (sess *session) apply(move game.PlaceAction) {
	sess.board.ApplyAction(move)
	if err := sess.engine.Update(move); err != nil {
		log.Warn().Err(err).Stringer("game", sess.id).Msg("engine lost sync")
	}
	sess.lastMove = move.String()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
