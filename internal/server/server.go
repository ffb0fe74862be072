// Package server exposes the match manager over HTTP: a lobby endpoint
// for creating matches and a websocket endpoint that binds a remote
// seat to its peer channel.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/catalog"
	"github.com/chainclash/clash-server-go/internal/config"
	"github.com/chainclash/clash-server-go/internal/game/ai"
	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/grid"
	"github.com/chainclash/clash-server-go/internal/game/state"
	"github.com/chainclash/clash-server-go/internal/game/strategy"
	"github.com/chainclash/clash-server-go/internal/match"
)

// Server wires HTTP traffic to the match manager.
type Server struct {
	logger *zap.Logger
	cfg    *config.Config
	eng    *engine.Engine
	mgr    *match.Manager

	mu    sync.Mutex
	seats map[string]map[string]*strategy.RemoteHuman // match id -> player id -> seat

	httpSrv *http.Server
}

// New builds the server around an engine and match manager.
func New(logger *zap.Logger, cfg *config.Config, eng *engine.Engine, mgr *match.Manager) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
		eng:    eng,
		mgr:    mgr,
		seats:  make(map[string]map[string]*strategy.RemoteHuman),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/matches", s.handleCreateMatch)
	mux.HandleFunc("/ws", s.handleWebsocket)

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if s.logger != nil {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Server.Addr))
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type createMatchRequest struct {
	PlayerName  string             `json:"playerName"`
	GridPreset  string             `json:"gridPreset,omitempty"`
	Personality *state.Personality `json:"personality,omitempty"`
	Seed        int64              `json:"seed,omitempty"`
}

type createMatchResponse struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

// handleCreateMatch starts a remote-human-versus-AI match. The human
// seat joins over the websocket endpoint afterwards.
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlayerName == "" {
		http.Error(w, "playerName is required", http.StatusBadRequest)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	preset := req.GridPreset
	if preset == "" {
		preset = s.cfg.Game.GridPreset
	}
	layout, err := grid.LayoutForPreset(preset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Seat ids are opaque: names collide across matches, and turn hooks
	// are registered per seat id on the shared engine.
	humanID := "player-" + uuid.New().String()
	human := &state.Player{
		ID:   humanID,
		Name: req.PlayerName,
		Type: state.PlayerHuman,
		Deck: catalog.StartingDeck(humanID, s.cfg.Game.DeckSize, seed),
	}
	drawOpeningHand(human)

	personality := req.Personality
	if personality == nil {
		personality = &state.Personality{Aggression: 0.5, Creativity: 0.5, RiskTolerance: 0.5, Patience: 0.5, Adaptability: 0.5}
	}
	bot := &state.Player{
		ID:          "bot-" + uuid.New().String(),
		Name:        "Opponent",
		Type:        state.PlayerAI,
		Personality: personality,
	}

	remote := strategy.NewRemoteHuman(human.ID, s.cfg.Server.RemoteTimeout)
	loop := ai.NewLoop(s.logger, s.eng, seed)
	seats := map[string]strategy.Strategy{
		human.ID: remote,
		bot.ID:   strategy.NewAI(bot.ID, loop),
	}

	m, err := s.mgr.Create(r.Context(), human, bot, layout, seats)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("match creation failed", zap.Error(err))
		}
		http.Error(w, "failed to create match", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.seats[m.ID] = map[string]*strategy.RemoteHuman{human.ID: remote}
	s.mu.Unlock()

	go s.runMatch(m)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(createMatchResponse{MatchID: m.ID, PlayerID: human.ID})
}

// runMatch drives the turn loop to completion in the background.
func (s *Server) runMatch(m *match.Match) {
	if err := m.Run(context.Background()); err != nil && s.logger != nil {
		s.logger.Warn("match loop ended with error",
			zap.String("match_id", m.ID),
			zap.Error(err),
		)
	}

	s.mu.Lock()
	delete(s.seats, m.ID)
	s.mu.Unlock()
	s.mgr.Remove(m.ID)
}

// drawOpeningHand moves the first cards of the deck into the hand.
func drawOpeningHand(p *state.Player) {
	const opening = 4
	n := opening
	if n > len(p.Deck) {
		n = len(p.Deck)
	}
	p.Hand = append(p.Hand, p.Deck[:n]...)
	p.Deck = p.Deck[n:]
}
