package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/engine"
	"github.com/chainclash/clash-server-go/internal/game/state"
	"github.com/chainclash/clash-server-go/internal/game/strategy"
	"github.com/chainclash/clash-server-go/internal/match"
	"github.com/chainclash/clash-server-go/internal/transport"
)

// handleWebsocket binds a websocket connection to a remote seat. Peer
// actions feed the seat's strategy, which the match turn loop consumes
// on that seat's turn.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match_id")
	playerID := r.URL.Query().Get("player_id")
	if matchID == "" || playerID == "" {
		http.Error(w, "match_id and player_id are required", http.StatusBadRequest)
		return
	}

	m, err := s.mgr.Get(matchID)
	if err != nil {
		http.Error(w, "unknown match", http.StatusNotFound)
		return
	}

	seat := s.remoteSeat(matchID, playerID)
	if seat == nil {
		http.Error(w, "no remote seat for this player", http.StatusForbidden)
		return
	}

	conn, err := transport.Upgrade(w, r)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
		return
	}

	bridge := &seatBridge{logger: s.logger, m: m, seat: seat, playerID: playerID}
	peer := transport.NewPeer(s.logger, conn, matchID, playerID, bridge)
	bridge.peer = peer

	if err := peer.SendConnected(); err != nil {
		peer.Close()
		return
	}
	m.AddObserver(bridge)
	go peer.Run()
}

func (s *Server) remoteSeat(matchID, playerID string) *strategy.RemoteHuman {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats[matchID][playerID]
}

// seatBridge routes wire envelopes into the match and, as a match
// observer, pushes the opposing seat's applied actions and the final
// outcome back over the connection. Disconnection rejects the seat's
// pending wait.
type seatBridge struct {
	logger   *zap.Logger
	m        *match.Match
	seat     *strategy.RemoteHuman
	playerID string
	peer     *transport.Peer
}

func (b *seatBridge) HandleEnvelope(env transport.Envelope) {
	switch env.Kind {
	case transport.KindAction:
		if env.Action == nil {
			return
		}
		action := *env.Action
		action.PlayerID = b.playerID
		if !b.seat.Submit(action) && b.logger != nil {
			b.logger.Warn("peer action dropped",
				zap.String("match_id", b.m.ID),
				zap.String("player_id", b.playerID),
				zap.String("action_type", string(action.Type)),
			)
		}
	case transport.KindSurrender:
		if err := b.m.Surrender(context.Background(), b.playerID); err != nil && b.logger != nil {
			b.logger.Warn("surrender failed",
				zap.String("match_id", b.m.ID),
				zap.Error(err),
			)
		}
		// Unblock the turn loop so it observes the victory phase.
		b.seat.Submit(engine.Action{Type: engine.ActionEndTurn, PlayerID: b.playerID})
	}
}

func (b *seatBridge) HandleDisconnect(playerID string, err error) {
	b.m.RemoveObserver(b)
	b.seat.Disconnect()
}

// ActionApplied pushes the opponent's applied actions to the client
// with the post-apply state checksum. The client's own actions are not
// echoed.
func (b *seatBridge) ActionApplied(a engine.Action, s *state.BattleState) {
	if a.PlayerID == b.playerID {
		return
	}
	if err := b.peer.SendAction(a, s.Checksum()); err != nil && b.logger != nil {
		b.logger.Warn("peer action push failed",
			zap.String("match_id", b.m.ID),
			zap.String("player_id", b.playerID),
			zap.Error(err),
		)
	}
}

// MatchFinished reports the outcome to the client.
func (b *seatBridge) MatchFinished(s *state.BattleState) {
	if err := b.peer.SendFinished(s.Winner, s.Checksum()); err != nil && b.logger != nil {
		b.logger.Warn("peer outcome push failed",
			zap.String("match_id", b.m.ID),
			zap.String("player_id", b.playerID),
			zap.Error(err),
		)
	}
}
