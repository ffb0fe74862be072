// Package transport moves battle actions between two peers over a
// websocket. The channel is reliable and ordered; the battle core
// trusts it once connected and applies peer actions in arrival order.
package transport

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chainclash/clash-server-go/internal/game/engine"
)

// Envelope kinds on the wire.
const (
	KindAction    = "action"
	KindConnected = "connected"
	KindSurrender = "surrender"
	KindFinished  = "finished"
)

// Envelope is the wire frame. Checksum carries the sender's state
// checksum after applying the action, letting the receiver detect
// divergence without exchanging full snapshots.
type Envelope struct {
	Kind     string         `json:"kind"`
	MatchID  string         `json:"matchId"`
	PlayerID string         `json:"playerId"`
	Seq      uint64         `json:"seq"`
	Checksum string         `json:"checksum,omitempty"`
	Action   *engine.Action `json:"action,omitempty"`
	Winner   string         `json:"winner,omitempty"`
}

// Handler receives inbound traffic from a peer connection. Calls
// arrive from the peer's read loop, one at a time, in wire order.
type Handler interface {
	HandleEnvelope(env Envelope)
	HandleDisconnect(playerID string, err error)
}

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// Upgrader accepts websocket handshakes for peer connections.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Peer is one side of a match channel.
type Peer struct {
	logger   *zap.Logger
	conn     *websocket.Conn
	matchID  string
	playerID string
	handler  Handler

	writeMu sync.Mutex
	seq     uint64

	closeOnce sync.Once
}

// NewPeer wraps an upgraded connection. Call Run to start the read
// loop; it blocks until the connection drops.
func NewPeer(logger *zap.Logger, conn *websocket.Conn, matchID, playerID string, handler Handler) *Peer {
	return &Peer{
		logger:   logger,
		conn:     conn,
		matchID:  matchID,
		playerID: playerID,
		handler:  handler,
	}
}

// Upgrade performs the websocket handshake.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("upgrade websocket: %w", err)
	}
	return conn, nil
}

// Run reads envelopes until the connection fails, dispatching each to
// the handler. The terminal error is reported through HandleDisconnect.
func (p *Peer) Run() {
	defer p.Close()

	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := p.conn.ReadJSON(&env); err != nil {
			if p.logger != nil {
				p.logger.Info("peer connection closed",
					zap.String("match_id", p.matchID),
					zap.String("player_id", p.playerID),
					zap.Error(err),
				)
			}
			p.handler.HandleDisconnect(p.playerID, err)
			return
		}

		env.MatchID = p.matchID
		env.PlayerID = p.playerID
		p.handler.HandleEnvelope(env)
	}
}

// SendAction ships an action with the sender's post-apply checksum.
// Sequence numbers increase per connection; the receiver relies on
// wire order, the sequence exists for diagnostics.
func (p *Peer) SendAction(a engine.Action, checksum string) error {
	return p.send(Envelope{
		Kind:     KindAction,
		Checksum: checksum,
		Action:   &a,
	})
}

// SendConnected announces this seat to the peer after the handshake.
func (p *Peer) SendConnected() error {
	return p.send(Envelope{Kind: KindConnected})
}

// SendSurrender concedes the match out of band.
func (p *Peer) SendSurrender() error {
	return p.send(Envelope{Kind: KindSurrender})
}

// SendFinished reports the decided outcome to the peer.
func (p *Peer) SendFinished(winner, checksum string) error {
	return p.send(Envelope{Kind: KindFinished, Winner: winner, Checksum: checksum})
}

func (p *Peer) send(env Envelope) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.seq++
	env.Seq = p.seq
	env.MatchID = p.matchID
	env.PlayerID = p.playerID

	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("send %s envelope: %w", env.Kind, err)
	}
	return nil
}

// Close tears the connection down; safe to call more than once.
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		p.conn.Close()
	})
}
