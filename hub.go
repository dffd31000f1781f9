package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrServerFull is returned by Join when the configured player cap is
// reached. The front-end surfaces it however it likes; the hub just
// refuses the session.
var ErrServerFull = errors.New("server full")

// sessionConn is the transport surface the hub needs from a
// connection. *websocket.Conn satisfies it; tests substitute a
// recorder so the core runs without a real transport.
type sessionConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber owns the outbound side of one connection. Frames are
// enqueued first and written later: the hub enqueues while holding its
// mutex, so each connection's queue holds events in the exact order
// the state changes were applied, and flush drains them in that order.
type Subscriber struct {
	conn sessionConn

	writeMu sync.Mutex
	queueMu sync.Mutex
	queue   [][]byte
}

// Send marshals a direct reply (init payload, heartbeat ack) and
// drains the queue, keeping it ordered behind any pending broadcasts.
func (s *Subscriber) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.enqueue(data)
	return s.flush()
}

func (s *Subscriber) enqueue(data []byte) {
	s.queueMu.Lock()
	s.queue = append(s.queue, data)
	s.queueMu.Unlock()
}

// flush writes every queued frame. The write mutex keeps one writer on
// the wire at a time; whichever goroutine holds it drains frames
// enqueued by the others too, so delivery order always matches queue
// order.
func (s *Subscriber) flush() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for {
		s.queueMu.Lock()
		queue := s.queue
		s.queue = nil
		s.queueMu.Unlock()

		if len(queue) == 0 {
			return nil
		}
		for _, data := range queue {
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		}
	}
}

// Hub is the authoritative synchronizer. It owns the session registry,
// the star arbiter, and the score ledger, and fans broadcast events
// out to every live connection. All state mutation funnels through its
// entry points under one mutex, so concurrent connections' events are
// interleaved, never applied in parallel.
type Hub struct {
	mu          sync.Mutex
	registry    *Registry
	star        *StarArbiter
	scores      *Ledger
	subscribers map[string]*Subscriber
	nextID      atomic.Uint64

	cfg    WorldConfig
	dt     float64
	logger zerolog.Logger
	rng    *rand.Rand
}

func NewHub(logger zerolog.Logger) *Hub {
	return NewHubWithConfig(DefaultWorldConfig(), logger)
}

func NewHubWithConfig(cfg WorldConfig, logger zerolog.Logger) *Hub {
	cfg = cfg.normalized()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ledger := &Ledger{}
	return &Hub{
		registry:    NewRegistry(),
		star:        NewStarArbiter(cfg, ledger, rand.New(rand.NewSource(seed+1))),
		scores:      ledger,
		subscribers: make(map[string]*Subscriber),
		cfg:         cfg,
		dt:          1 / float64(cfg.TickRate),
		logger:      logger,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Join registers a new connection, queues its one-time init payload as
// the first frame on the wire, and announces the ship to the other
// players. Init is enqueued under the same lock that registers the
// subscriber, so no broadcast can reach the joiner ahead of its
// snapshot and no join can appear both in a snapshot and as a
// playerJoined event on the same connection.
func (h *Hub) Join(conn sessionConn) (InitMessage, *Subscriber, error) {
	h.mu.Lock()
	if h.cfg.MaxPlayers > 0 && h.registry.Len() >= h.cfg.MaxPlayers {
		h.mu.Unlock()
		return InitMessage{}, nil, ErrServerFull
	}

	id := fmt.Sprintf("player-%d", h.nextID.Add(1))
	state := h.registry.Add(id)
	state.X = h.cfg.SpawnInset + h.rng.Float64()*(h.cfg.Width-2*h.cfg.SpawnInset)
	state.Y = h.cfg.SpawnInset + h.rng.Float64()*(h.cfg.Height-2*h.cfg.SpawnInset)
	state.markSent()

	now := time.Now()
	state.lastInput = now
	state.lastHeartbeat = now

	init := InitMessage{
		Ver:     ProtocolVersion,
		Type:    "init",
		ID:      id,
		Players: h.registry.Snapshot(),
		Star:    h.star.Location(),
		Scores:  h.scores.Snapshot(),
	}
	data, err := json.Marshal(init)
	if err != nil {
		h.registry.Remove(id)
		h.mu.Unlock()
		return InitMessage{}, nil, err
	}

	sub := &Subscriber{conn: conn}
	sub.enqueue(data)
	h.subscribers[id] = sub

	joined := state.snapshot()
	h.enqueue(PlayerJoinedMessage{Ver: ProtocolVersion, Type: "playerJoined", Player: joined}, id)
	h.mu.Unlock()

	h.logger.Info().Str("player", id).Str("team", string(joined.Team)).Msg("player joined")
	h.flushAll()

	return init, sub, nil
}

// UpdateIntent advances a player's ship exactly one tick under the
// given intent, broadcasts the new pose if it changed, and resolves a
// star overlap for the moved ship. An unknown id is dropped silently:
// a late message after a disconnect is already-left, not an error.
func (h *Hub) UpdateIntent(id string, intent Intent) {
	h.mu.Lock()
	state, ok := h.registry.Get(id)
	if !ok {
		h.mu.Unlock()
		return
	}

	state.applyKinematics(Step(state.kinematics(), intent, h.dt, h.cfg))
	state.lastInput = time.Now()

	if state.dirty() {
		state.markSent()
		h.enqueue(PlayerMovedMessage{
			Ver:      ProtocolVersion,
			Type:     "playerMoved",
			ID:       id,
			X:        state.X,
			Y:        state.Y,
			Rotation: state.Rotation,
		}, id)
	}

	var result CollectionResult
	if gen, over := h.star.Overlaps(state.X, state.Y); over {
		result = h.star.Collect(id, state.Team, gen, h.registry.Snapshot())
	}
	if result.Collected {
		h.enqueue(StarLocationMessage{Ver: ProtocolVersion, Type: "starLocation", X: result.Star.X, Y: result.Star.Y}, "")
		h.enqueue(ScoreUpdateMessage{Ver: ProtocolVersion, Type: "scoreUpdate", Blue: result.Scores.Blue, Red: result.Scores.Red}, "")
	}
	h.mu.Unlock()

	if result.Collected {
		h.logger.Info().
			Str("player", id).
			Uint64("blue", result.Scores.Blue).
			Uint64("red", result.Scores.Red).
			Msg("star collected")
	}
	h.flushAll()
}

// UpdateHeartbeat records the most recent heartbeat time and RTT for a
// player.
func (h *Hub) UpdateHeartbeat(id string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.registry.Get(id)
	if !ok {
		return 0, false
	}

	state.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			state.lastRTT = rtt
		}
	}

	return state.lastRTT, true
}

// Disconnect removes a player and its connection and tells the
// remaining clients to drop the ship. Safe to call any number of
// times; duplicate or late leave notifications are no-ops.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[id]
	delete(h.subscribers, id)
	state, playerOK := h.registry.Remove(id)
	if playerOK {
		h.enqueue(PlayerLeftMessage{Ver: ProtocolVersion, Type: "playerLeft", ID: id}, id)
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	if !playerOK {
		return
	}

	h.logger.Info().Str("player", id).Str("team", string(state.Team)).Msg("player left")
	h.flushAll()
}

// RunSimulation drives the fixed-rate liveness loop until the stop
// channel closes. Movement is event-driven; the ticker only prunes
// players whose heartbeats have gone stale, which covers transports
// that vanish without a close frame.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			for _, id := range h.stale(now) {
				h.logger.Info().Str("player", id).Msg("disconnecting after heartbeat timeout")
				h.Disconnect(id)
			}
		}
	}
}

func (h *Hub) stale(now time.Time) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ids []string
	for _, state := range h.registry.states() {
		if now.Sub(state.lastHeartbeat) > disconnectAfter {
			ids = append(ids, state.ID)
		}
	}
	return ids
}

// ScoresSnapshot exposes the current team counters.
func (h *Hub) ScoresSnapshot() Scores {
	return h.scores.Snapshot()
}

// StarSnapshot exposes the current star position.
func (h *Hub) StarSnapshot() StarLocation {
	return h.star.Location()
}

// TickRate reports the configured simulation rate in Hz.
func (h *Hub) TickRate() int {
	return h.cfg.TickRate
}

// DiagnosticsSnapshot exposes per-player liveness data for the
// diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]diagnosticsPlayer, 0, h.registry.Len())
	for _, state := range h.registry.states() {
		players = append(players, diagnosticsPlayer{
			ID:            state.ID,
			Team:          state.Team,
			LastInput:     state.lastInput.UnixMilli(),
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}
	return players
}

// enqueue marshals a message once and appends it to every subscriber's
// queue except skipID. Callers hold h.mu, so queue order on every
// connection matches the order state changes were applied.
func (h *Hub) enqueue(msg any, skipID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal broadcast")
		return
	}

	for id, sub := range h.subscribers {
		if id == skipID {
			continue
		}
		sub.enqueue(data)
	}
}

// flushAll drains every subscriber's queue. Writes happen outside the
// hub lock and are fire-and-forget; a failed write tears that
// connection down.
func (h *Hub) flushAll() {
	h.mu.Lock()
	subs := make(map[string]*Subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.flush(); err != nil {
			h.logger.Warn().Err(err).Str("player", id).Msg("dropping subscriber after failed write")
			h.Disconnect(id)
		}
	}
}
