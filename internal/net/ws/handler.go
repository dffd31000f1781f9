package ws

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	server "starfall/server"
)

// Handler upgrades connections and runs one read loop per session.
// Reads stay on this goroutine, which gives each connection FIFO
// processing of its own messages.
type Handler struct {
	hub      *server.Hub
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *server.Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Join queues the init payload as the session's first frame and
	// flushes it, so by the time it returns the client has its
	// snapshot ahead of any broadcast.
	init, sub, err := h.hub.Join(conn)
	if err != nil {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		conn.WriteMessage(websocket.CloseMessage, message)
		conn.Close()
		return
	}
	id := init.ID

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Disconnect(id)
			return
		}

		var msg server.ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			// Malformed input counts as a tick with every flag off.
			h.logger.Debug().Err(err).Str("player", id).Msg("malformed message")
			h.hub.UpdateIntent(id, server.Intent{})
			continue
		}

		switch msg.Type {
		case "intent":
			h.hub.UpdateIntent(id, server.Intent{
				TurnLeft:  msg.TurnLeft,
				TurnRight: msg.TurnRight,
				Thrust:    msg.Thrust,
			})
		case "heartbeat":
			now := time.Now()
			rtt, ok := h.hub.UpdateHeartbeat(id, now, msg.SentAt)
			if !ok {
				continue
			}
			ack := server.HeartbeatMessage{
				Ver:        server.ProtocolVersion,
				Type:       "heartbeat",
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
				RTTMillis:  rtt.Milliseconds(),
			}
			if err := sub.Send(ack); err != nil {
				h.hub.Disconnect(id)
				return
			}
		default:
			h.logger.Debug().Str("player", id).Str("type", msg.Type).Msg("unknown message type")
		}
	}
}
