package net

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	server "starfall/server"
	"starfall/server/internal/net/ws"
)

type HTTPHandlerConfig struct {
	Logger zerolog.Logger
}

// NewHTTPHandler builds the server's HTTP surface: the websocket
// endpoint plus health and diagnostics.
func NewHTTPHandler(hub *server.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	wsHandler := ws.NewHandler(hub, cfg.Logger)

	router := mux.NewRouter()

	router.HandleFunc("/ws", wsHandler.Handle).Methods(nethttp.MethodGet)

	router.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}).Methods(nethttp.MethodGet)

	router.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status     string        `json:"status"`
			ServerTime int64         `json:"serverTime"`
			Players    any           `json:"players"`
			Scores     server.Scores `json:"scores"`
			TickRate   int           `json:"tickRate"`
			Heartbeat  int64         `json:"heartbeatMillis"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Players:    hub.DiagnosticsSnapshot(),
			Scores:     hub.ScoresSnapshot(),
			TickRate:   hub.TickRate(),
			Heartbeat:  server.HeartbeatInterval().Milliseconds(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			cfg.Logger.Warn().Err(err).Msg("failed to write diagnostics")
		}
	}).Methods(nethttp.MethodGet)

	return router
}
