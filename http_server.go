package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
)

type HTTPHandler struct {
	Registry *Registry
	Tokens   *ReconnectJWT
}

// NewHTTPServer serves the websocket transport and the read-only endpoints.
// A websocket client speaks the exact same line protocol as a TCP client
// (one text message per line) and shares the registry with them.
func NewHTTPServer(registry *Registry, tokens *ReconnectJWT) http.Handler {
	httpHandler := HTTPHandler{registry, tokens}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/rooms", httpHandler.getRooms())
	r.Handle("/metrics", MetricsHandler())
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		go func() {
			defer conn.Close()
			HandleClient(h.Registry, NewWSLineReader(conn), NewWSSink(conn), h.Tokens, addr, "ws")
		}()
	}
}

type roomInfo struct {
	ID        int `json:"id"`
	Occupants int `json:"occupants"`
}

func (h HTTPHandler) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms := []roomInfo{}
		for _, id := range h.Registry.RoomsInUse() {
			rooms = append(rooms, roomInfo{id, len(h.Registry.OccupantsOf(id))})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rooms)
	}
}
