package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket builds the upgrader. WS_ALLOWED_ORIGINS is a
// comma-separated origin allowlist; unset allows every origin (the
// split auth cookie still gates session ownership).
func NewWebSocket() (*WebSocket, error) {
	checkOrigin := func(r *http.Request) bool {
		return true
	}
	if allowed, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok {
		origins := strings.Split(allowed, ",")
		checkOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, o := range origins {
				if strings.TrimSpace(o) == origin {
					return true
				}
			}
			return false
		}
	}

	ws := &WebSocket{
		Upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
	}
	return ws, nil
}
