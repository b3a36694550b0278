package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/codeatlas-dev/codeatlas/internal/host"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket attaches the analysis collaborator: inbound frames feed
// the session queue, outbound commands are written back on the same
// connection. Frames that fail to decode are dropped; the protocol is
// fire-and-forget in both directions.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// Writer: drain outbound commands until the reader stops.
	go func() {
		for {
			select {
			case <-done:
				return
			case cmd := <-s.session.Outbound():
				if err := conn.WriteJSON(cmd); err != nil {
					log.Printf("server: websocket write: %v", err)
					return
				}
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			close(done)
			return
		}

		var msg host.Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("server: dropping malformed frame: %v", err)
			continue
		}
		select {
		case s.session.Inbound() <- msg:
		default:
			log.Printf("server: inbound queue full, dropping %s", msg.Type)
		}
	}
}
