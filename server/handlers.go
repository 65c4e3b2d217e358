// File: server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/game"
	"golang.org/x/net/websocket"
)

// HandleSubscribe sets up the WebSocket connection: it spawns a
// ConnectionHandlerActor for the connection and blocks until that actor has
// fully stopped, keeping the websocket handler (and so the connection) alive
// for the room's lifetime.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		connectionAddr := ws.RemoteAddr().String()
		fmt.Printf("HandleSubscribe: New connection from %s\n", connectionAddr)

		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in HandleSubscribe for %s: %v\nStack trace:\n%s\n", connectionAddr, r, string(debug.Stack()))
			}
			_ = ws.Close()
		}()

		if s.engine == nil || s.roomManagerPID == nil {
			fmt.Printf("HandleSubscribe: Server engine or RoomManagerPID is nil. Closing connection %s.\n", connectionAddr)
			return
		}

		done := make(chan struct{})
		props := bollywood.NewProps(NewConnectionHandlerProducer(ConnectionHandlerArgs{
			Conn:           ws,
			Engine:         s.engine,
			RoomManagerPID: s.roomManagerPID,
			Done:           done,
		}))
		handlerPID := s.engine.Spawn(props)
		if handlerPID == nil {
			fmt.Printf("HandleSubscribe: Failed to spawn ConnectionHandlerActor for %s.\n", connectionAddr)
			return
		}

		<-done
		fmt.Printf("HandleSubscribe: Handler finished for %s.\n", connectionAddr)
	}
}

// HandleGetRooms lists the active rooms over HTTP. It queries the
// RoomManager with a channel reply and bounds the wait, so a wedged actor
// cannot hang the HTTP handler.
func (s *Server) HandleGetRooms() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fmt.Printf("PANIC recovered in HandleGetRooms: %v\nStack trace:\n%s\n", rec, string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		replyCh := make(chan game.RoomListResponse, 1)
		s.engine.Send(s.roomManagerPID, game.GetRoomListRequest{ReplyTo: replyCh}, nil)

		var response game.RoomListResponse
		select {
		case response = <-replyCh:
		case <-time.After(2 * time.Second):
			http.Error(w, "Room manager did not respond", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(response.Rooms); err != nil {
			fmt.Println("Error writing HTTP room list:", err)
		}
	}
}
