// File: server/server.go
package server

import (
	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/utils"
)

// Server ties the HTTP surface to the actor system. It owns no game state
// itself; every connection is handed to a ConnectionHandlerActor which
// requests a room from the RoomManager.
type Server struct {
	engine         *bollywood.Engine
	roomManagerPID *bollywood.PID
	cfg            utils.Config
}

// New creates a Server bound to the given engine and room manager.
func New(engine *bollywood.Engine, roomManagerPID *bollywood.PID, cfg utils.Config) *Server {
	return &Server{
		engine:         engine,
		roomManagerPID: roomManagerPID,
		cfg:            cfg,
	}
}

// GetEngine returns the actor engine.
func (s *Server) GetEngine() *bollywood.Engine { return s.engine }

// GetRoomManagerPID returns the room manager's PID.
func (s *Server) GetRoomManagerPID() *bollywood.PID { return s.roomManagerPID }
