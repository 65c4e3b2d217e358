// File: game/messages.go
package game

import (
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"golang.org/x/net/websocket"
)

// --- Message Header ---
// Used for identifying message types after unmarshalling from JSON
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

// --- WebSocket Messages (Client -> Server) ---

// TiltMessage carries the client's current tilt input. Components are
// expected in [-1, 1]; the server clamps anything outside.
type TiltMessage struct {
	MessageType string  `json:"messageType"` // "tilt"
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// CommandMessage carries a game lifecycle command from the client.
type CommandMessage struct {
	MessageType string `json:"messageType"` // "command"
	Action      string `json:"action"`      // "start", "reset", "next", "pause", "resume"
}

// --- WebSocket Messages (Server -> Client) ---

// RoomAssignmentMessage informs the client of its assigned room.
type RoomAssignmentMessage struct {
	MessageType string `json:"messageType"` // "roomAssignment"
	RoomPID     string `json:"roomPID"`
}

// StateSnapshot is the full renderable game state, broadcast every tick
// while playing and after every lifecycle transition.
type StateSnapshot struct {
	MessageType string        `json:"messageType"` // "stateSnapshot"
	Status      Status        `json:"status"`
	Level       int           `json:"level"`
	ElapsedMs   int64         `json:"elapsedMs"`
	BestTimesMs map[int]int64 `json:"bestTimesMs"`
	Maze        *CircularMaze `json:"maze"`
	Ball        *Ball         `json:"ball"`
	CenterX     float64       `json:"centerX"`
	CenterY     float64       `json:"centerY"`
}

// HapticMessage asks the client to produce feedback for a game event.
type HapticMessage struct {
	MessageType string `json:"messageType"` // "haptic"
	Kind        string `json:"kind"`        // "collision" or "win"
}

// --- Actor Messages (Internal Communication) ---

// --- RoomManagerActor Messages ---

// FindRoomRequest asks the RoomManager to create a room for a new connection.
type FindRoomRequest struct {
	ReplyTo *bollywood.PID // PID of the actor requesting the room (ConnectionHandlerActor)
}

// AssignRoomResponse is the reply from RoomManager with the assigned GameActor PID.
type AssignRoomResponse struct {
	RoomPID *bollywood.PID // nil if no room could be assigned
}

// GameRoomEmpty notifies the RoomManager that a GameActor lost its player.
type GameRoomEmpty struct {
	RoomPID *bollywood.PID
}

// GetRoomListRequest asks the RoomManager for the list of active rooms. The
// reply is delivered on the channel so non-actor callers (the HTTP handler)
// can wait for it.
type GetRoomListRequest struct {
	ReplyTo chan RoomListResponse
}

// RoomListResponse contains the active rooms keyed by PID string, with each
// room's player count.
type RoomListResponse struct {
	Rooms map[string]int
}

// --- ConnectionHandlerActor Messages ---

// InternalReadLoopMsg wraps data read from WebSocket for processing by the actor.
type InternalReadLoopMsg struct {
	Payload []byte
}

// --- GameActor Messages ---

// AssignPlayerToRoom tells the GameActor to adopt a WebSocket connection.
type AssignPlayerToRoom struct {
	WsConn *websocket.Conn
}

// PlayerDisconnect tells the GameActor that its connection was lost.
type PlayerDisconnect struct {
	WsConn *websocket.Conn
}

// ForwardedClientMessage carries a raw client payload from ConnectionHandler
// to GameActor. The GameActor decodes the messageType header itself.
type ForwardedClientMessage struct {
	WsConn  *websocket.Conn
	Payload []byte
}

// GameTick signals the GameActor to advance the simulation and broadcast.
type GameTick struct{}

// --- Internal Test Messages ---

// internalGetStateRequest asks GameActor for a copy of selected state fields.
type internalGetStateRequest struct {
	ReplyTo chan internalGetStateResponse
}

// internalGetStateResponse is the reply containing a snapshot of the game.
type internalGetStateResponse struct {
	Status  Status
	Level   int
	Elapsed time.Duration
	Ball    Ball
}
