// File: game/room_manager.go
package game

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/storage"
	"github.com/lguibr/tiltmaze/utils"
)

const maxRooms = 200 // Limit the number of concurrent rooms

// RoomInfo holds information about an active game room.
type RoomInfo struct {
	PID         *bollywood.PID
	PlayerCount int
}

// RoomManagerActor manages GameActor instances. Every connection gets its
// own room: mazes are single-player, so rooms are never shared.
type RoomManagerActor struct {
	engine     *bollywood.Engine
	cfg        utils.Config
	store      storage.BestTimesStore
	rooms      map[string]*RoomInfo // Map room ID (PID string) to RoomInfo
	mu         sync.RWMutex
	selfPID    *bollywood.PID
	seedSource *utils.PRNG
}

// NewRoomManagerProducer creates a producer for the RoomManagerActor.
func NewRoomManagerProducer(engine *bollywood.Engine, cfg utils.Config, store storage.BestTimesStore) bollywood.Producer {
	return func() bollywood.Actor {
		return &RoomManagerActor{
			engine:     engine,
			cfg:        cfg,
			store:      store,
			rooms:      make(map[string]*RoomInfo),
			seedSource: utils.NewPRNG(time.Now().UnixNano()),
		}
	}
}

// Receive Method
func (a *RoomManagerActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in RoomManagerActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		fmt.Printf("RoomManagerActor %s: Started.\n", a.selfPID)

	case FindRoomRequest:
		a.handleFindRoom(msg.ReplyTo)

	case GameRoomEmpty:
		a.handleGameRoomEmpty(msg.RoomPID)

	case GetRoomListRequest:
		a.handleGetRoomList(msg.ReplyTo)

	case bollywood.Stopping:
		fmt.Printf("RoomManagerActor %s: Stopping. Shutting down all rooms.\n", a.selfPID)
		a.mu.Lock()
		pidsToStop := []*bollywood.PID{}
		for _, roomInfo := range a.rooms {
			if roomInfo.PID != nil {
				pidsToStop = append(pidsToStop, roomInfo.PID)
			}
		}
		a.rooms = make(map[string]*RoomInfo)
		a.mu.Unlock()
		for _, pid := range pidsToStop {
			a.engine.Stop(pid)
		}

	case bollywood.Stopped:
		fmt.Printf("RoomManagerActor %s: Stopped.\n", a.selfPID)

	default:
		fmt.Printf("RoomManagerActor %s: Received unknown message type: %T\n", a.selfPID, msg)
	}
}

// Handler Methods

func (a *RoomManagerActor) handleFindRoom(replyTo *bollywood.PID) {
	if replyTo == nil {
		return
	}
	a.mu.Lock()

	if len(a.rooms) >= maxRooms {
		fmt.Printf("RoomManagerActor %s: Max rooms (%d) reached. Rejecting request from %s.\n", a.selfPID, maxRooms, replyTo)
		a.mu.Unlock()
		a.engine.Send(replyTo, AssignRoomResponse{RoomPID: nil}, a.selfPID)
		return
	}

	seed := a.seedSource.Int63()
	gameActorProps := bollywood.NewProps(NewGameActorProducer(a.engine, a.cfg, a.selfPID, a.store, seed))
	gameActorPID := a.engine.Spawn(gameActorProps)
	if gameActorPID == nil {
		fmt.Printf("ERROR: RoomManagerActor %s: Failed to spawn GameActor. Replying nil to %s.\n", a.selfPID, replyTo)
		a.mu.Unlock()
		a.engine.Send(replyTo, AssignRoomResponse{RoomPID: nil}, a.selfPID)
		return
	}

	a.rooms[gameActorPID.String()] = &RoomInfo{PID: gameActorPID, PlayerCount: 1}
	a.mu.Unlock()
	a.engine.Send(replyTo, AssignRoomResponse{RoomPID: gameActorPID}, a.selfPID)
}

func (a *RoomManagerActor) handleGameRoomEmpty(roomPID *bollywood.PID) {
	if roomPID == nil {
		return
	}
	roomIDStr := roomPID.String()
	a.mu.Lock()
	roomInfo, exists := a.rooms[roomIDStr]
	pidToStop := (*bollywood.PID)(nil)
	if exists {
		fmt.Printf("RoomManagerActor %s: Room %s reported empty. Removing and stopping.\n", a.selfPID, roomIDStr)
		if roomInfo != nil && roomInfo.PID != nil {
			pidToStop = roomInfo.PID
		}
		delete(a.rooms, roomIDStr)
	} // Else: Already removed, ignore.
	a.mu.Unlock()
	if pidToStop != nil {
		a.engine.Stop(pidToStop)
	}
}

// handleGetRoomList replies on the request's channel so non-actor callers
// (the HTTP handler) can wait for the answer.
func (a *RoomManagerActor) handleGetRoomList(replyTo chan RoomListResponse) {
	if replyTo == nil {
		return
	}
	a.mu.RLock()
	roomList := make(map[string]int)
	for _, roomInfo := range a.rooms {
		if roomInfo != nil && roomInfo.PID != nil {
			roomList[roomInfo.PID.String()] = roomInfo.PlayerCount
		}
	}
	a.mu.RUnlock()

	select {
	case replyTo <- RoomListResponse{Rooms: roomList}:
	default:
		fmt.Printf("WARN: RoomManagerActor %s: Room list reply channel full, dropping response.\n", a.selfPID)
	}
}
