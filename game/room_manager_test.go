// File: game/room_manager_test.go
package game

import (
	"sync"
	"testing"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureActor records every message it receives, standing in for a
// ConnectionHandlerActor waiting on a room assignment.
type captureActor struct {
	mu       sync.Mutex
	received []interface{}
}

func (a *captureActor) Receive(ctx bollywood.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = append(a.received, ctx.Message())
}

func (a *captureActor) assignments() []AssignRoomResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []AssignRoomResponse
	for _, msg := range a.received {
		if assign, ok := msg.(AssignRoomResponse); ok {
			out = append(out, assign)
		}
	}
	return out
}

func spawnRoomManager(t *testing.T, engine *bollywood.Engine) *bollywood.PID {
	t.Helper()
	cfg := utils.DefaultConfig()
	pid := engine.Spawn(bollywood.NewProps(NewRoomManagerProducer(engine, cfg, nil)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)
	return pid
}

func roomList(t *testing.T, engine *bollywood.Engine, managerPID *bollywood.PID) map[string]int {
	t.Helper()
	replyCh := make(chan RoomListResponse, 1)
	engine.Send(managerPID, GetRoomListRequest{ReplyTo: replyCh}, nil)
	select {
	case response := <-replyCh:
		return response.Rooms
	case <-time.After(actorTestTimeout):
		t.Fatal("Timeout waiting for room list")
		return nil
	}
}

func TestRoomManagerSpawnsRoomPerRequest(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	managerPID := spawnRoomManager(t, engine)

	capture := &captureActor{}
	capturePID := engine.Spawn(bollywood.NewProps(func() bollywood.Actor { return capture }))
	require.NotNil(t, capturePID)

	engine.Send(managerPID, FindRoomRequest{ReplyTo: capturePID}, nil)
	engine.Send(managerPID, FindRoomRequest{ReplyTo: capturePID}, nil)
	time.Sleep(200 * time.Millisecond)

	assignments := capture.assignments()
	require.Len(t, assignments, 2)
	require.NotNil(t, assignments[0].RoomPID)
	require.NotNil(t, assignments[1].RoomPID)
	assert.NotEqual(t, assignments[0].RoomPID.String(), assignments[1].RoomPID.String(),
		"every connection gets its own room")

	rooms := roomList(t, engine, managerPID)
	assert.Len(t, rooms, 2)
}

func TestRoomManagerRemovesEmptyRoom(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	managerPID := spawnRoomManager(t, engine)

	capture := &captureActor{}
	capturePID := engine.Spawn(bollywood.NewProps(func() bollywood.Actor { return capture }))
	require.NotNil(t, capturePID)

	engine.Send(managerPID, FindRoomRequest{ReplyTo: capturePID}, nil)
	time.Sleep(200 * time.Millisecond)

	assignments := capture.assignments()
	require.Len(t, assignments, 1)
	roomPID := assignments[0].RoomPID
	require.NotNil(t, roomPID)

	engine.Send(managerPID, GameRoomEmpty{RoomPID: roomPID}, nil)
	time.Sleep(200 * time.Millisecond)

	rooms := roomList(t, engine, managerPID)
	assert.Empty(t, rooms)

	// Reporting the same room twice must be harmless.
	engine.Send(managerPID, GameRoomEmpty{RoomPID: roomPID}, nil)
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, roomList(t, engine, managerPID))
}

func TestRoomManagerEmptyList(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	managerPID := spawnRoomManager(t, engine)

	rooms := roomList(t, engine, managerPID)
	assert.Empty(t, rooms)
}
