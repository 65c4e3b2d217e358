// File: server/handlers_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/game"
	"github.com/lguibr/tiltmaze/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

const handlerTestTimeout = 10 * time.Second

func newTestSystem(t *testing.T) (*bollywood.Engine, *Server) {
	t.Helper()
	engine := bollywood.NewEngine()
	cfg := utils.DefaultConfig()
	roomManagerPID := engine.Spawn(bollywood.NewProps(game.NewRoomManagerProducer(engine, cfg, nil)))
	require.NotNil(t, roomManagerPID)
	time.Sleep(50 * time.Millisecond)
	return engine, New(engine, roomManagerPID, cfg)
}

func readJSONWithTimeout(t *testing.T, ws *websocket.Conn, timeout time.Duration, v interface{}) error {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(timeout))
	defer ws.SetReadDeadline(time.Time{})
	return websocket.JSON.Receive(ws, v)
}

func TestHandleSubscribeAssignsRoom(t *testing.T) {
	engine, srv := newTestSystem(t)
	defer engine.Shutdown(handlerTestTimeout / 2)

	s := httptest.NewServer(websocket.Handler(srv.HandleSubscribe()))
	defer s.Close()
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http")

	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()

	var assignment game.RoomAssignmentMessage
	deadline := time.Now().Add(handlerTestTimeout)
	for time.Now().Before(deadline) {
		var raw json.RawMessage
		require.NoError(t, readJSONWithTimeout(t, ws, 2*time.Second, &raw))
		var header game.MessageHeader
		require.NoError(t, json.Unmarshal(raw, &header))
		if header.MessageType == "roomAssignment" {
			require.NoError(t, json.Unmarshal(raw, &assignment))
			break
		}
	}
	assert.NotEmpty(t, assignment.RoomPID, "client must learn its room PID")
}

func TestHandleSubscribeSendsInitialSnapshot(t *testing.T) {
	engine, srv := newTestSystem(t)
	defer engine.Shutdown(handlerTestTimeout / 2)

	s := httptest.NewServer(websocket.Handler(srv.HandleSubscribe()))
	defer s.Close()
	wsURL := "ws" + strings.TrimPrefix(s.URL, "http")

	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()

	var snapshot game.StateSnapshot
	found := false
	deadline := time.Now().Add(handlerTestTimeout)
	for time.Now().Before(deadline) {
		var raw json.RawMessage
		require.NoError(t, readJSONWithTimeout(t, ws, 2*time.Second, &raw))
		var header game.MessageHeader
		require.NoError(t, json.Unmarshal(raw, &header))
		if header.MessageType == "stateSnapshot" {
			require.NoError(t, json.Unmarshal(raw, &snapshot))
			found = true
			break
		}
	}
	require.True(t, found, "client must receive an initial snapshot")
	assert.Equal(t, game.StatusStart, snapshot.Status)
	assert.Equal(t, 1, snapshot.Level)
	require.NotNil(t, snapshot.Maze)
	assert.GreaterOrEqual(t, snapshot.Maze.Rings, 1)
	require.NotNil(t, snapshot.Ball)
}

func TestHandleGetRooms(t *testing.T) {
	engine, srv := newTestSystem(t)
	defer engine.Shutdown(handlerTestTimeout / 2)

	wsServer := httptest.NewServer(websocket.Handler(srv.HandleSubscribe()))
	defer wsServer.Close()
	httpServer := httptest.NewServer(http.HandlerFunc(srv.HandleGetRooms()))
	defer httpServer.Close()

	// No rooms yet.
	resp, err := http.Get(httpServer.URL)
	require.NoError(t, err)
	var rooms map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	resp.Body.Close()
	assert.Empty(t, rooms)

	// One connection, one room.
	wsURL := "ws" + strings.TrimPrefix(wsServer.URL, "http")
	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()
	time.Sleep(300 * time.Millisecond)

	resp, err = http.Get(httpServer.URL)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	resp.Body.Close()
	assert.Len(t, rooms, 1)
}

func TestDisconnectRemovesRoom(t *testing.T) {
	engine, srv := newTestSystem(t)
	defer engine.Shutdown(handlerTestTimeout / 2)

	wsServer := httptest.NewServer(websocket.Handler(srv.HandleSubscribe()))
	defer wsServer.Close()
	httpServer := httptest.NewServer(http.HandlerFunc(srv.HandleGetRooms()))
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(wsServer.URL, "http")
	ws, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	require.NoError(t, ws.Close())

	assert.Eventually(t, func() bool {
		resp, err := http.Get(httpServer.URL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var rooms map[string]int
		if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
			return false
		}
		return len(rooms) == 0
	}, handlerTestTimeout, 100*time.Millisecond, "room must be removed after disconnect")
}
