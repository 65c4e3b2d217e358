// File: test/helpers_test.go
package test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/tiltmaze/game"
	"golang.org/x/net/websocket"
)

// ReadWsJSONMessage reads a JSON message from the WebSocket with a timeout.
// It handles setting/clearing read deadlines and checks for common errors.
func ReadWsJSONMessage(t *testing.T, ws *websocket.Conn, timeout time.Duration, v interface{}) error {
	t.Helper()
	if ws == nil {
		return errors.New("websocket connection is nil")
	}

	readDone := make(chan error, 1)

	go func() {
		setReadErr := ws.SetReadDeadline(time.Now().Add(timeout))
		if setReadErr != nil {
			if errors.Is(setReadErr, net.ErrClosed) || strings.Contains(setReadErr.Error(), "use of closed network connection") {
				readDone <- errors.New("connection closed")
				return
			}
			readDone <- fmt.Errorf("failed to set read deadline: %w", setReadErr)
			return
		}

		err := websocket.JSON.Receive(ws, v)
		_ = ws.SetReadDeadline(time.Time{})
		readDone <- err
	}()

	select {
	case readErr := <-readDone:
		return readErr
	case <-time.After(timeout + 500*time.Millisecond):
		_ = ws.Close()
		return fmt.Errorf("websocket read timeout after %v (Receive call blocked)", timeout)
	}
}

// WaitForSnapshot reads messages until a stateSnapshot satisfying the
// condition arrives or the timeout expires. Other message types (room
// assignment, haptics) are skipped.
func WaitForSnapshot(t *testing.T, ws *websocket.Conn, timeout time.Duration, condition func(game.StateSnapshot) bool) (game.StateSnapshot, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last game.StateSnapshot

	for time.Now().Before(deadline) {
		var raw json.RawMessage
		err := ReadWsJSONMessage(t, ws, 1*time.Second, &raw)
		if err != nil {
			if strings.Contains(err.Error(), "closed") || strings.Contains(err.Error(), "reset by peer") {
				t.Logf("Connection closed while waiting for snapshot: %v", err)
				return last, false
			}
			continue
		}

		var header game.MessageHeader
		if json.Unmarshal(raw, &header) != nil || header.MessageType != "stateSnapshot" {
			continue
		}
		if json.Unmarshal(raw, &last) != nil {
			continue
		}
		if condition(last) {
			return last, true
		}
	}
	t.Logf("Timeout waiting for snapshot condition after %v", timeout)
	return last, false
}

// SendClientJSON marshals and writes one client message.
func SendClientJSON(t *testing.T, ws *websocket.Conn, msg interface{}) error {
	t.Helper()
	return websocket.JSON.Send(ws, msg)
}
