// File: game/game_actor_test.go
package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actorTestTimeout = 5 * time.Second

// getActorState asks a GameActor for a snapshot of its state via the
// internal test message.
func getActorState(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID) internalGetStateResponse {
	t.Helper()
	replyCh := make(chan internalGetStateResponse, 1)
	engine.Send(pid, internalGetStateRequest{ReplyTo: replyCh}, nil)
	select {
	case state := <-replyCh:
		return state
	case <-time.After(actorTestTimeout):
		t.Fatal("Timeout waiting for game actor state")
		return internalGetStateResponse{}
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

func TestGameActorStartsInStartState(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	cfg := utils.DefaultConfig()

	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, cfg, nil, nil, 42)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)

	state := getActorState(t, engine, pid)
	assert.Equal(t, StatusStart, state.Status)
	assert.Equal(t, 1, state.Level)
	assert.Zero(t, state.Ball.Vx)
	assert.Zero(t, state.Ball.Vy)
}

func TestGameActorStartCommandBeginsPlay(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	cfg := utils.DefaultConfig()

	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, cfg, nil, nil, 42)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)

	payload := mustMarshal(t, CommandMessage{MessageType: "command", Action: "start"})
	engine.Send(pid, ForwardedClientMessage{Payload: payload}, nil)
	time.Sleep(50 * time.Millisecond)

	state := getActorState(t, engine, pid)
	assert.Equal(t, StatusPlaying, state.Status)
	assert.Equal(t, 1, state.Level)
}

func TestGameActorPauseAndResume(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	cfg := utils.DefaultConfig()

	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, cfg, nil, nil, 7)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)

	engine.Send(pid, ForwardedClientMessage{Payload: mustMarshal(t, CommandMessage{MessageType: "command", Action: "start"})}, nil)
	engine.Send(pid, ForwardedClientMessage{Payload: mustMarshal(t, CommandMessage{MessageType: "command", Action: "pause"})}, nil)
	time.Sleep(50 * time.Millisecond)

	state := getActorState(t, engine, pid)
	assert.Equal(t, StatusPaused, state.Status)

	engine.Send(pid, ForwardedClientMessage{Payload: mustMarshal(t, CommandMessage{MessageType: "command", Action: "resume"})}, nil)
	time.Sleep(50 * time.Millisecond)

	state = getActorState(t, engine, pid)
	assert.Equal(t, StatusPlaying, state.Status)
}

func TestGameActorNextOnlyAfterWin(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	cfg := utils.DefaultConfig()

	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, cfg, nil, nil, 7)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)

	engine.Send(pid, ForwardedClientMessage{Payload: mustMarshal(t, CommandMessage{MessageType: "command", Action: "next"})}, nil)
	time.Sleep(50 * time.Millisecond)

	state := getActorState(t, engine, pid)
	assert.Equal(t, StatusStart, state.Status, "next must be ignored before a win")
	assert.Equal(t, 1, state.Level)
}

func TestGameActorIgnoresMalformedPayloads(t *testing.T) {
	engine := bollywood.NewEngine()
	defer engine.Shutdown(actorTestTimeout)
	cfg := utils.DefaultConfig()

	pid := engine.Spawn(bollywood.NewProps(NewGameActorProducer(engine, cfg, nil, nil, 7)))
	require.NotNil(t, pid)
	time.Sleep(50 * time.Millisecond)

	engine.Send(pid, ForwardedClientMessage{Payload: []byte("not json")}, nil)
	engine.Send(pid, ForwardedClientMessage{Payload: []byte(`{"messageType":"mystery"}`)}, nil)
	engine.Send(pid, ForwardedClientMessage{Payload: []byte(`{"messageType":"command","action":"explode"}`)}, nil)
	time.Sleep(50 * time.Millisecond)

	// The actor must survive and stay in its initial state.
	state := getActorState(t, engine, pid)
	assert.Equal(t, StatusStart, state.Status)
}
