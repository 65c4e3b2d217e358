// File: game/game_actor.go
package game

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/storage"
	"github.com/lguibr/tiltmaze/utils"
	"golang.org/x/net/websocket"
)

// GameActor owns one game room: a single simulation and the single client
// connection playing it. All state is touched only from Receive, so no
// locking is needed around the simulation itself.
type GameActor struct {
	cfg            utils.Config
	engine         *bollywood.Engine
	roomManagerPID *bollywood.PID
	selfPID        *bollywood.PID
	store          storage.BestTimesStore
	seed           int64

	state   *GameState
	stepper *Stepper
	tiltX   float64
	tiltY   float64

	conn         *websocket.Conn
	ticker       *time.Ticker
	stopTickerCh chan struct{}
}

// NewGameActorProducer creates a producer for the GameActor. The seed drives
// all maze generation for the room's lifetime.
func NewGameActorProducer(engine *bollywood.Engine, cfg utils.Config, roomManagerPID *bollywood.PID, store storage.BestTimesStore, seed int64) bollywood.Producer {
	return func() bollywood.Actor {
		return &GameActor{
			cfg:            cfg,
			engine:         engine,
			roomManagerPID: roomManagerPID,
			store:          store,
			seed:           seed,
			stopTickerCh:   make(chan struct{}),
		}
	}
}

// Receive is the main message handler for the GameActor.
func (a *GameActor) Receive(ctx bollywood.Context) {
	defer func() {
		if r := recover(); r != nil {
			pidStr := "unknown"
			if a.selfPID != nil {
				pidStr = a.selfPID.String()
			}
			fmt.Printf("PANIC recovered in GameActor %s Receive: %v\nStack trace:\n%s\n", pidStr, r, string(debug.Stack()))
		}
	}()

	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch m := ctx.Message().(type) {
	case bollywood.Started:
		fmt.Printf("GameActor %s: Started.\n", a.selfPID)
		a.state = NewGameState(a.cfg, a.seed, a.store)
		a.stepper = NewStepper(a.cfg)

	case GameTick:
		a.handleTick()

	case AssignPlayerToRoom:
		a.handlePlayerAssign(m.WsConn)

	case PlayerDisconnect:
		a.handlePlayerDisconnect(m.WsConn)

	case ForwardedClientMessage:
		a.handleClientMessage(m.Payload)

	case internalGetStateRequest:
		if m.ReplyTo != nil {
			m.ReplyTo <- internalGetStateResponse{
				Status:  a.state.Status,
				Level:   a.state.Level,
				Elapsed: a.state.ElapsedTime,
				Ball:    *a.state.Ball,
			}
		}

	case bollywood.Stopping:
		fmt.Printf("GameActor %s: Stopping.\n", a.selfPID)
		a.stopTicker()
		if a.conn != nil {
			_ = a.conn.Close()
			a.conn = nil
		}

	case bollywood.Stopped:
		fmt.Printf("GameActor %s: Stopped.\n", a.selfPID)

	default:
		fmt.Printf("GameActor %s: Received unknown message type: %T\n", a.selfPID, m)
	}
}

// handlePlayerAssign adopts the connection, tells the client its room, and
// starts the simulation ticker.
func (a *GameActor) handlePlayerAssign(conn *websocket.Conn) {
	if conn == nil {
		return
	}
	if a.conn != nil {
		// Single-player rooms never receive a second connection under normal
		// operation; if one arrives, refuse it.
		fmt.Printf("GameActor %s: Rejecting second connection.\n", a.selfPID)
		_ = conn.Close()
		return
	}
	a.conn = conn
	a.sendJSON(RoomAssignmentMessage{MessageType: "roomAssignment", RoomPID: a.selfPID.String()})
	a.broadcastSnapshot()
	a.startTicker()
}

// handlePlayerDisconnect drops the connection and reports the room empty.
func (a *GameActor) handlePlayerDisconnect(conn *websocket.Conn) {
	if conn == nil || conn != a.conn {
		return
	}
	fmt.Printf("GameActor %s: Player disconnected.\n", a.selfPID)
	a.conn = nil
	a.stopTicker()
	if a.roomManagerPID != nil {
		a.engine.Send(a.roomManagerPID, GameRoomEmpty{RoomPID: a.selfPID}, a.selfPID)
	}
}

// handleClientMessage decodes a raw client payload by its messageType header
// and dispatches it.
func (a *GameActor) handleClientMessage(payload []byte) {
	var header MessageHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		fmt.Printf("GameActor %s: Could not decode message header: %v\n", a.selfPID, err)
		return
	}

	switch header.MessageType {
	case "tilt":
		var msg TiltMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			fmt.Printf("GameActor %s: Could not decode tilt message: %v\n", a.selfPID, err)
			return
		}
		a.tiltX = clampUnit(msg.X)
		a.tiltY = clampUnit(msg.Y)

	case "command":
		var msg CommandMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			fmt.Printf("GameActor %s: Could not decode command message: %v\n", a.selfPID, err)
			return
		}
		a.handleCommand(msg.Action)

	default:
		fmt.Printf("GameActor %s: Unknown client message type %q\n", a.selfPID, header.MessageType)
	}
}

// handleCommand applies a lifecycle command. Commands that do not apply in
// the current state are ignored rather than erroring, so a client with a
// stale view cannot wedge the room.
func (a *GameActor) handleCommand(action string) {
	switch action {
	case "start":
		if a.state.Status == StatusStart {
			a.state.StartLevel(a.state.Level)
			a.stepper.Reset()
		}
	case "reset":
		a.state.ResetLevel()
		a.tiltX, a.tiltY = 0, 0
		a.stepper.Reset()
	case "next":
		if a.state.Status == StatusWon {
			a.state.NextLevel()
			a.tiltX, a.tiltY = 0, 0
			a.stepper.Reset()
		}
	case "pause":
		a.state.Pause()
	case "resume":
		if a.state.Status == StatusPaused {
			a.state.Resume()
			a.stepper.Reset()
		}
	default:
		fmt.Printf("GameActor %s: Unknown command %q\n", a.selfPID, action)
		return
	}
	a.broadcastSnapshot()
}

// handleTick advances the simulation by however many physics steps are due
// and broadcasts the resulting state.
func (a *GameActor) handleTick() {
	if a.state == nil || a.conn == nil {
		return
	}

	steps := a.stepper.Advance(time.Now())
	collided := false
	won := false
	for i := 0; i < steps; i++ {
		result := a.state.Step(a.tiltX, a.tiltY, 1.0)
		collided = collided || result.Collided
		if result.Won {
			won = true
			break
		}
	}

	if collided && !won {
		a.sendJSON(HapticMessage{MessageType: "haptic", Kind: "collision"})
	}
	if won {
		a.sendJSON(HapticMessage{MessageType: "haptic", Kind: "win"})
	}
	// Frames that ran no physics step left the state unchanged, so no
	// snapshot is sent for them. Lifecycle transitions broadcast on their
	// own from handleCommand.
	if steps > 0 || won {
		a.broadcastSnapshot()
	}
}

// broadcastSnapshot sends the full renderable state to the client.
func (a *GameActor) broadcastSnapshot() {
	if a.conn == nil || a.state == nil {
		return
	}

	elapsed := a.state.ElapsedTime
	if a.state.Status == StatusPlaying {
		elapsed = time.Since(a.state.StartTime)
	}
	bestMs := make(map[int]int64, len(a.state.BestTimes))
	for level, d := range a.state.BestTimes {
		bestMs[level] = d.Milliseconds()
	}

	a.sendJSON(StateSnapshot{
		MessageType: "stateSnapshot",
		Status:      a.state.Status,
		Level:       a.state.Level,
		ElapsedMs:   elapsed.Milliseconds(),
		BestTimesMs: bestMs,
		Maze:        a.state.Maze,
		Ball:        a.state.Ball,
		CenterX:     a.state.CenterX,
		CenterY:     a.state.CenterY,
	})
}

// sendJSON writes one message to the client. A write failure is treated as a
// disconnect.
func (a *GameActor) sendJSON(msg interface{}) {
	if a.conn == nil {
		return
	}
	if err := websocket.JSON.Send(a.conn, msg); err != nil {
		fmt.Printf("GameActor %s: Send failed, treating as disconnect: %v\n", a.selfPID, err)
		conn := a.conn
		a.handlePlayerDisconnect(conn)
	}
}

// startTicker begins the frame loop that feeds GameTick messages into the
// actor's own mailbox.
func (a *GameActor) startTicker() {
	if a.ticker != nil {
		return
	}
	a.ticker = time.NewTicker(a.cfg.PhysicsStepPeriod)
	a.stopTickerCh = make(chan struct{})
	stopCh := a.stopTickerCh
	tickerCh := a.ticker.C
	actorPID := a.selfPID

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("PANIC recovered in GameActor %s Ticker Loop: %v\nStack trace:\n%s\n", actorPID, r, string(debug.Stack()))
			}
		}()
		for {
			select {
			case <-stopCh:
				return
			case _, ok := <-tickerCh:
				if !ok {
					return
				}
				a.engine.Send(actorPID, GameTick{}, nil)
			}
		}
	}()
}

// stopTicker halts the frame loop if running.
func (a *GameActor) stopTicker() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	select {
	case <-a.stopTickerCh:
	default:
		close(a.stopTickerCh)
	}
	a.ticker = nil
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
