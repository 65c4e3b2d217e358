// File: tiltmazeClient/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/tiltmaze/game"
	"github.com/lguibr/tiltmaze/render"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

const (
	gridSize   = 160
	resolution = 56
)

func setRawMode(fileDescriptor uintptr) (*unix.Termios, error) {
	terminalSettings, err := unix.IoctlGetTermios(int(fileDescriptor), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	savedTerminalSettings := *terminalSettings
	terminalSettings.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	terminalSettings.Oflag &^= unix.OPOST
	terminalSettings.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	terminalSettings.Cflag &^= unix.CSIZE | unix.PARENB
	terminalSettings.Cflag |= unix.CS8
	terminalSettings.Oflag |= unix.ONLCR

	if err := unix.IoctlSetTermios(int(fileDescriptor), unix.TCSETS, terminalSettings); err != nil {
		return nil, err
	}
	return &savedTerminalSettings, nil
}

// receiveLoop renders every snapshot the server pushes.
func receiveLoop(conn *websocket.Conn) {
	for {
		var message json.RawMessage
		if err := websocket.JSON.Receive(conn, &message); err != nil {
			fmt.Println("Error reading from server:", err)
			return
		}

		var header game.MessageHeader
		if err := json.Unmarshal(message, &header); err != nil {
			continue
		}

		switch header.MessageType {
		case "stateSnapshot":
			var snapshot game.StateSnapshot
			if err := json.Unmarshal(message, &snapshot); err != nil {
				continue
			}
			drawSnapshot(snapshot)
		case "haptic":
			// Terminal bell stands in for vibration.
			fmt.Print("\a")
		case "roomAssignment":
			// Nothing to do, the first snapshot follows immediately.
		}
	}
}

func drawSnapshot(snapshot game.StateSnapshot) {
	helpers.ClearScreen()
	pixels := render.DrawStateOnRGBGrid(snapshot.Maze, snapshot.Ball, snapshot.CenterX, snapshot.CenterY, gridSize)
	fmt.Print(render.RenderToASCII(pixels, resolution))
	best := ""
	if ms, ok := snapshot.BestTimesMs[snapshot.Level]; ok {
		best = fmt.Sprintf("  best %.1fs", float64(ms)/1000)
	}
	fmt.Printf("\r\nlevel %d  status %s  %.1fs%s\r\n", snapshot.Level, snapshot.Status, float64(snapshot.ElapsedMs)/1000, best)
	fmt.Print("wasd tilt, space center, g start, r reset, n next, p pause, o resume, q quit\r\n")
}

func sendJSON(conn *websocket.Conn, msg interface{}) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = conn.Write(payload)
	return err
}

func main() {
	websocketConnection, err := websocket.Dial("ws://localhost:3001/subscribe", "", "http://localhost/")
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		return
	}
	defer websocketConnection.Close()

	go receiveLoop(websocketConnection)

	savedTerminalSettings, err := setRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		return
	}
	defer unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, savedTerminalSettings)

	interruptSignalChannel := make(chan os.Signal, 1)
	signal.Notify(interruptSignalChannel, os.Interrupt)
	go func() {
		<-interruptSignalChannel
		unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, savedTerminalSettings)
		os.Exit(0)
	}()

	for {
		singleByteBuffer := make([]byte, 1)
		if _, err := os.Stdin.Read(singleByteBuffer); err != nil {
			return
		}

		var msg interface{}
		switch singleByteBuffer[0] {
		case 'w', 'W':
			msg = game.TiltMessage{MessageType: "tilt", X: 0, Y: -1}
		case 's', 'S':
			msg = game.TiltMessage{MessageType: "tilt", X: 0, Y: 1}
		case 'a', 'A':
			msg = game.TiltMessage{MessageType: "tilt", X: -1, Y: 0}
		case 'd', 'D':
			msg = game.TiltMessage{MessageType: "tilt", X: 1, Y: 0}
		case ' ':
			msg = game.TiltMessage{MessageType: "tilt", X: 0, Y: 0}
		case 'g', 'G':
			msg = game.CommandMessage{MessageType: "command", Action: "start"}
		case 'r', 'R':
			msg = game.CommandMessage{MessageType: "command", Action: "reset"}
		case 'n', 'N':
			msg = game.CommandMessage{MessageType: "command", Action: "next"}
		case 'p', 'P':
			msg = game.CommandMessage{MessageType: "command", Action: "pause"}
		case 'o', 'O':
			msg = game.CommandMessage{MessageType: "command", Action: "resume"}
		case 'q', 'Q', 'c', 'C':
			fmt.Println("Quitting game")
			unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, savedTerminalSettings)
			os.Exit(0)
		default:
			continue
		}

		if err := sendJSON(websocketConnection, msg); err != nil {
			fmt.Println("Error sending to server:", err)
			return
		}
	}
}
