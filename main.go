package main

import (
	"fmt"
	"net/http"

	"github.com/lguibr/tiltmaze/bollywood"
	"github.com/lguibr/tiltmaze/game"
	"github.com/lguibr/tiltmaze/server"
	"github.com/lguibr/tiltmaze/storage"
	"github.com/lguibr/tiltmaze/utils"
	"golang.org/x/net/websocket"
)

func main() {
	cfg := utils.DefaultConfig()
	engine := bollywood.NewEngine()

	var store storage.BestTimesStore = storage.NoopStore{}
	if cfg.BestTimesPath != "" {
		store = storage.NewFileStore(cfg.BestTimesPath)
	}

	roomManagerProps := bollywood.NewProps(game.NewRoomManagerProducer(engine, cfg, store))
	roomManagerPID := engine.Spawn(roomManagerProps)
	if roomManagerPID == nil {
		panic("failed to spawn room manager")
	}

	srv := server.New(engine, roomManagerPID, cfg)

	http.HandleFunc("/rooms", srv.HandleGetRooms())
	http.Handle("/subscribe", websocket.Handler(srv.HandleSubscribe()))

	fmt.Println("Tilt maze server listening on :3001")
	panic(http.ListenAndServe(":3001", nil))
}
