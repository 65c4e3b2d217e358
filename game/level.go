// File: game/level.go
package game

import (
	"fmt"

	"github.com/lguibr/tiltmaze/utils"
)

// LevelConfig is the derived difficulty of one level. It is a pure function
// of the level number and the engine config; there is no other runtime
// tunable surface.
type LevelConfig struct {
	Level      int     `json:"level"`
	Rings      int     `json:"rings"`
	BallRadius float64 `json:"ballRadius"`
}

// GetLevelConfig computes the maze size and ball radius for a level. The
// ring count grows by one every two levels up to the cap; the ball shrinks
// slightly as rings are added so corridors stay navigable.
func GetLevelConfig(level int, cfg utils.Config) LevelConfig {
	if level < 1 {
		panic(fmt.Sprintf("level: must be >= 1, got %d", level))
	}
	rings := cfg.BaseRings + (level-1)/2
	if rings > cfg.MaxRings {
		rings = cfg.MaxRings
	}
	radius := cfg.BaseBallRadius - float64(rings-cfg.BaseRings)*cfg.BallRadiusShrink
	if radius < cfg.MinBallRadius {
		radius = cfg.MinBallRadius
	}
	return LevelConfig{Level: level, Rings: rings, BallRadius: radius}
}
