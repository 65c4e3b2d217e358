// File: game/state.go
package game

import (
	"math"
	"time"

	"github.com/lguibr/tiltmaze/storage"
	"github.com/lguibr/tiltmaze/utils"
)

// Status is the lifecycle phase of a game.
type Status string

const (
	StatusStart   Status = "start"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusPaused  Status = "paused"
)

// StepResult reports what happened during one physics step.
type StepResult struct {
	Collided bool
	Won      bool
}

// GameState is the full simulation state of one game: the current maze, the
// ball, timing, and the per-level best times. It is owned by a single
// goroutine (the room actor) and is not safe for concurrent use.
type GameState struct {
	Status      Status                `json:"status"`
	Level       int                   `json:"level"`
	Maze        *CircularMaze         `json:"maze"`
	Ball        *Ball                 `json:"ball"`
	PrevBall    *Ball                 `json:"-"`
	CenterX     float64               `json:"centerX"`
	CenterY     float64               `json:"centerY"`
	StartTime   time.Time             `json:"-"`
	ElapsedTime time.Duration         `json:"elapsedTime"`
	BestTimes   map[int]time.Duration `json:"bestTimes"`

	cfg   utils.Config
	rng   *utils.PRNG
	store storage.BestTimesStore
}

// NewGameState builds a level-1 game in the start state. The seed drives
// every maze and ball placement of this game, so two games created with the
// same seed play out identically under the same inputs.
func NewGameState(cfg utils.Config, seed int64, store storage.BestTimesStore) *GameState {
	if store == nil {
		store = storage.NoopStore{}
	}
	s := &GameState{
		Status:    StatusStart,
		Level:     1,
		BestTimes: store.Load(),
		cfg:       cfg,
		rng:       utils.NewPRNG(seed),
		store:     store,
	}
	s.buildLevel(1, 0)
	return s
}

// buildLevel regenerates the maze and places the ball at rest on the outer
// ring at the given angle. It does not touch Status or timing.
func (s *GameState) buildLevel(level int, ballAngle float64) {
	lc := GetLevelConfig(level, s.cfg)
	s.Level = level
	s.Maze = NewCircularMaze(lc.Rings, s.rng.Int63(), s.cfg)
	s.CenterX = s.Maze.TotalRadius
	s.CenterY = s.Maze.TotalRadius
	s.Ball = NewBallOnOuterRing(s.Maze, s.CenterX, s.CenterY, ballAngle, lc.BallRadius)
	s.PrevBall = s.Ball.Clone()
}

// StartLevel regenerates the given level with a fresh maze seed and a random
// ball placement, and begins play.
func (s *GameState) StartLevel(level int) {
	s.buildLevel(level, s.rng.Next()*utils.TwoPi)
	s.Status = StatusPlaying
	s.StartTime = time.Now()
	s.ElapsedTime = 0
}

// ResetLevel restarts the current level with a new maze layout.
func (s *GameState) ResetLevel() {
	s.StartLevel(s.Level)
}

// NextLevel advances to the next level. Only meaningful after a win, but
// callable from any state.
func (s *GameState) NextLevel() {
	s.StartLevel(s.Level + 1)
}

// Pause freezes the simulation and the level clock.
func (s *GameState) Pause() {
	if s.Status != StatusPlaying {
		return
	}
	s.ElapsedTime = time.Since(s.StartTime)
	s.Status = StatusPaused
}

// Resume continues a paused game without losing clock time.
func (s *GameState) Resume() {
	if s.Status != StatusPaused {
		return
	}
	s.StartTime = time.Now().Add(-s.ElapsedTime)
	s.Status = StatusPlaying
}

// Step advances the simulation by one physics step under the given tilt
// input. When the ball would travel more than its own radius in the step it
// is advanced in substeps, so a fast ball cannot tunnel through a wall
// thinner than its displacement. Each substep runs the collision
// check-and-resolve loop up to the configured iteration cap.
func (s *GameState) Step(tiltX, tiltY, deltaTime float64) StepResult {
	if s.Status != StatusPlaying {
		return StepResult{}
	}

	s.PrevBall = s.Ball.Clone()
	s.Ball.ApplyForce(tiltX, tiltY, s.cfg)

	substeps := 1
	if displacement := s.Ball.Speed() * deltaTime; displacement > s.Ball.Radius {
		substeps = int(math.Ceil(displacement / s.Ball.Radius))
	}

	result := StepResult{}
	sub := deltaTime / float64(substeps)
	for i := 0; i < substeps; i++ {
		s.Ball.Update(sub, s.cfg)
		for iter := 0; iter < s.cfg.MaxResolveIterations; iter++ {
			col := CheckCircularWallCollision(s.Ball, s.Maze, s.CenterX, s.CenterY)
			if col == nil {
				break
			}
			ResolveCircularCollision(s.Ball, col, s.cfg.BounceElasticity)
			result.Collided = true
		}
	}

	s.ElapsedTime = time.Since(s.StartTime)

	if IsAtCircularGoal(s.Ball, s.Maze, s.CenterX, s.CenterY, s.cfg.GoalFactor) {
		s.CompleteLevel()
		result.Won = true
	}
	return result
}

// CompleteLevel records the level time, updates the best time if beaten, and
// moves to the won state. Persistence is best-effort.
func (s *GameState) CompleteLevel() {
	s.ElapsedTime = time.Since(s.StartTime)
	best, ok := s.BestTimes[s.Level]
	if !ok || s.ElapsedTime < best {
		s.BestTimes[s.Level] = s.ElapsedTime
		s.store.Save(s.BestTimes)
	}
	s.Status = StatusWon
}
