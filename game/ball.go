// File: game/ball.go
package game

import (
	"math"

	"github.com/lguibr/tiltmaze/utils"
)

// Ball is the simulated marble. Position and velocity are in maze-space
// pixels; velocity is in pixels per nominal physics step.
type Ball struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Vx     float64 `json:"vx"`
	Vy     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

// NewBall creates a ball at rest.
func NewBall(x, y, radius float64) *Ball {
	return &Ball{X: x, Y: y, Radius: radius}
}

// NewBallOnOuterRing places a ball at rest in the radial middle of the
// outermost ring, at the given angle from the top.
func NewBallOnOuterRing(maze *CircularMaze, centerX, centerY, angle, radius float64) *Ball {
	inner, outer := maze.RingRadii(maze.Rings - 1)
	dx, dy := utils.PolarToCartesian(angle, (inner+outer)/2)
	return NewBall(centerX+dx, centerY+dy, radius)
}

// ApplyForce adds the input force to velocity through the acceleration gain,
// then clamps speed to the configured maximum by uniform scaling so the
// direction is preserved.
func (b *Ball) ApplyForce(forceX, forceY float64, cfg utils.Config) {
	b.Vx += forceX * cfg.Acceleration
	b.Vy += forceY * cfg.Acceleration

	speed := utils.Length(b.Vx, b.Vy)
	if speed > cfg.MaxSpeed {
		scale := cfg.MaxSpeed / speed
		b.Vx *= scale
		b.Vy *= scale
	}
}

// Update advances the ball by one Euler step. Position moves before friction
// is applied, so friction only affects subsequent steps; the friction decay
// is friction^deltaTime, which keeps drag frame-rate independent. Velocity
// components below the rest threshold snap to exactly zero so the ball
// cannot creep forever.
func (b *Ball) Update(deltaTime float64, cfg utils.Config) {
	b.X += b.Vx * deltaTime
	b.Y += b.Vy * deltaTime

	decay := math.Pow(cfg.Friction, deltaTime)
	b.Vx *= decay
	b.Vy *= decay

	if b.Vx < cfg.RestThreshold && b.Vx > -cfg.RestThreshold {
		b.Vx = 0
	}
	if b.Vy < cfg.RestThreshold && b.Vy > -cfg.RestThreshold {
		b.Vy = 0
	}
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return utils.Length(b.Vx, b.Vy)
}

// Clone returns an independent copy, used to keep the previous-tick ball for
// substep interpolation.
func (b *Ball) Clone() *Ball {
	copied := *b
	return &copied
}
