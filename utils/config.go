// File: utils/config.go
package utils

import "time"

// Config holds all configurable engine parameters.
type Config struct {
	// Timing
	PhysicsStepPeriod time.Duration `json:"physicsStepPeriod"` // Nominal duration of one physics step (deltaTime = 1.0)
	MaxFrameDelta     time.Duration `json:"maxFrameDelta"`     // Cap on the wall-clock delta per frame (stall guard)

	// Maze geometry
	CenterRadius float64 `json:"centerRadius"` // Radius of the central goal disc
	RingWidth    float64 `json:"ringWidth"`    // Radial width of each ring
	MinArcLength float64 `json:"minArcLength"` // Target arc length per segment (keeps segment width roughly constant)
	MinSegments  int     `json:"minSegments"`  // Lower bound on segments per ring (must be even)

	// Ball physics
	Friction             float64 `json:"friction"`             // Velocity multiplier per unit time, closer to 1 = less drag
	MaxSpeed             float64 `json:"maxSpeed"`             // Speed clamp applied after force
	Acceleration         float64 `json:"acceleration"`         // Force-to-velocity gain
	BounceElasticity     float64 `json:"bounceElasticity"`     // Fraction of normal velocity retained after a bounce
	RestThreshold        float64 `json:"restThreshold"`        // Velocity components below this snap to exactly zero
	MaxResolveIterations int     `json:"maxResolveIterations"` // Collision resolution passes per physics step

	// Levels
	BaseRings        int     `json:"baseRings"`        // Ring count at level 1
	MaxRings         int     `json:"maxRings"`         // Ring count cap
	BaseBallRadius   float64 `json:"baseBallRadius"`   // Ball radius at the base ring count
	BallRadiusShrink float64 `json:"ballRadiusShrink"` // Radius removed per ring above the base count
	MinBallRadius    float64 `json:"minBallRadius"`    // Lower bound on ball radius
	GoalFactor       float64 `json:"goalFactor"`       // Fraction of CenterRadius that counts as reaching the goal

	// Persistence
	BestTimesPath string `json:"bestTimesPath"` // Best-times JSON file; empty disables persistence
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		// Timing
		PhysicsStepPeriod: 16 * time.Millisecond, // ~60 physics steps per second
		MaxFrameDelta:     100 * time.Millisecond,

		// Maze geometry
		CenterRadius: 50,
		RingWidth:    40,
		MinArcLength: 40,
		MinSegments:  8,

		// Ball physics
		Friction:             0.95,
		MaxSpeed:             8,
		Acceleration:         0.5,
		BounceElasticity:     0.3,
		RestThreshold:        0.01,
		MaxResolveIterations: 3,

		// Levels
		BaseRings:        4,
		MaxRings:         10,
		BaseBallRadius:   10,
		BallRadiusShrink: 0.5,
		MinBallRadius:    6,
		GoalFactor:       0.7,

		// Persistence
		BestTimesPath: "tiltmaze_besttimes.json",
	}
}
