// File: utils/prng.go
package utils

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// PRNG is a deterministic linear-congruential random stream. The same seed
// always produces the same sequence, which is what makes generated mazes
// reproducible for tests and replays.
type PRNG struct {
	state int64
}

// NewPRNG creates a PRNG from an explicit seed. Any integer is a valid seed.
func NewPRNG(seed int64) *PRNG {
	state := seed % lcgModulus
	if state < 0 {
		state += lcgModulus
	}
	return &PRNG{state: state}
}

// Next returns the next value in [0, 1).
func (r *PRNG) Next() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (r *PRNG) Intn(n int) int {
	if n <= 0 {
		panic("PRNG.Intn: n must be positive")
	}
	return int(r.Next() * float64(n))
}

// Int63 returns a non-negative 63-bit value, composed from two draws so the
// result has more entropy than a single 31-bit state step. Used to derive
// per-level maze seeds from a room's stream.
func (r *PRNG) Int63() int64 {
	r.Next()
	hi := r.state
	r.Next()
	return (hi << 31) ^ r.state
}
