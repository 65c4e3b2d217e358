// File: game/collision.go
package game

import (
	"math"

	"github.com/lguibr/tiltmaze/utils"
)

// boundaryMargin is added to the outer-boundary push-out so floating-point
// residue cannot re-trigger the same collision on the next check.
const boundaryMargin = 0.1

// Collision describes one resolved contact: a unit normal pointing away from
// the wall into free space and the penetration depth along it. Ephemeral,
// produced and consumed within a single tick.
type Collision struct {
	NormalX     float64 `json:"normalX"`
	NormalY     float64 `json:"normalY"`
	Penetration float64 `json:"penetration"`
}

// CheckCircularWallCollision tests the ball against the maze walls and
// returns the first contact found, or nil. Checks run in a fixed order: hard
// outer boundary, center boundary, then the ball's own cell followed by its
// two angular neighbors, arcs before spokes within each cell. The first-hit
// policy is acceptable because the caller re-checks every tick and resolves
// through several iterations.
func CheckCircularWallCollision(ball *Ball, maze *CircularMaze, centerX, centerY float64) *Collision {
	dx := ball.X - centerX
	dy := ball.Y - centerY
	dist := utils.Length(dx, dy)
	if dist < 1e-9 {
		// Dead center: pick an arbitrary radial direction.
		dx, dy, dist = 0, -1e-9, 1e-9
	}
	ux, uy := dx/dist, dy/dist // outward radial unit vector

	// Hard outer boundary, always closed.
	if dist+ball.Radius > maze.TotalRadius {
		return &Collision{
			NormalX:     -ux,
			NormalY:     -uy,
			Penetration: dist + ball.Radius - maze.TotalRadius + boundaryMargin,
		}
	}

	angle := utils.AngleFromTop(dx, dy)

	// Center goal boundary: the blocking segment is resolved by the ball's
	// center angle only, with no angular tolerance.
	if dist-ball.Radius < maze.CenterRadius {
		seg := maze.SegmentAt(0, angle)
		if maze.Cells[0][seg].InnerWall {
			return &Collision{
				NormalX:     ux,
				NormalY:     uy,
				Penetration: maze.CenterRadius - (dist - ball.Radius),
			}
		}
		return nil
	}

	ring, seg, ok := maze.PositionCell(ball.X, ball.Y, centerX, centerY)
	if !ok {
		return nil
	}

	n := maze.SegmentsPerRing[ring]
	for _, s := range []int{seg, (seg - 1 + n) % n, (seg + 1) % n} {
		if col := checkCellWalls(ball, maze, ring, s, dx, dy, dist, angle, ux, uy); col != nil {
			return col
		}
	}
	return nil
}

// checkCellWalls tests the four walls of one cell against the ball. The two
// arc walls are checked first, then the two radial spokes.
func checkCellWalls(ball *Ball, maze *CircularMaze, ring, segment int, dx, dy, dist, angle, ux, uy float64) *Collision {
	cell := &maze.Cells[ring][segment]
	innerR, outerR := maze.RingRadii(ring)
	start, end := maze.SegmentAngles(ring, segment)

	// The ball's linear radius converted into an angular margin at its
	// current distance, so arc spans catch balls straddling a boundary.
	tolerance := ball.Radius / dist

	if cell.InnerWall && dist-ball.Radius < innerR &&
		utils.AngleWithin(angle, start-tolerance, end+tolerance) {
		return &Collision{NormalX: ux, NormalY: uy, Penetration: innerR - (dist - ball.Radius)}
	}
	if cell.OuterWall && dist+ball.Radius > outerR &&
		utils.AngleWithin(angle, start-tolerance, end+tolerance) {
		return &Collision{NormalX: -ux, NormalY: -uy, Penetration: dist + ball.Radius - outerR}
	}
	if cell.CcwWall {
		if col := checkSpokeCollision(dx, dy, ball.Radius, start, innerR, outerR); col != nil {
			return col
		}
	}
	if cell.CwWall {
		if col := checkSpokeCollision(dx, dy, ball.Radius, end, innerR, outerR); col != nil {
			return col
		}
	}
	return nil
}

// checkSpokeCollision tests the ball (at offset px,py from the maze center)
// against a radial wall at the given angle spanning [innerR, outerR]. The
// normal points away from the spoke on whichever side the ball occupies;
// when the ball's projection falls outside the span, the nearest endpoint is
// tested instead to catch corner impacts.
func checkSpokeCollision(px, py, radius, angle, innerR, outerR float64) *Collision {
	ux, uy := utils.PolarToCartesian(angle, 1) // spoke direction, unit length
	nx, ny := -uy, ux                          // spoke normal

	proj := px*ux + py*uy
	perp := px*nx + py*ny

	if math.Abs(perp) >= radius {
		return nil
	}
	if proj < innerR-radius || proj > outerR+radius {
		return nil
	}

	if proj >= innerR && proj <= outerR {
		sign := 1.0
		if perp < 0 {
			sign = -1
		}
		return &Collision{
			NormalX:     sign * nx,
			NormalY:     sign * ny,
			Penetration: radius - math.Abs(perp),
		}
	}

	// Corner impact near a spoke endpoint.
	endRadius := innerR
	if proj > outerR {
		endRadius = outerR
	}
	ex, ey := ux*endRadius, uy*endRadius
	d := utils.Distance(px, py, ex, ey)
	if d >= radius || d < 1e-9 {
		return nil
	}
	return &Collision{
		NormalX:     (px - ex) / d,
		NormalY:     (py - ey) / d,
		Penetration: radius - d,
	}
}

// ResolveCircularCollision pushes the ball out of the wall along the contact
// normal and damps the inbound normal velocity component, leaving the
// tangential (sliding) component untouched. Reflecting only the normal
// component avoids injecting energy along walls and the jitter a naive full
// reflection produces on curved surfaces.
func ResolveCircularCollision(ball *Ball, col *Collision, elasticity float64) {
	ball.X += col.NormalX * col.Penetration
	ball.Y += col.NormalY * col.Penetration

	normalVelocity := utils.Dot(ball.Vx, ball.Vy, col.NormalX, col.NormalY)
	if normalVelocity < 0 {
		ball.Vx -= (1 + elasticity) * normalVelocity * col.NormalX
		ball.Vy -= (1 + elasticity) * normalVelocity * col.NormalY
	}
}

// IsAtCircularGoal reports whether the ball has clearly entered the goal
// disc. The factor is stricter than the collision boundary so touching the
// disc's edge does not count as a win.
func IsAtCircularGoal(ball *Ball, maze *CircularMaze, centerX, centerY, goalFactor float64) bool {
	return utils.Distance(ball.X, ball.Y, centerX, centerY) < maze.CenterRadius*goalFactor
}
