// File: game/maze.go
package game

import (
	"fmt"

	"github.com/lguibr/tiltmaze/utils"
)

// Cell is one ring/segment cell of a circular maze. Each of the four walls is
// an independent flag; the generator opens them while carving passages.
type Cell struct {
	Ring      int  `json:"ring"`
	Segment   int  `json:"segment"`
	InnerWall bool `json:"innerWall"` // Toward the center
	OuterWall bool `json:"outerWall"` // Away from the center
	CwWall    bool `json:"cwWall"`    // Radial wall on the clockwise side
	CcwWall   bool `json:"ccwWall"`   // Radial wall on the counter-clockwise side
}

// CircularMaze is a concentric-ring maze around a central goal disc.
// Immutable once generated.
type CircularMaze struct {
	Rings           int      `json:"rings"`
	SegmentsPerRing []int    `json:"segmentsPerRing"`
	Cells           [][]Cell `json:"cells"`
	CenterRadius    float64  `json:"centerRadius"`
	RingWidth       float64  `json:"ringWidth"`
	TotalRadius     float64  `json:"totalRadius"`
	Seed            int64    `json:"seed"`
}

// Cell returns the cell at the given ring and segment. Out-of-range indices
// indicate a geometry bug and panic immediately.
func (m *CircularMaze) Cell(ring, segment int) *Cell {
	if ring < 0 || ring >= m.Rings {
		panic(fmt.Sprintf("maze: ring %d out of range [0,%d)", ring, m.Rings))
	}
	if segment < 0 || segment >= m.SegmentsPerRing[ring] {
		panic(fmt.Sprintf("maze: segment %d out of range [0,%d) on ring %d", segment, m.SegmentsPerRing[ring], ring))
	}
	return &m.Cells[ring][segment]
}

// RingRadii returns the inner and outer radius bounding the given ring.
func (m *CircularMaze) RingRadii(ring int) (inner, outer float64) {
	if ring < 0 || ring >= m.Rings {
		panic(fmt.Sprintf("maze: ring %d out of range [0,%d)", ring, m.Rings))
	}
	inner = m.CenterRadius + float64(ring)*m.RingWidth
	return inner, inner + m.RingWidth
}

// SegmentAngles returns the angular span of a segment, measured from the top
// going clockwise. Segment 0 starts at the top.
func (m *CircularMaze) SegmentAngles(ring, segment int) (start, end float64) {
	c := m.Cell(ring, segment)
	per := utils.TwoPi / float64(m.SegmentsPerRing[ring])
	return float64(c.Segment) * per, float64(c.Segment+1) * per
}

// SegmentAt returns the segment index of a ring containing the given angle.
func (m *CircularMaze) SegmentAt(ring int, angle float64) int {
	n := m.SegmentsPerRing[ring]
	seg := int(utils.NormalizeAngle(angle) / utils.TwoPi * float64(n))
	if seg >= n { // angle == 2π after float rounding
		seg = n - 1
	}
	return seg
}

// PositionCell maps a cartesian position to the maze cell containing it.
// ok is false when the point lies inside the center goal disc or outside the
// maze entirely.
func (m *CircularMaze) PositionCell(x, y, centerX, centerY float64) (ring, segment int, ok bool) {
	dx, dy := x-centerX, y-centerY
	dist := utils.Length(dx, dy)
	if dist < m.CenterRadius || dist > m.TotalRadius {
		return 0, 0, false
	}
	ring = int((dist - m.CenterRadius) / m.RingWidth)
	if ring >= m.Rings { // dist == TotalRadius after float rounding
		ring = m.Rings - 1
	}
	return ring, m.SegmentAt(ring, utils.AngleFromTop(dx, dy)), true
}

// InwardSegment returns the single segment of ring-1 whose outward fan-out
// range contains the given segment. It is the exact inverse of
// OutwardSegmentRange, so carving, traversal, and collision agree on which
// cells are adjacent. Only valid for ring >= 1.
func (m *CircularMaze) InwardSegment(ring, segment int) int {
	if ring < 1 {
		panic("maze: no inward segment from the innermost ring")
	}
	inner := m.SegmentsPerRing[ring-1]
	outer := m.SegmentsPerRing[ring]
	// The largest s with s*outer/inner <= segment, i.e. the s whose range
	// [start, end) contains segment.
	return ((segment+1)*inner - 1) / outer
}

// OutwardSegmentRange returns the half-open range [start, end) of ring+1
// segments adjacent to the given segment. The range is never empty because
// segment counts only grow outward.
func (m *CircularMaze) OutwardSegmentRange(ring, segment int) (start, end int) {
	if ring >= m.Rings-1 {
		panic("maze: no outward segments from the outermost ring")
	}
	outer := m.SegmentsPerRing[ring+1]
	inner := m.SegmentsPerRing[ring]
	start = segment * outer / inner
	end = (segment + 1) * outer / inner
	return start, end
}
