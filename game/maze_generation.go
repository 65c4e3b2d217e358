// File: game/maze_generation.go
package game

import (
	"fmt"
	"math"

	"github.com/lguibr/tiltmaze/utils"
)

// carveEdge is one frontier entry of the generator: a passage candidate from
// a visited cell into a (possibly still unvisited) neighbor.
type carveEdge struct {
	fromRing, fromSegment int
	toRing, toSegment     int
}

// NewCircularMaze generates a circular maze with the given number of rings.
// Generation is fully deterministic in the seed. The carved passages form a
// spanning tree over all cells, so every cell can reach the goal disc once
// the final inner opening is cut.
func NewCircularMaze(rings int, seed int64, cfg utils.Config) *CircularMaze {
	if rings < 1 {
		panic(fmt.Sprintf("maze: rings must be >= 1, got %d", rings))
	}
	if cfg.CenterRadius <= 0 || cfg.RingWidth <= 0 || cfg.MinArcLength <= 0 {
		panic("maze: geometry constants must be positive")
	}

	maze := &CircularMaze{
		Rings:           rings,
		SegmentsPerRing: make([]int, rings),
		Cells:           make([][]Cell, rings),
		CenterRadius:    cfg.CenterRadius,
		RingWidth:       cfg.RingWidth,
		TotalRadius:     cfg.CenterRadius + float64(rings)*cfg.RingWidth,
		Seed:            seed,
	}

	for r := 0; r < rings; r++ {
		n := segmentsForRing(r, cfg)
		maze.SegmentsPerRing[r] = n
		maze.Cells[r] = make([]Cell, n)
		for s := 0; s < n; s++ {
			// Every wall starts closed; carving opens them.
			maze.Cells[r][s] = Cell{
				Ring: r, Segment: s,
				InnerWall: true, OuterWall: true,
				CwWall: true, CcwWall: true,
			}
		}
	}

	rng := utils.NewPRNG(seed)
	maze.carve(rng)

	// Guarantee a path from ring 0 into the center disc: the disc itself is
	// not a graph node, so one inner wall is opened unconditionally.
	goal := rng.Intn(maze.SegmentsPerRing[0])
	maze.Cells[0][goal].InnerWall = false

	return maze
}

// segmentsForRing derives the segment count of a ring from its outer
// circumference and the minimum arc-length target, rounded down to an even
// number. Radius grows outward, so counts are non-decreasing by construction.
func segmentsForRing(ring int, cfg utils.Config) int {
	radius := cfg.CenterRadius + float64(ring+1)*cfg.RingWidth
	n := int(math.Floor(utils.TwoPi * radius / cfg.MinArcLength))
	n -= n % 2
	if n < cfg.MinSegments {
		n = cfg.MinSegments
	}
	return n
}

// carve runs the randomized-Prim variant: grow a spanning tree from a random
// outer-ring cell by repeatedly opening a uniformly random frontier edge
// into an unvisited cell. Frontier entries are not deduplicated; stale ones
// are discarded lazily at pop time.
func (m *CircularMaze) carve(rng *utils.PRNG) {
	visited := make([][]bool, m.Rings)
	for r := range visited {
		visited[r] = make([]bool, m.SegmentsPerRing[r])
	}

	startRing := m.Rings - 1
	startSegment := rng.Intn(m.SegmentsPerRing[startRing])
	visited[startRing][startSegment] = true

	frontier := m.neighborEdges(startRing, startSegment)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		edge := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if visited[edge.toRing][edge.toSegment] {
			continue
		}
		visited[edge.toRing][edge.toSegment] = true
		m.carveWalls(edge)
		frontier = append(frontier, m.neighborEdges(edge.toRing, edge.toSegment)...)
	}
}

// neighborEdges returns the frontier entries leading out of a cell: both
// angular neighbors, the single inward neighbor, and every outward neighbor
// in the fan-out range.
func (m *CircularMaze) neighborEdges(ring, segment int) []carveEdge {
	n := m.SegmentsPerRing[ring]
	edges := []carveEdge{
		{ring, segment, ring, (segment + 1) % n},
		{ring, segment, ring, (segment - 1 + n) % n},
	}
	if ring > 0 {
		edges = append(edges, carveEdge{ring, segment, ring - 1, m.InwardSegment(ring, segment)})
	}
	if ring < m.Rings-1 {
		start, end := m.OutwardSegmentRange(ring, segment)
		for t := start; t < end; t++ {
			edges = append(edges, carveEdge{ring, segment, ring + 1, t})
		}
	}
	return edges
}

// carveWalls opens the wall flags on both sides of a frontier edge.
//
// For ring crossings the outer cell's InnerWall is the authoritative passage
// flag and is always cleared; the inner cell's OuterWall spans several outer
// segments, so it is cleared only when the outer segment is the inner cell's
// reverse-mapped primary neighbor.
func (m *CircularMaze) carveWalls(edge carveEdge) {
	from := &m.Cells[edge.fromRing][edge.fromSegment]
	to := &m.Cells[edge.toRing][edge.toSegment]

	switch {
	case edge.toRing == edge.fromRing:
		n := m.SegmentsPerRing[edge.fromRing]
		if (edge.fromSegment+1)%n == edge.toSegment {
			from.CwWall = false
			to.CcwWall = false
		} else {
			from.CcwWall = false
			to.CwWall = false
		}
	case edge.toRing == edge.fromRing-1:
		// Inward carve: from is the outer cell.
		from.InnerWall = false
		if m.primaryOuterSegment(edge.toRing, edge.toSegment) == edge.fromSegment {
			to.OuterWall = false
		}
	default:
		// Outward carve: to is the outer cell.
		to.InnerWall = false
		if m.primaryOuterSegment(edge.fromRing, edge.fromSegment) == edge.toSegment {
			from.OuterWall = false
		}
	}
}

// primaryOuterSegment returns the first ring+1 segment of a cell's outward
// fan-out range, the one whose reverse mapping lands exactly on the cell.
func (m *CircularMaze) primaryOuterSegment(ring, segment int) int {
	start, _ := m.OutwardSegmentRange(ring, segment)
	return start
}
