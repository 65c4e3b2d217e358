// File: game/maze_solver.go
package game

// cellIndex identifies a cell during graph traversal.
type cellIndex struct {
	Ring, Segment int
}

// IsSolvable verifies by BFS that some outermost-ring cell reaches an
// innermost-ring cell with an open inner wall. Generation guarantees this by
// construction; the traversal is an independent oracle used by tests.
func (m *CircularMaze) IsSolvable() bool {
	visited := make([][]bool, m.Rings)
	for r := range visited {
		visited[r] = make([]bool, m.SegmentsPerRing[r])
	}

	queue := make([]cellIndex, 0, m.SegmentsPerRing[m.Rings-1])
	for s := 0; s < m.SegmentsPerRing[m.Rings-1]; s++ {
		visited[m.Rings-1][s] = true
		queue = append(queue, cellIndex{m.Rings - 1, s})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.Ring == 0 && !m.Cells[0][cur.Segment].InnerWall {
			return true
		}
		for _, next := range m.openNeighbors(cur) {
			if !visited[next.Ring][next.Segment] {
				visited[next.Ring][next.Segment] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// SolvePath returns a shortest cell path (BFS) from the given outer-ring
// segment to an innermost cell with an open inner wall, or nil when no path
// exists. Tests replay the returned route hop by hop to validate carving.
func (m *CircularMaze) SolvePath(startSegment int) []cellIndex {
	start := cellIndex{m.Rings - 1, startSegment}
	parents := map[cellIndex]cellIndex{start: start}
	queue := []cellIndex{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.Ring == 0 && !m.Cells[0][cur.Segment].InnerWall {
			path := []cellIndex{cur}
			for cur != start {
				cur = parents[cur]
				path = append([]cellIndex{cur}, path...)
			}
			return path
		}
		for _, next := range m.openNeighbors(cur) {
			if _, seen := parents[next]; !seen {
				parents[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// openNeighbors lists the cells reachable from cur through open passages.
// Ring crossings are keyed on the outer cell's InnerWall, the authoritative
// flag set by every carve.
func (m *CircularMaze) openNeighbors(cur cellIndex) []cellIndex {
	n := m.SegmentsPerRing[cur.Ring]
	cell := &m.Cells[cur.Ring][cur.Segment]

	var out []cellIndex
	if !cell.CwWall {
		out = append(out, cellIndex{cur.Ring, (cur.Segment + 1) % n})
	}
	if !cell.CcwWall {
		out = append(out, cellIndex{cur.Ring, (cur.Segment - 1 + n) % n})
	}
	if cur.Ring > 0 && !cell.InnerWall {
		out = append(out, cellIndex{cur.Ring - 1, m.InwardSegment(cur.Ring, cur.Segment)})
	}
	if cur.Ring < m.Rings-1 {
		start, end := m.OutwardSegmentRange(cur.Ring, cur.Segment)
		for t := start; t < end; t++ {
			if !m.Cells[cur.Ring+1][t].InnerWall {
				out = append(out, cellIndex{cur.Ring + 1, t})
			}
		}
	}
	return out
}
