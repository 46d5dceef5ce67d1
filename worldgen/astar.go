package worldgen

import (
	"math"

	"frontiersim/coords"
)

// pathNode is one open/closed-list entry in the A* search, ported from
// worldmap.AStar's node/GetPath (same g/h/f bookkeeping, parent chain for
// path reconstruction), generalized to take a floating cost function
// instead of a binary wall/floor map.
type pathNode struct {
	parent   *pathNode
	pos      coords.LogicalPosition
	g, f     float64
	h        float64
}

// costFunc returns the cost of entering (x, y); astarPath treats a
// returned cost of 0 or less as impassable.
type costFunc func(x, y int) float64

// astarPath finds a minimum-cost 4-directional path from start to goal
// over a w x h grid using the supplied cost function, ported from
// worldmap.AStar.GetPath. The heuristic is Euclidean distance, which
// never exceeds the true remaining cost since every step costs at least
// minStepCost — this is what keeps the search admissible (testable
// property: "A* admissibility").
func astarPath(w, h int, start, goal coords.LogicalPosition, minStepCost float64, cost costFunc) []coords.LogicalPosition {
	if minStepCost <= 0 {
		minStepCost = 1
	}

	open := []*pathNode{{pos: start}}
	closed := make(map[coords.LogicalPosition]bool)

	heuristic := func(p coords.LogicalPosition) float64 {
		dx := float64(p.X - goal.X)
		dy := float64(p.Y - goal.Y)
		return math.Sqrt(dx*dx+dy*dy) * minStepCost
	}
	open[0].h = heuristic(start)
	open[0].f = open[0].h

	dirs := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for len(open) > 0 {
		bestIdx := 0
		for i, n := range open {
			if n.f < open[bestIdx].f {
				bestIdx = i
			}
		}
		current := open[bestIdx]
		open = append(open[:bestIdx], open[bestIdx+1:]...)

		if current.pos == goal {
			var path []coords.LogicalPosition
			for n := current; n != nil; n = n.parent {
				path = append(path, n.pos)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		closed[current.pos] = true

		for _, d := range dirs {
			np := coords.LogicalPosition{X: current.pos.X + d[0], Y: current.pos.Y + d[1]}
			if np.X < 0 || np.X >= w || np.Y < 0 || np.Y >= h {
				continue
			}
			if closed[np] {
				continue
			}
			stepCost := cost(np.X, np.Y)
			if stepCost <= 0 {
				continue
			}

			g := current.g + stepCost
			var existing *pathNode
			for _, n := range open {
				if n.pos == np {
					existing = n
					break
				}
			}
			if existing != nil {
				if g >= existing.g {
					continue
				}
				existing.parent = current
				existing.g = g
				existing.f = g + existing.h
				continue
			}

			node := &pathNode{parent: current, pos: np, g: g}
			node.h = heuristic(np)
			node.f = node.g + node.h
			open = append(open, node)
		}
	}
	return nil
}
