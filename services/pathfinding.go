package services

import (
	"container/heap"

	"mouse-backend/algorithms"
	"mouse-backend/models"
)

// WallQuerier - anything that can answer wall lookups (ground truth or
// discovered walls)
type WallQuerier interface {
	HasWall(h models.Heading, c models.Cell) bool
}

// Route - cheapest path between a cell and a goal set
type Route struct {
	Cost  int           `json:"cost"`
	Cells []models.Cell `json:"cells"`
}

// node - a (cell, heading) search state
type node struct {
	cell    models.Cell
	heading models.Heading
	cost    int
	parent  *node
	index   int // for heap
}

// PriorityQueue - min-heap of search states by cost
type PriorityQueue []*node

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].cost < pq[j].cost
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	nd := x.(*node)
	nd.index = n
	*pq = append(*pq, nd)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	nd.index = -1
	*pq = old[0 : n-1]
	return nd
}

// PlanRoute - turn-aware Dijkstra from start to the nearest goal.
//
// Costs match the flood fill: 10 per cell, 5 more whenever the heading
// changes, and the first move is free to go any way. Unlike the flood fill
// every state is relaxed, so the result is the true minimum. ok is false
// when no goal is reachable.
func PlanRoute(walls WallQuerier, start models.Cell, goals []models.Cell) (Route, bool) {
	if !start.InBounds() {
		return Route{}, false
	}
	isGoal := make(map[models.Cell]bool, len(goals))
	for _, g := range goals {
		isGoal[g] = true
	}
	if isGoal[start] {
		return Route{Cost: 0, Cells: []models.Cell{start}}, true
	}

	type state struct {
		cell    models.Cell
		heading models.Heading
	}
	best := make(map[state]int)

	openSet := make(PriorityQueue, 0)
	heap.Init(&openSet)
	for _, h := range models.ScanOrder {
		s := state{start, h}
		best[s] = 0
		heap.Push(&openSet, &node{cell: start, heading: h})
	}

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*node)
		if current.cost > best[state{current.cell, current.heading}] {
			continue
		}
		if isGoal[current.cell] {
			return Route{Cost: current.cost, Cells: reconstructPath(current)}, true
		}

		for _, d := range models.ScanOrder {
			if walls.HasWall(d, current.cell) {
				continue
			}
			cost := current.cost + algorithms.TileCost
			if current.parent != nil && d != current.heading {
				cost += algorithms.TurnCost
			}

			next := state{current.cell.Step(d, 1), d}
			if old, seen := best[next]; seen && old <= cost {
				continue
			}
			best[next] = cost
			heap.Push(&openSet, &node{cell: next.cell, heading: d, cost: cost, parent: current})
		}
	}

	return Route{}, false
}

// OptimalCost - cost of PlanRoute, algorithms.Unreached if none
func OptimalCost(walls WallQuerier, start models.Cell, goals []models.Cell) int {
	route, ok := PlanRoute(walls, start, goals)
	if !ok {
		return algorithms.Unreached
	}
	return route.Cost
}

// reconstructPath - cells from the start to n
func reconstructPath(n *node) []models.Cell {
	var path []models.Cell
	for current := n; current != nil; current = current.parent {
		path = append(path, current.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
