// Package worldtest provides an in-memory grid that satisfies model.World for
// tests. Paths are plain breadth-first searches over non-wall tiles.
package worldtest

import (
	"github.com/google/uuid"

	"github.com/nstehr/hive/hive-core/model"
)

// Move is a captured move command.
type Move struct {
	Unit   uuid.UUID
	Target model.Position
}

// Grid is a Width x Height board. Tiles default to neutral.
type Grid struct {
	Width, Height int

	tiles         map[model.Position]model.Tile
	Friendly      []model.Unit
	FriendlyNests []model.Position
	EnemyNests    []model.Position

	Moves     []Move
	PathCalls int

	// EmptySelfPath makes ShortestPath answer a query from a tile to itself
	// with an empty, non-nil path instead of nil.
	EmptySelfPath bool
}

// New returns an all-neutral grid.
func New(w, h int) *Grid {
	return &Grid{Width: w, Height: h, tiles: make(map[model.Position]model.Tile)}
}

// SetOwner sets the ownership of every given tile.
func (g *Grid) SetOwner(o model.Ownership, ps ...model.Position) {
	for _, p := range ps {
		t, _ := g.TileAt(p)
		t.Owner = o
		g.tiles[p] = t
	}
}

// SetWall turns every given tile into a wall.
func (g *Grid) SetWall(ps ...model.Position) {
	for _, p := range ps {
		t, _ := g.TileAt(p)
		t.Wall = true
		g.tiles[p] = t
	}
}

// AddFriendly registers a friendly unit so ClosestFriendlyFrom can find it.
func (g *Grid) AddFriendly(units ...model.Unit) {
	g.Friendly = append(g.Friendly, units...)
}

// MovesFor returns the move targets issued for unit id.
func (g *Grid) MovesFor(id uuid.UUID) []model.Position {
	var out []model.Position
	for _, m := range g.Moves {
		if m.Unit == id {
			out = append(out, m.Target)
		}
	}
	return out
}

func (g *Grid) inBounds(p model.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

func (g *Grid) TileAt(p model.Position) (model.Tile, bool) {
	if !g.inBounds(p) {
		return model.Tile{}, false
	}
	if t, ok := g.tiles[p]; ok {
		return t, true
	}
	return model.Tile{Position: p, Owner: model.Neutral}, true
}

func (g *Grid) TilesAround(p model.Position) []model.Tile {
	var out []model.Tile
	for _, d := range model.Directions {
		if t, ok := g.TileAt(p.Step(d)); ok {
			out = append(out, t)
		}
	}
	return out
}

func (g *Grid) IsWall(p model.Position) bool {
	t, ok := g.TileAt(p)
	return ok && t.Wall
}

func (g *Grid) TaxicabDistance(a, b model.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func (g *Grid) ShortestPath(from, to model.Position, avoid model.PositionSet) []model.Position {
	g.PathCalls++
	if g.EmptySelfPath && from == to {
		return []model.Position{}
	}
	return g.path(from, to, avoid)
}

func (g *Grid) ShortestPathDistance(from, to model.Position) (int, bool) {
	if from == to {
		return 0, true
	}
	p := g.path(from, to, nil)
	if p == nil {
		return 0, false
	}
	return len(p), true
}

func (g *Grid) NextStep(from, to model.Position) (model.Position, bool) {
	p := g.path(from, to, nil)
	if p == nil {
		return model.Position{}, false
	}
	return p[0], true
}

func (g *Grid) ClosestFriendlyFrom(p model.Position, excluded model.PositionSet) (model.Unit, bool) {
	dist := g.distances(p, nil)
	best, bestDist := model.Unit{}, -1
	for _, u := range g.Friendly {
		if excluded.Has(u.Position) {
			continue
		}
		d, ok := dist[u.Position]
		if !ok {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = u, d
		}
	}
	return best, bestDist >= 0
}

func (g *Grid) ClosestFriendlyNestFrom(p model.Position, excluded model.PositionSet) (model.Position, bool) {
	return g.closestOf(p, g.FriendlyNests, excluded)
}

func (g *Grid) ClosestEnemyNestFrom(p model.Position, excluded model.PositionSet) (model.Position, bool) {
	return g.closestOf(p, g.EnemyNests, excluded)
}

func (g *Grid) ClosestCapturableTileFrom(p model.Position, avoid model.PositionSet) (model.Tile, bool) {
	var found model.Tile
	ok := false
	g.search(p, avoid, func(q model.Position) bool {
		if q == p {
			return false
		}
		t, _ := g.TileAt(q)
		if !t.Wall && !t.IsFriendly() {
			found, ok = t, true
			return true
		}
		return false
	})
	return found, ok
}

func (g *Grid) FriendlyNestPositions() []model.Position {
	return append([]model.Position(nil), g.FriendlyNests...)
}

func (g *Grid) Move(u model.Unit, target model.Position) {
	g.Moves = append(g.Moves, Move{Unit: u.UUID, Target: target})
}

func (g *Grid) closestOf(p model.Position, candidates []model.Position, excluded model.PositionSet) (model.Position, bool) {
	dist := g.distances(p, nil)
	best, bestDist := model.Position{}, -1
	for _, c := range candidates {
		if excluded.Has(c) {
			continue
		}
		d, ok := dist[c]
		if !ok {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

func (g *Grid) passable(p model.Position) bool {
	t, ok := g.TileAt(p)
	return ok && !t.Wall
}

// search walks breadth-first from start, skipping avoided tiles, until visit
// returns true. It returns the parent links of everything reached.
func (g *Grid) search(start model.Position, avoid model.PositionSet, visit func(model.Position) bool) map[model.Position]model.Position {
	parent := map[model.Position]model.Position{start: start}
	queue := []model.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visit(cur) {
			return parent
		}
		for _, d := range model.Directions {
			next := cur.Step(d)
			if _, seen := parent[next]; seen || !g.passable(next) || avoid.Has(next) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return parent
}

// path allows the destination even when it is in avoid.
func (g *Grid) path(from, to model.Position, avoid model.PositionSet) []model.Position {
	if from == to || !g.passable(to) {
		return nil
	}
	if avoid.Has(to) {
		avoid = avoid.Clone()
		avoid.Remove(to)
	}
	parent := g.search(from, avoid, func(q model.Position) bool { return q == to })
	if _, ok := parent[to]; !ok {
		return nil
	}
	var rev []model.Position
	for cur := to; cur != from; cur = parent[cur] {
		rev = append(rev, cur)
	}
	out := make([]model.Position, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

func (g *Grid) distances(from model.Position, avoid model.PositionSet) map[model.Position]int {
	dist := map[model.Position]int{}
	parent := g.search(from, avoid, func(model.Position) bool { return false })
	var depth func(p model.Position) int
	depth = func(p model.Position) int {
		if d, ok := dist[p]; ok {
			return d
		}
		if p == from {
			dist[p] = 0
			return 0
		}
		d := depth(parent[p]) + 1
		dist[p] = d
		return d
	}
	for p := range parent {
		depth(p)
	}
	return dist
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
