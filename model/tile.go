package model

import (
	"fmt"
	"sort"
)

// Position is a grid coordinate. It is comparable and used directly as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case North:
		return Position{p.X, p.Y - 1}
	case East:
		return Position{p.X + 1, p.Y}
	case South:
		return Position{p.X, p.Y + 1}
	case West:
		return Position{p.X - 1, p.Y}
	}
	return p
}

// Direction orders neighbour lookups. TilesAround answers in this order so
// "first candidate found" is stable from tick to tick.
type Direction byte

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every Direction in lookup order.
var Directions = [...]Direction{North, East, South, West}

// Ownership is who currently holds a tile.
type Ownership byte

const (
	Neutral  Ownership = 0
	Friendly Ownership = 1
	Enemy    Ownership = 2
)

func (o Ownership) String() string {
	switch o {
	case Neutral:
		return "neutral"
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Tile is read-only to the decision core; the World owns it.
type Tile struct {
	Position Position  `json:"position"`
	Owner    Ownership `json:"owner"`
	Wall     bool      `json:"wall"`
}

func (t Tile) IsNeutral() bool  { return !t.Wall && t.Owner == Neutral }
func (t Tile) IsFriendly() bool { return t.Owner == Friendly }
func (t Tile) IsEnemy() bool    { return t.Owner == Enemy }

// PositionSet is an unordered set of positions.
type PositionSet map[Position]struct{}

// NewPositionSet builds a set from the given positions.
func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func (s PositionSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

func (s PositionSet) Add(p Position) { s[p] = struct{}{} }

func (s PositionSet) Remove(p Position) { delete(s, p) }

func (s PositionSet) Clone() PositionSet {
	out := make(PositionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// Union returns a new set holding the members of s and o.
func (s PositionSet) Union(o PositionSet) PositionSet {
	out := s.Clone()
	for p := range o {
		out[p] = struct{}{}
	}
	return out
}

// Minus returns a new set holding the members of s not in o.
func (s PositionSet) Minus(o PositionSet) PositionSet {
	out := make(PositionSet, len(s))
	for p := range s {
		if !o.Has(p) {
			out[p] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members ordered by row then column, for logs and records.
func (s PositionSet) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
