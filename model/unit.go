package model

import "github.com/google/uuid"

// Side tells friendly units from enemy ones.
type Side byte

const (
	SideFriendly Side = iota
	SideEnemy
)

// MoveResult is the host's verdict on a unit's previous move command.
type MoveResult byte

const (
	MoveOK MoveResult = iota
	MoveBlockedByNest
	MoveNewlySpawned
	MoveOther
)

func (r MoveResult) String() string {
	switch r {
	case MoveOK:
		return "ok"
	case MoveBlockedByNest:
		return "blocked_by_nest"
	case MoveNewlySpawned:
		return "newly_spawned"
	default:
		return "other"
	}
}

// Unit is a snapshot of a drone as reported by the host this tick.
type Unit struct {
	UUID     uuid.UUID  `json:"uuid"`
	Position Position   `json:"position"`
	Health   int        `json:"health"`
	Side     Side       `json:"side"`
	LastMove MoveResult `json:"lastMove"`
}

// NeedsExactPath reports whether the cached step the host suggests cannot be
// trusted, because the last move ran into a nest or the unit just spawned.
func (u Unit) NeedsExactPath() bool {
	return u.LastMove == MoveBlockedByNest || u.LastMove == MoveNewlySpawned
}
