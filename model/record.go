package model

import "github.com/google/uuid"

// Decision is what one drone did on one tick.
type Decision struct {
	Unit     uuid.UUID `json:"unit"`
	Behavior string    `json:"behavior"`
	Target   *Position `json:"target,omitempty"` // nil when no move was issued
	Tier     string    `json:"tier"`
	Distance int       `json:"distance"`
}

// Moved reports whether the drone issued a move command.
func (d Decision) Moved() bool { return d.Target != nil }

// Eviction reasons.
const (
	EvictNotNeutral  = "not_neutral"
	EvictConflict    = "conflict"
	EvictNoBuilder   = "no_builder"
	EvictUnreachable = "unreachable"
)

// Eviction records a pending nest site dropped during reconciliation.
type Eviction struct {
	Site   Position `json:"site"`
	Reason string   `json:"reason"`
}

// TickEventKind names a notable change between consecutive ticks.
type TickEventKind string

const (
	EventNestBuilt      TickEventKind = "nest_built"
	EventNestLost       TickEventKind = "nest_lost"
	EventFirstContact   TickEventKind = "first_contact"
	EventArmyDevastated TickEventKind = "army_devastated"
)

type TickEvent struct {
	Kind   TickEventKind `json:"kind"`
	Detail string        `json:"detail"`
}

// TickRecord is the full outcome of one decision pass, handed to sinks.
type TickRecord struct {
	Tick      int         `json:"tick"`
	Friendly  int         `json:"friendly"`
	Enemies   int         `json:"enemies"`
	Pending   []Position  `json:"pending"`
	Builders  int         `json:"builders"`
	Evictions []Eviction  `json:"evictions,omitempty"`
	Decisions []Decision  `json:"decisions"`
	Events    []TickEvent `json:"events,omitempty"`
}
