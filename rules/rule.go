package rules

import "github.com/expr-lang/expr/vm"

// BehaviorFunc runs one behavior for a drone. Returning true means the drone
// has been handled this tick and lower-priority behaviors are not consulted.
type BehaviorFunc func(d *Drone) bool

// Rule is one entry of the drone pipeline: an optional guard plus a behavior.
// The engine walks rules by priority and stops at the first behavior that
// reports the drone handled.
type Rule struct {
	Name     string      // behavior name, also the metrics label
	Priority int         // higher = evaluated first
	GuardSrc string      // optional expr source; empty means always eligible
	program  *vm.Program // compiled guard
	Action   BehaviorFunc
}
