package rules

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/hive/hive-core/metrics"
	"github.com/nstehr/hive/hive-core/model"
)

// Blackboard is the drone's read-only view of the coordinator's plan.
// Returned sets are copies; mutating them has no effect on the plan.
type Blackboard interface {
	IsPending(p model.Position) bool
	IsOccupied(p model.Position) bool
	PendingNests() model.PositionSet
	CurrentNests() model.PositionSet
	BuilderTarget(id uuid.UUID) (model.Position, bool)
}

// NestProposer is the drone's only write channel back to the coordinator.
type NestProposer interface {
	ProposeNestSite(p model.Position)
}

// Situation is everything shared by every drone on one tick.
type Situation struct {
	Tick     int
	World    model.World
	Friendly []model.Unit
	Enemies  []model.Unit
	Board    Blackboard
	Proposer NestProposer
	Config   Config
	Metrics  metrics.Recorder
}

// DistanceTier says how the working enemy distance was obtained. Behaviors
// branch on it, not only on the number.
type DistanceTier string

const (
	TierTaxicab     DistanceTier = "taxicab"
	TierPath        DistanceTier = "path"
	TierUnreachable DistanceTier = "unreachable"
	TierNoEnemy     DistanceTier = "no_enemy"
)

// Drone is the per-tick decision state of one friendly unit.
type Drone struct {
	*Situation
	Unit model.Unit

	ClosestEnemy  model.Unit
	HasEnemy      bool
	EnemyDistance int
	Tier          DistanceTier

	issued bool
	target *model.Position
}

// NewDrone measures the distance to the closest enemy once; every behavior
// reuses it.
func NewDrone(s *Situation, u model.Unit) *Drone {
	if s.Metrics == nil {
		s.Metrics = metrics.Nop{}
	}
	d := &Drone{Situation: s, Unit: u}
	d.measureEnemy()
	return d
}

// measureEnemy picks the closest enemy by taxicab distance, then promotes the
// distance to an exact path length when the enemy is close enough to matter.
func (d *Drone) measureEnemy() {
	defer func() { d.Metrics.ObserveDistanceTier(string(d.Tier)) }()

	if len(d.Enemies) == 0 {
		d.EnemyDistance = d.Config.Unreachable
		d.Tier = TierNoEnemy
		return
	}

	pos := d.Unit.Position
	closest := d.Enemies[0]
	shortest := d.World.TaxicabDistance(pos, closest.Position)
	for _, e := range d.Enemies[1:] {
		if dist := d.World.TaxicabDistance(pos, e.Position); dist < shortest {
			shortest = dist
			closest = e
		}
	}
	d.ClosestEnemy = closest
	d.HasEnemy = true
	d.EnemyDistance = shortest
	d.Tier = TierTaxicab

	if shortest < d.Config.radius(d.Config.ExactRadius) {
		path := d.shortestPath(pos, closest.Position, d.Board.PendingNests(), "tiering")
		if path == nil {
			d.EnemyDistance = d.Config.Unreachable
			d.Tier = TierUnreachable
			return
		}
		d.EnemyDistance = len(path)
		d.Tier = TierPath
	}
}

// inRange reports whether the closest enemy is inside PersonalSpace. An
// enemy with no path to it is never in range.
func (d *Drone) inRange() bool {
	return d.HasEnemy && d.Tier != TierUnreachable && d.EnemyDistance < d.Config.PersonalSpace
}

func (d *Drone) shortestPath(from, to model.Position, avoid model.PositionSet, purpose string) []model.Position {
	d.Metrics.ObservePathQuery(purpose)
	return d.World.ShortestPath(from, to, avoid)
}

// move issues at most one command per drone per tick. When the previous move
// bounced off a nest or the drone just spawned, the host's cached step is not
// trusted and the step is recomputed around pending and owned nests.
func (d *Drone) move(target model.Position) {
	if d.issued {
		return
	}
	step := target
	if d.Unit.NeedsExactPath() {
		blocked := d.Board.PendingNests().Union(d.Board.CurrentNests())
		path := d.shortestPath(d.Unit.Position, target, blocked, "move_retry")
		if len(path) == 0 {
			slog.Debug("no path around nests", "unit", d.Unit.UUID, "target", target, "lastMove", d.Unit.LastMove)
			return
		}
		step = path[0]
	}
	d.World.Move(d.Unit, step)
	d.issued = true
	d.target = &step
}

// Target returns the position the drone was ordered to, if any.
func (d *Drone) Target() (model.Position, bool) {
	if d.target == nil {
		return model.Position{}, false
	}
	return *d.target, true
}
