package rules

import (
	"log/slog"

	"github.com/nstehr/hive/hive-core/model"
)

// ActionFight attacks an adjacent enemy by moving onto it.
func ActionFight(d *Drone) bool {
	if !d.HasEnemy || d.Tier == TierUnreachable || d.EnemyDistance != 1 {
		return false
	}
	d.move(d.ClosestEnemy.Position)
	return true
}

// ActionDefend races the closest enemy to the nest it threatens. The goal is
// the nest tile, or its neighbour nearest the enemy.
func ActionDefend(d *Drone) bool {
	if !d.HasEnemy {
		return false
	}
	enemy := d.ClosestEnemy.Position
	nest, ok := d.World.ClosestFriendlyNestFrom(enemy, nil)
	if !ok {
		return false
	}
	shortest := d.World.TaxicabDistance(enemy, nest)
	if shortest >= d.Config.PersonalSpace {
		return false
	}

	point := nest
	for _, t := range d.World.TilesAround(nest) {
		if dist := d.World.TaxicabDistance(enemy, t.Position); dist < shortest {
			point = t.Position
			shortest = dist
		}
	}

	enemyDist, ok := d.World.ShortestPathDistance(enemy, point)
	if !ok {
		return false
	}
	selfDist, ok := d.World.ShortestPathDistance(d.Unit.Position, point)
	if !ok {
		return false
	}
	if selfDist < enemyDist && enemyDist < d.Config.PersonalSpace {
		slog.Debug("defending nest", "unit", d.Unit.UUID, "nest", nest, "point", point, "self", selfDist, "enemy", enemyDist)
		d.move(point)
		return true
	}
	return false
}

// ActionChase presses a weaker enemy inside PersonalSpace.
func ActionChase(d *Drone) bool {
	if d.inRange() && d.Unit.Health > d.ClosestEnemy.Health {
		d.move(d.ClosestEnemy.Position)
		return true
	}
	return false
}

// ActionStrengthen holds position when a stronger enemy is near and this
// drone is the friendly closest to it. Standing still regenerates health and
// keeps the drone as the frontline blocker.
func ActionStrengthen(d *Drone) bool {
	if !d.inRange() || d.ClosestEnemy.Health <= d.Unit.Health {
		return false
	}
	front, ok := d.World.ClosestFriendlyFrom(d.ClosestEnemy.Position, nil)
	return ok && front.UUID == d.Unit.UUID
}

// ActionReinforce merges into the friendly closest to a stronger enemy.
func ActionReinforce(d *Drone) bool {
	if !d.inRange() || d.ClosestEnemy.Health <= d.Unit.Health {
		return false
	}
	front, ok := d.World.ClosestFriendlyFrom(d.ClosestEnemy.Position, nil)
	if !ok {
		return false
	}
	d.move(front.Position)
	return true
}

// ActionBuildNest walks a pledged builder toward its assigned tile.
func ActionBuildNest(d *Drone) bool {
	target, ok := d.Board.BuilderTarget(d.Unit.UUID)
	if !ok {
		return false
	}
	path := d.shortestPath(d.Unit.Position, target, d.Board.PendingNests(), "build_nest")
	if len(path) == 0 {
		return false
	}
	d.move(path[0])
	return true
}

// ActionStartNest looks for a neutral, unclaimed neighbour tile and proposes it
// as a nest site. It never moves and never stops the pipeline.
func ActionStartNest(d *Drone) bool {
	cfg := d.Config
	if cfg.NestQuietRadius > 0 && d.EnemyDistance < cfg.radius(cfg.NestQuietRadius) {
		return false
	}

	var first, best model.Position
	found := false
	bestScore := -1
	for _, t := range d.World.TilesAround(d.Unit.Position) {
		if !t.IsNeutral() || d.Board.IsPending(t.Position) || d.Board.IsOccupied(t.Position) {
			continue
		}
		if !found {
			first = t.Position
			found = true
		}
		if score := d.defensibility(t.Position); score > bestScore {
			bestScore = score
			best = t.Position
		}
	}
	if !found {
		return false
	}

	site := first
	if d.EnemyDistance >= cfg.radius(cfg.NestSafeRadius) {
		site = best
	}
	slog.Debug("proposing nest site", "unit", d.Unit.UUID, "site", site, "score", bestScore)
	d.Proposer.ProposeNestSite(site)
	return false
}

// defensibility counts the friendly or wall tiles around p.
func (d *Drone) defensibility(p model.Position) int {
	n := 0
	for _, adj := range d.World.TilesAround(p) {
		if d.World.IsWall(adj.Position) || adj.IsFriendly() {
			n++
		}
	}
	return n
}

// ActionInvade pushes toward the closest enemy nest once the drone is strong
// enough, or sooner when that nest is only a short walk away.
func ActionInvade(d *Drone) bool {
	cfg := d.Config
	if d.Unit.Health <= cfg.Juggernaut/2 {
		return false
	}
	nest, ok := d.World.ClosestEnemyNestFrom(d.Unit.Position, nil)
	if !ok {
		return false
	}
	path := d.shortestPath(d.Unit.Position, nest, d.Board.CurrentNests(), "invade")
	if len(path) == 0 {
		return false
	}
	if d.Unit.Health >= cfg.Juggernaut || len(path) < cfg.radius(cfg.InvadeRadius) {
		d.move(path[0])
		return true
	}
	return false
}

// ActionExpand is the catch-all: head for the closest capturable tile. Far
// from enemies the host's cached step is good enough; closer in, exact paths
// are used and unreachable targets are discarded one at a time.
func ActionExpand(d *Drone) bool {
	cfg := d.Config
	pos := d.Unit.Position
	pending := d.Board.PendingNests()

	if d.EnemyDistance > cfg.radius(cfg.ExpandCachedRadius) {
		tile, ok := d.World.ClosestCapturableTileFrom(pos, pending)
		if !ok {
			return true
		}
		if step, ok := d.World.NextStep(pos, tile.Position); ok {
			d.move(step)
		}
		return true
	}

	unavailable := pending
	for range cfg.ExpandMaxRetries {
		tile, ok := d.World.ClosestCapturableTileFrom(pos, unavailable)
		if !ok {
			break
		}
		if path := d.shortestPath(pos, tile.Position, unavailable, "expand"); len(path) > 0 {
			d.move(path[0])
			return true
		}
		unavailable.Add(tile.Position)
	}
	slog.Debug("nothing reachable to expand into", "unit", d.Unit.UUID, "excluded", len(unavailable))
	return true
}
