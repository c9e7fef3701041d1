package agent

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/hive/hive-core/model"
)

// Pledge ties a builder drone to one tile around a pending nest site.
type Pledge struct {
	Unit     uuid.UUID
	From     model.Position // builder position when pledged
	Target   model.Position
	NestSite model.Position
}

// Coordinator owns the shared construction plan. It lives across ticks;
// drones read it through rules.Blackboard and write to it only through
// ProposeNestSite.
type Coordinator struct {
	pending    []model.Position // designated, not yet built, in proposal order
	pendingSet model.PositionSet
	occupied   model.PositionSet // never propose a nest here
	current    model.PositionSet // owned nests, refreshed each tick
	builders   map[uuid.UUID]model.Position
	committed  []Pledge
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		pendingSet: make(model.PositionSet),
		occupied:   make(model.PositionSet),
		current:    make(model.PositionSet),
		builders:   make(map[uuid.UUID]model.Position),
	}
}

// Reconcile revalidates every pending site against the world and collects
// builder pledges for the survivors. A site either gets a builder for every
// non-friendly tile around it or is evicted; pledges are committed per site,
// never partially. Evicted sites move to the occupied set.
func (c *Coordinator) Reconcile(w model.World) []model.Eviction {
	c.committed = c.committed[:0]
	pledged := make(model.PositionSet) // positions of units already pledged this pass
	var evictions []model.Eviction

	sites := append([]model.Position(nil), c.pending...)
	for _, site := range sites {
		if !c.pendingSet.Has(site) {
			continue
		}
		reason, candidates := c.validate(w, site, pledged)
		if reason != "" {
			c.evict(site)
			evictions = append(evictions, model.Eviction{Site: site, Reason: reason})
			slog.Info("nest site evicted", "site", site, "reason", reason)
			continue
		}
		for _, p := range candidates {
			pledged.Add(p.From)
		}
		c.committed = append(c.committed, candidates...)
	}

	return evictions
}

// validate returns an eviction reason, or the site's candidate pledges when
// the site is still buildable.
func (c *Coordinator) validate(w model.World, site model.Position, pledged model.PositionSet) (string, []Pledge) {
	tile, ok := w.TileAt(site)
	if !ok || !tile.IsNeutral() {
		return model.EvictNotNeutral, nil
	}

	var candidates []Pledge
	excluded := pledged.Clone()
	for _, t := range w.TilesAround(site) {
		if t.Wall || t.IsFriendly() {
			continue
		}
		if c.pendingSet.Has(t.Position) {
			return model.EvictConflict, nil
		}
		builder, ok := w.ClosestFriendlyFrom(t.Position, excluded)
		if !ok {
			return model.EvictNoBuilder, nil
		}
		if builder.Position != t.Position && w.ShortestPath(t.Position, builder.Position, c.pendingSet.Clone()) == nil {
			return model.EvictUnreachable, nil
		}
		excluded.Add(builder.Position)
		candidates = append(candidates, Pledge{
			Unit:     builder.UUID,
			From:     builder.Position,
			Target:   t.Position,
			NestSite: site,
		})
	}
	return "", candidates
}

func (c *Coordinator) evict(site model.Position) {
	c.pendingSet.Remove(site)
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p != site {
			kept = append(kept, p)
		}
	}
	c.pending = kept
	c.occupied.Add(site)
}

// AssignBuilders rebuilds the builder map from the pledges committed by the
// last Reconcile and refreshes the owned-nest snapshot.
func (c *Coordinator) AssignBuilders(w model.World) {
	c.builders = make(map[uuid.UUID]model.Position, len(c.committed))
	for _, p := range c.committed {
		c.builders[p.Unit] = p.Target
		c.occupied.Add(p.Target)
	}
	c.current = model.NewPositionSet(w.FriendlyNestPositions()...)
}

// ProposeNestSite queues p as a future nest. It is not validated until the
// next Reconcile, but later drones on this tick already see it as taken.
func (c *Coordinator) ProposeNestSite(p model.Position) {
	if c.pendingSet.Has(p) {
		return
	}
	c.pending = append(c.pending, p)
	c.pendingSet.Add(p)
	c.occupied.Add(p)
}

func (c *Coordinator) IsPending(p model.Position) bool  { return c.pendingSet.Has(p) }
func (c *Coordinator) IsOccupied(p model.Position) bool { return c.occupied.Has(p) }

func (c *Coordinator) PendingNests() model.PositionSet { return c.pendingSet.Clone() }
func (c *Coordinator) CurrentNests() model.PositionSet { return c.current.Clone() }

func (c *Coordinator) BuilderTarget(id uuid.UUID) (model.Position, bool) {
	p, ok := c.builders[id]
	return p, ok
}

// Pending returns the pending sites in proposal order.
func (c *Coordinator) Pending() []model.Position {
	return append([]model.Position(nil), c.pending...)
}

// Pledges returns the pledges committed by the last Reconcile.
func (c *Coordinator) Pledges() []Pledge {
	return append([]Pledge(nil), c.committed...)
}

// Builders returns a copy of the builder map.
func (c *Coordinator) Builders() map[uuid.UUID]model.Position {
	out := make(map[uuid.UUID]model.Position, len(c.builders))
	for k, v := range c.builders {
		out[k] = v
	}
	return out
}
