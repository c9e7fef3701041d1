package agent

import (
	"log/slog"
	"time"

	"github.com/nstehr/hive/hive-core/metrics"
	"github.com/nstehr/hive/hive-core/model"
	"github.com/nstehr/hive/hive-core/rules"
)

// Sink receives the record of every completed tick.
type Sink interface {
	RecordTick(rec model.TickRecord) error
}

// Agent owns the decision-making for one player across a game.
type Agent struct {
	Coordinator *Coordinator
	Engine      *rules.Engine
	Config      rules.Config
	Metrics     metrics.Recorder

	sinks []Sink
	tick  int
	prev  *tickSnapshot
}

func New(engine *rules.Engine, cfg rules.Config, rec metrics.Recorder, sinks ...Sink) *Agent {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Agent{
		Coordinator: NewCoordinator(),
		Engine:      engine,
		Config:      cfg,
		Metrics:     rec,
		sinks:       sinks,
	}
}

// DoMove runs one full decision pass: reconcile the nest plan, assign
// builders, then let every friendly drone act in the order given. The order
// matters; drones later in the slice see nest sites proposed by earlier ones.
func (a *Agent) DoMove(w model.World, friendly, enemies []model.Unit) model.TickRecord {
	start := time.Now()
	a.tick++

	evictions := a.Coordinator.Reconcile(w)
	for _, e := range evictions {
		a.Metrics.ObserveEviction(e.Reason)
	}
	a.Coordinator.AssignBuilders(w)

	situation := &rules.Situation{
		Tick:     a.tick,
		World:    w,
		Friendly: friendly,
		Enemies:  enemies,
		Board:    a.Coordinator,
		Proposer: a.Coordinator,
		Config:   a.Config,
		Metrics:  a.Metrics,
	}
	decisions := make([]model.Decision, 0, len(friendly))
	for _, u := range friendly {
		d := rules.NewDrone(situation, u)
		decisions = append(decisions, a.Engine.Decide(d))
	}

	snap := takeSnapshot(w.FriendlyNestPositions(), friendly, enemies)
	events := detectEvents(a.prev, snap)
	a.prev = &snap
	if len(events) > 0 {
		slog.Info("tick events", "tick", a.tick, "events", formatEvents(events))
	}

	rec := model.TickRecord{
		Tick:      a.tick,
		Friendly:  len(friendly),
		Enemies:   len(enemies),
		Pending:   a.Coordinator.Pending(),
		Builders:  len(a.Coordinator.builders),
		Evictions: evictions,
		Decisions: decisions,
		Events:    events,
	}

	a.Metrics.ObserveTick(time.Since(start), len(rec.Pending))
	for _, s := range a.sinks {
		if err := s.RecordTick(rec); err != nil {
			slog.Warn("tick sink failed", "tick", a.tick, "error", err)
		}
	}

	slog.Debug("tick complete",
		"tick", a.tick,
		"drones", len(friendly),
		"enemies", len(enemies),
		"pending", len(rec.Pending),
		"builders", rec.Builders,
		"evicted", len(evictions),
		"elapsed", time.Since(start),
	)
	return rec
}

// Tick returns the number of completed decision passes.
func (a *Agent) Tick() int { return a.tick }
