package rules

import (
	"github.com/google/uuid"

	"github.com/nstehr/hive/hive-core/model"
	"github.com/nstehr/hive/hive-core/worldtest"
)

// fakeBoard is a minimal blackboard recording nest proposals.
type fakeBoard struct {
	pending  model.PositionSet
	occupied model.PositionSet
	current  model.PositionSet
	builders map[uuid.UUID]model.Position
	proposed []model.Position
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		pending:  make(model.PositionSet),
		occupied: make(model.PositionSet),
		current:  make(model.PositionSet),
		builders: make(map[uuid.UUID]model.Position),
	}
}

func (b *fakeBoard) IsPending(p model.Position) bool  { return b.pending.Has(p) }
func (b *fakeBoard) IsOccupied(p model.Position) bool { return b.occupied.Has(p) }
func (b *fakeBoard) PendingNests() model.PositionSet  { return b.pending.Clone() }
func (b *fakeBoard) CurrentNests() model.PositionSet  { return b.current.Clone() }

func (b *fakeBoard) BuilderTarget(id uuid.UUID) (model.Position, bool) {
	p, ok := b.builders[id]
	return p, ok
}

func (b *fakeBoard) ProposeNestSite(p model.Position) {
	b.proposed = append(b.proposed, p)
	b.pending.Add(p)
	b.occupied.Add(p)
}

func pos(x, y int) model.Position { return model.Position{X: x, Y: y} }

func drone(x, y, health int) model.Unit {
	return model.Unit{UUID: uuid.New(), Position: pos(x, y), Health: health, Side: model.SideFriendly}
}

func enemy(x, y, health int) model.Unit {
	return model.Unit{UUID: uuid.New(), Position: pos(x, y), Health: health, Side: model.SideEnemy}
}

// newSituation registers friendly units with the grid so nearest-friendly
// queries see them.
func newSituation(g *worldtest.Grid, b *fakeBoard, friendly, enemies []model.Unit) *Situation {
	g.AddFriendly(friendly...)
	return &Situation{
		Tick:     1,
		World:    g,
		Friendly: friendly,
		Enemies:  enemies,
		Board:    b,
		Proposer: b,
		Config:   DefaultConfig(),
	}
}

func mustEngine(cfg Config) *Engine {
	e, err := NewPolicyEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}
