package rules

import (
	"testing"

	"github.com/nstehr/hive/hive-core/model"
	"github.com/nstehr/hive/hive-core/worldtest"
)

func decide(t *testing.T, s *Situation, u model.Unit) model.Decision {
	t.Helper()
	return mustEngine(s.Config).Decide(NewDrone(s, u))
}

func assertDecision(t *testing.T, dec model.Decision, behavior string, target *model.Position) {
	t.Helper()
	if dec.Behavior != behavior {
		t.Fatalf("behavior = %s, want %s", dec.Behavior, behavior)
	}
	switch {
	case target == nil && dec.Target != nil:
		t.Errorf("target = %v, want no move", *dec.Target)
	case target != nil && dec.Target == nil:
		t.Errorf("no move issued, want %v", *target)
	case target != nil && *dec.Target != *target:
		t.Errorf("target = %v, want %v", *dec.Target, *target)
	}
}

func ptr(p model.Position) *model.Position { return &p }

func TestFightAdjacentEnemy(t *testing.T) {
	g := worldtest.New(10, 10)
	u := drone(5, 5, 1)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(6, 5, 20)})
	assertDecision(t, decide(t, s, u), BehaviorFight, ptr(pos(6, 5)))
}

func TestDefendNestNeighbour(t *testing.T) {
	g := worldtest.New(12, 12)
	g.FriendlyNests = []model.Position{pos(5, 5)}
	u := drone(6, 6, 5)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(5, 8, 20)})
	assertDecision(t, decide(t, s, u), BehaviorDefend, ptr(pos(5, 6)))
}

func TestDefendSkippedWhenEnemyFarFromNest(t *testing.T) {
	g := worldtest.New(16, 16)
	g.FriendlyNests = []model.Position{pos(1, 1)}
	u := drone(6, 6, 5)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(5, 8, 20)})
	if dec := decide(t, s, u); dec.Behavior == BehaviorDefend {
		t.Errorf("defended a nest the enemy is not threatening")
	}
}

func TestChaseWeakerEnemy(t *testing.T) {
	g := worldtest.New(10, 10)
	u := drone(5, 5, 10)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(5, 7, 4)})
	assertDecision(t, decide(t, s, u), BehaviorChase, ptr(pos(5, 7)))
}

func TestStrengthenHoldsFrontline(t *testing.T) {
	g := worldtest.New(10, 10)
	u := drone(5, 5, 10)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(7, 5, 15)})
	assertDecision(t, decide(t, s, u), BehaviorStrengthen, nil)
	if len(g.Moves) != 0 {
		t.Errorf("strengthen moved: %v", g.Moves)
	}
}

func TestReinforceMergesIntoFrontline(t *testing.T) {
	g := worldtest.New(12, 12)
	a := drone(5, 5, 10)
	front := drone(8, 6, 3)
	s := newSituation(g, newFakeBoard(), []model.Unit{a, front}, []model.Unit{enemy(7, 6, 15)})
	assertDecision(t, decide(t, s, a), BehaviorReinforce, ptr(front.Position))
}

func TestBuildNestWalksToPledgedTile(t *testing.T) {
	g := worldtest.New(12, 12)
	b := newFakeBoard()
	u := drone(5, 5, 5)
	b.builders[u.UUID] = pos(5, 8)
	s := newSituation(g, b, []model.Unit{u}, nil)
	assertDecision(t, decide(t, s, u), BehaviorBuildNest, ptr(pos(5, 6)))
}

func TestBuildNestBuilderAlreadyOnTarget(t *testing.T) {
	g := worldtest.New(12, 12)
	g.EmptySelfPath = true
	b := newFakeBoard()
	u := drone(5, 5, 5)
	b.builders[u.UUID] = u.Position
	s := newSituation(g, b, []model.Unit{u}, nil)

	dec := decide(t, s, u)
	if dec.Behavior == BehaviorBuildNest {
		t.Errorf("build_nest handled a builder with nowhere to step")
	}
	for _, m := range g.Moves {
		if m.Target == u.Position {
			t.Errorf("drone ordered onto its own tile")
		}
	}
}

func TestInvadeIgnoresEmptyPath(t *testing.T) {
	g := worldtest.New(12, 12)
	g.EmptySelfPath = true
	g.EnemyNests = []model.Position{pos(5, 5)}
	u := drone(5, 5, 20)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, nil)

	if dec := decide(t, s, u); dec.Behavior == BehaviorInvade {
		t.Errorf("invade handled an empty path")
	}
}

// startNestGrid puts a friendly drone at (5,5) with walls making the western
// neighbour the most defensible nest site.
func startNestGrid() (*worldtest.Grid, model.Unit) {
	g := worldtest.New(20, 20)
	g.SetOwner(model.Friendly, pos(5, 5))
	g.SetWall(pos(3, 5), pos(4, 4))
	return g, drone(5, 5, 5)
}

func TestStartNestProposesBestSiteWhenSafe(t *testing.T) {
	g, u := startNestGrid()
	b := newFakeBoard()
	s := newSituation(g, b, []model.Unit{u}, nil)

	// start_nest never ends the pipeline; the cached expand step follows.
	assertDecision(t, decide(t, s, u), BehaviorExpand, ptr(pos(5, 4)))
	if len(b.proposed) != 1 || b.proposed[0] != pos(4, 5) {
		t.Errorf("proposed = %v, want [(4,5)]", b.proposed)
	}
	if g.PathCalls != 0 {
		t.Errorf("cached expand issued %d path queries", g.PathCalls)
	}
}

func TestStartNestProposesFirstSiteUnderThreat(t *testing.T) {
	g, u := startNestGrid()
	b := newFakeBoard()
	s := newSituation(g, b, []model.Unit{u}, []model.Unit{enemy(5, 14, 1)})

	decide(t, s, u)
	if len(b.proposed) != 1 || b.proposed[0] != pos(5, 4) {
		t.Errorf("proposed = %v, want [(5,4)]", b.proposed)
	}
}

func TestStartNestSkipsOccupiedTiles(t *testing.T) {
	g, u := startNestGrid()
	b := newFakeBoard()
	b.occupied.Add(pos(4, 5))
	s := newSituation(g, b, []model.Unit{u}, nil)

	decide(t, s, u)
	if len(b.proposed) != 1 || b.proposed[0] != pos(5, 4) {
		t.Errorf("proposed = %v, want [(5,4)]", b.proposed)
	}
}

func TestStartNestQuietZone(t *testing.T) {
	g, u := startNestGrid()
	b := newFakeBoard()
	s := newSituation(g, b, []model.Unit{u}, []model.Unit{enemy(5, 14, 1)})
	s.Config.NestQuietRadius = 3

	decide(t, s, u)
	if len(b.proposed) != 0 {
		t.Errorf("proposed %v inside the quiet zone", b.proposed)
	}
}

func TestInvade(t *testing.T) {
	tests := []struct {
		name     string
		health   int
		nest     model.Position
		behavior string
	}{
		{"juggernaut", 20, pos(5, 7), BehaviorInvade},
		{"short walk", 10, pos(5, 7), BehaviorInvade},
		{"too weak", 9, pos(5, 7), BehaviorExpand},
		{"too far", 10, pos(5, 12), BehaviorExpand},
		{"juggernaut far", 18, pos(5, 12), BehaviorInvade},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := worldtest.New(16, 16)
			g.EnemyNests = []model.Position{tc.nest}
			u := drone(5, 5, tc.health)
			s := newSituation(g, newFakeBoard(), []model.Unit{u}, nil)

			dec := decide(t, s, u)
			if dec.Behavior != tc.behavior {
				t.Fatalf("behavior = %s, want %s", dec.Behavior, tc.behavior)
			}
			if tc.behavior == BehaviorInvade && (dec.Target == nil || *dec.Target != pos(5, 6)) {
				t.Errorf("target = %v, want first step (5,6)", dec.Target)
			}
		})
	}
}

// scriptedWorld hands out capturable tiles from a fixed list so the expand
// retry loop can be driven into unreachable targets.
type scriptedWorld struct {
	*worldtest.Grid
	capturable []model.Position
}

func (w *scriptedWorld) ClosestCapturableTileFrom(_ model.Position, avoid model.PositionSet) (model.Tile, bool) {
	for _, p := range w.capturable {
		if !avoid.Has(p) {
			t, _ := w.TileAt(p)
			return t, true
		}
	}
	return model.Tile{}, false
}

func expandNearEnemy(capturable ...model.Position) (*worldtest.Grid, *Situation, model.Unit) {
	g := worldtest.New(12, 12)
	g.SetWall(pos(9, 8), pos(10, 9), pos(9, 10), pos(8, 9))
	u := drone(5, 5, 5)
	s := newSituation(g, newFakeBoard(), []model.Unit{u}, []model.Unit{enemy(5, 8, 5)})
	s.World = &scriptedWorld{Grid: g, capturable: capturable}
	return g, s, u
}

func TestExpandSkipsUnreachableTiles(t *testing.T) {
	g, s, u := expandNearEnemy(pos(9, 9), pos(5, 6))
	assertDecision(t, decide(t, s, u), BehaviorExpand, ptr(pos(5, 6)))
	// One tiering query plus one per expand attempt.
	if g.PathCalls != 3 {
		t.Errorf("path queries = %d, want 3", g.PathCalls)
	}
}

func TestExpandWithNothingReachableStillHandles(t *testing.T) {
	_, s, u := expandNearEnemy(pos(9, 9))
	assertDecision(t, decide(t, s, u), BehaviorExpand, nil)
}
