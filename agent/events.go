package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/hive/hive-core/model"
)

// tickSnapshot captures the diffable parts of a tick. The agent keeps the
// previous one and compares it with the next to detect events.
type tickSnapshot struct {
	nests    model.PositionSet
	friendly int
	enemies  int
}

func takeSnapshot(nests []model.Position, friendly, enemies []model.Unit) tickSnapshot {
	return tickSnapshot{
		nests:    model.NewPositionSet(nests...),
		friendly: len(friendly),
		enemies:  len(enemies),
	}
}

// devastationFloor is the smallest army whose halving counts as devastation;
// below it ordinary skirmish losses would trigger the event constantly.
const devastationFloor = 4

// detectEvents diffs two consecutive ticks. The first tick has no baseline
// and produces nothing.
func detectEvents(prev *tickSnapshot, cur tickSnapshot) []model.TickEvent {
	if prev == nil {
		return nil
	}
	var events []model.TickEvent

	if built := cur.nests.Minus(prev.nests); len(built) > 0 {
		events = append(events, model.TickEvent{
			Kind:   model.EventNestBuilt,
			Detail: "nests " + formatPositions(built.Sorted()),
		})
	}
	if lost := prev.nests.Minus(cur.nests); len(lost) > 0 {
		events = append(events, model.TickEvent{
			Kind:   model.EventNestLost,
			Detail: "nests " + formatPositions(lost.Sorted()),
		})
	}
	if prev.enemies == 0 && cur.enemies > 0 {
		events = append(events, model.TickEvent{
			Kind:   model.EventFirstContact,
			Detail: fmt.Sprintf("%d enemies visible", cur.enemies),
		})
	}
	if prev.friendly >= devastationFloor && cur.friendly*2 <= prev.friendly {
		events = append(events, model.TickEvent{
			Kind:   model.EventArmyDevastated,
			Detail: fmt.Sprintf("drones %d -> %d", prev.friendly, cur.friendly),
		})
	}
	return events
}

func formatPositions(ps []model.Position) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func formatEvents(events []model.TickEvent) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return strings.Join(parts, "; ")
}
