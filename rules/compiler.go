package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Behavior names, also used as guard keys and metrics labels.
const (
	BehaviorFight      = "fight"
	BehaviorDefend     = "defend"
	BehaviorChase      = "chase"
	BehaviorStrengthen = "strengthen"
	BehaviorReinforce  = "reinforce"
	BehaviorBuildNest  = "build_nest"
	BehaviorStartNest  = "start_nest"
	BehaviorInvade     = "invade"
	BehaviorExpand     = "expand"
	// BehaviorIdle marks a drone no behavior handled, which only happens
	// when guards exclude expand.
	BehaviorIdle = "idle"
)

// CompilePolicy builds the fixed drone pipeline. The order is part of the
// policy: later behaviors assume the earlier ones did not fire. Guards from
// the config are attached by name; an unknown name is an error.
func CompilePolicy(cfg Config) ([]*Rule, error) {
	rules := []*Rule{
		{Name: BehaviorFight, Priority: 900, Action: ActionFight},
		{Name: BehaviorDefend, Priority: 800, Action: ActionDefend},
		{Name: BehaviorChase, Priority: 700, Action: ActionChase},
		{Name: BehaviorStrengthen, Priority: 600, Action: ActionStrengthen},
		{Name: BehaviorReinforce, Priority: 500, Action: ActionReinforce},
		{Name: BehaviorBuildNest, Priority: 400, Action: ActionBuildNest},
		{Name: BehaviorStartNest, Priority: 300, Action: ActionStartNest},
		{Name: BehaviorInvade, Priority: 200, Action: ActionInvade},
		{Name: BehaviorExpand, Priority: 100, Action: ActionExpand},
	}

	known := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		known[r.Name] = r
	}
	var unknown []string
	for name, src := range cfg.Guards {
		r, ok := known[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		r.GuardSrc = strings.TrimSpace(src)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("guards for unknown behaviors: %s", strings.Join(unknown, ", "))
	}
	return rules, nil
}
