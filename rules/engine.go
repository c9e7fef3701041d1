package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/hive/hive-core/model"
)

// Engine runs the drone pipeline. Rules are tried in priority order and the
// first behavior that handles the drone ends its turn.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles guard conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// NewPolicyEngine is NewEngine over CompilePolicy(cfg).
func NewPolicyEngine(cfg Config) (*Engine, error) {
	rules, err := CompilePolicy(cfg)
	if err != nil {
		return nil, err
	}
	return NewEngine(rules)
}

// Decide runs the pipeline for one drone and reports what it did.
func (e *Engine) Decide(d *Drone) model.Decision {
	env := d.Env()
	behavior := BehaviorIdle

	for _, r := range e.rules {
		if r.program != nil {
			result, err := vm.Run(r.program, env)
			if err != nil {
				slog.Warn("guard evaluation error", "rule", r.Name, "unit", d.Unit.UUID, "error", err)
				continue
			}
			if match, ok := result.(bool); !ok || !match {
				continue
			}
		}
		if r.Action(d) {
			behavior = r.Name
			break
		}
	}

	dec := model.Decision{
		Unit:     d.Unit.UUID,
		Behavior: behavior,
		Tier:     string(d.Tier),
		Distance: d.EnemyDistance,
	}
	if target, ok := d.Target(); ok {
		dec.Target = &target
	}
	slog.Debug("behavior fired", "unit", d.Unit.UUID, "behavior", behavior, "moved", dec.Moved(), "tier", d.Tier, "distance", d.EnemyDistance)
	d.Metrics.ObserveDecision(behavior, dec.Moved())
	return dec
}

// Rules returns the pipeline in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = *r
	}
	return out
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("rule %q has no action", r.Name)
		}
		r.program = nil
		if r.GuardSrc == "" {
			continue
		}
		prog, err := expr.Compile(r.GuardSrc, expr.Env(DroneEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile guard %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
