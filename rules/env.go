package rules

// DroneEnv is the read-only snapshot guard expressions are evaluated against.
type DroneEnv struct {
	Tick          int
	Health        int
	HasEnemy      bool
	EnemyHealth   int
	EnemyDistance int
	Tier          string
	Builder       bool
	PersonalSpace int
	Juggernaut    int
	PendingNests  int
	OwnedNests    int
	Friendly      int
	Enemies       int
}

// Env builds the guard environment for this drone.
func (d *Drone) Env() DroneEnv {
	_, builder := d.Board.BuilderTarget(d.Unit.UUID)
	env := DroneEnv{
		Tick:          d.Tick,
		Health:        d.Unit.Health,
		HasEnemy:      d.HasEnemy,
		EnemyDistance: d.EnemyDistance,
		Tier:          string(d.Tier),
		Builder:       builder,
		PersonalSpace: d.Config.PersonalSpace,
		Juggernaut:    d.Config.Juggernaut,
		PendingNests:  len(d.Board.PendingNests()),
		OwnedNests:    len(d.Board.CurrentNests()),
		Friendly:      len(d.Friendly),
		Enemies:       len(d.Enemies),
	}
	if d.HasEnemy {
		env.EnemyHealth = d.ClosestEnemy.Health
	}
	return env
}

// Within reports whether the enemy is closer than multiple × PersonalSpace.
func (e DroneEnv) Within(multiple int) bool {
	return e.HasEnemy && e.EnemyDistance < multiple*e.PersonalSpace
}

// Outnumbered reports whether visible enemies outnumber friendly drones.
func (e DroneEnv) Outnumbered() bool {
	return e.Enemies > e.Friendly
}

// Stronger reports whether this drone has more health than the closest enemy.
func (e DroneEnv) Stronger() bool {
	return e.HasEnemy && e.Health > e.EnemyHealth
}
