package rules

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tactical constants of the drone policy. Radii other than
// PersonalSpace are multiples of it, so the whole policy scales with one knob.
type Config struct {
	// PersonalSpace is the tactical radius, in grid steps.
	PersonalSpace int `yaml:"personal_space"`
	// Juggernaut is the health at which a drone pushes into enemy territory
	// regardless of distance. Above half of it, nearby enemy nests are fair game.
	Juggernaut int `yaml:"juggernaut"`
	// Unreachable is the working distance used when no path to the enemy exists.
	Unreachable int `yaml:"unreachable"`

	ExactRadius        int `yaml:"exact_radius"`         // taxicab below this × PS is replaced by path length
	NestSafeRadius     int `yaml:"nest_safe_radius"`     // at or beyond this × PS propose the best-scored site
	NestQuietRadius    int `yaml:"nest_quiet_radius"`    // below this × PS propose nothing; 0 disables
	InvadeRadius       int `yaml:"invade_radius"`        // enemy nest paths shorter than this × PS are invaded
	ExpandCachedRadius int `yaml:"expand_cached_radius"` // beyond this × PS expand uses the host's cached step
	ExpandMaxRetries   int `yaml:"expand_max_retries"`

	// Guards are optional expr conditions keyed by behavior name. A behavior
	// whose guard evaluates false is skipped for that drone.
	Guards map[string]string `yaml:"guards"`
}

// DefaultConfig returns the tuned baseline policy.
func DefaultConfig() Config {
	return Config{
		PersonalSpace:      4,
		Juggernaut:         18,
		Unreachable:        math.MaxInt32,
		ExactRadius:        2,
		NestSafeRadius:     3,
		NestQuietRadius:    0,
		InvadeRadius:       1,
		ExpandCachedRadius: 2,
		ExpandMaxRetries:   64,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig, so a file only needs
// the keys it changes.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	c.Validate()
	return c, nil
}

// Validate clamps every value to a usable range.
func (c *Config) Validate() {
	c.PersonalSpace = clampInt(c.PersonalSpace, 1, 64)
	c.Juggernaut = clampInt(c.Juggernaut, 1, 10000)
	c.ExactRadius = clampInt(c.ExactRadius, 0, 16)
	c.NestSafeRadius = clampInt(c.NestSafeRadius, 0, 16)
	c.NestQuietRadius = clampInt(c.NestQuietRadius, 0, 16)
	c.InvadeRadius = clampInt(c.InvadeRadius, 0, 16)
	c.ExpandCachedRadius = clampInt(c.ExpandCachedRadius, 0, 16)
	c.ExpandMaxRetries = clampInt(c.ExpandMaxRetries, 1, 4096)

	// The sentinel must lie beyond every radius it is compared against.
	floor := c.radius(max(c.ExactRadius, c.NestSafeRadius, c.NestQuietRadius, c.InvadeRadius, c.ExpandCachedRadius, 1)) + 1
	if c.Unreachable < floor {
		c.Unreachable = math.MaxInt32
	}
}

// radius converts a multiple of PersonalSpace into grid steps.
func (c Config) radius(multiple int) int {
	return multiple * c.PersonalSpace
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
