package rules

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.PersonalSpace != 4 {
		t.Errorf("PersonalSpace = %d, want 4", c.PersonalSpace)
	}
	if c.Juggernaut != 18 {
		t.Errorf("Juggernaut = %d, want 18", c.Juggernaut)
	}
	if c.Unreachable != math.MaxInt32 {
		t.Errorf("Unreachable = %d, want %d", c.Unreachable, math.MaxInt32)
	}
	if got := c.radius(c.ExactRadius); got != 8 {
		t.Errorf("exact radius = %d, want 8", got)
	}
}

func TestValidateClamps(t *testing.T) {
	c := Config{
		PersonalSpace:      0,
		Juggernaut:         -5,
		Unreachable:        -1,
		ExactRadius:        99,
		NestSafeRadius:     -1,
		InvadeRadius:       3,
		ExpandCachedRadius: 2,
		ExpandMaxRetries:   0,
	}
	c.Validate()

	tests := []struct {
		name      string
		got, want int
	}{
		{"PersonalSpace", c.PersonalSpace, 1},
		{"Juggernaut", c.Juggernaut, 1},
		{"Unreachable", c.Unreachable, math.MaxInt32},
		{"ExactRadius", c.ExactRadius, 16},
		{"NestSafeRadius", c.NestSafeRadius, 0},
		{"InvadeRadius", c.InvadeRadius, 3},
		{"ExpandMaxRetries", c.ExpandMaxRetries, 1},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %d, want %d", tc.name, tc.got, tc.want)
		}
	}
}

func TestValidateKeepsUnreachableBeyondRadii(t *testing.T) {
	c := DefaultConfig()
	c.Unreachable = 3
	c.Validate()
	if c.Unreachable != math.MaxInt32 {
		t.Errorf("Unreachable = %d, want %d", c.Unreachable, math.MaxInt32)
	}

	c = DefaultConfig()
	c.Unreachable = 1000
	c.Validate()
	if c.Unreachable != 1000 {
		t.Errorf("Unreachable = %d, want 1000 kept", c.Unreachable)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		v, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := clampInt(tc.v, tc.min, tc.max); got != tc.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hive.yaml")
	raw := `
personal_space: 5
juggernaut: 24
guards:
  invade: "Health >= 12"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.PersonalSpace != 5 || c.Juggernaut != 24 {
		t.Errorf("got PersonalSpace=%d Juggernaut=%d, want 5 and 24", c.PersonalSpace, c.Juggernaut)
	}
	// Keys absent from the file keep their defaults.
	if c.ExactRadius != 2 || c.NestSafeRadius != 3 {
		t.Errorf("defaults lost: ExactRadius=%d NestSafeRadius=%d", c.ExactRadius, c.NestSafeRadius)
	}
	if c.Guards["invade"] != "Health >= 12" {
		t.Errorf("guard = %q", c.Guards["invade"])
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("personal_space: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
