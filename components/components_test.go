package components

import "testing"

func TestParseRarity(t *testing.T) {
	for r := RarityCommon; r <= RarityMythic; r++ {
		got, ok := ParseRarity(r.String())
		if !ok || got != r {
			t.Errorf("ParseRarity(%q) = %v, %v", r.String(), got, ok)
		}
	}
	if _, ok := ParseRarity("shiny"); ok {
		t.Error("ParseRarity accepted an unknown tier")
	}
	if Rarity(RarityCount).String() != "unknown" {
		t.Error("out of range rarity should print as unknown")
	}
}

func TestParseAbility(t *testing.T) {
	tests := []struct {
		name string
		want Ability
		ok   bool
	}{
		{"", AbilityNone, true},
		{"area", AbilityArea, true},
		{"chain", AbilityChain, true},
		{"crowd_control", AbilityCrowdControl, true},
		{"pull", AbilityPull, true},
		{"none", AbilityNone, false},
		{"freeze", AbilityNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseAbility(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAbility(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReward(t *testing.T) {
	c := Creature{BaseReward: 25, Multiplier: 5}
	if c.Reward() != 125 {
		t.Errorf("reward = %d, want 125", c.Reward())
	}
}

func TestSlowed(t *testing.T) {
	s := Status{SlowScale: 0.25, SlowUntil: 100}
	if !s.Slowed(99) {
		t.Error("should be slowed before SlowUntil")
	}
	if s.Slowed(100) {
		t.Error("freeze should lapse at SlowUntil")
	}
	if (&Status{SlowScale: 1, SlowUntil: 100}).Slowed(0) {
		t.Error("scale 1 is not a freeze")
	}
}

func TestHealthFraction(t *testing.T) {
	if f := (Health{Current: 3, Max: 12}).Fraction(); f != 0.25 {
		t.Errorf("fraction = %v, want 0.25", f)
	}
	if f := (Health{}).Fraction(); f != 0 {
		t.Errorf("fraction with zero max = %v, want 0", f)
	}
}
