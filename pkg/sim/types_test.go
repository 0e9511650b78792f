package sim

import (
	"testing"

	"evocell/pkg/lattice"
)

func TestFromMapWithNoOverridesReturnsDefaultConfig(t *testing.T) {
	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap(nil): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestFromMapAppliesRecognizedOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"lattice":   "hex",
		"width":     "12",
		"height":    "9",
		"rule":      "B2/S34",
		"toroidal":  "true",
		"maxPeriod": "7",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Lattice != lattice.Hex {
		t.Fatalf("Lattice = %v, want Hex", cfg.Lattice)
	}
	if cfg.Width != 12 || cfg.Height != 9 {
		t.Fatalf("dimensions = %dx%d, want 12x9", cfg.Width, cfg.Height)
	}
	if cfg.Rule.String() != "B2/S34" {
		t.Fatalf("Rule = %s, want B2/S34", cfg.Rule.String())
	}
	if !cfg.Toroidal {
		t.Fatal("Toroidal = false, want true")
	}
	if cfg.MaxPeriod != 7 {
		t.Fatalf("MaxPeriod = %d, want 7", cfg.MaxPeriod)
	}
}

func TestFromMapIgnoresUnrecognizedKeys(t *testing.T) {
	cfg, err := FromMap(map[string]string{"unrelated": "whatever"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("got %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestFromMapRejectsMalformedRecognizedValue(t *testing.T) {
	if _, err := FromMap(map[string]string{"width": "not-a-number"}); err == nil {
		t.Fatal("expected an error for a malformed width")
	}
	if _, err := FromMap(map[string]string{"lattice": "triangular"}); err == nil {
		t.Fatal("expected an error for an unknown lattice")
	}
	if _, err := FromMap(map[string]string{"rule": "not a rule"}); err == nil {
		t.Fatal("expected an error for a malformed rule")
	}
}

func TestFromMapRejectsOutOfRangeOverride(t *testing.T) {
	if _, err := FromMap(map[string]string{"width": "0"}); err == nil {
		t.Fatal("expected Validate to reject a zero width")
	}
}
