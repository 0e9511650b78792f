package seedlib

import "testing"

func TestBlinkerLooksUpByName(t *testing.T) {
	p, ok := Lookup("blinker")
	if !ok {
		t.Fatalf("expected blinker to be registered")
	}
	if len(p.Cells) != 3 {
		t.Fatalf("expected 3 live cells, got %d", len(p.Cells))
	}
}

func TestLookupMissingPatternReportsFalse(t *testing.T) {
	if _, ok := Lookup("does-not-exist"); ok {
		t.Fatalf("expected missing pattern to report ok=false")
	}
}

func TestApplyCentersPatternAndClearsRestOfBuffer(t *testing.T) {
	p, _ := Lookup("block")
	buffer := make([]uint8, 6*6)
	for i := range buffer {
		buffer[i] = 1
	}

	p.Apply(buffer, 6, 6)

	live := 0
	for _, c := range buffer {
		if c != 0 {
			live++
		}
	}
	if live != 4 {
		t.Fatalf("expected 4 live cells after centering block, got %d", live)
	}
}

func TestApplyDropsCellsThatFallOutsideBuffer(t *testing.T) {
	p, _ := Lookup("glider")
	buffer := make([]uint8, 2*2)

	p.Apply(buffer, 2, 2)

	// The 3x3 glider centres at offset (0,0) on a 2x2 buffer, so only its
	// cell (1,0) lands inside; the other four are dropped.
	live := 0
	for _, c := range buffer {
		if c != 0 {
			live++
		}
	}
	if live != 1 || buffer[1] != 1 {
		t.Fatalf("expected only glider cell (1,0) to land on a 2x2 buffer, got %v", buffer)
	}
}

func TestNamesIncludesEveryBuiltinPattern(t *testing.T) {
	want := []string{"blinker", "block", "glider", "r-pentomino"}
	names := map[string]bool{}
	for _, n := range Names() {
		names[n] = true
	}
	for _, w := range want {
		if !names[w] {
			t.Fatalf("expected %q to be registered, got %v", w, Names())
		}
	}
}
