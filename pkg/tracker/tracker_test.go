package tracker

import "testing"

func TestClassifyPeriodicWithinMaxPeriod(t *testing.T) {
	tr := New(10)
	tr.Add(42, 5)
	reason, period := tr.Classify(42, 7)
	if reason != Periodic || period != 2 {
		t.Fatalf("got reason=%v period=%d, want Periodic/2", reason, period)
	}
}

func TestClassifySteadyBeyondMaxPeriod(t *testing.T) {
	tr := New(2)
	tr.Add(42, 0)
	reason, _ := tr.Classify(42, 10)
	if reason != Steady {
		t.Fatalf("got reason=%v, want Steady", reason)
	}
}

func TestClassifyNoneWhenUnseen(t *testing.T) {
	tr := New(10)
	reason, _ := tr.Classify(1, 1)
	if reason != None {
		t.Fatalf("got reason=%v, want None", reason)
	}
}

func TestAddEvictsOverflowBySmallestHash(t *testing.T) {
	tr := New(2) // cap = 4
	tr.Add(10, 0)
	tr.Add(20, 1)
	tr.Add(5, 2)
	tr.Add(30, 3)
	tr.Add(1, 4) // exceeds cap, should evict smallest key(s)

	if len(tr.firstSeen) > 4 {
		t.Fatalf("tracker exceeded cap: %d entries", len(tr.firstSeen))
	}
	if tr.Has(1) {
		t.Fatalf("smallest hash key should be evicted on overflow, even when it was added last")
	}
}

func TestHasAndPeriod(t *testing.T) {
	tr := New(10)
	if tr.Has(99) {
		t.Fatalf("expected Has to be false before Add")
	}
	tr.Add(99, 3)
	if !tr.Has(99) {
		t.Fatalf("expected Has to be true after Add")
	}
	period, ok := tr.Period(99, 8)
	if !ok || period != 5 {
		t.Fatalf("got period=%d ok=%v, want 5/true", period, ok)
	}
}
