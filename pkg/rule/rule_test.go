package rule

import (
	"errors"
	"testing"
)

func TestParseCaseInsensitiveAndCanonical(t *testing.T) {
	r, err := Parse("b36/S23 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.String(); got != "B36/S23" {
		t.Fatalf("canonical string = %q, want B36/S23", got)
	}
	if !r.Births(3) || !r.Births(6) || r.Births(2) {
		t.Fatalf("birth set wrong: %+v", r.Birth)
	}
	if !r.Survives(2) || !r.Survives(3) || r.Survives(4) {
		t.Fatalf("survival set wrong: %+v", r.Survival)
	}
}

func TestParseIdempotentRoundTrip(t *testing.T) {
	r, err := Parse("B3/S23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Parse(r.String())
	if err != nil {
		t.Fatalf("unexpected error on round trip: %v", err)
	}
	if r.String() != r2.String() {
		t.Fatalf("parse/string not idempotent: %q vs %q", r.String(), r2.String())
	}
}

func TestParseAllowsEmptySets(t *testing.T) {
	r, err := Parse("B/S")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "B/S" {
		t.Fatalf("canonical string = %q, want B/S", r.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "B3S23", "S23/B3", "B3/Sx", "XB3/S23"} {
		_, err := Parse(input)
		if err == nil {
			t.Fatalf("expected error for input %q", input)
		}
		var invalid *InvalidRule
		if !errors.As(err, &invalid) {
			t.Fatalf("expected *InvalidRule for input %q, got %T", input, err)
		}
	}
}

func TestDigitsSortedAscendingEvenWhenRepeated(t *testing.T) {
	r, err := Parse("B33/S3322")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "B3/S23" {
		t.Fatalf("canonical string = %q, want B3/S23", r.String())
	}
}
