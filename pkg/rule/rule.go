// Package rule parses and canonicalizes B/S birth-survival rule strings.
package rule

import (
	"fmt"
	"sort"
	"strings"
)

// Rule is a birth/survival digit-set pair, e.g. B3/S23.
type Rule struct {
	Birth    [9]bool
	Survival [9]bool
}

// InvalidRule reports a rule string that does not match the B<digits>/S<digits> grammar.
type InvalidRule struct {
	Input string
}

func (e *InvalidRule) Error() string {
	return fmt.Sprintf("rule: invalid rule string %q", e.Input)
}

// Default square and hex rules used when parsing fails and a caller wants a fallback.
var (
	DefaultSquare = Rule{Birth: digitSet("3"), Survival: digitSet("23")}
	DefaultHex    = Rule{Birth: digitSet("2"), Survival: digitSet("34")}
)

// Parse accepts "B<digits>/S<digits>", case-insensitive, surrounding
// whitespace trimmed. Digits may repeat; they collapse into a set.
func Parse(input string) (Rule, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(input))
	if len(trimmed) < 3 || trimmed[0] != 'B' {
		return Rule{}, &InvalidRule{Input: input}
	}
	slash := strings.IndexByte(trimmed, '/')
	if slash < 0 || slash+1 >= len(trimmed) || trimmed[slash+1] != 'S' {
		return Rule{}, &InvalidRule{Input: input}
	}
	birthDigits := trimmed[1:slash]
	survivalDigits := trimmed[slash+2:]
	if !allDigits(birthDigits) || !allDigits(survivalDigits) {
		return Rule{}, &InvalidRule{Input: input}
	}
	return Rule{Birth: digitSet(birthDigits), Survival: digitSet(survivalDigits)}, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func digitSet(digits string) [9]bool {
	var set [9]bool
	for _, c := range digits {
		n := int(c - '0')
		if n >= 0 && n < len(set) {
			set[n] = true
		}
	}
	return set
}

// String renders the canonical "B<digits>/S<digits>" form with ascending digits.
func (r Rule) String() string {
	return "B" + digitsOf(r.Birth) + "/S" + digitsOf(r.Survival)
}

func digitsOf(set [9]bool) string {
	var digits []int
	for n, on := range set {
		if on {
			digits = append(digits, n)
		}
	}
	sort.Ints(digits)
	var b strings.Builder
	for _, d := range digits {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// Births reports whether a dead cell with n neighbors is born.
func (r Rule) Births(n int) bool {
	return n >= 0 && n < len(r.Birth) && r.Birth[n]
}

// Survives reports whether a live cell with n neighbors survives.
func (r Rule) Survives(n int) bool {
	return n >= 0 && n < len(r.Survival) && r.Survival[n]
}
