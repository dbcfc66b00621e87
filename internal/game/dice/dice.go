// Package dice provides the randomness abstraction and roll-result types used
// by the board simulation: movement rolls, mini-game draws, and every other
// uniform integer the engine consumes.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d5"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Count returns how many of the rolled dice show face.
func (r RollResult) Count(face int) int {
	n := 0
	for _, d := range r.Dice {
		if d == face {
			n++
		}
	}
	return n
}

// String returns a human-readable audit string in the format:
//
//	"2d5 → [4 5] +0 = 9"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	diceStr := fmt.Sprintf("%v", r.Dice)
	modStr := fmt.Sprintf("%+d", r.Modifier)
	return fmt.Sprintf("%s → %s %s = %d", r.Expression, diceStr, modStr, r.Total())
}

// Source is the randomness provider for every draw in a trial.
//
// A Source is owned by a single goroutine; parallel workers each hold their own.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a uniformly distributed int in [lo, hi).
//
// Precondition: hi > lo.
// Postcondition: lo <= result < hi.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		panic(fmt.Sprintf("dice: Between called with empty range [%d, %d)", lo, hi))
	}
	return lo + src.Intn(hi-lo)
}
