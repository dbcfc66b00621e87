package board

// Spur is a short linear detour off the primary loop.
//
// Invariant: Hub is a loop cell and Entry holds the three loop indices
// immediately before it; cells Start..Start+Len-1 lie beyond the primary loop.
//
// A spur is a slow lane: inside it a participant advances half the roll,
// rounded down, so every spur cell is reachable from Start.
type Spur struct {
	Name string
	Hub  int
	// Entry are the loop cells from which a landing participant may branch off.
	Entry [3]int
	// Start is the first spur cell, the one adjacent to the hub.
	Start int
	Len   int
	// Rejoin is the loop cell a participant leaving the spur counts from.
	Rejoin int
}

// Contains reports whether idx is one of the spur's own cells.
func (s *Spur) Contains(idx int) bool {
	return idx >= s.Start && idx < s.Start+s.Len
}

// Enters reports whether landing on loop index idx offers this spur.
func (s *Spur) Enters(idx int) bool {
	for _, e := range s.Entry {
		if e == idx {
			return true
		}
	}
	return false
}

// Chooser decides between staying on the loop cell a participant landed on
// and branching into a spur. It returns true to branch.
type Chooser func(stay, branch *Cell) bool

// PreferLowerDelta branches when the spur's first cell has a strictly lower
// base delta than the landing cell. Ties stay on the loop.
func PreferLowerDelta(stay, branch *Cell) bool {
	return branch.Delta < stay.Delta
}

// SpurAdvance returns how many cells a roll of total carries a participant
// who starts the move inside a spur.
func SpurAdvance(total int) int {
	return total / 2
}

// Step describes one resolved move.
type Step struct {
	From int
	To   int
	// Landing is the loop cell reached by plain movement before any branch
	// decision. For moves inside a spur it equals To.
	Landing  int
	Branched bool
	Exited   bool
	Spur     string
}

// Navigate resolves a move of total cells from pos.
//
// From a loop cell the participant advances modulo the loop length; landing in
// a spur's entry zone lets choose redirect them to the spur's first cell. From
// a spur cell the participant moves total/2 cells deeper into the spur, or
// leaves it and continues along the loop from the spur's rejoin cell.
//
// Precondition: 0 <= pos < b.Len(); total >= 0; choose is non-nil.
// Postcondition: 0 <= result.To < b.Len(); result.To is a spur cell only if
// result.Branched or the move started inside that spur.
func (b *Board) Navigate(pos, total int, choose Chooser) Step {
	if s, ok := b.SpurAt(pos); ok {
		n := pos - s.Start + SpurAdvance(total)
		if n < s.Len {
			to := s.Start + n
			return Step{From: pos, To: to, Landing: to, Spur: s.Name}
		}
		to := (s.Rejoin + n - s.Len) % b.LoopLen
		return Step{From: pos, To: to, Landing: to, Exited: true, Spur: s.Name}
	}

	landing := (pos + total) % b.LoopLen
	step := Step{From: pos, To: landing, Landing: landing}
	for i := range b.Spurs {
		s := &b.Spurs[i]
		if !s.Enters(landing) {
			continue
		}
		if choose(&b.Cells[landing], &b.Cells[s.Start]) {
			step.To = s.Start
			step.Branched = true
			step.Spur = s.Name
		}
		break
	}
	return step
}
