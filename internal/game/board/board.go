// Package board provides the fixed board: its cells, the mini-game hubs, and
// the branch spurs that hang off the primary loop.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// DieFaces is the number of faces on each movement die. Draws land in
// [1, DieFaces]. The printed game ships six-sided dice; the simulated one
// rolls five faces.
const DieFaces = 5

// MovementDice is the roll used to advance a participant.
var MovementDice = dice.MustParse(fmt.Sprintf("2d%d", DieFaces))

// ErrInvalidLayout is wrapped by every error Validate returns.
var ErrInvalidLayout = errors.New("invalid board layout")

// Cell is one square of the board.
type Cell struct {
	Index int
	// Delta is the base money change applied to whoever lands here.
	Delta      int
	Kind       CellKind
	HotelPrice int
	HotelRent  int
	// Owner is the hotel owner. Valid only if Owned.
	Owner player.Identity
	Owned bool
}

// Hubs holds the teleport targets of the MoveTo* cells.
type Hubs struct {
	Casino        int
	StockExchange int
	DiceGame      int
	HorseRace     int
	Lottery       int
}

// Board is a cell sequence: the primary loop followed by branch-only cells.
// A Board is built per trial and mutated in place (hotel ownership).
type Board struct {
	Cells []Cell
	// LoopLen is the number of cells reachable by plain modulo movement.
	LoopLen int
	Hubs    Hubs
	// LotteryGate is the loop index whose crossing charges the lottery toll.
	LotteryGate int
	Spurs       []Spur
}

// Len returns the total number of cells including branch-only cells.
func (b *Board) Len() int { return len(b.Cells) }

// Cell returns a pointer to the cell at idx.
//
// Precondition: 0 <= idx < b.Len().
func (b *Board) Cell(idx int) *Cell {
	return &b.Cells[idx]
}

// OnLoop reports whether idx is a primary-loop cell.
func (b *Board) OnLoop(idx int) bool {
	return idx >= 0 && idx < b.LoopLen
}

// SpurAt returns the spur containing cell idx, if any.
func (b *Board) SpurAt(idx int) (*Spur, bool) {
	for i := range b.Spurs {
		if b.Spurs[i].Contains(idx) {
			return &b.Spurs[i], true
		}
	}
	return nil, false
}

// LoopCoord projects idx onto the primary loop: loop cells map to
// themselves and spur cells map to their spur's hub.
func (b *Board) LoopCoord(idx int) int {
	if s, ok := b.SpurAt(idx); ok {
		return s.Hub
	}
	return idx
}

// Validate checks that every index the board refers to exists and that spurs
// are laid out consistently.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidLayout that lists
// every violation.
func (b *Board) Validate() error {
	var errs []string
	n := len(b.Cells)

	if b.LoopLen <= 0 || b.LoopLen > n {
		errs = append(errs, fmt.Sprintf("loop length %d outside (0, %d]", b.LoopLen, n))
	}
	for i, c := range b.Cells {
		if c.Index != i {
			errs = append(errs, fmt.Sprintf("cell %d carries index %d", i, c.Index))
		}
		if !c.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("cell %d has unknown kind %d", i, int(c.Kind)))
		}
		if c.Kind != Hotel && (c.HotelPrice != 0 || c.HotelRent != 0 || c.Owned) {
			errs = append(errs, fmt.Sprintf("cell %d is %s but carries hotel data", i, c.Kind))
		}
	}

	check := func(name string, idx int) {
		if idx < 0 || idx >= n {
			errs = append(errs, fmt.Sprintf("%s index %d outside board of %d cells", name, idx, n))
		}
	}
	check("casino hub", b.Hubs.Casino)
	check("stock exchange hub", b.Hubs.StockExchange)
	check("dice game hub", b.Hubs.DiceGame)
	check("horse race hub", b.Hubs.HorseRace)
	check("lottery hub", b.Hubs.Lottery)
	if b.LotteryGate < 0 || b.LotteryGate >= b.LoopLen {
		errs = append(errs, fmt.Sprintf("lottery gate %d is not on the primary loop", b.LotteryGate))
	}

	claimed := make(map[int]string)
	for _, s := range b.Spurs {
		if s.Len <= 0 {
			errs = append(errs, fmt.Sprintf("spur %s has length %d", s.Name, s.Len))
			continue
		}
		check("spur "+s.Name+" hub", s.Hub)
		check("spur "+s.Name+" start", s.Start)
		check("spur "+s.Name+" end", s.Start+s.Len-1)
		if s.Start < b.LoopLen {
			errs = append(errs, fmt.Sprintf("spur %s starts at %d inside the primary loop", s.Name, s.Start))
		}
		if !b.OnLoop(s.Hub) {
			errs = append(errs, fmt.Sprintf("spur %s hub %d is not on the primary loop", s.Name, s.Hub))
		} else if want := [3]int{s.Hub - 3, s.Hub - 2, s.Hub - 1}; s.Entry != want {
			errs = append(errs, fmt.Sprintf("spur %s entry %v does not precede hub %d", s.Name, s.Entry, s.Hub))
		}
		if !b.OnLoop(s.Rejoin) {
			errs = append(errs, fmt.Sprintf("spur %s rejoins at %d, not on the primary loop", s.Name, s.Rejoin))
		}
		for _, e := range s.Entry {
			if !b.OnLoop(e) {
				errs = append(errs, fmt.Sprintf("spur %s entry %d is not on the primary loop", s.Name, e))
			}
			if other, dup := claimed[e]; dup {
				errs = append(errs, fmt.Sprintf("entry %d claimed by spurs %s and %s", e, other, s.Name))
			}
			claimed[e] = s.Name
		}
		for i := s.Start; i < s.Start+s.Len; i++ {
			if other, dup := claimed[i]; dup {
				errs = append(errs, fmt.Sprintf("cell %d claimed by spurs %s and %s", i, other, s.Name))
			}
			claimed[i] = s.Name
		}
	}
	for i := b.LoopLen; i < n; i++ {
		if _, ok := claimed[i]; !ok {
			errs = append(errs, fmt.Sprintf("branch cell %d belongs to no spur", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLayout, strings.Join(errs, "; "))
	}
	return nil
}
