// Package player models the four competing participants: their identity,
// money, board position, stock holdings and hotel ownership.
package player

import (
	"fmt"
	"strings"
)

// Identity names one of the four participants. The numeric order is the turn
// order and the scan order of the termination check.
type Identity int

const (
	Green Identity = iota
	Red
	Blue
	Yellow
)

// Count is the number of identities.
const Count = 4

// Identities lists every identity in turn order.
var Identities = [Count]Identity{Green, Red, Blue, Yellow}

var identityNames = [Count]string{
	Green:  "Green",
	Red:    "Red",
	Blue:   "Blue",
	Yellow: "Yellow",
}

// String returns the display name of the identity.
func (id Identity) String() string {
	if !id.Valid() {
		return fmt.Sprintf("Identity(%d)", int(id))
	}
	return identityNames[id]
}

// Valid reports whether id is one of the four identities.
func (id Identity) Valid() bool {
	return id >= Green && id <= Yellow
}

// ParseIdentity returns the identity whose name matches s, ignoring case.
func ParseIdentity(s string) (Identity, error) {
	for _, id := range Identities {
		if strings.EqualFold(identityNames[id], s) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown participant %q", s)
}

// StockKind is one of the three tradeable stocks.
type StockKind int

const (
	Oil StockKind = iota
	Electricity
	Steel
)

// String returns the lowercase stock name.
func (k StockKind) String() string {
	switch k {
	case Oil:
		return "oil"
	case Electricity:
		return "electricity"
	case Steel:
		return "steel"
	default:
		return "unknown"
	}
}

// Stocks holds a participant's share counts.
//
// Invariant: every counter is >= 0.
type Stocks struct {
	Oil         int
	Electricity int
	Steel       int
}

// Add grants one share of kind.
func (s *Stocks) Add(kind StockKind) {
	switch kind {
	case Oil:
		s.Oil++
	case Electricity:
		s.Electricity++
	case Steel:
		s.Steel++
	}
}

// Of returns the number of shares held of kind.
func (s Stocks) Of(kind StockKind) int {
	switch kind {
	case Oil:
		return s.Oil
	case Electricity:
		return s.Electricity
	case Steel:
		return s.Steel
	default:
		return 0
	}
}

// Total returns the number of shares held across all kinds.
func (s Stocks) Total() int {
	return s.Oil + s.Electricity + s.Steel
}

// Reset returns every share.
//
// Postcondition: Total() == 0.
func (s *Stocks) Reset() {
	*s = Stocks{}
}

// Participant is one player's mutable state for the duration of a trial.
type Participant struct {
	ID       Identity
	Money    int
	Position int
	Stocks   Stocks
	// HasHotel is set once the participant buys a hotel; a participant owns at most one.
	HasHotel bool
	// HotelCell is the board index of the owned hotel. Valid only if HasHotel.
	HotelCell int
}

// Bankrupt reports whether the participant has run out of money.
func (p *Participant) Bankrupt() bool {
	return p.Money <= 0
}

// Pay moves amount from p to other.
func (p *Participant) Pay(other *Participant, amount int) {
	p.Money -= amount
	other.Money += amount
}

// OwnsHotelAt reports whether p owns the hotel on board cell idx.
func (p *Participant) OwnsHotelAt(idx int) bool {
	return p.HasHotel && p.HotelCell == idx
}
