package player

import "fmt"

// DefaultStartingMoney is the money each participant starts a trial with.
const DefaultStartingMoney = 1_000_000

// DefaultPositions are the starting board indices, one per identity.
var DefaultPositions = map[Identity]int{
	Green:  0,
	Red:    17,
	Blue:   35,
	Yellow: 50,
}

// NewRoster creates the participants for one trial in turn order.
//
// Precondition: positions has an entry for every identity; positions are distinct.
// Postcondition: len(result) == Count; result[i].ID == Identities[i].
func NewRoster(startingMoney int, positions map[Identity]int) ([]*Participant, error) {
	if err := ValidatePositions(positions); err != nil {
		return nil, err
	}
	roster := make([]*Participant, 0, Count)
	for _, id := range Identities {
		roster = append(roster, &Participant{
			ID:       id,
			Money:    startingMoney,
			Position: positions[id],
		})
	}
	return roster, nil
}

// ValidatePositions checks that every identity has a distinct, non-negative
// starting position.
func ValidatePositions(positions map[Identity]int) error {
	seen := make(map[int]Identity, Count)
	for _, id := range Identities {
		pos, ok := positions[id]
		if !ok {
			return fmt.Errorf("no starting position for %s", id)
		}
		if pos < 0 {
			return fmt.Errorf("starting position for %s must be >= 0, got %d", id, pos)
		}
		if other, dup := seen[pos]; dup {
			return fmt.Errorf("%s and %s share starting position %d", other, id, pos)
		}
		seen[pos] = id
	}
	return nil
}

// Reset restores p to its start-of-trial state.
func (p *Participant) Reset(startingMoney, position int) {
	*p = Participant{ID: p.ID, Money: startingMoney, Position: position}
}
