package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

func TestDieFaces_IsFive(t *testing.T) {
	// A six-sided game needs this constant changed on purpose.
	assert.Equal(t, 5, board.DieFaces)
	assert.Equal(t, 2, board.MovementDice.Count)
	assert.Equal(t, board.DieFaces, board.MovementDice.Sides)
}

func TestStandard_Shape(t *testing.T) {
	b := board.Standard()
	assert.Equal(t, 68, b.LoopLen)
	assert.Equal(t, 80, b.Len())
	require.Len(t, b.Spurs, 4)
	for i, c := range b.Cells {
		assert.Equal(t, i, c.Index)
		assert.False(t, c.Owned)
	}
	require.NoError(t, b.Validate())
}

func TestStandard_CellZero(t *testing.T) {
	c := board.Standard().Cell(0)
	assert.Equal(t, -100000, c.Delta)
	assert.Equal(t, board.ElectricityStock, c.Kind)
}

func TestStandard_Hubs(t *testing.T) {
	b := board.Standard()
	assert.Equal(t, board.Hubs{Casino: 61, StockExchange: 53, DiceGame: 20, HorseRace: 28, Lottery: 44}, b.Hubs)
	assert.Equal(t, 44, b.LotteryGate)
}

func TestStandard_WealthTransferCells(t *testing.T) {
	b := board.Standard()
	assert.Equal(t, board.EveryoneGivesYouFixedAmount, b.Cell(32).Kind)
	assert.Equal(t, board.YouGiveSomeoneFixedAmount, b.Cell(49).Kind)
}

func TestStandard_FreshCopyEachCall(t *testing.T) {
	a := board.Standard()
	a.Cell(4).Owned = true
	a.Cell(4).Owner = player.Red

	b := board.Standard()
	assert.False(t, b.Cell(4).Owned, "a new board must not see ownership from a previous one")
	assert.Equal(t, a.Len(), b.Len())
}

func TestStandard_HotelEconomics(t *testing.T) {
	b := board.Standard()
	hotels := map[int][2]int{
		4: {150000, 15000}, 13: {150000, 15000}, 30: {50000, 5000},
		40: {200000, 20000}, 48: {100000, 10000}, 63: {100000, 10000},
	}
	for idx, econ := range hotels {
		c := b.Cell(idx)
		assert.Equal(t, board.Hotel, c.Kind, "cell %d", idx)
		assert.Equal(t, econ[0], c.HotelPrice, "cell %d", idx)
		assert.Equal(t, econ[1], c.HotelRent, "cell %d", idx)
	}
}

func TestStandard_SpursPrecedeHubs(t *testing.T) {
	b := board.Standard()
	for _, s := range b.Spurs {
		assert.Equal(t, [3]int{s.Hub - 3, s.Hub - 2, s.Hub - 1}, s.Entry, s.Name)
		assert.Equal(t, s.Hub+1, s.Rejoin, s.Name)
		assert.GreaterOrEqual(t, s.Start, b.LoopLen, s.Name)
	}
}

func TestCellKind_String(t *testing.T) {
	assert.Equal(t, "normal", board.Normal.String())
	assert.Equal(t, "hotel", board.Hotel.String())
	assert.Equal(t, "you_give_someone", board.YouGiveSomeoneFixedAmount.String())
	assert.Equal(t, "unknown", board.CellKind(99).String())
}

func TestCellKind_Stock(t *testing.T) {
	k, ok := board.OilStock.Stock()
	assert.True(t, ok)
	assert.Equal(t, player.Oil, k)
	k, ok = board.ElectricityStock.Stock()
	assert.True(t, ok)
	assert.Equal(t, player.Electricity, k)
	k, ok = board.SteelStock.Stock()
	assert.True(t, ok)
	assert.Equal(t, player.Steel, k)
	_, ok = board.Hotel.Stock()
	assert.False(t, ok)
}

func TestValidate_HubOutOfRange(t *testing.T) {
	b := board.Standard()
	b.Hubs.Casino = 500
	err := b.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrInvalidLayout)
	assert.Contains(t, err.Error(), "casino hub index 500")
}

func TestValidate_SpurBeyondTable(t *testing.T) {
	b := board.Standard()
	b.Spurs[3].Len = 10
	err := b.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrInvalidLayout)
}

func TestValidate_SpurRejoinOffLoop(t *testing.T) {
	b := board.Standard()
	b.Spurs[0].Rejoin = 70
	assert.ErrorIs(t, b.Validate(), board.ErrInvalidLayout)
}

func TestValidate_HotelDataOnNonHotel(t *testing.T) {
	b := board.Standard()
	b.Cell(2).HotelRent = 10
	assert.ErrorIs(t, b.Validate(), board.ErrInvalidLayout)
}

func TestValidate_EntryMustPrecedeHub(t *testing.T) {
	b := board.Standard()
	b.Spurs[1].Entry = [3]int{24, 25, 26}
	err := b.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrInvalidLayout)
	assert.Contains(t, err.Error(), "spur horse_race entry [24 25 26] does not precede hub 28")
}

func TestValidate_HubOffLoop(t *testing.T) {
	b := board.Standard()
	b.Spurs[2].Hub = 75
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spur stock_exchange hub 75 is not on the primary loop")
}

func TestValidate_OrphanBranchCell(t *testing.T) {
	b := board.Standard()
	b.Spurs = b.Spurs[:3]
	assert.ErrorIs(t, b.Validate(), board.ErrInvalidLayout)
}

func TestNavigate_PlainLoopWraps(t *testing.T) {
	b := board.Standard()
	step := b.Navigate(66, 5, board.PreferLowerDelta)
	assert.Equal(t, 3, step.To)
	assert.False(t, step.Branched)
}

func TestNavigate_EntryZoneBranchesToLowerDelta(t *testing.T) {
	b := board.Standard()
	// Cell 18 (delta 0) against the dice spur's first cell (delta -5000).
	step := b.Navigate(10, 8, board.PreferLowerDelta)
	assert.Equal(t, 18, step.Landing)
	assert.True(t, step.Branched)
	assert.Equal(t, "dice_game", step.Spur)
	assert.Equal(t, 68, step.To)
}

func TestNavigate_EntryZoneStaysWhenLandingIsLower(t *testing.T) {
	b := board.Standard()
	// Cell 25 (delta -100000) against the horse race spur's first cell (-30000).
	step := b.Navigate(20, 5, board.PreferLowerDelta)
	assert.Equal(t, 25, step.To)
	assert.False(t, step.Branched)
}

func TestNavigate_ChooserDecides(t *testing.T) {
	b := board.Standard()
	never := func(stay, branch *board.Cell) bool { return false }
	always := func(stay, branch *board.Cell) bool { return true }

	assert.Equal(t, 18, b.Navigate(10, 8, never).To)
	assert.Equal(t, 71, b.Navigate(20, 5, always).To)
}

func TestSpurAdvance_HalvesRoll(t *testing.T) {
	for total, want := range map[int]int{0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 9: 4, 10: 5} {
		assert.Equal(t, want, board.SpurAdvance(total), "roll %d", total)
	}
}

func TestNavigate_InsideSpurContinues(t *testing.T) {
	b := board.Standard()
	step := b.Navigate(68, 2, board.PreferLowerDelta)
	assert.Equal(t, 69, step.To)
	assert.False(t, step.Exited)

	assert.Equal(t, 70, b.Navigate(68, 5, board.PreferLowerDelta).To)
	assert.Equal(t, 70, b.Navigate(69, 3, board.PreferLowerDelta).To)
}

func TestNavigate_InsideSpurExits(t *testing.T) {
	b := board.Standard()
	// Offset 1 in the dice spur (len 3) advances 3 for a roll of 6: one past
	// the spur end, counted from the rejoin cell 21.
	step := b.Navigate(69, 6, board.PreferLowerDelta)
	assert.True(t, step.Exited)
	assert.Equal(t, 22, step.To)

	// Leaving from the last cell with the smallest roll lands on the rejoin cell.
	step = b.Navigate(70, 2, board.PreferLowerDelta)
	assert.True(t, step.Exited)
	assert.Equal(t, 21, step.To)
}

func TestNavigate_ExitFromCasinoSpur(t *testing.T) {
	b := board.Standard()
	// Casino spur rejoins at 62; offset 2 + 5 = 7, four past the end.
	step := b.Navigate(79, 10, board.PreferLowerDelta)
	assert.Equal(t, 66, step.To)
}

func TestLoopCoord(t *testing.T) {
	b := board.Standard()
	assert.Equal(t, 10, b.LoopCoord(10))
	assert.Equal(t, 20, b.LoopCoord(68))
	assert.Equal(t, 53, b.LoopCoord(76))
	assert.Equal(t, 61, b.LoopCoord(79))
}

// TestNavigate_PlainMovementNeverReachesSpur checks that without a branch
// decision a loop participant always stays on the loop.
func TestNavigate_PlainMovementNeverReachesSpur(t *testing.T) {
	b := board.Standard()
	never := func(stay, branch *board.Cell) bool { return false }
	rapid.Check(t, func(rt *rapid.T) {
		pos := rapid.IntRange(0, b.LoopLen-1).Draw(rt, "pos")
		total := rapid.IntRange(2, 2*board.DieFaces).Draw(rt, "total")
		step := b.Navigate(pos, total, never)
		if !b.OnLoop(step.To) {
			rt.Fatalf("plain move from %d by %d left the loop: %d", pos, total, step.To)
		}
		if step.To != (pos+total)%b.LoopLen {
			rt.Fatalf("plain move from %d by %d landed on %d", pos, total, step.To)
		}
	})
}

// TestNavigate_AlwaysInBounds checks every move from every cell stays on the board.
func TestNavigate_AlwaysInBounds(t *testing.T) {
	b := board.Standard()
	rapid.Check(t, func(rt *rapid.T) {
		pos := rapid.IntRange(0, b.Len()-1).Draw(rt, "pos")
		total := rapid.IntRange(2, 2*board.DieFaces).Draw(rt, "total")
		step := b.Navigate(pos, total, board.PreferLowerDelta)
		if step.To < 0 || step.To >= b.Len() {
			rt.Fatalf("move from %d by %d out of bounds: %d", pos, total, step.To)
		}
		if !b.OnLoop(step.To) && !step.Branched && b.OnLoop(pos) {
			rt.Fatalf("reached spur cell %d without branching", step.To)
		}
	})
}

// reachable walks every move PreferLowerDelta allows from the starting cells,
// following teleports to their hubs, and returns the cells a participant can
// land on.
func reachable(b *board.Board) map[int]bool {
	hubs := map[board.CellKind]int{
		board.MoveToCasino:        b.Hubs.Casino,
		board.MoveToStockExchange: b.Hubs.StockExchange,
		board.MoveToDiceGame:      b.Hubs.DiceGame,
		board.MoveToHorseRace:     b.Hubs.HorseRace,
		board.MoveToLottery:       b.Hubs.Lottery,
	}
	seen := make(map[int]bool)
	visited := make(map[int]bool)
	queue := []int{}
	for _, pos := range player.DefaultPositions {
		queue = append(queue, pos)
	}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		if visited[pos] {
			continue
		}
		visited[pos] = true
		for total := 2; total <= 2*board.DieFaces; total++ {
			to := b.Navigate(pos, total, board.PreferLowerDelta).To
			seen[to] = true
			queue = append(queue, to)
			if hub, ok := hubs[b.Cell(to).Kind]; ok {
				queue = append(queue, hub)
			}
		}
	}
	return seen
}

func TestStandard_EveryKindAndSpurCellReachable(t *testing.T) {
	b := board.Standard()
	seen := reachable(b)

	kinds := make(map[board.CellKind]bool)
	for idx := range seen {
		kinds[b.Cell(idx).Kind] = true
	}
	for _, k := range board.Kinds {
		assert.True(t, kinds[k], "no reachable cell of kind %s", k)
	}
	for i := b.LoopLen; i < b.Len(); i++ {
		assert.True(t, seen[i], "spur cell %d unreachable", i)
	}
}

// TestStandard_EntryZonesBothStayAndBranch checks every spur is entered from
// some zone cell while the other zone cells still resolve.
func TestStandard_EntryZonesBothStayAndBranch(t *testing.T) {
	b := board.Standard()
	seen := reachable(b)
	for _, s := range b.Spurs {
		var branch, stay int
		for _, e := range s.Entry {
			if board.PreferLowerDelta(b.Cell(e), b.Cell(s.Start)) {
				branch++
				assert.NotEqual(t, board.Normal, b.Cell(e).Kind, "%s bypasses plain cell %d", s.Name, e)
				continue
			}
			stay++
			assert.True(t, seen[e], "%s entry %d unreachable", s.Name, e)
		}
		assert.Positive(t, branch, "%s is never entered", s.Name)
		assert.Positive(t, stay, "%s swallows its whole entry zone", s.Name)
	}
}
