// Package chance implements the four mini-games a participant can be sent to:
// the casino, the stock exchange, the dice game and the horse race.
//
// Every game draws only from the dice.Source it is given and reports the
// draws alongside the resulting money delta.
package chance

import (
	"fmt"

	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// Casino payouts.
const (
	CasinoEntry     = -70000
	RouletteOddWin  = 80000
	SlotTripleWin   = 150000
	SlotJackpotWin  = 2 * SlotTripleWin
	SlotPairWin     = 50000
	RouletteNumbers = 36
)

// Dice game payouts.
const (
	SnakeEyesWin = 300000
	SingleOneWin = 100000
)

// Horse race odds and payouts. The percentile draw is uniform in [1, 100).
const (
	HorseRaceThreshold = 46
	HorseRaceWin       = 100000
	HorseRaceLoss      = -50000
)

// Stock exchange payouts per share.
const (
	StockRise = 5000
	StockFall = -10000
)

var (
	slotReels = dice.MustParse(fmt.Sprintf("3d%d", board.DieFaces))
	gameDice  = dice.MustParse(fmt.Sprintf("2d%d", board.DieFaces))
)

// CasinoOutcome records one casino visit.
type CasinoOutcome struct {
	Roulette int
	Reels    dice.RollResult
	Delta    int
}

// PlayCasino charges the entry fee, spins the roulette and pulls the slot
// machine once.
//
// Postcondition: Delta == CasinoEntry plus any roulette and slot winnings.
func PlayCasino(src dice.Source) CasinoOutcome {
	out := CasinoOutcome{Delta: CasinoEntry}

	out.Roulette = dice.Between(src, 0, RouletteNumbers)
	if out.Roulette%2 == 1 {
		out.Delta += RouletteOddWin
	}

	out.Reels = dice.Roll(slotReels, src)
	r := out.Reels.Dice
	switch {
	case r[0] == r[1] && r[1] == r[2]:
		if r[0] == board.DieFaces {
			out.Delta += SlotJackpotWin
		} else {
			out.Delta += SlotTripleWin
		}
	case r[0] == r[1] || r[0] == r[2] || r[1] == r[2]:
		out.Delta += SlotPairWin
	}
	return out
}

// DiceGameOutcome records one round of the dice game.
type DiceGameOutcome struct {
	Roll  dice.RollResult
	Delta int
}

// PlayDiceGame rolls two dice: two ones pay SnakeEyesWin, a single one pays
// SingleOneWin, anything else pays nothing.
func PlayDiceGame(src dice.Source) DiceGameOutcome {
	out := DiceGameOutcome{Roll: dice.Roll(gameDice, src)}
	switch out.Roll.Count(1) {
	case 2:
		out.Delta = SnakeEyesWin
	case 1:
		out.Delta = SingleOneWin
	}
	return out
}

// HorseRaceOutcome is one race. Every participant wins or loses together.
type HorseRaceOutcome struct {
	Percentile int
	Delta      int
}

// RunHorseRace draws a percentile in [1, 100); below HorseRaceThreshold pays
// HorseRaceWin, otherwise it costs HorseRaceLoss.
func RunHorseRace(src dice.Source) HorseRaceOutcome {
	out := HorseRaceOutcome{Percentile: dice.Between(src, 1, 100)}
	if out.Percentile < HorseRaceThreshold {
		out.Delta = HorseRaceWin
	} else {
		out.Delta = HorseRaceLoss
	}
	return out
}

// MarketEvent is one stock exchange movement.
type MarketEvent int

const (
	OilRises MarketEvent = iota
	OilFalls
	SteelRises
	SteelFalls
	ElectricityRises
	ElectricityFalls
	AllRise

	numMarketEvents
)

// DrawMarket picks one of the seven market events with equal probability.
func DrawMarket(src dice.Source) MarketEvent {
	return MarketEvent(src.Intn(int(numMarketEvents)))
}

// String describes the event.
func (e MarketEvent) String() string {
	switch e {
	case OilRises:
		return "oil rises"
	case OilFalls:
		return "oil falls"
	case SteelRises:
		return "steel rises"
	case SteelFalls:
		return "steel falls"
	case ElectricityRises:
		return "electricity rises"
	case ElectricityFalls:
		return "electricity falls"
	case AllRise:
		return "all stocks rise"
	default:
		return "unknown"
	}
}

// Delta returns what the event pays a holder of s. Applying one event to
// every participant gives each the same market move on their own holdings.
func (e MarketEvent) Delta(s player.Stocks) int {
	switch e {
	case OilRises:
		return s.Oil * StockRise
	case OilFalls:
		return s.Oil * StockFall
	case SteelRises:
		return s.Steel * StockRise
	case SteelFalls:
		return s.Steel * StockFall
	case ElectricityRises:
		return s.Electricity * StockRise
	case ElectricityFalls:
		return s.Electricity * StockFall
	case AllRise:
		return s.Total() * StockRise
	default:
		return 0
	}
}
