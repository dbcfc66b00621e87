package board

import "github.com/cory-johannsen/bankroll/internal/game/player"

// CellKind selects the effect a cell applies on top of its base delta.
type CellKind int

const (
	Normal CellKind = iota
	OilStock
	ElectricityStock
	SteelStock
	ReturnStocks
	MoveToCasino
	MoveToStockExchange
	MoveToDiceGame
	MoveToHorseRace
	MoveToLottery
	PayIntoLottery
	Hotel
	EveryoneGivesYouFixedAmount
	YouGiveSomeoneFixedAmount

	numKinds
)

var kindNames = [numKinds]string{
	Normal:                      "normal",
	OilStock:                    "oil_stock",
	ElectricityStock:            "electricity_stock",
	SteelStock:                  "steel_stock",
	ReturnStocks:                "return_stocks",
	MoveToCasino:                "move_to_casino",
	MoveToStockExchange:         "move_to_stock_exchange",
	MoveToDiceGame:              "move_to_dice_game",
	MoveToHorseRace:             "move_to_horse_race",
	MoveToLottery:               "move_to_lottery",
	PayIntoLottery:              "pay_into_lottery",
	Hotel:                       "hotel",
	EveryoneGivesYouFixedAmount: "everyone_gives_you",
	YouGiveSomeoneFixedAmount:   "you_give_someone",
}

// Kinds lists every defined kind in declaration order.
var Kinds = func() []CellKind {
	out := make([]CellKind, 0, numKinds)
	for k := Normal; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}()

// String returns the snake_case name of the kind.
func (k CellKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is a defined kind.
func (k CellKind) Valid() bool {
	return k >= Normal && k < numKinds
}

// Stock returns the stock a stock cell grants.
//
// Postcondition: ok is true iff k is OilStock, ElectricityStock or SteelStock.
func (k CellKind) Stock() (kind player.StockKind, ok bool) {
	switch k {
	case OilStock:
		return player.Oil, true
	case ElectricityStock:
		return player.Electricity, true
	case SteelStock:
		return player.Steel, true
	default:
		return 0, false
	}
}
