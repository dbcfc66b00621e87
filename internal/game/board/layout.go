package board

// Board indices of the mini-game hubs and the lottery.
const (
	DiceGameHub      = 20
	HorseRaceHub     = 28
	LotteryHub       = 44
	StockExchangeHub = 53
	CasinoHub        = 61

	// LotteryGate is crossed when a move goes from below 44 to 44 or beyond.
	LotteryGate = 44
)

func hotel(price, rent int) Cell {
	return Cell{Kind: Hotel, HotelPrice: price, HotelRent: rent}
}

func cell(delta int, kind CellKind) Cell {
	return Cell{Delta: delta, Kind: kind}
}

var (
	toCasino   = cell(0, MoveToCasino)
	toExchange = cell(0, MoveToStockExchange)
	toDice     = cell(0, MoveToDiceGame)
	toRace     = cell(0, MoveToHorseRace)
	toLottery  = cell(0, MoveToLottery)
)

// primaryLoop is the circular track, index order.
var primaryLoop = []Cell{
	cell(-100000, ElectricityStock), // 0
	toCasino,
	cell(-170000, Normal),
	cell(-100000, Normal),
	hotel(150000, 15000),
	toExchange, // 5
	cell(-50000, PayIntoLottery),
	cell(-180000, Normal),
	cell(-100000, OilStock),
	toDice,
	cell(-50000, Normal), // 10
	cell(-100000, ElectricityStock),
	toRace,
	hotel(150000, 15000),
	toCasino,
	cell(-100000, SteelStock), // 15
	cell(-50000, PayIntoLottery),
	toCasino,
	toExchange,
	cell(-10000, Normal),
	cell(-100000, SteelStock), // 20: dice game
	cell(-25000, Normal),
	toLottery,
	cell(5000, Normal),
	toExchange,
	cell(-100000, OilStock), // 25
	cell(-50000, Normal),
	toLottery,
	cell(-100000, OilStock), // 28: horse race
	cell(-10000, Normal),
	hotel(50000, 5000), // 30
	toDice,
	cell(0, EveryoneGivesYouFixedAmount),
	cell(-10000, Normal),
	toCasino,
	cell(-100000, SteelStock), // 35
	toRace,
	toExchange,
	cell(-100000, OilStock),
	cell(0, ReturnStocks),
	hotel(200000, 20000), // 40
	toCasino,
	cell(-100000, ElectricityStock),
	cell(-150000, Normal),
	cell(-10000, PayIntoLottery), // 44: lottery
	cell(1500, Normal),           // 45
	toDice,
	toCasino,
	hotel(100000, 10000),
	cell(0, YouGiveSomeoneFixedAmount),
	cell(-100000, SteelStock), // 50
	toDice,
	cell(-7500, Normal),
	cell(-100000, ElectricityStock), // 53: stock exchange
	toLottery,
	cell(100000, Normal), // 55
	cell(-25000, Normal),
	toCasino,
	cell(-20000, Normal),
	cell(-100000, ElectricityStock),
	toDice, // 60
	toRace, // 61: casino
	cell(-100000, SteelStock),
	hotel(100000, 10000),
	cell(-100000, SteelStock),
	cell(0, ElectricityStock), // 65
	toExchange,
	cell(10000, Normal),
}

// standardSpurs describes the four detours, one before each mini-game hub.
// Each is entered from the three loop cells preceding its hub and rejoins
// the loop just past the hub.
//
// Under PreferLowerDelta a zone cell costlier than the spur's first cell
// always branches and is never resolved. Start deltas keep those cells to
// teleports (17, 18, 27, 51, 60) whose kind also appears elsewhere.
var standardSpurs = []struct {
	spur  Spur
	cells []Cell
}{
	{
		spur: Spur{Name: "dice_game", Hub: DiceGameHub, Entry: [3]int{17, 18, 19}, Rejoin: 21},
		cells: []Cell{
			cell(-5000, Normal),
			toDice,
			cell(-5000, PayIntoLottery),
		},
	},
	{
		spur: Spur{Name: "horse_race", Hub: HorseRaceHub, Entry: [3]int{25, 26, 27}, Rejoin: 29},
		cells: []Cell{
			cell(-30000, Normal),
			cell(-100000, OilStock),
			toRace,
		},
	},
	{
		spur: Spur{Name: "stock_exchange", Hub: StockExchangeHub, Entry: [3]int{50, 51, 52}, Rejoin: 54},
		cells: []Cell{
			cell(-5000, Normal),
			cell(-100000, SteelStock),
			toExchange,
		},
	},
	{
		spur: Spur{Name: "casino", Hub: CasinoHub, Entry: [3]int{58, 59, 60}, Rejoin: 62},
		cells: []Cell{
			cell(-10000, Normal),
			hotel(120000, 12000),
			toCasino,
		},
	},
}

// Standard builds the compiled-in board. Every call returns a fresh copy with
// no hotel owned, so one call per trial gives a fully reset board.
//
// Postcondition: the result is identical on every call and passes Validate.
func Standard() *Board {
	size := len(primaryLoop)
	for _, s := range standardSpurs {
		size += len(s.cells)
	}

	b := &Board{
		Cells:   make([]Cell, 0, size),
		LoopLen: len(primaryLoop),
		Hubs: Hubs{
			Casino:        CasinoHub,
			StockExchange: StockExchangeHub,
			DiceGame:      DiceGameHub,
			HorseRace:     HorseRaceHub,
			Lottery:       LotteryHub,
		},
		LotteryGate: LotteryGate,
		Spurs:       make([]Spur, 0, len(standardSpurs)),
	}
	b.Cells = append(b.Cells, primaryLoop...)
	for _, s := range standardSpurs {
		spur := s.spur
		spur.Start = len(b.Cells)
		spur.Len = len(s.cells)
		b.Spurs = append(b.Spurs, spur)
		b.Cells = append(b.Cells, s.cells...)
	}
	for i := range b.Cells {
		b.Cells[i].Index = i
	}
	return b
}
