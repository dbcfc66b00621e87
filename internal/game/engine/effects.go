package engine

import (
	"fmt"

	"github.com/cory-johannsen/bankroll/internal/game/board"
	"github.com/cory-johannsen/bankroll/internal/game/chance"
	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// Resolve applies the cell under p to the game: first the cell's base delta,
// then the effect of its kind. Effects may move p (teleports) and may change
// other participants' money.
//
// Precondition: p is one of g.Players and sits on a cell of g.Board.
func (g *Game) Resolve(p *player.Participant) {
	c := g.Board.Cell(p.Position)
	before := p.Money
	p.Money += c.Delta

	var detail string
	switch c.Kind {
	case board.Normal:
	case board.OilStock, board.ElectricityStock, board.SteelStock:
		detail = g.grantStock(p, c)
	case board.ReturnStocks:
		p.Stocks.Reset()
	case board.MoveToCasino:
		detail = g.casino(p)
	case board.MoveToStockExchange:
		detail = g.stockExchange(p)
	case board.MoveToDiceGame:
		detail = g.diceGame(p)
	case board.MoveToHorseRace:
		detail = g.horseRace(p)
	case board.MoveToLottery:
		detail = g.collectLottery(p)
	case board.PayIntoLottery:
		p.Money -= LotteryStake
		g.Lottery += LotteryStake
	case board.Hotel:
		detail = g.visitHotel(p, c)
	case board.EveryoneGivesYouFixedAmount:
		g.everyoneGives(p)
	case board.YouGiveSomeoneFixedAmount:
		detail = g.giveToPoorest(p)
	default:
		panic(fmt.Sprintf("engine: no effect for cell kind %s (%d)", c.Kind, int(c.Kind)))
	}

	if g.obs != nil {
		g.obs.Observe(Event{
			Type:    EventEffect,
			Round:   g.Round,
			Actor:   p.ID,
			Cell:    c.Index,
			Kind:    c.Kind,
			To:      p.Position,
			Before:  before,
			After:   p.Money,
			Lottery: g.Lottery,
			Detail:  detail,
		})
	}
}

func (g *Game) grantStock(p *player.Participant, c *board.Cell) string {
	kind, _ := c.Kind.Stock()
	p.Stocks.Add(kind)
	return g.tracef("%s shares: %d", kind, p.Stocks.Of(kind))
}

func (g *Game) casino(p *player.Participant) string {
	p.Position = g.Board.Hubs.Casino
	out := chance.PlayCasino(g.src)
	p.Money += out.Delta
	return g.tracef("roulette %d, reels %v, delta %d", out.Roulette, out.Reels.Dice, out.Delta)
}

func (g *Game) diceGame(p *player.Participant) string {
	p.Position = g.Board.Hubs.DiceGame
	out := chance.PlayDiceGame(g.src)
	p.Money += out.Delta
	return g.tracef("dice %v, delta %d", out.Roll.Dice, out.Delta)
}

// stockExchange draws one market event and applies it to every participant's
// own holdings.
func (g *Game) stockExchange(p *player.Participant) string {
	p.Position = g.Board.Hubs.StockExchange
	ev := chance.DrawMarket(g.src)
	for _, q := range g.Players {
		q.Money += ev.Delta(q.Stocks)
	}
	return g.tracef("market: %s", ev)
}

// horseRace runs one race whose result every participant shares.
func (g *Game) horseRace(p *player.Participant) string {
	p.Position = g.Board.Hubs.HorseRace
	out := chance.RunHorseRace(g.src)
	for _, q := range g.Players {
		q.Money += out.Delta
	}
	return g.tracef("percentile %d, delta %d each", out.Percentile, out.Delta)
}

func (g *Game) collectLottery(p *player.Participant) string {
	p.Position = g.Board.Hubs.Lottery
	won := g.Lottery
	p.Money += won
	g.Lottery = 0
	return g.tracef("won pool of %d", won)
}

// visitHotel buys the hotel if both the cell and p are free, charges rent if
// someone else owns it, and does nothing otherwise.
func (g *Game) visitHotel(p *player.Participant, c *board.Cell) string {
	switch {
	case !c.Owned && !p.HasHotel:
		p.Money -= c.HotelPrice
		c.Owned, c.Owner = true, p.ID
		p.HasHotel, p.HotelCell = true, c.Index
		return g.tracef("bought hotel for %d", c.HotelPrice)
	case p.OwnsHotelAt(c.Index):
		return g.tracef("own hotel")
	case c.Owned:
		owner := g.participant(c.Owner)
		p.Pay(owner, c.HotelRent)
		return g.tracef("paid rent %d to %s", c.HotelRent, owner.ID)
	default:
		return g.tracef("already owns hotel at %d", p.HotelCell)
	}
}

func (g *Game) everyoneGives(p *player.Participant) {
	for _, q := range g.Players {
		if q != p {
			q.Pay(p, TransferAmount)
		}
	}
}

// giveToPoorest pays TransferAmount to the other participant with the least
// money; ties go to the first in turn order.
func (g *Game) giveToPoorest(p *player.Participant) string {
	var poorest *player.Participant
	for _, q := range g.Players {
		if q == p {
			continue
		}
		if poorest == nil || q.Money < poorest.Money {
			poorest = q
		}
	}
	if poorest == nil {
		return ""
	}
	p.Pay(poorest, TransferAmount)
	return g.tracef("gave %d to %s", TransferAmount, poorest.ID)
}

// tracef formats only when an observer is attached.
func (g *Game) tracef(format string, args ...any) string {
	if g.obs == nil {
		return ""
	}
	return fmt.Sprintf(format, args...)
}
