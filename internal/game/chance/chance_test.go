package chance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bankroll/internal/game/chance"
	"github.com/cory-johannsen/bankroll/internal/game/dice"
	"github.com/cory-johannsen/bankroll/internal/game/player"
	"github.com/cory-johannsen/bankroll/internal/testutil"
)

func TestPlayCasino(t *testing.T) {
	cases := []struct {
		name  string
		draws []int
		delta int
	}{
		{"odd roulette and triple ones", []int{1, 0, 0, 0}, -70000 + 80000 + 150000},
		{"even roulette and jackpot", []int{2, 4, 4, 4}, -70000 + 300000},
		{"even roulette and a pair", []int{0, 0, 1, 0}, -70000 + 50000},
		{"odd roulette and no match", []int{35, 0, 1, 2}, -70000 + 80000},
		{"nothing", []int{12, 4, 3, 2}, -70000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := testutil.NewSequenceSource(tc.draws...)
			out := chance.PlayCasino(src)
			assert.Equal(t, tc.delta, out.Delta)
			assert.Equal(t, tc.draws[0], out.Roulette)
			assert.Len(t, out.Reels.Dice, 3)
			assert.Zero(t, src.Remaining())
		})
	}
}

func TestPlayCasino_DeltaBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		out := chance.PlayCasino(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		if out.Delta < chance.CasinoEntry || out.Delta > chance.CasinoEntry+chance.RouletteOddWin+chance.SlotJackpotWin {
			rt.Fatalf("casino delta %d out of bounds", out.Delta)
		}
		if out.Roulette < 0 || out.Roulette >= chance.RouletteNumbers {
			rt.Fatalf("roulette %d out of range", out.Roulette)
		}
	})
}

func TestPlayDiceGame(t *testing.T) {
	cases := []struct {
		draws []int
		delta int
	}{
		{[]int{0, 0}, 300000},
		{[]int{0, 3}, 100000},
		{[]int{3, 0}, 100000},
		{[]int{2, 3}, 0},
		{[]int{4, 4}, 0},
	}
	for _, tc := range cases {
		out := chance.PlayDiceGame(testutil.NewSequenceSource(tc.draws...))
		assert.Equal(t, tc.delta, out.Delta, "draws %v", tc.draws)
	}
}

func TestRunHorseRace(t *testing.T) {
	cases := []struct {
		draw       int
		percentile int
		delta      int
	}{
		{0, 1, 100000},
		{44, 45, 100000},
		{45, 46, -50000},
		{98, 99, -50000},
	}
	for _, tc := range cases {
		out := chance.RunHorseRace(testutil.NewSequenceSource(tc.draw))
		assert.Equal(t, tc.percentile, out.Percentile)
		assert.Equal(t, tc.delta, out.Delta, "percentile %d", tc.percentile)
	}
}

func TestDrawMarket_SevenEvents(t *testing.T) {
	for i := 0; i < 7; i++ {
		e := chance.DrawMarket(testutil.NewSequenceSource(i))
		assert.NotEqual(t, "unknown", e.String())
	}
	assert.Panics(t, func() { chance.DrawMarket(testutil.NewSequenceSource(7)) },
		"the market has exactly seven events")
}

func TestDrawMarket_AllEventsReachable(t *testing.T) {
	src := dice.NewSeededSource(99)
	seen := make(map[chance.MarketEvent]int)
	for i := 0; i < 7000; i++ {
		seen[chance.DrawMarket(src)]++
	}
	assert.Len(t, seen, 7)
	for e, n := range seen {
		assert.InDelta(t, 1000, n, 200, "event %s", e)
	}
}

func TestMarketEvent_Delta(t *testing.T) {
	s := player.Stocks{Oil: 2, Electricity: 1, Steel: 3}
	cases := map[chance.MarketEvent]int{
		chance.OilRises:         10000,
		chance.OilFalls:         -20000,
		chance.SteelRises:       15000,
		chance.SteelFalls:       -30000,
		chance.ElectricityRises: 5000,
		chance.ElectricityFalls: -10000,
		chance.AllRise:          30000,
	}
	for e, want := range cases {
		assert.Equal(t, want, e.Delta(s), e.String())
	}
}

func TestMarketEvent_NoHoldingsNoChange(t *testing.T) {
	for i := 0; i < 7; i++ {
		assert.Zero(t, chance.MarketEvent(i).Delta(player.Stocks{}))
	}
}
