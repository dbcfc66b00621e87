package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/bankroll/internal/game/engine"
	"github.com/cory-johannsen/bankroll/internal/game/player"
	"github.com/cory-johannsen/bankroll/internal/montecarlo"
	"github.com/cory-johannsen/bankroll/internal/report"
)

func sampleSummary() report.Summary {
	var tally montecarlo.Tally
	for i := 0; i < 3; i++ {
		tally.Add(engine.TrialResult{Terminated: true, Terminator: player.Red, Rounds: 40})
	}
	tally.Add(engine.TrialResult{Terminated: true, Terminator: player.Yellow, Rounds: 10})
	tally.Add(engine.TrialResult{Terminated: true, Terminator: player.Green, Rounds: 11})
	tally.Add(engine.TrialResult{Rounds: 500})

	return report.NewSummary(report.RunInfo{
		Config: montecarlo.Config{
			Trials:        6,
			RoundCap:      500,
			StartingMoney: 1_000_000,
		},
		Seed:    42,
		Workers: 2,
		Started: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed: 1500 * time.Millisecond,
	}, tally)
}

func TestNewSummary(t *testing.T) {
	s := sampleSummary()

	assert.NotEqual(t, [16]byte{}, [16]byte(s.RunID))
	assert.Equal(t, 6, s.Trials)
	require.Len(t, s.Shares, player.Count)
	assert.Equal(t, "Green", s.Shares[0].Participant)
	assert.Equal(t, 3, s.Shares[1].Terminations)
	assert.Equal(t, "50.00", s.Shares[1].Percent.StringFixed(2))
	assert.Equal(t, "16.67", s.Shares[0].Percent.StringFixed(2))
	assert.Equal(t, "0.00", s.Shares[2].Percent.StringFixed(2))
	assert.Equal(t, "16.67", s.UnterminatedPercent.StringFixed(2))
	assert.Equal(t, "28.20", s.MeanRounds.StringFixed(2))
	assert.Equal(t, 40, s.MaxRounds)
	assert.Equal(t, 1500*time.Millisecond, s.Elapsed())
}

func TestNewSummary_NoTrials(t *testing.T) {
	s := report.NewSummary(report.RunInfo{}, montecarlo.Tally{})
	for _, sh := range s.Shares {
		assert.True(t, sh.Percent.IsZero())
	}
	assert.True(t, s.MeanRounds.IsZero())
}

func TestNewSummary_DistinctRunIDs(t *testing.T) {
	assert.NotEqual(t, sampleSummary().RunID, sampleSummary().RunID)
}

func TestNewWriter(t *testing.T) {
	for _, f := range []string{"text", "", "JSON", "yaml"} {
		w, err := report.NewWriter(f)
		require.NoError(t, err, f)
		assert.NotNil(t, w)
	}
	_, err := report.NewWriter("xml")
	assert.Error(t, err)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.TextWriter{}.Write(&buf, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, "seed 42, 2 workers")
	assert.Contains(t, out, "starting money 1,000,000")
	assert.Contains(t, out, "Red")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "Unterminated")
	assert.Contains(t, out, "Mean rounds: 28.20 (max 40)")
	assert.Contains(t, out, "Elapsed: 1.5s")
}

func TestJSONWriter(t *testing.T) {
	s := sampleSummary()
	var buf bytes.Buffer
	require.NoError(t, report.JSONWriter{}.Write(&buf, s))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.RunID.String(), decoded["run_id"])
	assert.EqualValues(t, 6, decoded["trials"])
	assert.EqualValues(t, 1500, decoded["elapsed_ms"])
	assert.Equal(t, "28.2", decoded["mean_rounds"])
	shares, ok := decoded["shares"].([]any)
	require.True(t, ok)
	assert.Len(t, shares, player.Count)
	assert.NotContains(t, decoded, "Tally")
}

func TestYAMLWriter(t *testing.T) {
	s := sampleSummary()
	var buf bytes.Buffer
	require.NoError(t, report.YAMLWriter{}.Write(&buf, s))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.RunID.String(), decoded["run_id"])
	assert.Equal(t, 6, decoded["trials"])
	assert.Equal(t, 500, decoded["round_cap"])
	shares, ok := decoded["shares"].([]any)
	require.True(t, ok)
	first, ok := shares[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Green", first["participant"])
}

func TestTrialLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := report.NewTrialLogger(zap.New(core))

	var _ montecarlo.TrialSink = sink
	sink.Trial(3, engine.TrialResult{Terminated: true, Terminator: player.Blue, Rounds: 12})
	sink.Trial(4, engine.TrialResult{Rounds: 500})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "trial terminated", entries[0].Message)
	assert.Equal(t, "Blue", entries[0].ContextMap()["terminator"])
	assert.Equal(t, "trial unterminated", entries[1].Message)
	assert.EqualValues(t, 4, entries[1].ContextMap()["trial"])
}
