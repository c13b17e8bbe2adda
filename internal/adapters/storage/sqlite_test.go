package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testReport(runID string, at time.Time) domain.Report {
	return domain.Report{
		RunID:       runID,
		League:      "Settlers",
		GeneratedAt: at,
		DivineRate:  200,
		Results: []domain.AnalysisResult{
			{
				StrategyName:   "scarab_gamble",
				ItemOrCombo:    "Scarab: Full Pool (3-to-1)",
				InputCost:      domain.Float(1),
				ProfitPerFlip:  2,
				ProfitPerHour:  domain.Float(240),
				ProfitStdDev:   domain.Float(3.74),
				Risk:           domain.RiskLow,
				LiquidityScore: domain.Float(0.2),
			},
			{
				StrategyName:  "gem_invest",
				ItemOrCombo:   "Gem Invest: Fireball",
				ProfitPerFlip: 206.5,
				Risk:          domain.RiskInvestment,
				LongTerm:      true,
				// InputCost y demás opcionales a nil: deben sobrevivir el round-trip
			},
		},
	}
}

func TestSaveReport_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReport(ctx, testReport("run-1", at)))

	points, err := s.GetHistory(ctx, "scarab_gamble", "Settlers")
	require.NoError(t, err)
	require.Len(t, points, 1)

	p := points[0]
	assert.Equal(t, at, p.Timestamp)
	assert.Equal(t, "run-1", p.RunID)
	assert.Equal(t, "Scarab: Full Pool (3-to-1)", p.ItemOrCombo)
	assert.Equal(t, 2.0, p.ProfitPerFlip)
	require.NotNil(t, p.ProfitPerHour)
	assert.Equal(t, 240.0, *p.ProfitPerHour)
	assert.Equal(t, domain.RiskLow, p.Risk)
	require.NotNil(t, p.LiquidityScore)
	assert.Equal(t, 0.2, *p.LiquidityScore)
	assert.False(t, p.LongTerm)
}

func TestSaveReport_NilOptionalsSurvive(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, testReport("run-1", time.Now())))

	points, err := s.GetHistory(ctx, "gem_invest", "Settlers")
	require.NoError(t, err)
	require.Len(t, points, 1)

	assert.Nil(t, points[0].ProfitPerHour)
	assert.Nil(t, points[0].LiquidityScore)
	assert.Equal(t, domain.RiskInvestment, points[0].Risk)
	assert.True(t, points[0].LongTerm)
}

func TestSaveReport_SameTimestampOverwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReport(ctx, testReport("run-1", at)))

	// Mismo segundo, mismo ítem: sobreescribe, nunca duplica
	second := testReport("run-2", at)
	second.Results[0].ProfitPerFlip = 5
	require.NoError(t, s.SaveReport(ctx, second))

	points, err := s.GetHistory(ctx, "scarab_gamble", "Settlers")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "run-2", points[0].RunID)
	assert.Equal(t, 5.0, points[0].ProfitPerFlip)
}

func TestSaveReport_AppendsNewTimestamps(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	first := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveReport(ctx, testReport("run-1", first)))
	require.NoError(t, s.SaveReport(ctx, testReport("run-2", first.Add(15*time.Minute))))

	points, err := s.GetHistory(ctx, "scarab_gamble", "Settlers")
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Más antiguos primero
	assert.True(t, points[0].Timestamp.Before(points[1].Timestamp))
	assert.Equal(t, "run-1", points[0].RunID)
	assert.Equal(t, "run-2", points[1].RunID)
}

func TestGetHistory_FiltersByStrategyAndLeague(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, testReport("run-1", time.Now())))

	points, err := s.GetHistory(ctx, "scarab_gamble", "Necropolis")
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = s.GetHistory(ctx, "tattoo_flip", "Settlers")
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSaveReport_EmptyReportIsNoop(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.SaveReport(context.Background(), domain.Report{RunID: "x"}))
}
