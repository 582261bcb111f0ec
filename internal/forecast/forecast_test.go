package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agriwatch/internal/analysis"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func series(prices ...float64) []analysis.PricePoint {
	out := make([]analysis.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = analysis.PricePoint{Date: day(i + 1), Price: p}
	}
	return out
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New("magic")
	require.Error(t, err)
}

func TestLinearPredictsTrend(t *testing.T) {
	p, err := New(StrategyLinear)
	require.NoError(t, err)

	// Strictly linear series inside a single month would be rank
	// deficient (month collinear with the intercept), so span two months.
	pts := []analysis.PricePoint{
		{Date: time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC), Price: 10},
		{Date: time.Date(2025, time.March, 29, 0, 0, 0, 0, time.UTC), Price: 12},
		{Date: time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), Price: 14},
		{Date: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), Price: 18},
		{Date: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), Price: 20},
	}

	got, err := p.Predict(pts, 3, day(1))
	require.NoError(t, err)
	require.Equal(t, StrategyLinear, got.Strategy)
	require.Len(t, got.Points, 3)

	require.Equal(t, time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC), got.Points[0].Date)
	// The series rises 2/day; the extrapolation should keep climbing.
	require.Greater(t, got.Points[0].Price, 20.0)
	require.Greater(t, got.Points[2].Price, got.Points[0].Price)
}

func TestLinearDefaultHorizon(t *testing.T) {
	p, _ := New(StrategyLinear)
	pts := []analysis.PricePoint{
		{Date: time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), Price: 10},
		{Date: time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), Price: 12},
		{Date: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), Price: 14},
	}
	got, err := p.Predict(pts, 0, day(1))
	require.NoError(t, err)
	require.Len(t, got.Points, DefaultHorizon)
}

func TestLinearIllPosedSingleDay(t *testing.T) {
	p, _ := New(StrategyLinear)

	pts := []analysis.PricePoint{
		{Date: day(5), Price: 10},
		{Date: day(5), Price: 20},
	}
	_, err := p.Predict(pts, 7, day(1))
	require.ErrorIs(t, err, ErrIllPosed)

	_, err = p.Predict([]analysis.PricePoint{{Date: day(5), Price: 10}}, 7, day(1))
	require.ErrorIs(t, err, ErrIllPosed)
}

func TestBlendedShortSeries(t *testing.T) {
	p, _ := New(StrategyBlended)
	_, err := p.Predict(series(10), 0, day(1))
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestBlendedPointEstimate(t *testing.T) {
	p, _ := New(StrategyBlended)

	pts := series(10, 10, 10, 10)
	got, err := p.Predict(pts, 0, day(1))
	require.NoError(t, err)

	// Flat series in the current month: MA fallbacks and the seasonal
	// factor are all neutral, so the estimate equals the last price.
	require.InDelta(t, 10.0, got.Predicted, 1e-9)
	require.InDelta(t, 1.0, got.SeasonalFactor, 1e-9)
	require.InDelta(t, 10.0, got.MA7, 1e-9)
	require.InDelta(t, 10.0, got.MA30, 1e-9)
	require.InDelta(t, 0.0, got.Upper-got.Lower, 1e-9)
	require.Equal(t, TrendStable, got.Trend)
}

func TestBlendedWeights(t *testing.T) {
	p, _ := New(StrategyBlended)

	pts := series(10, 20) // last=20, MA7=MA30=mean=15
	now := day(1)         // March has history, single month => factor 1.0
	got, err := p.Predict(pts, 0, now)
	require.NoError(t, err)

	want := 0.4*20 + 0.4*15 + 0.2*15
	require.InDelta(t, want, got.Predicted, 1e-9)

	sd := math.Sqrt(50.0) // sample stddev of {10,20} is sqrt(50)
	half := 1.96 * sd / math.Sqrt(2)
	require.InDelta(t, want-half, got.Lower, 1e-9)
	require.InDelta(t, want+half, got.Upper, 1e-9)
}

func TestBlendedSeasonalFactorDefault(t *testing.T) {
	p, _ := New(StrategyBlended)

	pts := series(10, 20, 30) // history only in March
	december := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	got, err := p.Predict(pts, 0, december)
	require.NoError(t, err)
	require.InDelta(t, 1.0, got.SeasonalFactor, 1e-9)
}

func TestBlendedTrendLabels(t *testing.T) {
	p, _ := New(StrategyBlended)

	rising, err := p.Predict(series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 0, day(1))
	require.NoError(t, err)
	require.Equal(t, TrendRising, rising.Trend)

	falling, err := p.Predict(series(10, 9, 8, 7, 6, 5, 4, 3, 2, 1), 0, day(1))
	require.NoError(t, err)
	require.Equal(t, TrendFalling, falling.Trend)
}
