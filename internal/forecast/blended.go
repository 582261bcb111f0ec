package forecast

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"agriwatch/internal/analysis"
)

// blendedPredictor combines the last price with trailing moving averages and
// a calendar-month seasonal factor into a single interval estimate.
type blendedPredictor struct{}

func (p *blendedPredictor) Name() string { return StrategyBlended }

func (p *blendedPredictor) Predict(series []analysis.PricePoint, horizon int, now time.Time) (*Forecast, error) {
	pts := sortedCopy(series)
	if len(pts) < 2 {
		return nil, ErrInsufficientData
	}

	prices := make([]float64, len(pts))
	for i, pt := range pts {
		prices[i] = pt.Price
	}

	lastPrice := prices[len(prices)-1]
	ma7 := trailingMean(prices, 7)
	ma30 := trailingMean(prices, 30)
	factor := seasonalFactor(pts, now)

	base := 0.4*lastPrice + 0.4*ma7 + 0.2*ma30
	predicted := base * factor

	// Normal-approximation 95% interval around the point estimate.
	half := 1.96 * stat.StdDev(prices, nil) / math.Sqrt(float64(len(prices)))

	return &Forecast{
		Strategy:       StrategyBlended,
		Observations:   len(pts),
		LastPrice:      lastPrice,
		Predicted:      predicted,
		Lower:          predicted - half,
		Upper:          predicted + half,
		SeasonalFactor: factor,
		MA7:            ma7,
		MA30:           ma30,
		Trend:          trendLabel(prices),
	}, nil
}

// trailingMean is the mean of the last window values. Series shorter than
// the window fall back to the mean of everything available instead of
// propagating an undefined value into the blend.
func trailingMean(prices []float64, window int) float64 {
	if len(prices) < window {
		return stat.Mean(prices, nil)
	}
	return stat.Mean(prices[len(prices)-window:], nil)
}

// seasonalFactor is the ratio of the current calendar month's historical
// mean price to the mean of all monthly means. Months with no history
// default to a neutral 1.0.
func seasonalFactor(pts []analysis.PricePoint, now time.Time) float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, pt := range pts {
		m := int(pt.Date.Month())
		sums[m] += pt.Price
		counts[m]++
	}

	current, ok := sums[int(now.Month())]
	if !ok {
		return 1.0
	}
	currentMean := current / float64(counts[int(now.Month())])

	var total float64
	for m, s := range sums {
		total += s / float64(counts[m])
	}
	allMean := total / float64(len(sums))
	if allMean == 0 {
		return 1.0
	}
	return currentMean / allMean
}

// trendLabel compares the two most recent 7-day moving averages. A series
// too short to produce two full windows reads as stable.
func trendLabel(prices []float64) Trend {
	if len(prices) < 8 {
		return TrendStable
	}
	n := len(prices)
	cur := stat.Mean(prices[n-7:], nil)
	prev := stat.Mean(prices[n-8:n-1], nil)
	switch {
	case cur > prev:
		return TrendRising
	case cur < prev:
		return TrendFalling
	default:
		return TrendStable
	}
}
