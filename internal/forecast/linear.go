package forecast

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"agriwatch/internal/analysis"
)

// linearPredictor fits price ~ β0 + β1·dayIndex + β2·month by ordinary
// least squares and extrapolates the next horizon days.
type linearPredictor struct{}

func (p *linearPredictor) Name() string { return StrategyLinear }

func (p *linearPredictor) Predict(series []analysis.PricePoint, horizon int, now time.Time) (*Forecast, error) {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	pts := sortedCopy(series)
	if len(pts) < 2 {
		return nil, ErrIllPosed
	}

	minDate := pts[0].Date
	distinct := make(map[int]struct{}, len(pts))
	for _, pt := range pts {
		distinct[dayIndex(minDate, pt.Date)] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, ErrIllPosed
	}

	x := mat.NewDense(len(pts), 3, nil)
	y := mat.NewVecDense(len(pts), nil)
	for i, pt := range pts {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(dayIndex(minDate, pt.Date)))
		x.Set(i, 2, float64(pt.Date.Month()))
		y.SetVec(i, pt.Price)
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		// Rank-deficient design (e.g. every observation in the same
		// month) is surfaced like the degenerate day-index case.
		return nil, ErrIllPosed
	}

	b0 := beta.At(0, 0)
	b1 := beta.At(1, 0)
	b2 := beta.At(2, 0)

	last := pts[len(pts)-1].Date
	out := make([]analysis.PricePoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		future := last.AddDate(0, 0, i)
		predicted := b0 +
			b1*float64(dayIndex(minDate, future)) +
			b2*float64(future.Month())
		out = append(out, analysis.PricePoint{Date: future, Price: predicted})
	}

	return &Forecast{
		Strategy:     StrategyLinear,
		Observations: len(pts),
		Points:       out,
	}, nil
}

func dayIndex(min, d time.Time) int {
	return int(d.Sub(min).Hours() / 24)
}

// sortedCopy re-sorts locally; callers must not rely on table row order.
func sortedCopy(series []analysis.PricePoint) []analysis.PricePoint {
	pts := make([]analysis.PricePoint, len(series))
	copy(pts, series)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })
	return pts
}
