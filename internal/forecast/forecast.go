// Package forecast projects a crop's price from its daily mean-price series.
// Two strategies are selectable: "linear" fits an ordinary least squares
// model and extrapolates a multi-day horizon; "blended" combines moving
// averages with a seasonal factor into a single interval estimate.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"agriwatch/internal/analysis"
)

const (
	StrategyLinear  = "linear"
	StrategyBlended = "blended"

	// DefaultHorizon is the number of future days the linear strategy
	// projects when the caller does not override it.
	DefaultHorizon = 7
)

// ErrIllPosed reports that the series cannot support a regression (fewer
// than two distinct day indexes, or a singular design matrix).
var ErrIllPosed = errors.New("forecast: 資料不足以進行迴歸")

// ErrInsufficientData reports that the series is too short for the blended
// strategy.
var ErrInsufficientData = errors.New("forecast: 資料不足以進行預測")

// Trend labels the direction of the recent 7-day moving average.
type Trend string

const (
	TrendRising  Trend = "上升"
	TrendFalling Trend = "下降"
	TrendStable  Trend = "穩定"
)

// Forecast is the outcome of a prediction. The linear strategy fills Points;
// the blended strategy fills the single-estimate fields.
type Forecast struct {
	Strategy     string
	Observations int

	// Linear extrapolation.
	Points []analysis.PricePoint

	// Blended estimate.
	LastPrice      float64
	Predicted      float64
	Lower          float64
	Upper          float64
	SeasonalFactor float64
	MA7            float64
	MA30           float64
	Trend          Trend
}

// Predictor projects future prices from a chronological series.
type Predictor interface {
	Name() string
	Predict(series []analysis.PricePoint, horizon int, now time.Time) (*Forecast, error)
}

// New returns the predictor registered under the given strategy name.
func New(strategy string) (Predictor, error) {
	switch strategy {
	case StrategyLinear:
		return &linearPredictor{}, nil
	case StrategyBlended:
		return &blendedPredictor{}, nil
	}
	return nil, fmt.Errorf("forecast: 未知的預測策略 %q", strategy)
}
