package export

import (
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"agriwatch/internal/analysis"
)

// TrendChartPNG renders a crop's daily mean price with 7 and 30 day
// moving averages.
func (e *Exporter) TrendChartPNG(path, crop string, a *analysis.Analyzer) error {
	trend := a.PriceTrend(crop)
	if len(trend) == 0 {
		return analysis.ErrNoData
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, len(trend))
	daily := make([]float64, len(trend))
	for i, p := range trend {
		x[i] = p.Date
		daily[i] = p.Price
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price (NTD/kg)",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    crop,
				XValues: x,
				YValues: daily,
			},
			chart.TimeSeries{
				Name:    "MA7",
				XValues: x,
				YValues: rollingMean(daily, 7),
			},
			chart.TimeSeries{
				Name:    "MA30",
				XValues: x,
				YValues: rollingMean(daily, 30),
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("繪製走勢圖失敗: %w", err)
	}
	e.logger.Info().Str("crop", crop).Str("path", path).Msg("走勢圖已匯出")
	return nil
}

// rollingMean averages the trailing window at each index, using every
// available point before the window fills.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}
