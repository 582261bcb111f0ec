package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"agriwatch/internal/forecast"
)

// PredictOptions configure the predict command.
type PredictOptions struct {
	Crop     string
	Strategy string
	Horizon  int
}

// Predict runs the configured forecasting strategy over the crop's daily
// mean-price series and prints the result.
func (a *App) Predict(ctx context.Context, opts PredictOptions) error {
	if opts.Strategy == "" {
		opts.Strategy = a.Config.Predictor.Strategy
	}
	if opts.Horizon <= 0 {
		opts.Horizon = a.Config.Predictor.Horizon
	}

	predictor, err := forecast.New(opts.Strategy)
	if err != nil {
		return err
	}

	analyzer, err := a.loadAnalyzer(ctx, opts.Crop)
	if err != nil {
		return err
	}

	series := analyzer.PriceTrend(opts.Crop)
	result, err := predictor.Predict(series, opts.Horizon, time.Now())
	if errors.Is(err, forecast.ErrIllPosed) || errors.Is(err, forecast.ErrInsufficientData) {
		fmt.Fprintln(os.Stdout, "無可用資料")
		return nil
	}
	if err != nil {
		return err
	}

	renderForecast(result)
	return nil
}

func renderForecast(f *forecast.Forecast) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "策略\t%s\n", f.Strategy)
	fmt.Fprintf(writer, "觀測筆數\t%d\n", f.Observations)

	if len(f.Points) > 0 {
		writer.Flush()
		writer = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "日期\t預測價")
		for _, p := range f.Points {
			fmt.Fprintf(writer, "%s\t%.2f\n", p.Date.Format("2006-01-02"), p.Price)
		}
		writer.Flush()
		return
	}

	fmt.Fprintf(writer, "最新價格\t%.2f\n", f.LastPrice)
	fmt.Fprintf(writer, "預測價格\t%.2f\n", f.Predicted)
	fmt.Fprintf(writer, "預測區間\t%.2f ~ %.2f\n", f.Lower, f.Upper)
	fmt.Fprintf(writer, "季節係數\t%.4f\n", f.SeasonalFactor)
	fmt.Fprintf(writer, "MA7\t%.2f\n", f.MA7)
	fmt.Fprintf(writer, "MA30\t%.2f\n", f.MA30)
	fmt.Fprintf(writer, "趨勢\t%s\n", f.Trend)
	writer.Flush()
}
