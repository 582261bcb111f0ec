package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"agriwatch/internal/analysis"
)

// TrendOptions configure the trend command.
type TrendOptions struct {
	Crop  string
	Limit int
}

// Trend prints the crop's recent daily mean prices.
func (a *App) Trend(ctx context.Context, opts TrendOptions) error {
	analyzer, err := a.loadAnalyzer(ctx, opts.Crop)
	if err != nil {
		return err
	}

	points := analyzer.PriceTrend(opts.Crop)
	if len(points) == 0 {
		fmt.Fprintln(os.Stdout, "無可用資料")
		return nil
	}
	if opts.Limit > 0 && len(points) > opts.Limit {
		points = points[len(points)-opts.Limit:]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "日期\t每日平均價")
	for _, p := range points {
		fmt.Fprintf(writer, "%s\t%.2f\n", p.Date.Format("2006-01-02"), p.Price)
	}
	return writer.Flush()
}

// SimilarOptions configure the similar command.
type SimilarOptions struct {
	Crop string
	TopN int
}

// Similar prints the crops whose price series correlate most strongly with
// the target's.
func (a *App) Similar(ctx context.Context, opts SimilarOptions) error {
	analyzer, err := a.loadAnalyzer(ctx, "")
	if err != nil {
		return err
	}

	ranked, err := analyzer.SimilarCrops(opts.Crop, opts.TopN)
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(os.Stdout, "無可用資料")
		return nil
	}
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Fprintln(os.Stdout, "無可比較的作物")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "作物\t相關係數")
	for _, s := range ranked {
		fmt.Fprintf(writer, "%s\t%.4f\n", s.Crop, s.Correlation)
	}
	return writer.Flush()
}
