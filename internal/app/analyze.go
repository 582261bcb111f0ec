package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"agriwatch/internal/analysis"
)

// AnalyzeOptions configure the analyze command.
type AnalyzeOptions struct {
	Crop   string
	Method analysis.Method
	Date   *time.Time
}

// Analyze downloads the crop's data and prints its price statistics.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	analyzer, err := a.loadAnalyzer(ctx, opts.Crop)
	if err != nil {
		return err
	}

	stats, err := analyzer.Compute(opts.Crop, opts.Method, opts.Date)
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(os.Stdout, "無可用資料")
		return nil
	}
	if err != nil {
		return err
	}

	renderStats(stats)
	return nil
}

func renderStats(s analysis.Stats) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(writer, "作物\t%s\n", s.Crop)
	if s.DateFilter != nil {
		fmt.Fprintf(writer, "日期\t%s\n", s.DateFilter.Format("2006-01-02"))
	}
	fmt.Fprintf(writer, "筆數\t%d\n", s.Count)

	label := "平均價"
	if s.Method == analysis.MethodWeighted {
		label = "加權平均價"
		if s.Fallback {
			label = "平均價 (交易量為零, 改用簡單平均)"
		}
	}
	fmt.Fprintf(writer, "%s\t%.2f\n", label, s.Average)
	fmt.Fprintf(writer, "最低價\t%.2f\n", s.PriceMin)
	fmt.Fprintf(writer, "最高價\t%.2f\n", s.PriceMax)
	fmt.Fprintf(writer, "價格標準差\t%.2f\n", s.PriceStd)
	fmt.Fprintf(writer, "總交易量\t%.2f\n", s.VolumeSum)
	fmt.Fprintf(writer, "平均交易量\t%.2f\n", s.VolumeMean)
	fmt.Fprintf(writer, "最大交易量\t%.2f\n", s.VolumeMax)
	writer.Flush()

	if len(s.Regions) > 0 {
		fmt.Fprintln(os.Stdout)
		renderRegions(s.Regions)
	}
}

func renderRegions(regions []analysis.RegionStats) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "地區\t筆數\t平均價\t最低價\t最高價\t總交易量")
	for _, r := range regions {
		fmt.Fprintf(writer, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.Region, r.Count, r.PriceMean, r.PriceMin, r.PriceMax, r.VolumeSum)
	}
	writer.Flush()
}
