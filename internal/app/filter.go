package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"agriwatch/internal/analysis"
)

// FilterOptions configure the filter command. Nil bounds are open.
type FilterOptions struct {
	Crop      string
	MinPrice  *float64
	MaxPrice  *float64
	MinVolume *float64
	MaxVolume *float64
}

// Filter narrows the crop's rows by price/volume range and prints the
// aggregate statistics of the survivors.
func (a *App) Filter(ctx context.Context, opts FilterOptions) error {
	analyzer, err := a.loadAnalyzer(ctx, opts.Crop)
	if err != nil {
		return err
	}

	result := analyzer.FilterStats(opts.Crop, analysis.RangeFilter{
		MinPrice:  opts.MinPrice,
		MaxPrice:  opts.MaxPrice,
		MinVolume: opts.MinVolume,
		MaxVolume: opts.MaxVolume,
	})
	if result.Count == 0 {
		fmt.Fprintln(os.Stdout, "無符合條件的資料")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "符合筆數\t%d\n", result.Count)
	fmt.Fprintf(writer, "平均價\t%.2f\n", result.PriceMean)
	fmt.Fprintf(writer, "最低價\t%.2f\n", result.PriceMin)
	fmt.Fprintf(writer, "最高價\t%.2f\n", result.PriceMax)
	fmt.Fprintf(writer, "價格標準差\t%.2f\n", result.PriceStd)
	fmt.Fprintf(writer, "總交易量\t%.2f\n", result.VolumeSum)
	fmt.Fprintf(writer, "平均交易量\t%.2f\n", result.VolumeMean)
	fmt.Fprintf(writer, "交易量範圍\t%.2f ~ %.2f\n", result.VolumeMin, result.VolumeMax)
	return writer.Flush()
}
