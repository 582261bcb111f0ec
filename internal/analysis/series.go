package analysis

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"agriwatch/internal/dataset"
)

// PricePoint is one day of a crop's mean-price series.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceTrend groups a crop's rows by date, averaging price per day, sorted
// ascending. Feeds charting and the predictors.
func (a *Analyzer) PriceTrend(crop string) []PricePoint {
	rows := a.filterCrop(crop, nil)
	return dailyMeans(rows)
}

func dailyMeans(rows []dataset.Record) []PricePoint {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, r := range rows {
		sums[r.Date] += r.AvgPrice
		counts[r.Date]++
	}

	out := make([]PricePoint, 0, len(sums))
	for d, s := range sums {
		out = append(out, PricePoint{Date: d, Price: s / float64(counts[d])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// VolumeByMarket sums a crop's volume per market. Drives the distribution
// chart and the market sheet of the Excel report.
func (a *Analyzer) VolumeByMarket(crop string) map[string]float64 {
	rows := a.filterCrop(crop, nil)
	out := make(map[string]float64)
	for _, r := range rows {
		out[r.MarketName] += r.Volume
	}
	return out
}

// PriceDistribution returns the crop's raw per-transaction prices in input
// order, for histogram rendering.
func (a *Analyzer) PriceDistribution(crop string) []float64 {
	rows := a.filterCrop(crop, nil)
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.AvgPrice
	}
	return out
}

// MonthStats pools observations of one calendar month across all years.
type MonthStats struct {
	Month      int
	Count      int
	PriceMean  float64
	PriceStd   float64
	VolumeSum  float64
	VolumeMean float64
}

// SeasonalStats groups a crop's rows by calendar month (1..12), years pooled
// together. Seasonality here means calendar-month effect, not year-over-year.
func (a *Analyzer) SeasonalStats(crop string) map[int]MonthStats {
	rows := a.filterCrop(crop, nil)
	byMonth := make(map[int][]dataset.Record)
	for _, r := range rows {
		byMonth[r.Month] = append(byMonth[r.Month], r)
	}

	out := make(map[int]MonthStats, len(byMonth))
	for m, members := range byMonth {
		prices := make([]float64, len(members))
		var volumeSum float64
		for i, r := range members {
			prices[i] = r.AvgPrice
			volumeSum += r.Volume
		}
		out[m] = MonthStats{
			Month:      m,
			Count:      len(members),
			PriceMean:  stat.Mean(prices, nil),
			PriceStd:   stat.StdDev(prices, nil),
			VolumeSum:  volumeSum,
			VolumeMean: volumeSum / float64(len(members)),
		}
	}
	return out
}

// GroupStats carries the per-group statistics shared by the daily, monthly,
// and market sheets of the Excel report.
type GroupStats struct {
	Key        string
	Count      int
	PriceMean  float64
	PriceMin   float64
	PriceMax   float64
	PriceStd   float64
	VolumeSum  float64
	VolumeMean float64
}

// DailyStats aggregates a crop per date, ascending.
func (a *Analyzer) DailyStats(crop string) []GroupStats {
	rows := a.filterCrop(crop, nil)
	return groupStats(rows, func(r dataset.Record) string {
		return r.Date.Format("2006-01-02")
	})
}

// MonthlyStats aggregates a crop per calendar month.
func (a *Analyzer) MonthlyStats(crop string) []GroupStats {
	rows := a.filterCrop(crop, nil)
	return groupStats(rows, func(r dataset.Record) string {
		return fmt.Sprintf("%02d", r.Month)
	})
}

// MarketStats aggregates a crop per market name.
func (a *Analyzer) MarketStats(crop string) []GroupStats {
	rows := a.filterCrop(crop, nil)
	return groupStats(rows, func(r dataset.Record) string {
		return r.MarketName
	})
}

func groupStats(rows []dataset.Record, key func(dataset.Record) string) []GroupStats {
	groups := make(map[string][]dataset.Record)
	var order []string
	for _, r := range rows {
		k := key(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}
	sort.Strings(order)

	out := make([]GroupStats, 0, len(order))
	for _, k := range order {
		members := groups[k]
		prices := make([]float64, len(members))
		var volumeSum float64
		for i, r := range members {
			prices[i] = r.AvgPrice
			volumeSum += r.Volume
		}
		mn, mx := minMax(prices)
		out = append(out, GroupStats{
			Key:        k,
			Count:      len(members),
			PriceMean:  stat.Mean(prices, nil),
			PriceMin:   mn,
			PriceMax:   mx,
			PriceStd:   stat.StdDev(prices, nil),
			VolumeSum:  volumeSum,
			VolumeMean: volumeSum / float64(len(members)),
		})
	}
	return out
}

// RangeFilter narrows a crop's rows by price and volume bounds. Nil bounds
// are open.
type RangeFilter struct {
	MinPrice  *float64
	MaxPrice  *float64
	MinVolume *float64
	MaxVolume *float64
}

// FilterResult summarises the rows passing a RangeFilter.
type FilterResult struct {
	Count      int
	PriceMean  float64
	PriceMin   float64
	PriceMax   float64
	PriceStd   float64
	VolumeSum  float64
	VolumeMean float64
	VolumeMin  float64
	VolumeMax  float64
}

// FilterStats applies the range filter to a crop's rows and aggregates the
// survivors. A zero Count means nothing matched; that is not an error.
func (a *Analyzer) FilterStats(crop string, f RangeFilter) FilterResult {
	rows := a.filterCrop(crop, nil)

	var prices, volumes []float64
	for _, r := range rows {
		if f.MinPrice != nil && r.AvgPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && r.AvgPrice > *f.MaxPrice {
			continue
		}
		if f.MinVolume != nil && r.Volume < *f.MinVolume {
			continue
		}
		if f.MaxVolume != nil && r.Volume > *f.MaxVolume {
			continue
		}
		prices = append(prices, r.AvgPrice)
		volumes = append(volumes, r.Volume)
	}

	if len(prices) == 0 {
		return FilterResult{}
	}

	pMin, pMax := minMax(prices)
	vMin, vMax := minMax(volumes)
	vSum := sum(volumes)
	return FilterResult{
		Count:      len(prices),
		PriceMean:  stat.Mean(prices, nil),
		PriceMin:   pMin,
		PriceMax:   pMax,
		PriceStd:   stat.StdDev(prices, nil),
		VolumeSum:  vSum,
		VolumeMean: vSum / float64(len(volumes)),
		VolumeMin:  vMin,
		VolumeMax:  vMax,
	}
}

// LatestDailyMean returns the mean price of a crop's most recent trading
// date. Used by the alert checker as the "current price".
func (a *Analyzer) LatestDailyMean(crop string) (float64, time.Time, error) {
	trend := a.PriceTrend(crop)
	if len(trend) == 0 {
		return 0, time.Time{}, ErrNoData
	}
	last := trend[len(trend)-1]
	return last.Price, last.Date, nil
}
