// Package analysis computes per-crop statistics over a cleaned dataset: the
// weighted/simple/regional summaries behind the main display, the daily and
// seasonal groupings that feed charts and exports, and the similar-crop
// ranking. Results of Compute are cached per (crop, method, date filter)
// until the owner invalidates the cache on reload.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"agriwatch/internal/dataset"
	"agriwatch/internal/region"
)

// Method selects the calculation behind Compute.
type Method string

const (
	MethodWeighted Method = "weighted"
	MethodSimple   Method = "simple"
	MethodRegional Method = "regional"
)

// ParseMethod maps a CLI/config string onto a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodWeighted, MethodSimple, MethodRegional:
		return Method(s), nil
	}
	return "", fmt.Errorf("analysis: 未知的計算方式 %q", s)
}

// ErrNoData reports that a crop/date filter matched zero rows. Callers render
// this as "無可用資料"; it is a valid outcome, not a failure.
var ErrNoData = errors.New("analysis: 無可用資料")

// RegionStats summarises one geographic bucket.
type RegionStats struct {
	Region     region.Region
	Count      int
	PriceMean  float64
	PriceMin   float64
	PriceMax   float64
	VolumeSum  float64
	VolumeMean float64
}

// Stats is the result of Compute. Averages are kept at full precision;
// rendering rounds to two decimals.
type Stats struct {
	Crop       string
	Method     Method
	DateFilter *time.Time
	Count      int

	// Average is the weighted or simple mean price depending on Method.
	// Fallback marks a weighted computation that degraded to the simple
	// mean because total volume was zero.
	Average  float64
	Fallback bool

	PriceMin float64
	PriceMax float64
	PriceStd float64

	VolumeSum  float64
	VolumeMean float64
	VolumeMax  float64

	Regions []RegionStats // populated for MethodRegional only
}

type cacheKey struct {
	crop   string
	method Method
	filter string
}

const filterAll = "ALL"

func newCacheKey(crop string, m Method, dateFilter *time.Time) cacheKey {
	f := filterAll
	if dateFilter != nil {
		f = dateFilter.UTC().Format("2006-01-02")
	}
	return cacheKey{crop: crop, method: m, filter: f}
}

// Analyzer owns the cleaned table for a session together with the result
// cache. The table is immutable; the cache is the only mutable state and is
// mutex-guarded so a watch loop can share the instance with CLI reads.
type Analyzer struct {
	table *dataset.Table

	mu    sync.Mutex
	cache map[cacheKey]Stats
	scans int
}

// New wraps a cleaned table in an Analyzer with an empty cache.
func New(table *dataset.Table) *Analyzer {
	return &Analyzer{table: table, cache: make(map[cacheKey]Stats)}
}

// Table exposes the underlying cleaned dataset (read-only).
func (a *Analyzer) Table() *dataset.Table { return a.table }

// Invalidate clears the whole result cache. The session controller calls
// this whenever the table is replaced or the date filter changes.
func (a *Analyzer) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache = make(map[cacheKey]Stats)
}

// TableScans reports how many full-table filter passes have run. Used by
// tests to assert cache hits avoid rescanning.
func (a *Analyzer) TableScans() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scans
}

// filterCrop selects the rows for a crop, optionally narrowed to a single
// Gregorian date. Both sides of the date comparison are normalised dates;
// the Minguo text form is display-only.
func (a *Analyzer) filterCrop(crop string, dateFilter *time.Time) []dataset.Record {
	a.mu.Lock()
	a.scans++
	a.mu.Unlock()

	var want time.Time
	if dateFilter != nil {
		want = dateFilter.UTC().Truncate(24 * time.Hour)
	}

	var out []dataset.Record
	for _, rec := range a.table.Records() {
		if rec.CropName != crop {
			continue
		}
		if dateFilter != nil && !rec.Date.Equal(want) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// CropRecords returns all cleaned rows for a crop in input order.
func (a *Analyzer) CropRecords(crop string) []dataset.Record {
	return a.filterCrop(crop, nil)
}

// Compute runs the selected statistic over the crop's rows. A successful
// result is cached under its exact input key; identical follow-up calls are
// served from the cache without touching the table.
func (a *Analyzer) Compute(crop string, m Method, dateFilter *time.Time) (Stats, error) {
	key := newCacheKey(crop, m, dateFilter)

	a.mu.Lock()
	if cached, ok := a.cache[key]; ok {
		a.mu.Unlock()
		return cached, nil
	}
	a.mu.Unlock()

	rows := a.filterCrop(crop, dateFilter)
	if len(rows) == 0 {
		return Stats{}, ErrNoData
	}

	s := Stats{Crop: crop, Method: m, DateFilter: dateFilter, Count: len(rows)}

	prices := make([]float64, len(rows))
	volumes := make([]float64, len(rows))
	for i, r := range rows {
		prices[i] = r.AvgPrice
		volumes[i] = r.Volume
	}

	s.PriceMin, s.PriceMax = minMax(prices)
	s.PriceStd = stat.StdDev(prices, nil)
	s.VolumeSum = sum(volumes)
	s.VolumeMean = s.VolumeSum / float64(len(volumes))
	_, s.VolumeMax = minMax(volumes)

	switch m {
	case MethodWeighted:
		if s.VolumeSum > 0 {
			var weighted float64
			for i := range prices {
				weighted += prices[i] * volumes[i]
			}
			s.Average = weighted / s.VolumeSum
		} else {
			// Zero total volume makes the weights degenerate; fall back
			// to the simple mean rather than dividing by zero.
			s.Average = stat.Mean(prices, nil)
			s.Fallback = true
		}
	case MethodSimple:
		s.Average = stat.Mean(prices, nil)
	case MethodRegional:
		s.Regions = regionalBreakdown(rows)
		s.Average = stat.Mean(prices, nil)
	default:
		return Stats{}, fmt.Errorf("analysis: 未知的計算方式 %q", m)
	}

	a.mu.Lock()
	a.cache[key] = s
	a.mu.Unlock()
	return s, nil
}

// regionalBreakdown partitions rows by region, reported in the fixed
// classification order for determinism.
func regionalBreakdown(rows []dataset.Record) []RegionStats {
	buckets := make(map[region.Region][]dataset.Record)
	for _, r := range rows {
		reg := region.Of(r.MarketName)
		buckets[reg] = append(buckets[reg], r)
	}

	var out []RegionStats
	for _, reg := range region.All() {
		members := buckets[reg]
		if len(members) == 0 {
			continue
		}
		prices := make([]float64, len(members))
		var volumeSum float64
		for i, r := range members {
			prices[i] = r.AvgPrice
			volumeSum += r.Volume
		}
		mn, mx := minMax(prices)
		out = append(out, RegionStats{
			Region:     reg,
			Count:      len(members),
			PriceMean:  stat.Mean(prices, nil),
			PriceMin:   mn,
			PriceMax:   mx,
			VolumeSum:  volumeSum,
			VolumeMean: volumeSum / float64(len(members)),
		})
	}
	return out
}

func minMax(xs []float64) (float64, float64) {
	mn, mx := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		mn = math.Min(mn, x)
		mx = math.Max(mx, x)
	}
	return mn, mx
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
