package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Similarity pairs a crop with its Pearson correlation against the target.
type Similarity struct {
	Crop        string
	Correlation float64
}

// SimilarCrops ranks every other crop by the absolute Pearson correlation of
// its daily mean-price series against the target's, aligned on shared dates.
// Pairs with fewer than two overlapping dates or an undefined correlation
// (zero-variance series) are skipped. The sort is stable, so ties keep the
// table's crop iteration order.
func (a *Analyzer) SimilarCrops(target string, topN int) ([]Similarity, error) {
	targetSeries := a.dailySeries(target)
	if len(targetSeries) == 0 {
		return nil, ErrNoData
	}

	var out []Similarity
	for _, crop := range a.table.Crops() {
		if crop == target {
			continue
		}
		r, ok := correlate(targetSeries, a.dailySeries(crop))
		if !ok {
			continue
		}
		out = append(out, Similarity{Crop: crop, Correlation: r})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Correlation) > math.Abs(out[j].Correlation)
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// dailySeries maps each trading date to the crop's mean price for that day.
func (a *Analyzer) dailySeries(crop string) map[time.Time]float64 {
	points := dailyMeans(a.filterCrop(crop, nil))
	out := make(map[time.Time]float64, len(points))
	for _, p := range points {
		out[p.Date] = p.Price
	}
	return out
}

func correlate(target, other map[time.Time]float64) (float64, bool) {
	var xs, ys []float64
	for d, x := range target {
		if y, ok := other[d]; ok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
