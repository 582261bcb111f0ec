package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"agriwatch/internal/dataset"
)

func TestSimilarCropsExcludesSelf(t *testing.T) {
	a := newAnalyzer(t, []dataset.RawRecord{
		raw("114.03.01", "番茄", "台北一", "10", "1"),
		raw("114.03.02", "番茄", "台北一", "20", "1"),
		raw("114.03.03", "番茄", "台北一", "30", "1"),
		raw("114.03.01", "甘藍", "台北一", "5", "1"),
		raw("114.03.02", "甘藍", "台北一", "10", "1"),
		raw("114.03.03", "甘藍", "台北一", "15", "1"),
	})

	got, err := a.SimilarCrops("番茄", 5)
	require.NoError(t, err)
	for _, s := range got {
		require.NotEqual(t, "番茄", s.Crop)
	}
	require.Len(t, got, 1)
	require.InDelta(t, 1.0, got[0].Correlation, 1e-9)
}

func TestSimilarCropsAbsoluteOrdering(t *testing.T) {
	a := newAnalyzer(t, []dataset.RawRecord{
		// target: rising 10,20,30
		raw("114.03.01", "番茄", "台北一", "10", "1"),
		raw("114.03.02", "番茄", "台北一", "20", "1"),
		raw("114.03.03", "番茄", "台北一", "30", "1"),
		// perfectly anti-correlated crop
		raw("114.03.01", "蘿蔔", "台北一", "30", "1"),
		raw("114.03.02", "蘿蔔", "台北一", "20", "1"),
		raw("114.03.03", "蘿蔔", "台北一", "10", "1"),
		// weakly correlated crop
		raw("114.03.01", "青蔥", "台北一", "10", "1"),
		raw("114.03.02", "青蔥", "台北一", "30", "1"),
		raw("114.03.03", "青蔥", "台北一", "15", "1"),
	})

	got, err := a.SimilarCrops("番茄", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "蘿蔔", got[0].Crop)
	require.InDelta(t, -1.0, got[0].Correlation, 1e-9)
	require.Greater(t, math.Abs(got[0].Correlation), math.Abs(got[1].Correlation))
}

func TestSimilarCropsSkipsDegeneratePairs(t *testing.T) {
	a := newAnalyzer(t, []dataset.RawRecord{
		raw("114.03.01", "番茄", "台北一", "10", "1"),
		raw("114.03.02", "番茄", "台北一", "20", "1"),
		raw("114.03.03", "番茄", "台北一", "30", "1"),
		// zero-variance series: correlation undefined, pair skipped
		raw("114.03.01", "金針菇", "台北一", "12", "1"),
		raw("114.03.02", "金針菇", "台北一", "12", "1"),
		raw("114.03.03", "金針菇", "台北一", "12", "1"),
		// single overlapping date: fewer than 2 shared points, skipped
		raw("114.03.01", "香菜", "台北一", "99", "1"),
	})

	got, err := a.SimilarCrops("番茄", 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSimilarCropsTopN(t *testing.T) {
	raws := []dataset.RawRecord{
		raw("114.03.01", "番茄", "台北一", "10", "1"),
		raw("114.03.02", "番茄", "台北一", "20", "1"),
	}
	others := []string{"甘藍", "蘿蔔", "青蔥"}
	for _, crop := range others {
		raws = append(raws,
			raw("114.03.01", crop, "台北一", "10", "1"),
			raw("114.03.02", crop, "台北一", "20", "1"),
		)
	}
	a := newAnalyzer(t, raws)

	got, err := a.SimilarCrops("番茄", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Stable sort keeps first-appearance order on ties.
	require.Equal(t, "甘藍", got[0].Crop)
	require.Equal(t, "蘿蔔", got[1].Crop)
}

func TestSimilarCropsUnknownTarget(t *testing.T) {
	a := newAnalyzer(t, []dataset.RawRecord{
		raw("114.03.01", "番茄", "台北一", "10", "1"),
	})
	_, err := a.SimilarCrops("不存在的作物", 5)
	require.ErrorIs(t, err, ErrNoData)
}
