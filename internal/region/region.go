// Package region buckets market names into coarse geographic regions by
// substring membership. This is a classification rule, not geocoding;
// unmatched markets land in RegionOther.
package region

import "strings"

// Region identifies one of the fixed geographic buckets.
type Region string

const (
	RegionNorth Region = "北部"
	RegionMid   Region = "中部"
	RegionSouth Region = "南部"
	RegionEast  Region = "東部"
	RegionOther Region = "其他"
)

type entry struct {
	region  Region
	markets []string
}

// Table order is the tie-break: the first region containing a matching
// substring wins.
var table = []entry{
	{RegionNorth, []string{"台北一", "台北二", "三重", "板橋", "桃園", "新竹"}},
	{RegionMid, []string{"台中", "豐原", "南投", "彰化"}},
	{RegionSouth, []string{"高雄", "鳳山", "屏東", "台南"}},
	{RegionEast, []string{"宜蘭", "花蓮", "台東"}},
}

// Of returns the region a market name belongs to.
func Of(marketName string) Region {
	if marketName == "" {
		return RegionOther
	}
	for _, e := range table {
		for _, m := range e.markets {
			if strings.Contains(marketName, m) {
				return e.region
			}
		}
	}
	return RegionOther
}

// All lists the regions in their fixed classification order, RegionOther last.
func All() []Region {
	return []Region{RegionNorth, RegionMid, RegionSouth, RegionEast, RegionOther}
}
