package region

import "testing"

func TestOf(t *testing.T) {
	cases := []struct {
		market string
		want   Region
	}{
		{"台北一市場", RegionNorth},
		{"台北二", RegionNorth},
		{"三重區果菜市場", RegionNorth},
		{"台中市場", RegionMid},
		{"高雄果菜", RegionSouth},
		{"花蓮市場", RegionEast},
		{"澎湖馬公", RegionOther},
		{"", RegionOther},
	}
	for _, c := range cases {
		if got := Of(c.market); got != c.want {
			t.Fatalf("Of(%q) = %s, 期望 %s", c.market, got, c.want)
		}
	}
}

func TestOfDeterministic(t *testing.T) {
	first := Of("台北一市場")
	for i := 0; i < 100; i++ {
		if Of("台北一市場") != first {
			t.Fatal("重複呼叫結果應一致")
		}
	}
}
