package recorder

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestRecorder(t *testing.T) (*Recorder, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "records")
	r, err := New(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("建立記錄器失敗: %v", err)
	}
	return r, dir
}

func TestRecordWeatherAndAverages(t *testing.T) {
	r, _ := newTestRecorder(t)

	if err := r.RecordWeather("台北", "大安區", 25, 70, "晴"); err != nil {
		t.Fatalf("記錄失敗: %v", err)
	}
	if err := r.RecordWeather("台北", "信義區", 27, 80, "陰"); err != nil {
		t.Fatalf("記錄失敗: %v", err)
	}
	if err := r.RecordWeather("高雄", "前鎮區", 31, 60, "晴"); err != nil {
		t.Fatalf("記錄失敗: %v", err)
	}

	records := r.WeatherRecords()
	if len(records) != 3 {
		t.Fatalf("觀測筆數不正確: %d", len(records))
	}

	averages := r.CityAverages()
	taipei, ok := averages["台北"]
	if !ok {
		t.Fatal("應有台北的平均資料")
	}
	if taipei.AverageTemperature != 26 || taipei.AverageHumidity != 75 {
		t.Fatalf("台北平均不正確: %+v", taipei)
	}
	if taipei.RecordCount != 2 {
		t.Fatalf("台北筆數不正確: %d", taipei.RecordCount)
	}
	if averages["高雄"].RecordCount != 1 {
		t.Fatalf("高雄筆數不正確: %+v", averages["高雄"])
	}
}

func TestRecordWeatherEmptyCity(t *testing.T) {
	r, _ := newTestRecorder(t)
	if err := r.RecordWeather("", "", 25, 70, "晴"); err == nil {
		t.Fatal("空城市應被拒絕")
	}
}

func TestRecordVegetablePersists(t *testing.T) {
	r, dir := newTestRecorder(t)

	if err := r.RecordVegetable("番茄", 35.5, 1200, "台北一"); err != nil {
		t.Fatalf("記錄失敗: %v", err)
	}

	reloaded, err := New(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("重新載入失敗: %v", err)
	}
	records := reloaded.VegetableRecords()
	if len(records) != 1 {
		t.Fatalf("重新載入後筆數不正確: %d", len(records))
	}
	if records[0].CropName != "番茄" || records[0].Price != 35.5 {
		t.Fatalf("資料不正確: %+v", records[0])
	}
}

func TestWeatherAveragesPersist(t *testing.T) {
	r, dir := newTestRecorder(t)

	if err := r.RecordWeather("台中", "西屯區", 28.123, 65.456, "多雲"); err != nil {
		t.Fatalf("記錄失敗: %v", err)
	}

	reloaded, err := New(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("重新載入失敗: %v", err)
	}
	avg, ok := reloaded.CityAverages()["台中"]
	if !ok {
		t.Fatal("平均資料應已持久化")
	}
	if avg.AverageTemperature != 28.12 || avg.AverageHumidity != 65.46 {
		t.Fatalf("平均值應四捨五入至兩位: %+v", avg)
	}
}
