// Package recorder keeps manual weather and vegetable observations in
// JSON files under a data directory.
package recorder

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	weatherFileName   = "weather_records.json"
	vegetableFileName = "vegetable_records.json"
	timeLayout        = "2006-01-02 15:04:05"
)

// WeatherRecord 是一筆天氣觀測。
type WeatherRecord struct {
	Timestamp   string  `json:"timestamp"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Weather     string  `json:"weather"`
}

// CityAverage 是某城市觀測的累積平均。
type CityAverage struct {
	AverageTemperature float64 `json:"average_temperature"`
	AverageHumidity    float64 `json:"average_humidity"`
	LastUpdated        string  `json:"last_updated"`
	RecordCount        int     `json:"record_count"`
}

// VegetableRecord 是一筆果菜觀測。
type VegetableRecord struct {
	Timestamp string  `json:"timestamp"`
	CropName  string  `json:"crop_name"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	Market    string  `json:"market"`
}

type weatherFile struct {
	Records      []WeatherRecord        `json:"records"`
	CityAverages map[string]CityAverage `json:"city_averages,omitempty"`
}

type vegetableFile struct {
	Records []VegetableRecord `json:"records"`
}

// Recorder 管理觀測資料檔案。
type Recorder struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	weather   weatherFile
	vegetable vegetableFile
}

// New opens (and creates if needed) the record files under dir.
func New(dir string, logger zerolog.Logger) (*Recorder, error) {
	if dir == "" {
		dir = "data_records"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("建立觀測資料目錄失敗: %w", err)
	}

	r := &Recorder{
		dir:    dir,
		logger: logger.With().Str("component", "recorder").Logger(),
		now:    time.Now,
	}
	if err := loadJSON(r.weatherPath(), &r.weather); err != nil {
		return nil, err
	}
	if err := loadJSON(r.vegetablePath(), &r.vegetable); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) weatherPath() string   { return filepath.Join(r.dir, weatherFileName) }
func (r *Recorder) vegetablePath() string { return filepath.Join(r.dir, vegetableFileName) }

func loadJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("讀取觀測資料失敗: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("解析觀測資料失敗 (%s): %w", filepath.Base(path), err)
	}
	return nil
}

func saveJSON(path string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("寫入觀測資料失敗: %w", err)
	}
	return nil
}

// RecordWeather appends a weather observation and refreshes the running
// averages for its city.
func (r *Recorder) RecordWeather(city, district string, temperature, humidity float64, weather string) error {
	if city == "" {
		return errors.New("recorder: 城市不可為空")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().Format(timeLayout)
	r.weather.Records = append(r.weather.Records, WeatherRecord{
		Timestamp:   now,
		City:        city,
		District:    district,
		Temperature: temperature,
		Humidity:    humidity,
		Weather:     weather,
	})
	r.refreshCityAverage(city, now)

	if err := saveJSON(r.weatherPath(), &r.weather); err != nil {
		return err
	}
	r.logger.Info().Str("city", city).Msg("天氣觀測已記錄")
	return nil
}

// refreshCityAverage 重算某城市的平均值。呼叫方需持有 mu。
func (r *Recorder) refreshCityAverage(city, updatedAt string) {
	var tempSum, humiditySum float64
	count := 0
	for _, rec := range r.weather.Records {
		if rec.City != city {
			continue
		}
		tempSum += rec.Temperature
		humiditySum += rec.Humidity
		count++
	}
	if count == 0 {
		return
	}
	if r.weather.CityAverages == nil {
		r.weather.CityAverages = make(map[string]CityAverage)
	}
	r.weather.CityAverages[city] = CityAverage{
		AverageTemperature: round2(tempSum / float64(count)),
		AverageHumidity:    round2(humiditySum / float64(count)),
		LastUpdated:        updatedAt,
		RecordCount:        count,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecordVegetable appends a vegetable price observation.
func (r *Recorder) RecordVegetable(cropName string, price, volume float64, market string) error {
	if cropName == "" {
		return errors.New("recorder: 作物名稱不可為空")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vegetable.Records = append(r.vegetable.Records, VegetableRecord{
		Timestamp: r.now().Format(timeLayout),
		CropName:  cropName,
		Price:     price,
		Volume:    volume,
		Market:    market,
	})
	if err := saveJSON(r.vegetablePath(), &r.vegetable); err != nil {
		return err
	}
	r.logger.Info().Str("crop", cropName).Msg("果菜觀測已記錄")
	return nil
}

// WeatherRecords returns a copy of the stored weather observations.
func (r *Recorder) WeatherRecords() []WeatherRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]WeatherRecord, len(r.weather.Records))
	copy(out, r.weather.Records)
	return out
}

// CityAverages returns a copy of the per-city running averages.
func (r *Recorder) CityAverages() map[string]CityAverage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]CityAverage, len(r.weather.CityAverages))
	for city, avg := range r.weather.CityAverages {
		out[city] = avg
	}
	return out
}

// VegetableRecords returns a copy of the stored vegetable observations.
func (r *Recorder) VegetableRecords() []VegetableRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]VegetableRecord, len(r.vegetable.Records))
	copy(out, r.vegetable.Records)
	return out
}
