package app

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

// WeatherRecordOptions configure a manual weather observation.
type WeatherRecordOptions struct {
	City        string
	District    string
	Temperature float64
	Humidity    float64
	Weather     string
}

// RecordWeather stores a weather observation and prints the city's updated
// averages.
func (a *App) RecordWeather(opts WeatherRecordOptions) error {
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}
	if err := rec.RecordWeather(opts.City, opts.District, opts.Temperature, opts.Humidity, opts.Weather); err != nil {
		return err
	}

	if avg, ok := rec.CityAverages()[opts.City]; ok {
		fmt.Fprintf(os.Stdout, "%s 平均溫度 %.2f°C, 平均濕度 %.2f%% (%d 筆)\n",
			opts.City, avg.AverageTemperature, avg.AverageHumidity, avg.RecordCount)
	}
	return nil
}

// VegetableRecordOptions configure a manual vegetable price observation.
type VegetableRecordOptions struct {
	Crop   string
	Price  float64
	Volume float64
	Market string
}

// RecordVegetable stores a vegetable price observation.
func (a *App) RecordVegetable(opts VegetableRecordOptions) error {
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}
	if err := rec.RecordVegetable(opts.Crop, opts.Price, opts.Volume, opts.Market); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "已記錄 %s (%s) %.2f 元\n", opts.Crop, opts.Market, opts.Price)
	return nil
}

// RecordSummary prints the per-city weather averages.
func (a *App) RecordSummary() error {
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}

	averages := rec.CityAverages()
	if len(averages) == 0 {
		fmt.Fprintln(os.Stdout, "尚無觀測資料")
		return nil
	}

	cities := make([]string, 0, len(averages))
	for city := range averages {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "城市\t平均溫度\t平均濕度\t筆數\t更新時間")
	for _, city := range cities {
		avg := averages[city]
		fmt.Fprintf(writer, "%s\t%.2f\t%.2f\t%d\t%s\n",
			city, avg.AverageTemperature, avg.AverageHumidity, avg.RecordCount, avg.LastUpdated)
	}
	return writer.Flush()
}
