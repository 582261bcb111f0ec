package cli

import (
	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var (
	weatherDistrict string
	weatherTemp     float64
	weatherHumidity float64
	weatherDesc     string

	vegPrice  float64
	vegVolume float64
	vegMarket string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "記錄手動觀測資料",
}

var recordWeatherCmd = &cobra.Command{
	Use:   "weather <城市>",
	Short: "記錄天氣觀測",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.WeatherRecordOptions{
			City:        args[0],
			District:    weatherDistrict,
			Temperature: weatherTemp,
			Humidity:    weatherHumidity,
			Weather:     weatherDesc,
		}
		return getApp().RecordWeather(opts)
	},
}

var recordVegetableCmd = &cobra.Command{
	Use:   "vegetable <作物名稱>",
	Short: "記錄果菜價格觀測",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.VegetableRecordOptions{
			Crop:   args[0],
			Price:  vegPrice,
			Volume: vegVolume,
			Market: vegMarket,
		}
		return getApp().RecordVegetable(opts)
	},
}

var recordSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "顯示各城市天氣平均",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().RecordSummary()
	},
}

func init() {
	recordWeatherCmd.Flags().StringVar(&weatherDistrict, "district", "", "行政區")
	recordWeatherCmd.Flags().Float64Var(&weatherTemp, "temp", 0, "溫度 (°C)")
	recordWeatherCmd.Flags().Float64Var(&weatherHumidity, "humidity", 0, "濕度 (%)")
	recordWeatherCmd.Flags().StringVar(&weatherDesc, "weather", "", "天氣描述")

	recordVegetableCmd.Flags().Float64Var(&vegPrice, "price", 0, "價格")
	recordVegetableCmd.Flags().Float64Var(&vegVolume, "volume", 0, "交易量")
	recordVegetableCmd.Flags().StringVar(&vegMarket, "market", "", "市場名稱")
	recordVegetableCmd.MarkFlagRequired("price")

	recordCmd.AddCommand(recordWeatherCmd)
	recordCmd.AddCommand(recordVegetableCmd)
	recordCmd.AddCommand(recordSummaryCmd)
}
