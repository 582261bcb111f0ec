package cli

import (
	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var (
	predictStrategy string
	predictHorizon  int
)

var predictCmd = &cobra.Command{
	Use:   "predict <作物名稱>",
	Short: "預測作物的未來價格",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.PredictOptions{
			Crop:     args[0],
			Strategy: predictStrategy,
			Horizon:  predictHorizon,
		}
		return getApp().Predict(cmd.Context(), opts)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictStrategy, "strategy", "", "預測策略: linear, blended (預設取自設定檔)")
	predictCmd.Flags().IntVar(&predictHorizon, "horizon", 0, "預測天數 (預設取自設定檔)")
}
