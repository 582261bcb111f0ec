package cli

import (
	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var (
	filterMinPrice  float64
	filterMaxPrice  float64
	filterMinVolume float64
	filterMaxVolume float64
)

var filterCmd = &cobra.Command{
	Use:   "filter <作物名稱>",
	Short: "依價格與交易量範圍篩選並統計",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.FilterOptions{Crop: args[0]}
		if cmd.Flags().Changed("min-price") {
			opts.MinPrice = &filterMinPrice
		}
		if cmd.Flags().Changed("max-price") {
			opts.MaxPrice = &filterMaxPrice
		}
		if cmd.Flags().Changed("min-volume") {
			opts.MinVolume = &filterMinVolume
		}
		if cmd.Flags().Changed("max-volume") {
			opts.MaxVolume = &filterMaxVolume
		}
		return getApp().Filter(cmd.Context(), opts)
	},
}

func init() {
	filterCmd.Flags().Float64Var(&filterMinPrice, "min-price", 0, "價格下限")
	filterCmd.Flags().Float64Var(&filterMaxPrice, "max-price", 0, "價格上限")
	filterCmd.Flags().Float64Var(&filterMinVolume, "min-volume", 0, "交易量下限")
	filterCmd.Flags().Float64Var(&filterMaxVolume, "max-volume", 0, "交易量上限")
}
