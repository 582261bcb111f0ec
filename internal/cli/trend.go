package cli

import (
	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var trendLimit int

var trendCmd = &cobra.Command{
	Use:   "trend <作物名稱>",
	Short: "列出作物的每日平均價走勢",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.TrendOptions{
			Crop:  args[0],
			Limit: trendLimit,
		}
		return getApp().Trend(cmd.Context(), opts)
	},
}

var similarTopN int

var similarCmd = &cobra.Command{
	Use:   "similar <作物名稱>",
	Short: "找出價格走勢最相似的作物",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SimilarOptions{
			Crop: args[0],
			TopN: similarTopN,
		}
		return getApp().Similar(cmd.Context(), opts)
	},
}

func init() {
	trendCmd.Flags().IntVar(&trendLimit, "limit", 30, "顯示最近 N 天")
	similarCmd.Flags().IntVar(&similarTopN, "top", 5, "顯示前 N 名")
}
