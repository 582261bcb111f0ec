package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"agriwatch/internal/app"
	"agriwatch/internal/storage"
)

var (
	alertUpper  float64
	alertLower  float64
	alertNotify string
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "管理價格預警規則",
}

var alertAddCmd = &cobra.Command{
	Use:   "add <作物名稱>",
	Short: "新增預警規則",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AlertAddOptions{
			Crop:       args[0],
			UpperLimit: alertUpper,
			LowerLimit: alertLower,
			NotifyVia:  alertNotify,
		}
		return getApp().AlertAdd(cmd.Context(), opts)
	},
}

var alertListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出所有預警規則",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().AlertList(cmd.Context())
	},
}

var alertOffCmd = &cobra.Command{
	Use:   "off <規則ID>",
	Short: "停用預警規則",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return getApp().AlertDeactivate(cmd.Context(), id)
	},
}

var alertCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "立即檢查所有啟用中的規則",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().AlertCheck(cmd.Context())
	},
}

func init() {
	alertAddCmd.Flags().Float64Var(&alertUpper, "upper", 0, "價格上限")
	alertAddCmd.Flags().Float64Var(&alertLower, "lower", 0, "價格下限")
	alertAddCmd.Flags().StringVar(&alertNotify, "notify", storage.NotifySystem, "通知方式: system, email")
	alertAddCmd.MarkFlagRequired("upper")
	alertAddCmd.MarkFlagRequired("lower")

	alertCmd.AddCommand(alertAddCmd)
	alertCmd.AddCommand(alertListCmd)
	alertCmd.AddCommand(alertOffCmd)
	alertCmd.AddCommand(alertCheckCmd)
}
