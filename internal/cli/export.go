package cli

import (
	"github.com/spf13/cobra"

	"agriwatch/internal/app"
)

var (
	exportExcel string
	exportCSV   string
	exportPNG   string
	exportToken string
)

var exportCmd = &cobra.Command{
	Use:   "export <作物名稱>",
	Short: "匯出作物資料為 Excel, CSV 或走勢圖",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			Crop:      args[0],
			ExcelPath: exportExcel,
			CSVPath:   exportCSV,
			PNGPath:   exportPNG,
			Token:     exportToken,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportExcel, "excel", "", "Excel 報表輸出路徑 (需要 token)")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "CSV 輸出路徑")
	exportCmd.Flags().StringVar(&exportPNG, "png", "", "走勢圖輸出路徑")
	exportCmd.Flags().StringVar(&exportToken, "token", "", "進階功能 token")
}
