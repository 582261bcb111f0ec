package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agriwatch/internal/analysis"
	"agriwatch/internal/app"
)

var (
	analyzeMethod string
	analyzeDate   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <作物名稱>",
	Short: "下載並統計指定作物的交易行情",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := analysis.ParseMethod(analyzeMethod)
		if err != nil {
			return err
		}

		var date *time.Time
		if analyzeDate != "" {
			parsed, err := time.Parse("2006-01-02", analyzeDate)
			if err != nil {
				return fmt.Errorf("--date 格式須為 YYYY-MM-DD: %w", err)
			}
			date = &parsed
		}

		opts := app.AnalyzeOptions{
			Crop:   args[0],
			Method: method,
			Date:   date,
		}
		return getApp().Analyze(cmd.Context(), opts)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMethod, "method", string(analysis.MethodWeighted), "統計方式: weighted, simple, regional")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "僅統計單一日期 (YYYY-MM-DD)")
}
