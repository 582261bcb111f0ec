package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agriwatch/internal/app"
	"agriwatch/internal/config"
	"agriwatch/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:   "agriwatch",
	Short: "台灣農產品交易行情分析工具",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle = app.NewApp(cfg, logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}
